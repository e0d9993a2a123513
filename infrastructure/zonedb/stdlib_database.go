package zonedb

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/ca-srg/tzcore/domain/repository"
)

// SystemVersion is reported when the host zoneinfo carries no version marker
const SystemVersion = "system"

// StdlibDatabase resolves zones through time.LoadLocation: the host zoneinfo
// first, then the copy of tzdata linked into the binary
type StdlibDatabase struct {
	*catalog
}

// NewStdlibDatabase creates a database backed by the host zoneinfo
func NewStdlibDatabase(probe *HostProbe) *StdlibDatabase {
	return &StdlibDatabase{
		catalog: newCatalog(time.LoadLocation, DefaultZoneDirs, probe),
	}
}

var _ repository.ZoneDatabase = (*StdlibDatabase)(nil)

// Version reads the version line of tzdata.zi, e.g. "# version 2024a"
func (d *StdlibDatabase) Version() string {
	for _, dir := range d.zoneDirs {
		if version, ok := readTzdataVersion(filepath.Join(dir, "tzdata.zi")); ok {
			return version
		}
	}
	return SystemVersion
}

func readTzdataVersion(path string) (string, bool) {
	file, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return "", false
	}
	version, found := strings.CutPrefix(strings.TrimSpace(scanner.Text()), "# version ")
	if !found || version == "" {
		return "", false
	}
	return version, true
}
