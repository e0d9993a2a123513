package zonedb

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/infrastructure/logging"
)

func noHostProbe(t *testing.T) *HostProbe {
	t.Helper()
	dir := t.TempDir()
	return NewHostProbe(&logging.NoOpLogger{},
		WithEnvLookup(func(string) string { return "" }),
		WithLocaltimePath(filepath.Join(dir, "localtime")),
		WithTimezoneFile(filepath.Join(dir, "timezone")),
		WithProcessLocal(func() string { return "Local" }),
	)
}

func TestDatabases_Resolve(t *testing.T) {
	for _, source := range []string{SourceSystem, SourceEmbedded} {
		t.Run(source, func(t *testing.T) {
			database, err := NewDatabase(source, noHostProbe(t))
			require.NoError(t, err)

			rules, err := database.Resolve("America/New_York")
			require.NoError(t, err)
			assert.Equal(t, "America/New_York", rules.Name)
			_, offset := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC).In(rules.Location).Zone()
			assert.Equal(t, -18000, offset)

			alias, err := database.Resolve("US/Eastern")
			require.NoError(t, err)
			assert.Equal(t, rules.Fingerprint, alias.Fingerprint)

			fixed, err := database.Resolve("GMT+0530")
			require.NoError(t, err)
			abbreviation, offset := time.Now().In(fixed.Location).Zone()
			assert.Equal(t, "GMT+0530", abbreviation)
			assert.Equal(t, 19800, offset)

			for _, bad := range []string{"", "Local", "Not/AZone", "GMT+0560"} {
				_, err := database.Resolve(bad)
				assert.Error(t, err, bad)
			}

			assert.Contains(t, database.AbbreviationTable(), "EST")
			assert.NotEmpty(t, database.Version())
		})
	}
}

func TestNewDatabase_UnknownSource(t *testing.T) {
	_, err := NewDatabase("carrier-pigeon", noHostProbe(t))
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidInput))
}

func TestKnownZoneNames(t *testing.T) {
	database := NewEmbeddedDatabase(noHostProbe(t))
	database.zoneDirs = []string{t.TempDir()}

	names := database.KnownZoneNames()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "Asia/Tokyo")
	assert.Contains(t, names, "UTC")

	names[0] = "mutated"
	assert.NotEqual(t, "mutated", database.KnownZoneNames()[0])
}

func TestScanZoneDirs(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"Asia/Tokyo", "Europe/Paris", "UTC", "zone.tab", "posix/Asia/Tokyo", "Etc/GMT+5", "tzdata.zi"} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("TZif"), 0644))
	}

	names := scanZoneDirs([]string{root, filepath.Join(root, "missing")})
	sort.Strings(names)
	assert.Equal(t, []string{"Asia/Tokyo", "Etc/GMT+5", "Europe/Paris", "UTC"}, names)
}

func TestStdlibDatabase_Version(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tzdata.zi"), []byte("# version 2024a\n# more\n"), 0644))

	database := NewStdlibDatabase(noHostProbe(t))
	database.zoneDirs = []string{filepath.Join(dir, "missing"), dir}
	assert.Equal(t, "2024a", database.Version())

	database.zoneDirs = []string{filepath.Join(dir, "missing")}
	assert.Equal(t, SystemVersion, database.Version())
}

func TestDefaultAbbreviations(t *testing.T) {
	table := DefaultAbbreviations()
	assert.Equal(t, "America/New_York", table["EST"])
	assert.Equal(t, "Asia/Tokyo", table["JST"])

	table["EST"] = "Europe/Paris"
	assert.Equal(t, "America/New_York", DefaultAbbreviations()["EST"])

	database := NewEmbeddedDatabase(noHostProbe(t))
	for abbreviation, name := range DefaultAbbreviations() {
		_, err := database.Resolve(name)
		assert.NoError(t, err, "%s maps to %s", abbreviation, name)
	}
}
