package zonedb

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/ca-srg/tzcore/domain"
)

const (
	defaultLocaltimePath = "/etc/localtime"
	defaultTimezoneFile  = "/etc/timezone"
)

// HostProbe reads the host's zone configuration. Every call re-reads the
// sources, so a change to the host setting is seen by the next call.
type HostProbe struct {
	logger        domain.Logger
	getenv        func(string) string
	localtimePath string
	timezoneFile  string
	processLocal  func() string
}

// HostProbeOption configures a HostProbe
type HostProbeOption func(*HostProbe)

// WithEnvLookup replaces os.Getenv for reading TZ
func WithEnvLookup(getenv func(string) string) HostProbeOption {
	return func(p *HostProbe) {
		p.getenv = getenv
	}
}

// WithLocaltimePath replaces /etc/localtime
func WithLocaltimePath(path string) HostProbeOption {
	return func(p *HostProbe) {
		p.localtimePath = path
	}
}

// WithTimezoneFile replaces /etc/timezone
func WithTimezoneFile(path string) HostProbeOption {
	return func(p *HostProbe) {
		p.timezoneFile = path
	}
}

// WithProcessLocal replaces the name of time.Local, which is fixed at process start
func WithProcessLocal(name func() string) HostProbeOption {
	return func(p *HostProbe) {
		p.processLocal = name
	}
}

// NewHostProbe creates a probe over the standard host sources
func NewHostProbe(logger domain.Logger, opts ...HostProbeOption) *HostProbe {
	p := &HostProbe{
		logger:        logger,
		getenv:        os.Getenv,
		localtimePath: defaultLocaltimePath,
		timezoneFile:  defaultTimezoneFile,
		processLocal:  func() string { return time.Local.String() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Detect returns the first name from the host sources that valid accepts.
// Sources are tried in order: TZ, the /etc/localtime symlink,
// /etc/timezone, then the name time.Local was loaded under.
func (p *HostProbe) Detect(valid func(name string) bool) (string, error) {
	ctx := context.Background()

	// Method 1: TZ environment variable
	if tzEnv := p.getenv("TZ"); tzEnv != "" {
		name := zoneNameFromPath(strings.TrimPrefix(tzEnv, ":"))
		if valid(name) {
			p.logger.Debug(ctx, "Detected timezone from TZ environment variable", domain.ZoneField(name))
			return name, nil
		}
		p.logger.Warn(ctx, "Failed to resolve timezone from TZ environment variable",
			domain.NewField("TZ", tzEnv))
	}

	// Method 2: /etc/localtime symlink (e.g., /usr/share/zoneinfo/America/New_York)
	if linkPath, err := os.Readlink(p.localtimePath); err == nil {
		name := zoneNameFromPath(linkPath)
		if name != linkPath && valid(name) {
			p.logger.Debug(ctx, "Detected timezone from /etc/localtime", domain.ZoneField(name))
			return name, nil
		}
	}

	// Method 3: /etc/timezone (Debian family)
	if content, err := os.ReadFile(p.timezoneFile); err == nil {
		name := strings.TrimSpace(string(content))
		if name != "" && valid(name) {
			p.logger.Debug(ctx, "Detected timezone from /etc/timezone", domain.ZoneField(name))
			return name, nil
		}
	}

	// Method 4: the name the runtime loaded time.Local under
	if name := p.processLocal(); name != "" && name != "Local" && valid(name) {
		p.logger.Debug(ctx, "Detected timezone using time.Local", domain.ZoneField(name))
		return name, nil
	}

	return "", domain.ErrTimezoneDetection("UTC")
}

// zoneNameFromPath extracts "America/New_York" from ".../zoneinfo/America/New_York".
// Anything without a zoneinfo component is returned unchanged.
func zoneNameFromPath(path string) string {
	parts := strings.SplitN(path, "/zoneinfo/", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return path
}
