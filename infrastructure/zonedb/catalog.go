package zonedb

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ca-srg/tzcore/domain/repository"
	"github.com/ca-srg/tzcore/domain/valueobject"
)

// loaderFunc loads a region zone by name
type loaderFunc func(name string) (*time.Location, error)

// catalog is the part shared by every database: name resolution with
// fixed-offset support, fingerprint caching and the known-name scan
type catalog struct {
	load         loaderFunc
	zoneDirs     []string
	probe        *HostProbe
	fingerprints sync.Map

	namesOnce sync.Once
	names     []string
}

func newCatalog(load loaderFunc, zoneDirs []string, probe *HostProbe) *catalog {
	return &catalog{
		load:     load,
		zoneDirs: zoneDirs,
		probe:    probe,
	}
}

func (c *catalog) Resolve(name string) (*repository.ZoneRules, error) {
	if offset, ok := valueobject.ParseFixedOffsetName(name); ok {
		return c.rules(name, time.FixedZone(name, offset)), nil
	}
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("unknown time zone %q", name)
	}

	loc, err := c.load(name)
	if err != nil {
		return nil, err
	}
	return c.rules(name, loc), nil
}

func (c *catalog) rules(name string, loc *time.Location) *repository.ZoneRules {
	if cached, ok := c.fingerprints.Load(name); ok {
		return &repository.ZoneRules{Name: name, Location: loc, Fingerprint: cached.(uint64)}
	}
	fingerprint := valueobject.RulesFingerprint(loc)
	c.fingerprints.Store(name, fingerprint)
	return &repository.ZoneRules{Name: name, Location: loc, Fingerprint: fingerprint}
}

func (c *catalog) KnownZoneNames() []string {
	c.namesOnce.Do(func() {
		seen := make(map[string]struct{})
		for _, name := range scanZoneDirs(c.zoneDirs) {
			seen[name] = struct{}{}
		}
		for _, name := range builtinZoneNames {
			seen[name] = struct{}{}
		}

		names := make([]string, 0, len(seen))
		for name := range seen {
			if _, err := c.load(name); err == nil {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		c.names = names
	})
	return append([]string(nil), c.names...)
}

func (c *catalog) AbbreviationTable() map[string]string {
	return DefaultAbbreviations()
}

func (c *catalog) DetectHostZone() (string, error) {
	return c.probe.Detect(func(name string) bool {
		_, err := c.Resolve(name)
		return err == nil
	})
}
