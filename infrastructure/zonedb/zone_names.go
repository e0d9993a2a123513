package zonedb

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// DefaultZoneDirs are the usual homes of the host zoneinfo tree
var DefaultZoneDirs = []string{
	"/usr/share/zoneinfo",
	"/usr/lib/zoneinfo",
	"/usr/share/lib/zoneinfo",
}

// builtinZoneNames are always offered, even when no zoneinfo tree is installed
var builtinZoneNames = []string{
	"UTC",
	"GMT",
	"Africa/Addis_Ababa",
	"Africa/Cairo",
	"Africa/Harare",
	"Africa/Johannesburg",
	"Africa/Lagos",
	"Africa/Nairobi",
	"America/Anchorage",
	"America/Argentina/Buenos_Aires",
	"America/Bogota",
	"America/Chicago",
	"America/Denver",
	"America/Halifax",
	"America/Juneau",
	"America/Lima",
	"America/Los_Angeles",
	"America/Mexico_City",
	"America/New_York",
	"America/Phoenix",
	"America/Santiago",
	"America/Sao_Paulo",
	"America/St_Johns",
	"America/Toronto",
	"Asia/Bangkok",
	"Asia/Dhaka",
	"Asia/Dubai",
	"Asia/Hong_Kong",
	"Asia/Jakarta",
	"Asia/Karachi",
	"Asia/Kathmandu",
	"Asia/Kolkata",
	"Asia/Manila",
	"Asia/Seoul",
	"Asia/Shanghai",
	"Asia/Singapore",
	"Asia/Tehran",
	"Asia/Tokyo",
	"Atlantic/Reykjavik",
	"Australia/Adelaide",
	"Australia/Lord_Howe",
	"Australia/Sydney",
	"Europe/Athens",
	"Europe/Berlin",
	"Europe/Dublin",
	"Europe/Istanbul",
	"Europe/Lisbon",
	"Europe/London",
	"Europe/Moscow",
	"Europe/Paris",
	"Pacific/Auckland",
	"Pacific/Chatham",
	"Pacific/Honolulu",
}

// scanZoneDirs walks each zoneinfo tree and returns the relative names of
// the files whose path segments are capitalized, which is how zone files are named
func scanZoneDirs(dirs []string) []string {
	var names []string
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}

		_ = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if path == dir {
				return nil
			}
			if entry.IsDir() {
				// posix/, right/ and friends are lowercase duplicates of the main tree
				if !isZoneSegment(entry.Name()) {
					return filepath.SkipDir
				}
				return nil
			}

			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)
			if isZoneName(rel) {
				names = append(names, rel)
			}
			return nil
		})
	}
	return names
}

func isZoneName(name string) bool {
	for _, segment := range strings.Split(name, "/") {
		if !isZoneSegment(segment) {
			return false
		}
	}
	return true
}

// isZoneSegment accepts "New_York" and "GMT+5" but not "zone.tab" or "leapseconds"
func isZoneSegment(segment string) bool {
	if segment == "" || strings.Contains(segment, ".") {
		return false
	}
	return unicode.IsUpper(rune(segment[0]))
}
