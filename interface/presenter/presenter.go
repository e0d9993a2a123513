package presenter

import (
	"time"

	"github.com/ca-srg/tzcore/domain/repository"
)

// LocalizedName is one rendered style of a zone name
type LocalizedName struct {
	Style string
	Name  string
}

// ZoneReport is everything the CLI shows about a zone at an instant
type ZoneReport struct {
	Name           string
	Kind           string
	Description    string
	At             time.Time
	SecondsFromUTC int
	Abbreviation   string
	IsDST          bool
	DSTOffset      int
	NextTransition *time.Time
	HasPayload     bool
	LocalizedNames []LocalizedName
}

// VersionInfo describes the binary and its rule data
type VersionInfo struct {
	Version     string
	DataSource  string
	DataVersion string
}

// ZonePresenter renders command results
type ZonePresenter interface {
	PrintVersion(info VersionInfo) error
	PrintError(err error)
	PrintMessage(msg string) error
	PrintStringList(title string, items []string) error
	PrintZone(report *ZoneReport) error
	PrintAbbreviations(mapping map[string]string) error
	PrintHostZoneEvent(event repository.HostZoneEvent) error
	PrintConfig(exported map[string]interface{}) error
}
