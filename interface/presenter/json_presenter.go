package presenter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ca-srg/tzcore/domain/repository"
)

// JSONPresenterImpl implements ZonePresenter for JSON output
type JSONPresenterImpl struct {
	writer    io.Writer
	errWriter io.Writer
	encoder   *json.Encoder
}

// NewJSONPresenter creates a new JSON presenter
func NewJSONPresenter() *JSONPresenterImpl {
	return NewJSONPresenterTo(os.Stdout, os.Stderr)
}

// NewJSONPresenterTo writes documents to w and errors to errW
func NewJSONPresenterTo(w, errW io.Writer) *JSONPresenterImpl {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return &JSONPresenterImpl{
		writer:    w,
		errWriter: errW,
		encoder:   encoder,
	}
}

// PrintVersion prints version information as JSON
func (p *JSONPresenterImpl) PrintVersion(info VersionInfo) error {
	return p.encoder.Encode(map[string]string{
		"version":     info.Version,
		"dataSource":  info.DataSource,
		"dataVersion": info.DataVersion,
	})
}

// PrintError prints the error as a JSON object on the error stream
func (p *JSONPresenterImpl) PrintError(err error) {
	_ = json.NewEncoder(p.errWriter).Encode(map[string]string{"error": err.Error()})
}

// PrintMessage prints {"message": msg}
func (p *JSONPresenterImpl) PrintMessage(msg string) error {
	return p.encoder.Encode(map[string]string{"message": msg})
}

// PrintStringList prints the items as a JSON array keyed by title
func (p *JSONPresenterImpl) PrintStringList(title string, items []string) error {
	if items == nil {
		items = []string{}
	}
	return p.encoder.Encode(map[string]interface{}{
		"title": title,
		"items": items,
		"count": len(items),
	})
}

// PrintZone prints a zone report as JSON
func (p *JSONPresenterImpl) PrintZone(report *ZoneReport) error {
	names := make(map[string]interface{}, len(report.LocalizedNames))
	for _, name := range report.LocalizedNames {
		if name.Name == "" {
			names[name.Style] = nil
		} else {
			names[name.Style] = name.Name
		}
	}

	data := map[string]interface{}{
		"name":           report.Name,
		"kind":           report.Kind,
		"description":    report.Description,
		"at":             report.At.UTC().Format(time.RFC3339),
		"secondsFromUTC": report.SecondsFromUTC,
		"offset":         FormatOffset(report.SecondsFromUTC),
		"isDST":          report.IsDST,
		"dstOffset":      report.DSTOffset,
		"hasPayload":     report.HasPayload,
		"localizedNames": names,
	}
	if report.Abbreviation != "" {
		data["abbreviation"] = report.Abbreviation
	} else {
		data["abbreviation"] = nil
	}
	if report.NextTransition != nil {
		data["nextTransition"] = report.NextTransition.UTC().Format(time.RFC3339)
	} else {
		data["nextTransition"] = nil
	}

	return p.encoder.Encode(data)
}

// PrintAbbreviations prints the abbreviation table as a JSON object
func (p *JSONPresenterImpl) PrintAbbreviations(mapping map[string]string) error {
	return p.encoder.Encode(mapping)
}

// PrintHostZoneEvent prints one event per line so a consumer can stream them
func (p *JSONPresenterImpl) PrintHostZoneEvent(event repository.HostZoneEvent) error {
	line, err := json.Marshal(map[string]string{
		"event":      event.Name,
		"previous":   event.PreviousZone,
		"current":    event.CurrentZone,
		"observedAt": event.ObservedAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.writer, string(line))
	return err
}

// PrintConfig prints the exported configuration as JSON
func (p *JSONPresenterImpl) PrintConfig(exported map[string]interface{}) error {
	return p.encoder.Encode(exported)
}
