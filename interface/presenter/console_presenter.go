package presenter

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ca-srg/tzcore/domain/repository"
)

// ConsolePresenterImpl implements ZonePresenter for terminal output
type ConsolePresenterImpl struct {
	writer    io.Writer
	errWriter io.Writer
}

// NewConsolePresenter creates a new console presenter
func NewConsolePresenter() *ConsolePresenterImpl {
	return NewConsolePresenterTo(os.Stdout, os.Stderr)
}

// NewConsolePresenterTo writes results to w and errors to errW
func NewConsolePresenterTo(w, errW io.Writer) *ConsolePresenterImpl {
	return &ConsolePresenterImpl{writer: w, errWriter: errW}
}

// PrintVersion prints version information
func (p *ConsolePresenterImpl) PrintVersion(info VersionInfo) error {
	_, _ = fmt.Fprintf(p.writer, "tzcore version %s\n", info.Version)
	_, _ = fmt.Fprintf(p.writer, "zone data: %s (%s)\n", info.DataVersion, info.DataSource)
	return nil
}

// PrintError prints an error message
func (p *ConsolePresenterImpl) PrintError(err error) {
	_, _ = fmt.Fprintf(p.errWriter, "Error: %v\n", err)
}

// PrintMessage prints a single line
func (p *ConsolePresenterImpl) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(p.writer, msg)
	return err
}

// PrintStringList prints a list of strings with a title
func (p *ConsolePresenterImpl) PrintStringList(title string, items []string) error {
	_, _ = fmt.Fprintf(p.writer, "%s (%d):\n", title, len(items))
	for _, item := range items {
		_, _ = fmt.Fprintf(p.writer, "  %s\n", item)
	}
	return nil
}

// PrintZone prints a zone report
func (p *ConsolePresenterImpl) PrintZone(report *ZoneReport) error {
	w := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(w, "Zone:\t%s\n", report.Name)
	_, _ = fmt.Fprintf(w, "Kind:\t%s\n", report.Kind)
	_, _ = fmt.Fprintf(w, "Description:\t%s\n", report.Description)
	_, _ = fmt.Fprintf(w, "At:\t%s\n", report.At.UTC().Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "Offset:\t%s (%ds)\n", FormatOffset(report.SecondsFromUTC), report.SecondsFromUTC)
	_, _ = fmt.Fprintf(w, "Abbreviation:\t%s\n", orDash(report.Abbreviation))
	if report.IsDST {
		_, _ = fmt.Fprintf(w, "DST:\tyes (+%ds)\n", report.DSTOffset)
	} else {
		_, _ = fmt.Fprintf(w, "DST:\tno\n")
	}
	if report.NextTransition != nil {
		_, _ = fmt.Fprintf(w, "Next transition:\t%s\n", report.NextTransition.UTC().Format(time.RFC3339))
	} else {
		_, _ = fmt.Fprintf(w, "Next transition:\tnone\n")
	}
	if report.HasPayload {
		_, _ = fmt.Fprintf(w, "Payload:\tyes\n")
	}

	if len(report.LocalizedNames) > 0 {
		_, _ = fmt.Fprintf(w, "Names:\t\n")
		for _, name := range report.LocalizedNames {
			_, _ = fmt.Fprintf(w, "  %s\t%s\n", name.Style, orDash(name.Name))
		}
	}

	return w.Flush()
}

// PrintAbbreviations prints the abbreviation table sorted by abbreviation
func (p *ConsolePresenterImpl) PrintAbbreviations(mapping map[string]string) error {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ABBREVIATION\tZONE")
	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", k, mapping[k])
	}
	return w.Flush()
}

// PrintHostZoneEvent prints one host zone change
func (p *ConsolePresenterImpl) PrintHostZoneEvent(event repository.HostZoneEvent) error {
	_, err := fmt.Fprintf(p.writer, "[%s] %s: %s -> %s\n",
		event.ObservedAt.Format(time.RFC3339), event.Name, event.PreviousZone, event.CurrentZone)
	return err
}

// PrintConfig prints an exported configuration as dotted keys, then where each field came from
func (p *ConsolePresenterImpl) PrintConfig(exported map[string]interface{}) error {
	var lines [][2]string
	flattenConfig("", exported, &lines)
	sort.Slice(lines, func(i, j int) bool { return lines[i][0] < lines[j][0] })

	w := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KEY\tVALUE")
	for _, line := range lines {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", line[0], line[1])
	}

	if sources, ok := exported["_sources"].(map[string]string); ok && len(sources) > 0 {
		fields := make([]string, 0, len(sources))
		for field := range sources {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		_, _ = fmt.Fprintln(w, "\t")
		_, _ = fmt.Fprintln(w, "FIELD\tSOURCE")
		for _, field := range fields {
			_, _ = fmt.Fprintf(w, "%s\t%s\n", field, sources[field])
		}
	}
	return w.Flush()
}

func flattenConfig(prefix string, m map[string]interface{}, out *[][2]string) {
	for key, value := range m {
		if strings.HasPrefix(key, "_") {
			continue
		}
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			flattenConfig(path, nested, out)
			continue
		}
		*out = append(*out, [2]string{path, fmt.Sprintf("%v", value)})
	}
}

// FormatOffset renders seconds east of UTC as ±HH:MM, with :SS when not minute-aligned
func FormatOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	h, m, s := seconds/3600, (seconds/60)%60, seconds%60
	if s != 0 {
		return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%02d:%02d", sign, h, m)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
