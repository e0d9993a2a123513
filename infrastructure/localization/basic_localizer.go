package localization

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/ca-srg/tzcore/domain/repository"
	"github.com/ca-srg/tzcore/domain/valueobject"
)

var supportedLocales = []language.Tag{
	language.English, // first entry is the fallback
	language.Japanese,
}

var localeMatcher = language.NewMatcher(supportedLocales)

type nameTemplates struct {
	standard string
	daylight string
	generic  string
	utc      string
	gmt      string
}

var templates = map[language.Base]nameTemplates{
	mustBase(language.English): {
		standard: "%s Standard Time",
		daylight: "%s Daylight Time",
		generic:  "%s Time",
		utc:      "Coordinated Universal Time",
		gmt:      "Greenwich Mean Time",
	},
	mustBase(language.Japanese): {
		standard: "%s標準時",
		daylight: "%s夏時間",
		generic:  "%s時間",
		utc:      "協定世界時",
		gmt:      "グリニッジ標準時",
	},
}

func mustBase(tag language.Tag) language.Base {
	base, _ := tag.Base()
	return base
}

// BasicLocalizer renders zone names from the rules alone: abbreviations for
// the short styles and the exemplar city for the long ones
type BasicLocalizer struct {
	getenv func(string) string
}

// NewBasicLocalizer creates a localizer that reads the current locale from the environment
func NewBasicLocalizer() *BasicLocalizer {
	return &BasicLocalizer{getenv: os.Getenv}
}

var _ repository.Localizer = (*BasicLocalizer)(nil)

// LocalizedName renders name in style. Daylight styles are absent for zones
// that observe no DST in the current year.
func (l *BasicLocalizer) LocalizedName(name string, rules *time.Location, style valueobject.NameStyle, locale string) (string, bool) {
	if rules == nil || !style.IsValid() {
		return "", false
	}

	periods := yearPeriods(rules, time.Now().Year())
	if style.IsDaylightSaving() && periods.daylight == "" {
		return "", false
	}

	if style.IsShort() {
		switch {
		case style.IsDaylightSaving():
			return periods.daylight, true
		case style.IsGeneric():
			return genericAbbreviation(periods), periods.standard != ""
		default:
			return periods.standard, periods.standard != ""
		}
	}

	t := templates[mustBase(l.match(locale))]
	switch {
	case name == "UTC" || name == "Etc/UTC":
		return t.utc, true
	case name == "GMT" || name == "Etc/GMT":
		return t.gmt, true
	}
	if offset, ok := valueobject.ParseFixedOffsetName(name); ok {
		return formatOffset(offset), true
	}

	city := exemplarCity(name)
	switch {
	case style.IsDaylightSaving():
		return fmt.Sprintf(t.daylight, city), true
	case style.IsGeneric():
		return fmt.Sprintf(t.generic, city), true
	default:
		return fmt.Sprintf(t.standard, city), true
	}
}

// match picks the supported locale closest to locale. An empty locale means
// the process locale from LC_ALL, LC_MESSAGES or LANG.
func (l *BasicLocalizer) match(locale string) language.Tag {
	if locale == "" {
		for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
			if value := l.getenv(key); value != "" {
				locale = value
				break
			}
		}
	}

	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		return supportedLocales[0]
	}
	_, index, _ := localeMatcher.Match(tag)
	return supportedLocales[index]
}

// normalizeLocale turns POSIX "ja_JP.UTF-8@euro" into BCP 47 "ja-JP"
func normalizeLocale(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "C" || locale == "POSIX" {
		return "en"
	}
	return strings.ReplaceAll(locale, "_", "-")
}

type periodNames struct {
	standard string
	daylight string
}

// yearPeriods samples January and July, which covers DST in both hemispheres
func yearPeriods(rules *time.Location, year int) periodNames {
	var names periodNames
	for _, month := range []time.Month{time.January, time.July} {
		at := time.Date(year, month, 1, 12, 0, 0, 0, rules)
		abbreviation, _ := at.Zone()
		if at.IsDST() {
			names.daylight = abbreviation
		} else if names.standard == "" {
			names.standard = abbreviation
		}
	}
	if names.standard == "" {
		names.standard = names.daylight
	}
	return names
}

// genericAbbreviation derives "ET" from "EST" and "EDT"; otherwise the standard abbreviation
func genericAbbreviation(p periodNames) string {
	std, dst := p.standard, p.daylight
	if len(std) == 3 && len(dst) == 3 && std[0] == dst[0] && std[1] == 'S' && dst[1] == 'D' && std[2] == dst[2] {
		return std[:1] + std[2:]
	}
	return std
}

func exemplarCity(name string) string {
	city := name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		city = name[i+1:]
	}
	return strings.ReplaceAll(city, "_", " ")
}

func formatOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("GMT%s%02d:%02d", sign, seconds/3600, (seconds%3600)/60)
}
