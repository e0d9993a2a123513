package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/repository"
	"github.com/ca-srg/tzcore/domain/valueobject"
	"github.com/ca-srg/tzcore/infrastructure/archive"
	"github.com/ca-srg/tzcore/interface/presenter"
	usecase "github.com/ca-srg/tzcore/usecase/interface"
)

// Usage lists the commands understood by Run
const Usage = `Usage: tzcore [flags] <command>

Commands:
  show <name> [--at RFC3339]       describe a named zone
  fixed <seconds> [--at RFC3339]   describe a fixed-offset zone
  abbr <abbreviation>              resolve an abbreviation
  abbreviations                    list the abbreviation table
  known                            list every known zone name
  host                             show the zone detected from the host
  local [--at RFC3339]             describe the live local zone
  default get|set <name>|reset     inspect or change the system default
  archive encode <name|local> <file>
  archive decode <file>
  export <file.csv> [--prefix P] [--at RFC3339]
                                   write every known zone to a CSV table
  watch                            print host zone changes until interrupted
  config show|init                 print or create the configuration file
  version                          print version information`

// ZoneWatcher publishes host zone changes while Run is active
type ZoneWatcher interface {
	repository.HostZoneNotifier
	Run(ctx context.Context) error
}

// CLIController handles command-line interface operations
type CLIController struct {
	service       usecase.TimeZoneService
	codec         usecase.ArchivalCodec
	exportService usecase.ExportService
	format        archive.Format
	configService usecase.ConfigService
	watcher       ZoneWatcher
	presenter     presenter.ZonePresenter
	locale        string
	version       presenter.VersionInfo
	now           func() time.Time
}

// NewCLIController creates a new CLI controller
func NewCLIController(
	service usecase.TimeZoneService,
	codec usecase.ArchivalCodec,
	exportService usecase.ExportService,
	format archive.Format,
	configService usecase.ConfigService,
	watcher ZoneWatcher,
	zonePresenter presenter.ZonePresenter,
	locale string,
	version presenter.VersionInfo,
) *CLIController {
	return &CLIController{
		service:       service,
		codec:         codec,
		exportService: exportService,
		format:        format,
		configService: configService,
		watcher:       watcher,
		presenter:     zonePresenter,
		locale:        locale,
		version:       version,
		now:           time.Now,
	}
}

// Run executes the command named by args[0]
func (c *CLIController) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.presenter.PrintMessage(Usage)
	}

	command, rest := args[0], args[1:]
	switch command {
	case "show":
		return c.runShow(rest)
	case "fixed":
		return c.runFixed(rest)
	case "abbr":
		return c.runAbbr(rest)
	case "abbreviations":
		if err := expectArgs(command, rest, 0); err != nil {
			return err
		}
		return c.presenter.PrintAbbreviations(c.service.Abbreviations().Snapshot())
	case "known":
		if err := expectArgs(command, rest, 0); err != nil {
			return err
		}
		return c.presenter.PrintStringList("Known zones", c.service.KnownZoneNames())
	case "host":
		return c.runHost(rest)
	case "local":
		return c.runLocal(rest)
	case "default":
		return c.runDefault(ctx, rest)
	case "archive":
		return c.runArchive(rest)
	case "export":
		return c.runExport(ctx, rest)
	case "watch":
		return c.runWatch(ctx, rest)
	case "config":
		return c.runConfig(rest)
	case "version":
		return c.presenter.PrintVersion(c.version)
	case "help":
		return c.presenter.PrintMessage(Usage)
	default:
		return domain.ErrInvalidInput("command", fmt.Sprintf("unknown command %q", command))
	}
}

func (c *CLIController) runShow(args []string) error {
	positional, at, err := c.parseZoneArgs("show", args, 1)
	if err != nil {
		return err
	}

	zone, err := c.service.Construct(positional[0])
	if err != nil {
		return err
	}
	return c.presenter.PrintZone(c.buildReport(zone, at))
}

func (c *CLIController) runFixed(args []string) error {
	positional, at, err := c.parseZoneArgs("fixed", args, 1)
	if err != nil {
		return err
	}

	seconds, err := strconv.Atoi(positional[0])
	if err != nil {
		return domain.ErrInvalidInput("seconds", fmt.Sprintf("%q is not an integer", positional[0]))
	}
	return c.presenter.PrintZone(c.buildReport(c.service.FixedOffset(seconds), at))
}

func (c *CLIController) runAbbr(args []string) error {
	positional, at, err := c.parseZoneArgs("abbr", args, 1)
	if err != nil {
		return err
	}

	zone, err := c.service.ConstructFromAbbreviation(positional[0])
	if err != nil {
		return err
	}
	return c.presenter.PrintZone(c.buildReport(zone, at))
}

func (c *CLIController) runHost(args []string) error {
	_, at, err := c.parseZoneArgs("host", args, 0)
	if err != nil {
		return err
	}

	zone, err := c.service.HostZone()
	if err != nil {
		return err
	}
	return c.presenter.PrintZone(c.buildReport(zone, at))
}

func (c *CLIController) runLocal(args []string) error {
	_, at, err := c.parseZoneArgs("local", args, 0)
	if err != nil {
		return err
	}
	return c.presenter.PrintZone(c.buildReport(c.service.Local(), at))
}

func (c *CLIController) runDefault(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return domain.ErrInvalidInput("arguments", "default expects get, set <name> or reset")
	}

	switch args[0] {
	case "get":
		_, at, err := c.parseZoneArgs("default get", args[1:], 0)
		if err != nil {
			return err
		}
		return c.presenter.PrintZone(c.buildReport(c.service.SystemDefault(), at))
	case "set":
		if err := expectArgs("default set", args[1:], 1); err != nil {
			return err
		}
		zone, err := c.service.Construct(args[1])
		if err != nil {
			return err
		}
		if err := c.service.SetSystemDefault(ctx, zone); err != nil {
			return err
		}
		return c.presenter.PrintMessage(fmt.Sprintf("System default set to %s", zone.Name()))
	case "reset":
		if err := expectArgs("default reset", args[1:], 0); err != nil {
			return err
		}
		if err := c.service.ResetSystemDefault(ctx); err != nil {
			return err
		}
		return c.presenter.PrintMessage(fmt.Sprintf("System default reset to %s", c.service.SystemDefault().Name()))
	default:
		return domain.ErrInvalidInput("arguments", fmt.Sprintf("unknown default subcommand %q", args[0]))
	}
}

func (c *CLIController) runArchive(args []string) error {
	if len(args) == 0 {
		return domain.ErrInvalidInput("arguments", "archive expects encode or decode")
	}

	switch args[0] {
	case "encode":
		if err := expectArgs("archive encode", args[1:], 2); err != nil {
			return err
		}
		var zone usecase.Zone
		if args[1] == "local" {
			zone = c.service.Local()
		} else {
			var err error
			if zone, err = c.service.Construct(args[1]); err != nil {
				return err
			}
		}

		record := valueobject.NewArchiveRecord()
		c.codec.Encode(zone, record)
		if err := archive.WriteFile(args[2], c.format, record); err != nil {
			return err
		}
		return c.presenter.PrintMessage(fmt.Sprintf("Archived %s to %s (%s)", zone.Name(), args[2], c.format.Name()))
	case "decode":
		positional, at, err := c.parseZoneArgs("archive decode", args[1:], 1)
		if err != nil {
			return err
		}
		record, err := archive.ReadFile(positional[0], c.format)
		if err != nil {
			return err
		}
		zone, err := c.codec.Decode(record)
		if err != nil {
			return err
		}
		return c.presenter.PrintZone(c.buildReport(zone, at))
	default:
		return domain.ErrInvalidInput("arguments", fmt.Sprintf("unknown archive subcommand %q", args[0]))
	}
}

func (c *CLIController) runExport(ctx context.Context, args []string) error {
	var prefix string
	positional, at, err := c.parseZoneArgs("export", args, 1, func(flags *pflag.FlagSet) {
		flags.StringVar(&prefix, "prefix", "", "only export zones whose name starts with this prefix")
	})
	if err != nil {
		return err
	}

	count, err := c.exportService.ExportZoneTable(ctx, &usecase.ExportRequest{
		OutputPath: positional[0],
		At:         at,
		Prefix:     prefix,
	})
	if err != nil {
		return err
	}
	return c.presenter.PrintMessage(fmt.Sprintf("Exported %d zones to %s", count, positional[0]))
}

func (c *CLIController) runWatch(ctx context.Context, args []string) error {
	if err := expectArgs("watch", args, 0); err != nil {
		return err
	}

	unsubscribe := c.watcher.Subscribe(func(event repository.HostZoneEvent) {
		_ = c.presenter.PrintHostZoneEvent(event)
	})
	defer unsubscribe()

	err := c.watcher.Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (c *CLIController) runConfig(args []string) error {
	if len(args) != 1 {
		return domain.ErrInvalidInput("arguments", "config expects show or init")
	}

	switch args[0] {
	case "show":
		return c.presenter.PrintConfig(c.configService.ExportConfig())
	case "init":
		if err := c.configService.CreateDefaultConfig(); err != nil {
			return err
		}
		return c.presenter.PrintMessage(fmt.Sprintf("Configuration written to %s", c.configService.GetConfigPath()))
	default:
		return domain.ErrInvalidInput("arguments", fmt.Sprintf("unknown config subcommand %q", args[0]))
	}
}

// buildReport evaluates every query of z at the instant at
func (c *CLIController) buildReport(zone usecase.Zone, at time.Time) *presenter.ZoneReport {
	report := &presenter.ZoneReport{
		Name:           zone.Name(),
		Kind:           zone.Kind().String(),
		Description:    zone.String(),
		At:             at,
		SecondsFromUTC: zone.SecondsFromUTC(at),
		IsDST:          zone.IsDaylightSavingTime(at),
		DSTOffset:      zone.DaylightSavingTimeOffset(at),
		HasPayload:     zone.Payload() != nil,
	}
	if abbreviation, ok := zone.Abbreviation(at); ok {
		report.Abbreviation = abbreviation
	}
	if next, ok := zone.NextTransition(at); ok {
		report.NextTransition = &next
	}

	for _, style := range valueobject.AllNameStyles() {
		name, _ := zone.LocalizedName(style, c.locale)
		report.LocalizedNames = append(report.LocalizedNames, presenter.LocalizedName{
			Style: style.String(),
			Name:  name,
		})
	}
	return report
}

// parseZoneArgs parses --at and checks the positional argument count.
// Negative integers are positional so that "fixed -3600" works.
func (c *CLIController) parseZoneArgs(command string, args []string, want int, extra ...func(*pflag.FlagSet)) ([]string, time.Time, error) {
	flags := pflag.NewFlagSet(command, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	atFlag := flags.String("at", "", "instant to evaluate at (RFC3339)")
	for _, register := range extra {
		register(flags)
	}

	var flagArgs, numbers []string
	for _, arg := range args {
		if isNegativeNumber(arg) {
			numbers = append(numbers, arg)
			continue
		}
		flagArgs = append(flagArgs, arg)
	}
	if err := flags.Parse(flagArgs); err != nil {
		return nil, time.Time{}, domain.ErrInvalidInput("flags", err.Error())
	}

	positional := append(flags.Args(), numbers...)
	if err := expectArgs(command, positional, want); err != nil {
		return nil, time.Time{}, err
	}

	at := c.now()
	if *atFlag != "" {
		parsed, err := time.Parse(time.RFC3339, *atFlag)
		if err != nil {
			return nil, time.Time{}, domain.ErrInvalidInput("at", fmt.Sprintf("%q is not an RFC3339 timestamp", *atFlag))
		}
		at = parsed
	}
	return positional, at, nil
}

func expectArgs(command string, args []string, want int) error {
	if len(args) != want {
		return domain.ErrInvalidInput("arguments",
			fmt.Sprintf("%s expects %d argument(s), got %d", command, want, len(args)))
	}
	return nil
}

func isNegativeNumber(arg string) bool {
	if !strings.HasPrefix(arg, "-") {
		return false
	}
	_, err := strconv.Atoi(arg)
	return err == nil
}
