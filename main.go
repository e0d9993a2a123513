package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/infrastructure/di"
	"github.com/ca-srg/tzcore/interface/cli"
)

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// Parse command line flags
	flags := pflag.NewFlagSet("tzcore", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.SetOutput(stderr)
	var (
		jsonOutput = flags.Bool("json", false, "Print results as JSON")
		debugMode  = flags.Bool("debug", false, "Enable debug logging to stderr")
		zoneSource = flags.String("source", "", "Zone data source: system or embedded (overrides config)")
		locale     = flags.String("locale", "en", "Locale for localized zone names")
	)
	flags.Usage = func() {
		_, _ = fmt.Fprintln(stderr, cli.Usage)
		_, _ = fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	// Create DI container with options
	opts := []di.ContainerOption{
		di.WithJSONOutput(*jsonOutput),
		di.WithDebugMode(*debugMode),
		di.WithZoneSource(*zoneSource),
		di.WithLocale(*locale),
		di.WithOutput(stdout, stderr),
	}
	container, err := di.NewContainer(opts...)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Failed to initialize application: %v\n", err)
		return exitError
	}
	defer func() {
		if err := container.Close(); err != nil {
			_, _ = fmt.Fprintf(stderr, "Failed to shut down cleanly: %v\n", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := container.GetCLIController().Run(ctx, flags.Args()); err != nil {
		container.GetLogger().Debug(ctx, "Command failed", domain.ErrorField(err))
		container.GetPresenter().PrintError(err)
		if domain.IsErrorCode(err, domain.ErrCodeInvalidInput) {
			return exitUsage
		}
		return exitError
	}
	return exitOK
}
