package di

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/repository"
	"github.com/ca-srg/tzcore/infrastructure/archive"
	"github.com/ca-srg/tzcore/infrastructure/config"
	"github.com/ca-srg/tzcore/infrastructure/localization"
	"github.com/ca-srg/tzcore/infrastructure/logging"
	infraRepo "github.com/ca-srg/tzcore/infrastructure/repository"
	"github.com/ca-srg/tzcore/infrastructure/zonedb"
	"github.com/ca-srg/tzcore/interface/cli"
	"github.com/ca-srg/tzcore/interface/controller"
	"github.com/ca-srg/tzcore/interface/presenter"
	"github.com/ca-srg/tzcore/usecase/impl"
	usecase "github.com/ca-srg/tzcore/usecase/interface"
)

// Version is the application version reported by "tzcore version"
var Version = "dev"

// Container is the dependency injection container
type Container struct {
	// Configuration
	config        *config.AppConfig
	configRepo    repository.ConfigRepository
	configService usecase.ConfigService

	// Repositories
	probe           *zonedb.HostProbe
	database        repository.ZoneDatabase
	defaultZoneRepo repository.DefaultZoneRepository
	localizer       repository.Localizer
	zoneTableWriter repository.ZoneTableWriter

	// Use Cases
	resolver        usecase.OffsetResolver
	registry        usecase.AbbreviationRegistry
	defaults        usecase.SystemDefaultZone
	timeZoneService usecase.TimeZoneService
	codec           usecase.ArchivalCodec
	exportService   usecase.ExportService
	archiveFormat   archive.Format

	// Presenters
	presenter presenter.ZonePresenter

	// Controllers
	watcher       *controller.HostZoneWatcher
	cliController *cli.CLIController

	// Logging
	loggerFactory domain.LoggerFactory
	logger        domain.Logger
	loggers       []domain.Logger

	// Options
	debugMode  bool
	jsonOutput bool
	zoneSource string
	locale     string
	stdout     io.Writer
	stderr     io.Writer
}

// ContainerOption is a function that configures the container
type ContainerOption func(*Container)

// WithDebugMode sets the debug mode
func WithDebugMode(debug bool) ContainerOption {
	return func(c *Container) {
		c.debugMode = debug
	}
}

// WithJSONOutput selects the JSON presenter
func WithJSONOutput(enabled bool) ContainerOption {
	return func(c *Container) {
		c.jsonOutput = enabled
	}
}

// WithZoneSource overrides the configured zone database source
func WithZoneSource(source string) ContainerOption {
	return func(c *Container) {
		c.zoneSource = source
	}
}

// WithLocale sets the locale used for localized zone names
func WithLocale(locale string) ContainerOption {
	return func(c *Container) {
		c.locale = locale
	}
}

// WithConfigRepository replaces the JSON config repository under ~/.config/tzcore
func WithConfigRepository(repo repository.ConfigRepository) ContainerOption {
	return func(c *Container) {
		c.configRepo = repo
	}
}

// WithHostProbe replaces the host zone probe
func WithHostProbe(probe *zonedb.HostProbe) ContainerOption {
	return func(c *Container) {
		c.probe = probe
	}
}

// WithOutput redirects command output and diagnostics
func WithOutput(stdout, stderr io.Writer) ContainerOption {
	return func(c *Container) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

// NewContainer creates a new DI container
func NewContainer(opts ...ContainerOption) (*Container, error) {
	container := &Container{
		locale: "en",
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	// Apply options
	for _, opt := range opts {
		opt(container)
	}

	// Load configuration
	if err := container.initConfig(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logging
	container.initLogging()

	// Initialize repositories
	if err := container.initRepositories(); err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	// Initialize use cases
	if err := container.initUseCases(); err != nil {
		_ = container.Close()
		return nil, fmt.Errorf("failed to initialize use cases: %w", err)
	}

	container.initPresenters()
	container.initControllers()

	return container, nil
}

// initConfig initializes configuration
func (c *Container) initConfig() error {
	if c.configRepo == nil {
		c.configRepo = infraRepo.NewJSONConfigRepository()
	}

	// Configuration is loaded before logging exists
	tempLogger := &logging.NoOpLogger{}

	configService, err := impl.NewConfigService(c.configRepo, tempLogger)
	if err != nil {
		return fmt.Errorf("failed to create config service: %w", err)
	}
	c.configService = configService

	// Ensure config file exists (create template if needed)
	if err := configService.EnsureConfigExists(); err != nil {
		_, _ = fmt.Fprintf(c.stderr, "Warning: Failed to create config file: %v\n", err)
	}

	cfg := configService.GetConfig()

	// Command line flags win over the file and the environment
	if c.debugMode {
		cfg.Logging.Debug = true
	}
	if c.zoneSource != "" {
		cfg.ZoneDatabase.Source = c.zoneSource
	}

	c.config = cfg
	return nil
}

// initLogging initializes logging components
func (c *Container) initLogging() {
	c.loggerFactory = logging.NewLoggerFactoryTo(c.config.Logging, c.stderr)
	c.logger = c.CreateLogger("tzcore")
}

// initRepositories opens the zone database and the default zone store
func (c *Container) initRepositories() error {
	if c.probe == nil {
		c.probe = zonedb.NewHostProbe(c.CreateLogger("host-probe"))
	}

	database, err := zonedb.NewDatabase(c.config.ZoneDatabase.Source, c.probe)
	if err != nil {
		return err
	}
	c.database = database

	if path := c.config.Storage.DefaultZoneDBPath; path != "" {
		repo, err := infraRepo.NewSQLiteDefaultZoneRepository(path)
		if err != nil {
			return err
		}
		c.defaultZoneRepo = repo
	} else {
		c.defaultZoneRepo = infraRepo.NewMemoryDefaultZoneRepository()
	}

	c.localizer = localization.NewBasicLocalizer()
	c.zoneTableWriter = infraRepo.NewCSVWriterRepository(c.CreateLogger("csv-writer"))

	c.logger.Debug(context.Background(), "Repositories initialized",
		domain.NewField("source", c.config.ZoneDatabase.Source),
		domain.NewField("data_version", c.database.Version()),
		domain.NewField("default_zone_db", c.config.Storage.DefaultZoneDBPath))
	return nil
}

// initUseCases wires the zone service and its collaborators
func (c *Container) initUseCases() error {
	ctx := context.Background()

	c.resolver = impl.NewOffsetResolver(c.localizer)
	c.registry = impl.NewAbbreviationRegistry(c.database, c.CreateLogger("abbreviations"))
	c.defaults = impl.NewSystemDefaultZone(ctx, c.database, c.defaultZoneRepo, c.CreateLogger("system-default"))
	c.timeZoneService = impl.NewTimeZoneService(c.database, c.registry, c.defaults, c.resolver, c.CreateLogger("timezone"))
	c.codec = impl.NewArchivalCodec(c.timeZoneService)

	exportService, err := impl.NewExportService(c.timeZoneService, c.zoneTableWriter, c.CreateLogger("export"))
	if err != nil {
		return err
	}
	c.exportService = exportService

	format, err := archive.NewFormat(c.config.Archive.Format, c.config.Archive.Compress)
	if err != nil {
		return err
	}
	c.archiveFormat = format
	return nil
}

// initPresenters picks the presenter for --json
func (c *Container) initPresenters() {
	if c.jsonOutput {
		c.presenter = presenter.NewJSONPresenterTo(c.stdout, c.stderr)
	} else {
		c.presenter = presenter.NewConsolePresenterTo(c.stdout, c.stderr)
	}
}

// initControllers initializes the watcher and the CLI controller
func (c *Container) initControllers() {
	interval := time.Duration(c.config.Watcher.IntervalSec) * time.Second
	c.watcher = controller.NewHostZoneWatcher(c.database, c.timeZoneService, c.defaults, interval, c.CreateLogger("watcher"))

	c.cliController = cli.NewCLIController(
		c.timeZoneService,
		c.codec,
		c.exportService,
		c.archiveFormat,
		c.configService,
		c.watcher,
		c.presenter,
		c.locale,
		presenter.VersionInfo{
			Version:     Version,
			DataSource:  c.config.ZoneDatabase.Source,
			DataVersion: c.database.Version(),
		},
	)
}

// Close releases the default zone store and flushes buffered loggers
func (c *Container) Close() error {
	var firstErr error
	if c.defaultZoneRepo != nil {
		if err := c.defaultZoneRepo.Close(); err != nil {
			firstErr = err
		}
	}
	for _, logger := range c.loggers {
		if s, ok := logger.(domain.Shutdowner); ok {
			if err := s.Shutdown(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// GetConfig returns the application configuration
func (c *Container) GetConfig() *config.AppConfig {
	return c.config
}

// GetConfigService returns the config service
func (c *Container) GetConfigService() usecase.ConfigService {
	return c.configService
}

// GetTimeZoneService returns the time zone service
func (c *Container) GetTimeZoneService() usecase.TimeZoneService {
	return c.timeZoneService
}

// GetArchivalCodec returns the archival codec
func (c *Container) GetArchivalCodec() usecase.ArchivalCodec {
	return c.codec
}

// GetHostZoneWatcher returns the host zone watcher
func (c *Container) GetHostZoneWatcher() *controller.HostZoneWatcher {
	return c.watcher
}

// GetPresenter returns the presenter selected by the output mode
func (c *Container) GetPresenter() presenter.ZonePresenter {
	return c.presenter
}

// GetCLIController returns the CLI controller
func (c *Container) GetCLIController() *cli.CLIController {
	return c.cliController
}

// GetLogger returns the application logger
func (c *Container) GetLogger() domain.Logger {
	return c.logger
}

// CreateLogger creates a logger for component
func (c *Container) CreateLogger(component string) domain.Logger {
	if c.loggerFactory == nil {
		return &logging.NoOpLogger{}
	}
	logger := c.loggerFactory.CreateLogger(component)
	c.loggers = append(c.loggers, logger)
	return logger
}
