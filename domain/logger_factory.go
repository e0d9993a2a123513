package domain

// LoggerFactory creates loggers labelled with a component name
type LoggerFactory interface {
	CreateLogger(component string) Logger
}

// Shutdowner is implemented by loggers that buffer entries and must flush them on exit
type Shutdowner interface {
	Shutdown() error
}
