package internal

import "io"

// Mode selects what Run does with the scanned files.
type Mode string

const (
	// ModeInspect writes a JSON report of every file.
	ModeInspect Mode = "inspect"
	// ModeCheck logs a summary and fails if any file has errors.
	ModeCheck Mode = "check"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	mode   Mode
	files  []string
	out    io.Writer
	logOut io.Writer
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithMode sets the command to run. The default is ModeInspect.
func WithMode(m Mode) Option {
	return func(a *application) {
		a.mode = m
	}
}

// WithFiles sets the stack files to process.
func WithFiles(paths ...string) Option {
	return func(a *application) {
		a.files = append(a.files, paths...)
	}
}

// WithOutput sets where the inspect report is written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(a *application) {
		a.out = w
	}
}

// WithLogOutput sets where JSON logs go. Defaults to stderr.
func WithLogOutput(w io.Writer) Option {
	return func(a *application) {
		a.logOut = w
	}
}
