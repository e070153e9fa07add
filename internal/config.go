package internal

import (
	"errors"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/logicossoftware/go-stackfile"
	"github.com/logicossoftware/go-stackfile/internal/report"
	"github.com/logicossoftware/go-stackfile/internal/scan"
	"github.com/logicossoftware/go-stackfile/internal/source"
)

// Revision settings.
const (
	RevisionAuto = "auto"
	Revision1    = "1"
	Revision2    = "2"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Inspect InspectConfig     `yaml:"inspect"`
	Source  SourceConfig      `yaml:"source"`
	Limits  LimitsConfig      `yaml:"limits"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Inspect.Validate(); err != nil {
		return err
	}
	if err := c.Source.Validate(); err != nil {
		return err
	}
	return c.Limits.Validate()
}

// ScanOptions converts the decoding settings for the scanner.
func (c *Config) ScanOptions() scan.Options {
	cs, _ := stackfile.ParseCharset(c.Inspect.Charset)
	return scan.Options{
		Revision: c.Inspect.revision(),
		Charset:  cs,
		Limits:   c.Limits.decodeLimits(),
	}
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// InspectConfig controls how stacks are walked and reported.
type InspectConfig struct {
	// Concurrency bounds how many files are processed at once.
	Concurrency int    `yaml:"concurrency"`
	Charset     string `yaml:"charset"`
	// Revision is "auto", "1" or "2".
	Revision    string `yaml:"revision"`
	Fingerprint string `yaml:"fingerprint"`
}

// Validate validates the inspect configuration.
func (c *InspectConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Concurrency, validation.Required, validation.Min(1), validation.Max(256)),
		validation.Field(&c.Charset, validation.By(func(any) error {
			_, err := stackfile.ParseCharset(c.Charset)
			if err != nil {
				return errors.New("must be utf-8 or macroman")
			}
			return nil
		})),
		validation.Field(&c.Revision, validation.Required, validation.In(RevisionAuto, Revision1, Revision2)),
		validation.Field(&c.Fingerprint, validation.In(report.AlgNone, report.AlgXXHash3, report.AlgBlake2b)),
	)
}

func (c *InspectConfig) revision() stackfile.Revision {
	switch c.Revision {
	case Revision1:
		return stackfile.Revision1
	case Revision2:
		return stackfile.Revision2
	default:
		return 0
	}
}

// SourceConfig holds input file handling settings.
type SourceConfig struct {
	// MaxSize caps the unpacked size of one file, in bytes.
	MaxSize int64 `yaml:"max_size"`
}

// Validate validates the source configuration.
func (c *SourceConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxSize, validation.Required, validation.Min(int64(stackfile.HeaderSize))),
	)
}

// LimitsConfig mirrors stackfile.Limits. Zero keeps the library default.
type LimitsConfig struct {
	MaxBlockSize int32 `yaml:"max_block_size"`
	MaxParts     int   `yaml:"max_parts"`
	MaxContents  int   `yaml:"max_contents"`
}

// Validate validates the limits configuration.
func (c *LimitsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxBlockSize, validation.Min(int32(0))),
		validation.Field(&c.MaxParts, validation.Min(0)),
		validation.Field(&c.MaxContents, validation.Min(0)),
	)
}

func (c *LimitsConfig) decodeLimits() stackfile.Limits {
	return stackfile.Limits{
		MaxBlockSize: c.MaxBlockSize,
		MaxParts:     c.MaxParts,
		MaxContents:  c.MaxContents,
	}
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Inspect: InspectConfig{
			Concurrency: 4,
			Charset:     "utf-8",
			Revision:    RevisionAuto,
			Fingerprint: report.AlgXXHash3,
		},
		Source: SourceConfig{
			MaxSize: source.DefaultMaxSize,
		},
	}
}
