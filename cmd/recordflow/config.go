package main

import (
	"flag"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/vnykmshr/recordflow/pkg/common/validation"
	"github.com/vnykmshr/recordflow/pkg/metrics"
)

const (
	DefaultWorkers             = 4
	DefaultMinChunk            = 1
	DefaultHighEarnerThreshold = 70000
	DefaultTopN                = 3
	DefaultFormat              = "text"
	DefaultLogFormat           = "text"
	DefaultLogLevel            = "warn"
	DefaultMetricsNamespace    = metrics.DefaultNamespace
)

// Config represents the settings used to run recordflow.
type Config struct {
	Parallel            bool    `toml:"parallel"`
	Workers             int     `toml:"workers"`
	MinChunk            int     `toml:"min-chunk"`
	HighEarnerThreshold float64 `toml:"high-earner-threshold"`
	TopN                int     `toml:"top-n"`
	Format              string  `toml:"format"`
	LogFormat           string  `toml:"log-format"`
	LogLevel            string  `toml:"log-level"`
	Metrics             bool    `toml:"metrics"`
	MetricsNamespace    string  `toml:"metrics-namespace"`
}

// NewConfig creates a new Config object with the default settings.
func NewConfig() *Config {
	return &Config{
		Workers:             DefaultWorkers,
		MinChunk:            DefaultMinChunk,
		HighEarnerThreshold: DefaultHighEarnerThreshold,
		TopN:                DefaultTopN,
		Format:              DefaultFormat,
		LogFormat:           DefaultLogFormat,
		LogLevel:            DefaultLogLevel,
		MetricsNamespace:    DefaultMetricsNamespace,
	}
}

// Decode reads the contents of a configuration file and populates the config object.
// Any properties that are not set in the configuration file keep the value
// they had before the decode.
func (c *Config) Decode(r io.Reader) error {
	if _, err := toml.NewDecoder(r).Decode(c); err != nil {
		return err
	}
	return nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	checks := []error{
		validation.ValidatePositive("cli", "workers", c.Workers),
		validation.ValidatePositive("cli", "min-chunk", c.MinChunk),
		validation.ValidateNonNegative("cli", "high-earner-threshold", c.HighEarnerThreshold),
		validation.ValidatePositive("cli", "top-n", c.TopN),
		validation.ValidateOneOf("cli", "format", c.Format, "text", "json"),
		validation.ValidateOneOf("cli", "log-format", c.LogFormat, "text", "json"),
		validation.ValidateOneOf("cli", "log-level", c.LogLevel, "debug", "info", "warn", "error"),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) bind(fs *flag.FlagSet) {
	fs.BoolVar(&c.Parallel, "parallel", c.Parallel, "evaluate aggregations across goroutines")
	fs.IntVar(&c.Workers, "workers", c.Workers, "maximum number of parallel chunks")
	fs.IntVar(&c.MinChunk, "min-chunk", c.MinChunk, "smallest number of records per chunk")
	fs.Float64Var(&c.HighEarnerThreshold, "high-earner-threshold", c.HighEarnerThreshold, "salary above which an employee is a high earner")
	fs.IntVar(&c.TopN, "top-n", c.TopN, "number of top earners to list")
	fs.StringVar(&c.Format, "format", c.Format, "output format: text or json")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: text or json")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
	fs.BoolVar(&c.Metrics, "metrics", c.Metrics, "print collected metrics to stderr on exit")
	fs.StringVar(&c.MetricsNamespace, "metrics-namespace", c.MetricsNamespace, "prefix for metric names")
}

// parseArgs builds the configuration from defaults, then the file named by
// -config, then the remaining flags, each overriding the last.
func parseArgs(args []string, output io.Writer) (*Config, error) {
	config, path, err := parseFlags(NewConfig(), args, output)
	if err != nil || path == "" {
		return config, err
	}

	fromFile := NewConfig()
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if err := fromFile.Decode(file); err != nil {
		return nil, err
	}

	// Parse again on top of the file so explicit flags win.
	config, _, err = parseFlags(fromFile, args, output)
	return config, err
}

func parseFlags(config *Config, args []string, output io.Writer) (*Config, string, error) {
	var path string
	fs := flag.NewFlagSet("recordflow", flag.ContinueOnError)
	fs.SetOutput(output)
	config.bind(fs)
	fs.StringVar(&path, "config", "", "the path to a TOML config file")
	if err := fs.Parse(args); err != nil {
		return nil, "", err
	}
	return config, path, nil
}
