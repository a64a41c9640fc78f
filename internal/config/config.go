package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Column is one projected output column: Header is written to the file,
// Field names the source field in the dataset record.
type Column struct {
	Header string `toml:"header"`
	Field  string `toml:"field"`
}

// Dataset describes one configured SODA resource: where it lives, the
// default query parameters and the export projection. Column order is
// the order of the output file.
type Dataset struct {
	Endpoint string            `toml:"endpoint"`
	Select   string            `toml:"select"`
	Where    string            `toml:"where"`
	Order    string            `toml:"order"`
	Limit    int               `toml:"limit"`
	Offset   int               `toml:"offset"`
	Filters  map[string]string `toml:"filters"`
	Columns  []Column          `toml:"columns"`
	Disabled bool
}

type LoggerConfigs struct {
	ConsoleLevel  string `toml:"console_level"`
	ConsoleOutput string `toml:"console_output"`
	FileLevel     string `toml:"file_level"`
	FileOutput    string `toml:"file_output"`
}

type PathConfigs struct {
	Datasets string `toml:"datasets"`
}

type CacheConfig struct {
	UseCache   bool   `toml:"use_cache"`
	TimeToLive uint16 `toml:"time_to_live"`
	MaxAge     time.Duration
}

type Config struct {
	Cache      CacheConfig         `toml:"cache"`
	Locale     string              `toml:"locale"`
	MaxWorkers uint8               `toml:"max_workers"`
	Timeout    uint8               `toml:"timeout"`
	UserAgent  string              `toml:"user_agent"`
	Paths      PathConfigs         `toml:"paths"`
	Datasets   map[string]*Dataset `toml:"datasets"`
	Logging    LoggerConfigs       `toml:"logger"`
}

func NewConfig() *Config {
	return &Config{}
}

func Load(path string) (*Config, error) {
	conf := NewConfig()

	_, err := toml.DecodeFile(path, conf)
	if err != nil {
		return nil, fmt.Errorf("Error loading config TOML: %w", err)
	}
	conf.Cache.MaxAge = time.Duration(conf.Cache.TimeToLive) * time.Second

	if err := conf.validateLoggerConfig(); err != nil {
		return nil, err
	}

	err = conf.loadDatasets()
	if err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *Config) GetDataset(name string) *Dataset {
	return c.Datasets[name]
}

func (c *Config) GetDatasets() map[string]*Dataset {
	return c.Datasets
}

func (c *Config) validateLoggerConfig() error {
	consoleOutputs := []string{"stderr", "stdout"}

	if !slices.Contains(consoleOutputs, c.Logging.ConsoleOutput) {
		return fmt.Errorf("%s is not in valid console outputs [%v]!", c.Logging.ConsoleOutput, consoleOutputs)
	}

	return nil
}

// Resolve expands environment references in the endpoint and disables
// datasets that have nowhere to point.
func (d *Dataset) Resolve() {
	d.Endpoint = expandFromEnv(d.Endpoint)

	if d.Endpoint == "" {
		d.Disabled = true
	}
}

func (c *Config) loadDatasets() error {
	var datasets map[string]*Dataset

	// .env is optional, a missing file is not an error
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	_, err := toml.DecodeFile(c.Paths.Datasets, &datasets)
	if err != nil {
		return fmt.Errorf("Error loading datasets TOML: %w", err)
	}

	for name, dataset := range datasets {
		dataset.Resolve()
		if dataset.Disabled {
			slog.Warn("Dataset has no endpoint, disabling it", "dataset", name)
		}
	}

	c.Datasets = datasets

	return nil
}

// QueryParams flattens the dataset's defaults into a SODA parameter
// mapping. Zero values are omitted.
func (d *Dataset) QueryParams() map[string]string {
	params := make(map[string]string)

	for column, value := range d.Filters {
		params[column] = value
	}
	if d.Select != "" {
		params["$select"] = d.Select
	}
	if d.Where != "" {
		params["$where"] = d.Where
	}
	if d.Order != "" {
		params["$order"] = d.Order
	}
	if d.Limit > 0 {
		params["$limit"] = fmt.Sprintf("%d", d.Limit)
	}
	if d.Offset > 0 {
		params["$offset"] = fmt.Sprintf("%d", d.Offset)
	}

	return params
}

func expandFromEnv(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := strings.TrimPrefix(strings.TrimSuffix(value, "}"), "${")
		return os.Getenv(envVar)
	}
	return value
}
