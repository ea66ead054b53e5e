// Package config loads clockwork settings from ~/.clockwork and the
// environment. Values are read once at startup and never written back.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/clockwork/internal/daterange"
	"gopkg.in/yaml.v3"
)

// DirName is the per-user directory holding the database and config file.
const DirName = ".clockwork"

type Config struct {
	Colors        map[string]string `yaml:"color_dict"`
	Database      Database          `yaml:"database"`
	DefaultRange  string            `yaml:"default_date_range"`
	CSV           CSV               `yaml:"csv_export"`
	Visualization Visualization     `yaml:"visualization"`
	TimeFormat    string            `yaml:"time_format"`
	Categories    []string          `yaml:"categories"`
	Notification  Notification      `yaml:"notification"`
	Backup        Backup            `yaml:"backup"`
	Log           bool              `yaml:"log"`
}

type Database struct {
	Path string `yaml:"path"`
}

type CSV struct {
	Delimiter string `yaml:"delimiter"`
	QuoteChar string `yaml:"quotechar"`
	Encoding  string `yaml:"encoding"`
}

type Visualization struct {
	DefaultChart string `yaml:"default_chart_type"`
	ChartWidth   int    `yaml:"chart_width"`
	FigureSize   []int  `yaml:"figure_size"`
	DPI          int    `yaml:"dpi"`
}

// Notification and Backup are parsed so existing files load; nothing acts
// on them.
type Notification struct {
	Enable           bool `yaml:"enable"`
	ReminderInterval int  `yaml:"reminder_interval"`
}

type Backup struct {
	Enable       bool `yaml:"enable"`
	IntervalDays int  `yaml:"interval_days"`
	MaxBackups   int  `yaml:"max_backups"`
}

// Defaults returns the settings used when no config file exists.
func Defaults() Config {
	return Config{
		Colors:       map[string]string{},
		Database:     Database{Path: filepath.Join("~", DirName, "timelog.db")},
		DefaultRange: string(daterange.Week),
		CSV:          CSV{Delimiter: ",", QuoteChar: `"`, Encoding: "utf-8"},
		Visualization: Visualization{
			DefaultChart: "bar",
			ChartWidth:   40,
			FigureSize:   []int{10, 7},
			DPI:          100,
		},
		TimeFormat:   "%Y-%m-%d %H:%M:%S",
		Categories:   []string{},
		Notification: Notification{ReminderInterval: 30},
		Backup:       Backup{IntervalDays: 7, MaxBackups: 5},
	}
}

// Load resolves the config file, merges it over Defaults, applies
// environment overrides and validates the result.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("locating home directory: %w", err)
	}

	file, err := LoadFile(FindFile(filepath.Join(home, DirName)))
	if err != nil {
		return Config{}, err
	}
	cfg := Merge(Defaults(), file)
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Database.Path = ExpandHome(cfg.Database.Path, home)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FindFile returns $CLOCKWORK_CONFIG when set, else config.yaml or
// config.json in dir, whichever exists first. It returns "" when neither
// exists.
func FindFile(dir string) string {
	if p := os.Getenv("CLOCKWORK_CONFIG"); p != "" {
		return p
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.json"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadFile parses a YAML or JSON config file. A missing file or an empty
// path yields nil and no error.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge lays file values over base. Zero values in file keep the base value.
func Merge(base Config, file *Config) Config {
	result := base
	result.Colors = make(map[string]string, len(base.Colors))
	for k, v := range base.Colors {
		result.Colors[k] = v
	}
	if file == nil {
		return result
	}

	for k, v := range file.Colors {
		result.Colors[k] = v
	}
	if file.Database.Path != "" {
		result.Database.Path = file.Database.Path
	}
	if file.DefaultRange != "" {
		result.DefaultRange = file.DefaultRange
	}
	if file.CSV.Delimiter != "" {
		result.CSV.Delimiter = file.CSV.Delimiter
	}
	if file.CSV.QuoteChar != "" {
		result.CSV.QuoteChar = file.CSV.QuoteChar
	}
	if file.CSV.Encoding != "" {
		result.CSV.Encoding = file.CSV.Encoding
	}
	if file.Visualization.DefaultChart != "" {
		result.Visualization.DefaultChart = file.Visualization.DefaultChart
	}
	if file.Visualization.ChartWidth > 0 {
		result.Visualization.ChartWidth = file.Visualization.ChartWidth
	}
	if len(file.Visualization.FigureSize) > 0 {
		result.Visualization.FigureSize = file.Visualization.FigureSize
	}
	if file.Visualization.DPI > 0 {
		result.Visualization.DPI = file.Visualization.DPI
	}
	if file.TimeFormat != "" {
		result.TimeFormat = file.TimeFormat
	}
	if len(file.Categories) > 0 {
		result.Categories = file.Categories
	}
	if file.Notification.Enable || file.Notification.ReminderInterval > 0 {
		result.Notification = file.Notification
	}
	if file.Backup.Enable || file.Backup.IntervalDays > 0 || file.Backup.MaxBackups > 0 {
		result.Backup = file.Backup
	}
	result.Log = result.Log || file.Log
	return result
}

// applyEnv overrides cfg from CLOCKWORK_* variables. A value that cannot be
// parsed is an error, like the file setting it replaces.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("CLOCKWORK_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("CLOCKWORK_DEFAULT_RANGE"); v != "" {
		cfg.DefaultRange = v
	}
	if v := os.Getenv("CLOCKWORK_LOG"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CLOCKWORK_LOG: %q is not a boolean", v)
		}
		cfg.Log = enabled
	}
	return nil
}

// ExpandHome replaces a leading "~" with home.
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate rejects settings the engine cannot honour.
func (c Config) Validate() error {
	if _, err := daterange.ParseCode(c.DefaultRange); err != nil {
		return fmt.Errorf("default_date_range: %w", err)
	}
	if utf8.RuneCountInString(c.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv_export.delimiter must be a single character, got %q", c.CSV.Delimiter)
	}
	if c.CSV.QuoteChar != `"` {
		return fmt.Errorf("csv_export.quotechar %q is not supported; only '\"' is", c.CSV.QuoteChar)
	}
	if c.Database.Path == "" {
		return errors.New("database.path must not be empty")
	}
	return nil
}

// Delimiter returns the CSV delimiter as a rune.
func (c Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// RangeCode returns the validated default range code.
func (c Config) RangeCode() daterange.Code {
	code, err := daterange.ParseCode(c.DefaultRange)
	if err != nil {
		return daterange.Week
	}
	return code
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
