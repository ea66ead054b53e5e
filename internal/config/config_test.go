package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/clockwork/internal/daterange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withHome points HOME at a fresh directory and clears clockwork env vars.
func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"CLOCKWORK_CONFIG", "CLOCKWORK_DB", "CLOCKWORK_DEFAULT_RANGE", "CLOCKWORK_LOG"} {
		t.Setenv(k, "")
	}
	require.NoError(t, os.MkdirAll(filepath.Join(home, DirName), 0o755))
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	home := withHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DirName, "timelog.db"), cfg.Database.Path)
	assert.Equal(t, daterange.Week, cfg.RangeCode())
	assert.Equal(t, ',', cfg.Delimiter())
	assert.Equal(t, "utf-8", cfg.CSV.Encoding)
	assert.Empty(t, cfg.Colors)
	assert.False(t, cfg.Log)
}

func TestLoad_LegacyJSONFile(t *testing.T) {
	home := withHome(t)
	writeFile(t, filepath.Join(home, DirName, "config.json"), `{
  "color_dict": {"Work": "#ff0000"},
  "default_date_range": "m",
  "csv_export": {"delimiter": ";", "quotechar": "\"", "encoding": "utf-8"},
  "notification": {"enable": true, "reminder_interval": 15},
  "backup": {"enable": false, "interval_days": 7, "max_backups": 5}
}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", cfg.Colors["Work"])
	assert.Equal(t, daterange.Month, cfg.RangeCode())
	assert.Equal(t, ';', cfg.Delimiter())
	assert.True(t, cfg.Notification.Enable)
	assert.Equal(t, 15, cfg.Notification.ReminderInterval)
	assert.Equal(t, 40, cfg.Visualization.ChartWidth, "unset keys keep defaults")
}

func TestLoad_YAMLPreferredOverJSON(t *testing.T) {
	home := withHome(t)
	writeFile(t, filepath.Join(home, DirName, "config.json"), `{"default_date_range": "m"}`)
	writeFile(t, filepath.Join(home, DirName, "config.yaml"), "default_date_range: y\ndatabase:\n  path: ~/data/log.db\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, daterange.Year, cfg.RangeCode())
	assert.Equal(t, filepath.Join(home, "data", "log.db"), cfg.Database.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	home := withHome(t)
	writeFile(t, filepath.Join(home, DirName, "config.yaml"), "default_date_range: m\n")
	custom := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, custom, "default_date_range: y\n")

	t.Setenv("CLOCKWORK_CONFIG", custom)
	t.Setenv("CLOCKWORK_DB", "/tmp/other.db")
	t.Setenv("CLOCKWORK_DEFAULT_RANGE", "d")
	t.Setenv("CLOCKWORK_LOG", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, daterange.Day, cfg.RangeCode())
	assert.True(t, cfg.Log)
}

func TestLoad_EnvLogMustBeBoolean(t *testing.T) {
	withHome(t)

	t.Setenv("CLOCKWORK_LOG", "loud")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `CLOCKWORK_LOG: "loud" is not a boolean`)

	t.Setenv("CLOCKWORK_LOG", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Log)
}

func TestLoad_ParseError(t *testing.T) {
	home := withHome(t)
	path := filepath.Join(home, DirName, "config.yaml")
	writeFile(t, path, "color_dict: [unclosed\n")

	_, err := Load()
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, path, pe.Path)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown range", "default_date_range: q\n"},
		{"long delimiter", "csv_export:\n  delimiter: ';;'\n"},
		{"custom quote", "csv_export:\n  quotechar: \"'\"\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			home := withHome(t)
			writeFile(t, filepath.Join(home, DirName, "config.yaml"), tc.content)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_MissingIsNil(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Nil(t, cfg)

	cfg, err = LoadFile("")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestMerge_DoesNotShareDefaultColorMap(t *testing.T) {
	base := Defaults()
	base.Colors["Work"] = "#111111"

	merged := Merge(base, &Config{Colors: map[string]string{"Home": "#222222"}})
	merged.Colors["Extra"] = "#333333"

	assert.Len(t, base.Colors, 1)
	assert.Equal(t, "#111111", merged.Colors["Work"])
	assert.Equal(t, "#222222", merged.Colors["Home"])
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/home/u", ExpandHome("~", "/home/u"))
	assert.Equal(t, filepath.Join("/home/u", "x.db"), ExpandHome("~/x.db", "/home/u"))
	assert.Equal(t, "/abs/x.db", ExpandHome("/abs/x.db", "/home/u"))
}
