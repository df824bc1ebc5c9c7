// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig points TODOCTL_CFG at a testdata file and resets the global
// Config so the next access reloads.
func setupTestConfig(t *testing.T, testdataFile string) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testdataFile))
	require.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("TODOCTL_CFG", absPath)
	Config = Type{}
	t.Cleanup(func() {
		Config = Type{}
	})
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, "250ms", cfg.Data["load_more_delay"])
				assert.Equal(t, 2, cfg.Data["padding"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				endpoints, ok := cfg.Data["endpoints"].(map[string]interface{})
				require.True(t, ok, "endpoints should be a map")
				assert.Equal(t, "https://example.test/todos", endpoints["todos"])
			},
		},
		{
			name:     "mixed types",
			testFile: "mixed-types.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Equal(t, "todoctl", cfg.Data["name"])
				assert.Equal(t, false, cfg.Data["discard_stale"])
				assert.Equal(t, 1.5, cfg.Data["load_more_delay"])
				tags, ok := cfg.Data["tags"].([]interface{})
				assert.True(t, ok)
				assert.Len(t, tags, 2)
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source, "should have a source path")
				assert.Empty(t, cfg.Data)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			cfg, err := Load()
			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("TODOCTL_CFG", "/nonexistent/path/todoctl.yaml")
	Config = Type{}

	_, err := Load()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_NoConfigAnywhere(t *testing.T) {
	empty := t.TempDir()
	t.Setenv("TODOCTL_CFG", "")
	t.Setenv("XDG_CONFIG_HOME", empty)
	t.Setenv("APPDATA", "")
	t.Setenv("HOME", empty)
	Config = Type{}

	_, err := Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_StandardLocation(t *testing.T) {
	home := t.TempDir()
	src, err := filepath.Abs(filepath.Join("testdata", "simple.yaml"))
	require.NoError(t, err)
	require.NoError(t, copyFile(src, filepath.Join(home, FileName)))

	t.Setenv("TODOCTL_CFG", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("APPDATA", "")
	t.Setenv("HOME", home)
	Config = Type{}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, FileName), cfg.Source)
}

func TestLoad_TODOCTL_CFG_IsDirectory(t *testing.T) {
	t.Setenv("TODOCTL_CFG", "testdata")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []string
		want         string
		wantErr      error
	}{
		{
			name:     "simple string value",
			testFile: "simple.yaml",
			key:      "load_more_delay",
			want:     "250ms",
		},
		{
			name:     "nested string value",
			testFile: "nested.yaml",
			key:      "endpoints.users",
			want:     "https://example.test/users",
		},
		{
			name:         "missing key with default",
			testFile:     "simple.yaml",
			key:          "missing",
			defaultValue: []string{"default-value"},
			want:         "default-value",
		},
		{
			name:     "missing key without default",
			testFile: "simple.yaml",
			key:      "missing",
			wantErr:  ErrNoKey,
		},
		{
			name:     "non-string value",
			testFile: "mixed-types.yaml",
			key:      "padding",
			wantErr:  ErrWrongType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			got, err := GetString(tt.key, tt.defaultValue...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []int
		want         int
		wantErr      bool
	}{
		{name: "int value", testFile: "simple.yaml", key: "padding", want: 2},
		{name: "float value converted to int", testFile: "mixed-types.yaml", key: "load_more_delay", want: 1},
		{name: "nested int value", testFile: "nested.yaml", key: "connectivity.interval", want: 10},
		{name: "missing key with default", testFile: "simple.yaml", key: "missing", defaultValue: []int{60}, want: 60},
		{name: "missing key without default", testFile: "simple.yaml", key: "missing", wantErr: true},
		{name: "non-int value", testFile: "simple.yaml", key: "load_more_delay", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			got, err := GetInt(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetBool(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []bool
		want         bool
		wantErr      bool
	}{
		{name: "bool value", testFile: "mixed-types.yaml", key: "discard_stale", want: false},
		{name: "nested bool", testFile: "nested.yaml", key: "tq.color", want: true},
		{name: "missing with default", testFile: "simple.yaml", key: "discard_stale", defaultValue: []bool{true}, want: true},
		{name: "unparseable string", testFile: "mixed-types.yaml", key: "color", wantErr: true},
		{name: "wrong type", testFile: "simple.yaml", key: "padding", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			got, err := GetBool(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrWrongType)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []time.Duration
		want         time.Duration
		wantErr      bool
	}{
		{name: "duration string", testFile: "simple.yaml", key: "load_more_delay", want: 250 * time.Millisecond},
		{name: "float seconds", testFile: "mixed-types.yaml", key: "load_more_delay", want: 1500 * time.Millisecond},
		{name: "int seconds", testFile: "nested.yaml", key: "connectivity.interval", want: 10 * time.Second},
		{name: "missing with default", testFile: "simple.yaml", key: "connectivity.interval", defaultValue: []time.Duration{time.Minute}, want: time.Minute},
		{name: "not a duration", testFile: "mixed-types.yaml", key: "name", wantErr: true},
		{name: "wrong type", testFile: "mixed-types.yaml", key: "tags", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			got, err := GetDuration(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrWrongType)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_GetWithNamespace(t *testing.T) {
	setupTestConfig(t, "namespace.yaml")

	_, err := Load()
	require.NoError(t, err)

	Config.Namespace = "tq"
	val, err := Config.get("output")
	require.NoError(t, err)
	assert.Equal(t, "json", val)

	Config.Namespace = "uq"
	val, err = Config.get("output")
	require.NoError(t, err)
	assert.Equal(t, "text", val, "falls back to the root key")
}

func TestConfig_GetNestedPath(t *testing.T) {
	setupTestConfig(t, "deep-nested.yaml")

	_, err := Load()
	require.NoError(t, err)

	val, err := Config.get("colors.table.header.title")
	require.NoError(t, err)
	assert.Equal(t, "#6C71C4", val)

	_, err = Config.get("colors.table.header.title.more")
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestConfig_LazyLoad(t *testing.T) {
	setupTestConfig(t, "nested.yaml")

	val, err := GetString("endpoints.todos")
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/todos", val)
	assert.NotEmpty(t, Config.Source, "Config should be loaded")
}

func TestGetBool_NamespaceFallback(t *testing.T) {
	setupTestConfig(t, "namespace.yaml")

	_, err := Load()
	require.NoError(t, err)

	Config.Namespace = "tq"
	val, err := GetBool("titles")
	require.NoError(t, err)
	assert.True(t, val)

	Config.Namespace = "uq"
	val, err = GetBool("titles")
	require.NoError(t, err)
	assert.False(t, val)

	_, err = GetString("nonexistent")
	assert.Error(t, err)
}

func TestGetStringSlice(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue [][]string
		want         []string
		wantErr      bool
	}{
		{name: "sequence", testFile: "mixed-types.yaml", key: "tags", want: []string{"a", "b"}},
		{name: "single string", testFile: "mixed-types.yaml", key: "name", want: []string{"todoctl"}},
		{name: "arg set", testFile: "namespace.yaml", key: "tq.mine", want: []string{"--search bob", "--pages 2"}},
		{name: "missing with default", testFile: "simple.yaml", key: "tq.mine", defaultValue: [][]string{{"x"}}, want: []string{"x"}},
		{name: "wrong type", testFile: "mixed-types.yaml", key: "padding", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			got, err := GetStringSlice(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrWrongType)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetStringSlice_Missing(t *testing.T) {
	setupTestConfig(t, "simple.yaml")

	_, err := GetStringSlice("nope")
	assert.ErrorIs(t, err, ErrNoKey)
}
