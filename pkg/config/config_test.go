/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magnusoverli/VirtEditor/pkg/logger"
)

type testConfig struct {
	Host     string         `json:"host"`
	Username string         `json:"username"`
	MaxSlots int            `json:"max_slots"`
	Timeout  time.Duration  `json:"timeout"`
	Logging  *logger.Config `json:"logging"`
}

var errMissingHost = errors.New("host is required")

func (c *testConfig) Validate() error {
	if c.Host == "" {
		return errMissingHost
	}

	return nil
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadAndValidate_FromFile(t *testing.T) {
	path := writeConfigFile(t, `{
		"host": "192.168.1.20",
		"username": "admin",
		"max_slots": 10,
		"logging": {"level": "debug"}
	}`)

	var cfg testConfig

	loader := NewConfig(logger.NewTestLogger())
	require.NoError(t, loader.LoadAndValidate(context.Background(), path, &cfg))

	assert.Equal(t, "192.168.1.20", cfg.Host)
	assert.Equal(t, "admin", cfg.Username)
	assert.Equal(t, 10, cfg.MaxSlots)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadAndValidate_ValidationFailure(t *testing.T) {
	path := writeConfigFile(t, `{"username": "admin"}`)

	var cfg testConfig

	loader := NewConfig(logger.NewTestLogger())
	err := loader.LoadAndValidate(context.Background(), path, &cfg)
	require.ErrorIs(t, err, errMissingHost)
}

func TestLoadAndValidate_MissingFile(t *testing.T) {
	var cfg testConfig

	loader := NewConfig(logger.NewTestLogger())
	err := loader.LoadAndValidate(context.Background(), "/nonexistent/config.json", &cfg)
	require.Error(t, err)
}

func TestLoadAndValidate_InvalidSource(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "carrier-pigeon")

	var cfg testConfig

	loader := NewConfig(logger.NewTestLogger())
	err := loader.LoadAndValidate(context.Background(), "ignored", &cfg)
	require.ErrorIs(t, err, errInvalidConfigSource)
}

func TestEnvConfigLoader_ScalarsAndNesting(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("VIRTEDITOR_HOST", "10.0.0.5")
	t.Setenv("VIRTEDITOR_MAX_SLOTS", "6")
	t.Setenv("VIRTEDITOR_TIMEOUT", "15s")
	t.Setenv("VIRTEDITOR_LOGGING_LEVEL", "warn")

	var cfg testConfig

	loader := NewConfig(logger.NewTestLogger())
	require.NoError(t, loader.LoadAndValidate(context.Background(), "", &cfg))

	assert.Equal(t, "10.0.0.5", cfg.Host)
	assert.Equal(t, 6, cfg.MaxSlots)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestEnvConfigLoader_ConfigJSONBlob(t *testing.T) {
	t.Setenv("VIRTEDITOR_CONFIG_JSON", `{"host": "10.0.0.9", "username": "svc"}`)

	var cfg testConfig

	envLoader := NewEnvConfigLoader(logger.NewTestLogger(), "VIRTEDITOR_")
	require.NoError(t, envLoader.Load(context.Background(), "", &cfg))

	assert.Equal(t, "10.0.0.9", cfg.Host)
	assert.Equal(t, "svc", cfg.Username)
}

func TestEnvConfigLoader_RejectsNonPointer(t *testing.T) {
	envLoader := NewEnvConfigLoader(logger.NewTestLogger(), "VIRTEDITOR_")

	err := envLoader.Load(context.Background(), "", testConfig{})
	require.ErrorIs(t, err, ErrDstMustBeNonNilPointer)
}
