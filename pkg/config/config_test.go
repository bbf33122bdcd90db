/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testConfig(t *testing.T) *Config {
	cfg := NewDefaultConfig()
	dir := t.TempDir()
	cfg.SetPath(filepath.Join(dir, "sub", ConfigFile))
	cfg.DBPath = filepath.Join(dir, DBFile)
	return cfg
}

func TestPersistAndLoad(t *testing.T) {
	cfg := testConfig(t)
	cfg.ApiPort = 9000
	cfg.Devices = append(cfg.Devices, &Device{Name: "camtrig1", Port: "/dev/ttyUSB1"})
	if err := cfg.Persist(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := cfg.Persist(false)
	var exists ErrConfigFileExists
	if !errors.As(err, &exists) {
		t.Errorf("expected ErrConfigFileExists, got %v", err)
	}
	if err := cfg.Persist(true); err != nil {
		t.Errorf("unexpected error on overwrite: %v", err)
	}

	loaded := &Config{}
	loaded.SetPath(cfg.Path())
	if err := loaded.LoadConfig(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.ApiPort != 9000 || len(loaded.Devices) != 2 || loaded.Devices[1].Port != "/dev/ttyUSB1" {
		t.Errorf("wrong config loaded: %+v", loaded)
	}
	if loaded.ApiAddress() != "127.0.0.1:9000" {
		t.Errorf("wrong api address: %s", loaded.ApiAddress())
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg := testConfig(t)
	if err := cfg.Load(); err != nil {
		t.Fatalf("missing file must keep defaults: %v", err)
	}
	if cfg.ApiPort != DefaultApiPort {
		t.Errorf("defaults changed: %+v", cfg)
	}
	if err := cfg.LoadConfig(); err == nil {
		t.Error("LoadConfig must fail for missing file")
	}
}

func TestLoadInvalid(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(filepath.Dir(cfg.Path()), 0755); err != nil {
		t.Fatal(err)
	}
	data := []byte("apiPort: 8000\nlogLevel: info\ndbPath: /tmp/reg.db\ndevices:\n- name: a\n- name: a\n")
	if err := os.WriteFile(cfg.Path(), data, 0644); err != nil {
		t.Fatal(err)
	}
	err := cfg.Load()
	var invalid ErrInvalidConfig
	if !errors.As(err, &invalid) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"port", func(c *Config) { c.ApiPort = 70000 }},
		{"log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"db path", func(c *Config) { c.DBPath = "" }},
		{"empty name", func(c *Config) { c.Devices = append(c.Devices, &Device{}) }},
		{"duplicate", func(c *Config) { c.Devices = append(c.Devices, &Device{Name: DefaultDeviceName}) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(t)
			tc.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
	if err := testConfig(t).Validate(); err != nil {
		t.Errorf("default config must be valid: %v", err)
	}
}

func TestGetDeviceByName(t *testing.T) {
	cfg := testConfig(t)
	d, err := cfg.GetDeviceByName(DefaultDeviceName)
	if err != nil || d.Port != DefaultDevicePort {
		t.Errorf("unexpected result: %+v %v", d, err)
	}
	_, err = cfg.GetDeviceByName("nope")
	var notFound ErrDeviceNotFound
	if !errors.As(err, &notFound) {
		t.Errorf("expected ErrDeviceNotFound, got %v", err)
	}
}
