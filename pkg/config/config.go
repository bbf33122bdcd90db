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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"jinr.ru/greenlab/go-camtrig/pkg/log"
)

type Device struct {
	Name string `yaml:"name"`
	// Port is where the transport reaches the device, e.g. /dev/ttyUSB0.
	// It is informational for the control server.
	Port string `yaml:"port,omitempty"`
}

type Config struct {
	IP       string    `yaml:"ip"`
	ApiPort  int       `yaml:"apiPort"`
	DBPath   string    `yaml:"dbPath"`
	LogLevel string    `yaml:"logLevel"`
	Devices  []*Device `yaml:"devices"`
	filepath string
}

func (c *Config) Path() string {
	return c.filepath
}

func (c *Config) SetPath(path string) {
	c.filepath = path
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	return os.WriteFile(c.filepath, data, 0644)
}

// LoadConfig reads the config file, it is an error if the file does not exist
func (c *Config) LoadConfig() error {
	data, err := os.ReadFile(c.filepath)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}
	return c.Validate()
}

// Load is like LoadConfig but keeps defaults when there is no config file
func (c *Config) Load() error {
	err := c.LoadConfig()
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("Config file not found: %s. Using defaults", c.filepath)
		return nil
	}
	return err
}

func (c *Config) Validate() error {
	if c.ApiPort <= 0 || c.ApiPort > 65535 {
		return ErrInvalidConfig{What: fmt.Sprintf("api port out of range: %d", c.ApiPort)}
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return ErrInvalidConfig{What: err.Error()}
	}
	if c.DBPath == "" {
		return ErrInvalidConfig{What: "db path is empty"}
	}
	names := make(map[string]bool)
	for _, d := range c.Devices {
		if d == nil || d.Name == "" {
			return ErrInvalidConfig{What: "device name is empty"}
		}
		if names[d.Name] {
			return ErrInvalidConfig{What: fmt.Sprintf("duplicate device name: %s", d.Name)}
		}
		names[d.Name] = true
	}
	return nil
}

func (c *Config) GetDeviceByName(name string) (*Device, error) {
	for _, d := range c.Devices {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, ErrDeviceNotFound{Name: name}
}

// ApiAddress is the address the API server binds to and the client connects to
func (c *Config) ApiAddress() string {
	return fmt.Sprintf("%s:%d", c.IP, c.ApiPort)
}

func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir)
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), ConfigFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		IP:       DefaultIP,
		ApiPort:  DefaultApiPort,
		DBPath:   filepath.Join(DefaultConfigDir(), DBFile),
		LogLevel: DefaultLogLevel,
		Devices: []*Device{
			{
				Name: DefaultDeviceName,
				Port: DefaultDevicePort,
			},
		},
		filepath: DefaultConfigPath(),
	}
}
