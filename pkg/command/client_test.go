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

package command

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"jinr.ru/greenlab/go-camtrig/pkg/config"
	"jinr.ru/greenlab/go-camtrig/pkg/srv/control"
)

func newTestClient(t *testing.T) *ApiClient {
	cfg := config.NewDefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), config.DBFile)
	s, err := control.NewControlServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.Close()
	})
	c := NewApiClient(cfg)
	c.ApiPrefix = ts.URL + "/api"
	return c
}

func TestNewApiClient(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.ApiPort = 8123
	if c := NewApiClient(cfg); c.ApiPrefix != "http://127.0.0.1:8123/api" {
		t.Errorf("wrong api prefix: %s", c.ApiPrefix)
	}
}

func TestClient(t *testing.T) {
	c := newTestClient(t)
	device := config.DefaultDeviceName

	regs, err := c.Registers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(regs) != 25 {
		t.Errorf("expected 25 registers, got %d", len(regs))
	}

	regHex, err := c.Ingest(device, "03 06 2d ff 02 f4 01 2c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if regHex.Name != "TriggerFrequencyCam0" || regHex.Label != "500" {
		t.Errorf("unexpected value: %+v", regHex)
	}

	cached, err := c.RegRead(device, "TriggerFrequencyCam0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached.Value != "0x01f4" {
		t.Errorf("unexpected value: %+v", cached)
	}
	all, err := c.RegReadAll(device)
	if err != nil || len(all) != 1 {
		t.Errorf("unexpected result: %v %v", all, err)
	}

	if err := c.RegWrite(device, "OutputSet", "DO0|DO1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := c.RegRequest(device, "OutputState"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	decoded, err := c.Decode("02052401ff032e")
	if err == nil {
		t.Errorf("expected error for bad frame, got %+v", decoded)
	}
	decoded, err = c.Decode("02 05 24 ff 01 03 2e")
	if err != nil || decoded.Label != "StartCam0|StartCam1" || decoded.Type != "Write" {
		t.Errorf("unexpected result: %+v %v", decoded, err)
	}
}

func TestClientErrors(t *testing.T) {
	c := newTestClient(t)
	var apiErr ErrApi

	err := c.RegWrite(config.DefaultDeviceName, "InputState", "DI0")
	if !errors.As(err, &apiErr) || !strings.HasPrefix(apiErr.Status, "400") {
		t.Errorf("expected 400, got %v", err)
	}
	if !strings.Contains(apiErr.Message, "read only") {
		t.Errorf("unexpected message: %s", apiErr.Message)
	}
	_, err = c.RegRead(config.DefaultDeviceName, "StartAndStop")
	if !errors.As(err, &apiErr) || !strings.HasPrefix(apiErr.Status, "404") {
		t.Errorf("expected 404, got %v", err)
	}
	_, err = c.RegReadAll("camtrig9")
	if !errors.As(err, &apiErr) || !strings.HasPrefix(apiErr.Status, "404") {
		t.Errorf("expected 404, got %v", err)
	}
	err = c.RegRequest("camtrig9", "StartAndStop")
	if !errors.As(err, &apiErr) {
		t.Errorf("expected ErrApi, got %v", err)
	}
}

func TestClientDevice(t *testing.T) {
	c := newTestClient(t)
	device := config.DefaultDeviceName

	if err := c.Camera(device, "start", 0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := c.Camera(device, "stop"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := c.ConfigureTrigger(device, &control.TriggerSetup{Camera: 0, Source: "Internal50Hz", Frequency: 50, Duration: 1000}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := c.ConfigureEvent(device, &control.EventSetup{Camera: 1, Event: "EventOnStrobe"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := c.ConfigureLines(device, &control.LinesSetup{Camera: 1, Inverted: "No", Strobe: "Direct"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := c.ConfigureOutput(device, &control.OutputSetup{Output: 0, Config: "TriggerCamera"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := c.Outputs(device, "toggle", "DO1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	var apiErr ErrApi
	err := c.ConfigureTrigger(device, &control.TriggerSetup{Source: "Internal50Hz", Frequency: 2000, Duration: 100})
	if !errors.As(err, &apiErr) || !strings.HasPrefix(apiErr.Status, "400") || !strings.Contains(apiErr.Message, "out of range") {
		t.Errorf("expected 400 out of range, got %v", err)
	}
	if err := c.Camera(device, "start", 5); !errors.As(err, &apiErr) || !strings.HasPrefix(apiErr.Status, "400") {
		t.Errorf("expected 400, got %v", err)
	}

	state, err := c.IO(device)
	if err != nil || state.Outputs != "" || state.Inputs != "" {
		t.Errorf("unexpected state: %+v %v", state, err)
	}
	if _, err := c.Ingest(device, "03 05 40 ff 01 01 49"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, err = c.IO(device)
	if err != nil || state.Inputs != "DI0" {
		t.Errorf("unexpected state: %+v %v", state, err)
	}
}
