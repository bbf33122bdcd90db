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

package control

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"jinr.ru/greenlab/go-camtrig/pkg/config"
	"jinr.ru/greenlab/go-camtrig/pkg/layers"
	"jinr.ru/greenlab/go-camtrig/pkg/reg"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.ApiPort = 0
	cfg.DBPath = filepath.Join(t.TempDir(), "db", config.DBFile)
	cfg.Devices = []*config.Device{{Name: "camtrig0"}, {Name: "camtrig1"}}
	return cfg
}

func TestRegState(t *testing.T) {
	cfg := testConfig(t)
	state, err := NewRegState(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := state.SetReg(reg.InputState.Encode(layers.MessageTypeEvent, reg.DI0), "camtrig0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := reg.StartAndStopTimestamped.EncodeTimestamped(1.5, layers.MessageTypeEvent, reg.StartCam1)
	if err := state.SetReg(msg, "camtrig0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := state.GetReg(37, "camtrig0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := reg.StartAndStopTimestamped.DecodeTimestamped(stored)
	if err != nil || v.Seconds != 1.5 || v.Value != reg.StartCam1 {
		t.Errorf("unexpected value: %+v %v", v, err)
	}

	var regNotFound ErrRegNotFound
	if _, err := state.GetReg(36, "camtrig0"); !errors.As(err, &regNotFound) {
		t.Errorf("expected ErrRegNotFound, got %v", err)
	}
	if _, err := state.GetReg(36, "camtrig1"); !errors.As(err, &regNotFound) {
		t.Errorf("devices must not share registers, got %v", err)
	}
	var bucketNotFound ErrBucketNotFound
	if _, err := state.GetReg(36, "camtrig2"); !errors.As(err, &bucketNotFound) {
		t.Errorf("expected ErrBucketNotFound, got %v", err)
	}
	if err := state.SetReg(msg, "camtrig2"); !errors.As(err, &bucketNotFound) {
		t.Errorf("expected ErrBucketNotFound, got %v", err)
	}

	all, err := state.GetRegAll("camtrig0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 || all[0].Address != 37 || all[1].Address != 64 {
		t.Errorf("unexpected registers: %v", all)
	}

	if err := state.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reopened, err := NewRegState(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.GetReg(64, "camtrig0"); err != nil {
		t.Errorf("state must survive reopening: %v", err)
	}
}
