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
	"net/http"
	"testing"

	"jinr.ru/greenlab/go-camtrig/pkg/layers"
	"jinr.ru/greenlab/go-camtrig/pkg/reg"
)

func nextMsg(t *testing.T, s *ControlServer) *reg.Message {
	msg, err := reg.ParseMessage(nextOut(t, s).Data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return msg
}

func expectStatus(t *testing.T, resp *http.Response, status int) {
	resp.Body.Close()
	if resp.StatusCode != status {
		t.Errorf("%s %s: status %d, expected %d", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, status)
	}
}

func expectNoFrame(t *testing.T, s *ControlServer) {
	select {
	case p := <-s.ChOut:
		t.Errorf("unexpected frame queued: % x", p.Data)
	default:
	}
}

func TestApiCamera(t *testing.T) {
	s, ts := newTestApi(t)

	tests := []struct {
		url   string
		setup *CameraSetup
		flags reg.CameraFlags
	}{
		{"/api/camera/start/camtrig0", &CameraSetup{Cameras: []int{1}}, reg.StartCam1},
		{"/api/camera/start/camtrig0", &CameraSetup{}, reg.StartCam0 | reg.StartCam1},
		{"/api/camera/stop/camtrig0", &CameraSetup{Cameras: []int{0, 1}}, reg.StopCam0 | reg.StopCam1},
		{"/api/camera/single/camtrig0", &CameraSetup{Cameras: []int{0}}, reg.SingleFrameCam0},
	}
	for _, tc := range tests {
		expectStatus(t, post(t, ts.URL+tc.url, tc.setup), http.StatusOK)
		msg := nextMsg(t, s)
		flags, err := reg.StartAndStop.Decode(msg)
		if err != nil || flags != tc.flags || msg.Type != layers.MessageTypeWrite {
			t.Errorf("%s %+v: unexpected message %s", tc.url, tc.setup, msg)
		}
	}

	// no body at all means both cameras
	resp, err := http.Post(ts.URL+"/api/camera/stop/camtrig1", "application/json", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectStatus(t, resp, http.StatusOK)
	if flags, _ := reg.StartAndStop.Decode(nextMsg(t, s)); flags != reg.StopCam0|reg.StopCam1 {
		t.Errorf("unexpected flags: %s", flags)
	}

	expectStatus(t, post(t, ts.URL+"/api/camera/start/camtrig0", &CameraSetup{Cameras: []int{2}}), http.StatusBadRequest)
	expectStatus(t, post(t, ts.URL+"/api/camera/start/camtrig9", &CameraSetup{}), http.StatusNotFound)
	expectStatus(t, post(t, ts.URL+"/api/camera/pause/camtrig0", &CameraSetup{}), http.StatusNotFound)
	expectNoFrame(t, s)
}

func TestApiTrigger(t *testing.T) {
	s, ts := newTestApi(t)

	setup := &TriggerSetup{Camera: 1, Source: "Internal100Hz", Frequency: 100, Duration: 500}
	expectStatus(t, post(t, ts.URL+"/api/trigger/camtrig0", setup), http.StatusOK)
	source, err := reg.TriggerConfigCam1.Decode(nextMsg(t, s))
	if err != nil || source != reg.TriggerSource100Hz {
		t.Errorf("unexpected trigger source: %s %v", source, err)
	}
	frequency, err := reg.TriggerFrequencyCam1.Decode(nextMsg(t, s))
	if err != nil || frequency != 100 {
		t.Errorf("unexpected frequency: %d %v", frequency, err)
	}
	duration, err := reg.TriggerDurationCam1.Decode(nextMsg(t, s))
	if err != nil || duration != 500 {
		t.Errorf("unexpected duration: %d %v", duration, err)
	}

	for _, tc := range []struct {
		setup  *TriggerSetup
		status int
	}{
		{&TriggerSetup{Source: "Internal1Hz", Frequency: 0, Duration: 100}, http.StatusBadRequest},
		{&TriggerSetup{Source: "Internal1Hz", Frequency: 1001, Duration: 100}, http.StatusBadRequest},
		{&TriggerSetup{Source: "Internal1Hz", Frequency: 10, Duration: 99}, http.StatusBadRequest},
		{&TriggerSetup{Source: "Internal1Hz", Frequency: 1000, Duration: 1000}, http.StatusBadRequest},
		{&TriggerSetup{Source: "Internal7Hz", Frequency: 10, Duration: 100}, http.StatusBadRequest},
		{&TriggerSetup{Source: "300", Frequency: 10, Duration: 100}, http.StatusBadRequest},
		{&TriggerSetup{Camera: 3, Source: "Internal1Hz", Frequency: 10, Duration: 100}, http.StatusBadRequest},
	} {
		resp := post(t, ts.URL+"/api/trigger/camtrig0", tc.setup)
		resp.Body.Close()
		if resp.StatusCode != tc.status {
			t.Errorf("%+v: status %d, expected %d", tc.setup, resp.StatusCode, tc.status)
		}
	}
	expectNoFrame(t, s)
}

func TestApiEventAndLines(t *testing.T) {
	s, ts := newTestApi(t)

	expectStatus(t, post(t, ts.URL+"/api/event/camtrig0", &EventSetup{Camera: 1, Event: "EventOnTrigger"}), http.StatusOK)
	event, err := reg.ConfigureCam1Event.Decode(nextMsg(t, s))
	if err != nil || event != reg.EventOnTrigger {
		t.Errorf("unexpected event configuration: %s %v", event, err)
	}

	expectStatus(t, post(t, ts.URL+"/api/lines/camtrig0", &LinesSetup{Camera: 0, Inverted: "Yes", Strobe: "PullUp"}), http.StatusOK)
	inverted, err := reg.TriggerInvertedCam0.Decode(nextMsg(t, s))
	if err != nil || inverted != reg.TriggerInvertedYes {
		t.Errorf("unexpected trigger inverted: %s %v", inverted, err)
	}
	strobe, err := reg.StrobeSourceCam0.Decode(nextMsg(t, s))
	if err != nil || strobe != reg.StrobeSourcePullUp {
		t.Errorf("unexpected strobe source: %s %v", strobe, err)
	}

	expectStatus(t, post(t, ts.URL+"/api/event/camtrig0", &EventSetup{Event: "EventOnBoth"}), http.StatusBadRequest)
	expectStatus(t, post(t, ts.URL+"/api/lines/camtrig0", &LinesSetup{Inverted: "Maybe", Strobe: "Direct"}), http.StatusBadRequest)
	expectStatus(t, post(t, ts.URL+"/api/lines/camtrig0", &LinesSetup{Camera: -1, Inverted: "No", Strobe: "Direct"}), http.StatusBadRequest)
	expectNoFrame(t, s)
}

func TestApiOutputs(t *testing.T) {
	s, ts := newTestApi(t)

	expectStatus(t, post(t, ts.URL+"/api/output/camtrig0", &OutputSetup{Output: 1, Config: "StrobeCamera"}), http.StatusOK)
	cfg, err := reg.ConfigureOutput1.Decode(nextMsg(t, s))
	if err != nil || cfg != reg.OutputStrobeCamera {
		t.Errorf("unexpected output configuration: %s %v", cfg, err)
	}

	for _, tc := range []struct {
		action   string
		register reg.Register[reg.DigitalOutputs]
	}{
		{"set", reg.OutputSet},
		{"clear", reg.OutputClear},
		{"toggle", reg.OutputToggle},
	} {
		expectStatus(t, post(t, ts.URL+"/api/outputs/"+tc.action+"/camtrig0", &OutputsSetup{Outputs: "DO0|DO1"}), http.StatusOK)
		outputs, err := tc.register.Decode(nextMsg(t, s))
		if err != nil || outputs != reg.DO0|reg.DO1 {
			t.Errorf("%s: unexpected outputs: %s %v", tc.action, outputs, err)
		}
	}

	expectStatus(t, post(t, ts.URL+"/api/output/camtrig0", &OutputSetup{Output: 2, Config: "Software"}), http.StatusBadRequest)
	expectStatus(t, post(t, ts.URL+"/api/outputs/set/camtrig0", &OutputsSetup{Outputs: "DO2"}), http.StatusBadRequest)
	expectStatus(t, post(t, ts.URL+"/api/outputs/flip/camtrig0", &OutputsSetup{Outputs: "DO0"}), http.StatusNotFound)
	expectNoFrame(t, s)
}

func TestApiIO(t *testing.T) {
	s, ts := newTestApi(t)

	state := &IOState{}
	decodeBody(t, get(t, ts.URL+"/api/io/camtrig0"), state)
	if state.Outputs != "" || state.Inputs != "" {
		t.Errorf("nothing reported yet: %+v", state)
	}

	for _, msg := range []*reg.Message{
		reg.OutputState.Encode(layers.MessageTypeEvent, reg.DO1),
		reg.InputState.Encode(layers.MessageTypeEvent, reg.DI0),
	} {
		if _, err := s.Ingest(frame(t, msg), "camtrig0"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	decodeBody(t, get(t, ts.URL+"/api/io/camtrig0"), state)
	if state.Outputs != "DO1" || state.Inputs != "DI0" {
		t.Errorf("unexpected state: %+v", state)
	}
	expectStatus(t, get(t, ts.URL+"/api/io/camtrig9"), http.StatusNotFound)
}
