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
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestApi(t *testing.T) (*ControlServer, *httptest.Server) {
	s := newTestServer(context.Background(), t)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.Close()
	})
	return s, ts
}

func post(t *testing.T, url string, body interface{}) *http.Response {
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func get(t *testing.T, url string) *http.Response {
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApiRegs(t *testing.T) {
	_, ts := newTestApi(t)
	var regs []*RegInfo
	decodeBody(t, get(t, ts.URL+"/api/regs"), &regs)
	if len(regs) != 25 {
		t.Fatalf("expected 25 registers, got %d", len(regs))
	}
	first := regs[0]
	if first.Name != "Cam0Event" || first.Address != 32 || first.Width != "U8" || first.Kind != "flags" {
		t.Errorf("unexpected register: %+v", first)
	}
	if !regs[len(regs)-1].ReadOnly {
		t.Error("InputState must be read only")
	}
}

func TestApiFrameAndRead(t *testing.T) {
	_, ts := newTestApi(t)

	// StartAndStop event reporting both cameras started
	regHex := &RegHex{}
	decodeBody(t, post(t, ts.URL+"/api/frame/camtrig0", &FrameHex{Frame: "03 05 24 ff 01 03 2f"}), regHex)
	if regHex.Name != "StartAndStop" || regHex.Value != "0x03" || regHex.Label != "StartCam0|StartCam1" || regHex.Type != "Event" {
		t.Errorf("unexpected value: %+v", regHex)
	}

	cached := &RegHex{}
	decodeBody(t, get(t, ts.URL+"/api/reg/r/camtrig0/StartAndStop"), cached)
	if cached.Addr != "0x24" || cached.Label != "StartCam0|StartCam1" {
		t.Errorf("unexpected value: %+v", cached)
	}

	var all []*RegHex
	decodeBody(t, get(t, ts.URL+"/api/reg/r/camtrig0"), &all)
	if len(all) != 1 {
		t.Errorf("expected one register, got %d", len(all))
	}
	decodeBody(t, get(t, ts.URL+"/api/reg/r/camtrig1"), &all)
	if len(all) != 0 {
		t.Errorf("expected no registers, got %d", len(all))
	}

	for _, tc := range []struct {
		url    string
		status int
	}{
		{"/api/reg/r/camtrig0/TriggerFrequencyCam0", http.StatusNotFound},
		{"/api/reg/r/camtrig0/Cam2Event", http.StatusNotFound},
		{"/api/reg/r/camtrig9/StartAndStop", http.StatusNotFound},
		{"/api/reg/r/camtrig9", http.StatusNotFound},
	} {
		resp := get(t, ts.URL+tc.url)
		resp.Body.Close()
		if resp.StatusCode != tc.status {
			t.Errorf("GET %s: status %d, expected %d", tc.url, resp.StatusCode, tc.status)
		}
	}

	for _, tc := range []struct {
		frame  string
		status int
	}{
		{"zz", http.StatusBadRequest},
		{"03 05 24 ff 01 03 00", http.StatusBadRequest},
		{"03 05 28 ff 01 03 33", http.StatusNotFound},
	} {
		resp := post(t, ts.URL+"/api/frame/camtrig0", &FrameHex{Frame: tc.frame})
		resp.Body.Close()
		if resp.StatusCode != tc.status {
			t.Errorf("frame %s: status %d, expected %d", tc.frame, resp.StatusCode, tc.status)
		}
	}
}

func TestApiWriteAndRequest(t *testing.T) {
	s, ts := newTestApi(t)

	resp := post(t, ts.URL+"/api/reg/w/camtrig0", &RegValue{Name: "StartAndStop", Value: "StartCam0|StartCam1"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %s", resp.Status)
	}
	p := nextOut(t, s)
	if !bytes.Equal(p.Data, []byte{0x02, 0x05, 0x24, 0xff, 0x01, 0x03, 0x2e}) {
		t.Errorf("unexpected frame: % x", p.Data)
	}

	resp = post(t, ts.URL+"/api/reg/w/camtrig0", &RegValue{Name: "TriggerFrequencyCam0", Value: "500"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %s", resp.Status)
	}
	p = nextOut(t, s)
	if !bytes.Equal(p.Data[5:7], []byte{0xf4, 0x01}) {
		t.Errorf("unexpected frame: % x", p.Data)
	}

	resp = post(t, ts.URL+"/api/reg/q/camtrig0", &RegValue{Name: "InputState"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %s", resp.Status)
	}
	p = nextOut(t, s)
	if !bytes.Equal(p.Data, []byte{0x01, 0x04, 0x40, 0xff, 0x01, 0x45}) {
		t.Errorf("unexpected frame: % x", p.Data)
	}

	for _, tc := range []struct {
		url    string
		value  *RegValue
		status int
	}{
		{"/api/reg/w/camtrig0", &RegValue{Name: "InputState", Value: "DI0"}, http.StatusBadRequest},
		{"/api/reg/w/camtrig0", &RegValue{Name: "StartAndStop", Value: "StartCam2"}, http.StatusBadRequest},
		{"/api/reg/w/camtrig0", &RegValue{Name: "Nope", Value: "1"}, http.StatusNotFound},
		{"/api/reg/w/camtrig9", &RegValue{Name: "StartAndStop", Value: "1"}, http.StatusNotFound},
		{"/api/reg/q/camtrig0", &RegValue{Name: "Nope"}, http.StatusNotFound},
	} {
		resp := post(t, ts.URL+tc.url, tc.value)
		resp.Body.Close()
		if resp.StatusCode != tc.status {
			t.Errorf("POST %s %+v: status %d, expected %d", tc.url, tc.value, resp.StatusCode, tc.status)
		}
	}
	select {
	case p := <-s.ChOut:
		t.Errorf("unexpected frame queued: % x", p.Data)
	default:
	}
}

func TestApiDecode(t *testing.T) {
	_, ts := newTestApi(t)
	regHex := &RegHex{}
	decodeBody(t, post(t, ts.URL+"/api/decode", &FrameHex{Frame: "02062dff02f4012b"}), regHex)
	if regHex.Name != "TriggerFrequencyCam0" || regHex.Value != "0x01f4" || regHex.Label != "500" || regHex.Timestamp != nil {
		t.Errorf("unexpected value: %+v", regHex)
	}

	for _, frame := range []string{"02062dff02f40100", "02052dff02f42a", "0x"} {
		resp := post(t, ts.URL+"/api/decode", &FrameHex{Frame: frame})
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("frame %s: status %d, expected 400", frame, resp.StatusCode)
		}
	}
}
