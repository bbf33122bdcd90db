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
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"

	"github.com/gorilla/mux"

	deviceifc "jinr.ru/greenlab/go-camtrig/pkg/device/ifc"
	"jinr.ru/greenlab/go-camtrig/pkg/log"
	"jinr.ru/greenlab/go-camtrig/pkg/reg"
)

// CameraSetup lists the cameras a camera action applies to, none means both
type CameraSetup struct {
	Cameras []int `json:",omitempty"`
}

// TriggerSetup configures the trigger of a camera. Frequency is in Hz,
// Duration is the pulse width in microseconds.
type TriggerSetup struct {
	Camera    int
	Source    string
	Frequency uint16
	Duration  uint16
}

type EventSetup struct {
	Camera int
	Event  string
}

type LinesSetup struct {
	Camera   int
	Inverted string
	Strobe   string
}

type OutputSetup struct {
	Output int
	Config string
}

// OutputsSetup is a set of digital outputs, e.g. DO0|DO1
type OutputsSetup struct {
	Outputs string
}

// IOState holds the last reported digital lines. Lines the device
// has not reported yet are omitted.
type IOState struct {
	Outputs string `json:",omitempty"`
	Inputs  string `json:",omitempty"`
}

// parseByte parses a value of a one byte register semantic
func parseByte(s *reg.Semantic, text string) (uint8, error) {
	raw, err := s.Parse(text)
	if err != nil {
		return 0, err
	}
	if raw > math.MaxUint8 {
		return 0, reg.ErrBadValue{Semantic: s.Name, Value: text}
	}
	return uint8(raw), nil
}

// deviceRequest decodes the request body to v and looks up the device.
// It writes the error response itself and returns nil on failure.
func (s *ApiServer) deviceRequest(w http.ResponseWriter, r *http.Request, v interface{}) deviceifc.Device {
	vars := mux.Vars(r)
	if v != nil {
		err := json.NewDecoder(r.Body).Decode(v)
		if err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil
		}
	}
	device, err := s.ctrl.GetDeviceByName(vars["device"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil
	}
	return device
}

func reply(w http.ResponseWriter, err error) {
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
	}
}

func (s *ApiServer) handleCamera() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setup := &CameraSetup{}
		device := s.deviceRequest(w, r, setup)
		if device == nil {
			return
		}
		action := mux.Vars(r)["action"]
		log.Debug("Handling camera request: device: %s action: %s cameras: %v", device.GetName(), action, setup.Cameras)

		var err error
		switch action {
		case "start":
			err = device.Start(setup.Cameras...)
		case "stop":
			err = device.Stop(setup.Cameras...)
		case "single":
			err = device.SingleFrame(setup.Cameras...)
		}
		reply(w, err)
	}
}

func (s *ApiServer) handleTrigger() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setup := &TriggerSetup{}
		device := s.deviceRequest(w, r, setup)
		if device == nil {
			return
		}
		log.Debug("Handling trigger request: device: %s setup: %+v", device.GetName(), setup)

		source, err := parseByte(reg.TriggerSourceSemantic, setup.Source)
		if err != nil {
			reply(w, err)
			return
		}
		reply(w, device.ConfigureTrigger(setup.Camera, reg.TriggerSource(source), setup.Frequency, setup.Duration))
	}
}

func (s *ApiServer) handleEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setup := &EventSetup{}
		device := s.deviceRequest(w, r, setup)
		if device == nil {
			return
		}
		event, err := parseByte(reg.EventConfigurationSemantic, setup.Event)
		if err != nil {
			reply(w, err)
			return
		}
		reply(w, device.ConfigureEvent(setup.Camera, reg.EventConfiguration(event)))
	}
}

func (s *ApiServer) handleLines() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setup := &LinesSetup{}
		device := s.deviceRequest(w, r, setup)
		if device == nil {
			return
		}
		inverted, err := parseByte(reg.TriggerInvertedSemantic, setup.Inverted)
		if err != nil {
			reply(w, err)
			return
		}
		strobe, err := parseByte(reg.StrobeSourceSemantic, setup.Strobe)
		if err != nil {
			reply(w, err)
			return
		}
		reply(w, device.ConfigureLines(setup.Camera, reg.TriggerInverted(inverted), reg.StrobeSource(strobe)))
	}
}

func (s *ApiServer) handleOutput() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setup := &OutputSetup{}
		device := s.deviceRequest(w, r, setup)
		if device == nil {
			return
		}
		cfg, err := parseByte(reg.OutputConfigurationSemantic, setup.Config)
		if err != nil {
			reply(w, err)
			return
		}
		reply(w, device.ConfigureOutput(setup.Output, reg.OutputConfiguration(cfg)))
	}
}

func (s *ApiServer) handleOutputs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setup := &OutputsSetup{}
		device := s.deviceRequest(w, r, setup)
		if device == nil {
			return
		}
		outputs, err := parseByte(reg.DigitalOutputsSemantic, setup.Outputs)
		if err != nil {
			reply(w, err)
			return
		}
		action := mux.Vars(r)["action"]
		log.Debug("Handling outputs request: device: %s action: %s outputs: %s", device.GetName(), action, setup.Outputs)

		switch action {
		case "set":
			err = device.SetOutputs(reg.DigitalOutputs(outputs))
		case "clear":
			err = device.ClearOutputs(reg.DigitalOutputs(outputs))
		case "toggle":
			err = device.ToggleOutputs(reg.DigitalOutputs(outputs))
		}
		reply(w, err)
	}
}

func (s *ApiServer) handleIO() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		device := s.deviceRequest(w, r, nil)
		if device == nil {
			return
		}
		var notFound ErrRegNotFound
		state := &IOState{}
		outputs, err := device.Outputs()
		switch {
		case err == nil:
			state.Outputs = outputs.String()
		case !errors.As(err, &notFound):
			reply(w, err)
			return
		}
		inputs, err := device.Inputs()
		switch {
		case err == nil:
			state.Inputs = inputs.String()
		case !errors.As(err, &notFound):
			reply(w, err)
			return
		}
		writeJSON(w, state)
	}
}
