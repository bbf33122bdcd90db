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

// go-camtrig API
//
// RESTful APIs to interact with go-camtrig control server
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package control

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"jinr.ru/greenlab/go-camtrig/pkg/config"
	devicepkg "jinr.ru/greenlab/go-camtrig/pkg/device"
	"jinr.ru/greenlab/go-camtrig/pkg/log"
	"jinr.ru/greenlab/go-camtrig/pkg/reg"
	"jinr.ru/greenlab/go-camtrig/pkg/srv/control/ifc"
)

// RegInfo describes a register of the table
type RegInfo struct {
	Name     string
	Address  uint8
	Width    string
	Semantic string
	Kind     string
	Members  []string `json:",omitempty"`
	ReadOnly bool
}

// RegHex is a register value. Addr and Value are hexadecimal,
// Label is the symbolic form of the value.
type RegHex struct {
	Name      string
	Addr      string
	Value     string
	Label     string
	Type      string   `json:",omitempty"`
	Error     bool     `json:",omitempty"`
	Timestamp *float64 `json:",omitempty"`
}

// RegValue is a write or read request. Value is a member name,
// a list of flags joined with | or a number.
type RegValue struct {
	Name  string
	Value string `json:",omitempty"`
}

// FrameHex is a framed message as a hex string
type FrameHex struct {
	Frame string
}

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	ctrl ifc.ControlServer
}

var _ ifc.ApiServer = &ApiServer{}

func NewApiServer(ctx context.Context, cfg *config.Config, ctrl ifc.ControlServer) (*ApiServer, error) {
	log.Info("Initializing API server with address: %s", cfg.ApiAddress())

	s := &ApiServer{
		Context: ctx,
		Config:  cfg,
		ctrl:    ctrl,
	}
	s.configureRouter()
	return s, nil
}

func NewRegInfo(d *reg.Descriptor) *RegInfo {
	info := &RegInfo{
		Name:     d.Name,
		Address:  d.Address,
		Width:    d.Width.String(),
		Semantic: d.Semantic.Name,
		Kind:     d.Semantic.Kind.String(),
		ReadOnly: d.ReadOnly,
	}
	for _, m := range d.Semantic.Members {
		info.Members = append(info.Members, m.Name)
	}
	return info
}

// NewRegHex decodes the message against the register table
func NewRegHex(msg *reg.Message) (*RegHex, error) {
	v, err := reg.Decode(msg)
	if err != nil {
		return nil, err
	}
	label, _ := v.Label()
	regHex := &RegHex{
		Name:  v.Register.Name,
		Addr:  fmt.Sprintf("0x%02x", v.Register.Address),
		Value: fmt.Sprintf("0x%0*x", v.Register.Width.Size()*2, v.Raw),
		Label: label,
		Type:  msg.Type.String(),
		Error: msg.Error,
	}
	if msg.HasTimestamp {
		ts := msg.Timestamp
		regHex.Timestamp = &ts
	}
	return regHex, nil
}

// ParseFrameHex accepts hex with or without spaces between bytes
func ParseFrameHex(frame string) ([]byte, error) {
	return hex.DecodeString(strings.Join(strings.Fields(frame), ""))
}

// errorStatus maps an error to the HTTP status returned to the client
func errorStatus(err error) int {
	var deviceNotFound ErrDeviceNotFound
	var regNotFound ErrRegNotFound
	var unknownName reg.ErrUnknownRegisterName
	var unknownReg reg.ErrUnknownRegister
	var readOnly devicepkg.ErrReadOnly
	var badValue reg.ErrBadValue
	var badIndex devicepkg.ErrBadIndex
	var outOfRange devicepkg.ErrOutOfRange
	switch {
	case errors.As(err, &deviceNotFound), errors.As(err, &regNotFound),
		errors.As(err, &unknownName), errors.As(err, &unknownReg):
		return http.StatusNotFound
	case errors.As(err, &readOnly), errors.As(err, &badValue),
		errors.As(err, &badIndex), errors.As(err, &outOfRange):
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Error while encoding response: %s", err)
	}
}

// Handler returns the router wrapped with access logging and panic recovery
func (s *ApiServer) Handler() http.Handler {
	return handlers.RecoveryHandler()(handlers.LoggingHandler(log.Writer(), s.Router))
}

// Run serves the API until the context is done
func (s *ApiServer) Run() error {
	log.Info("Starting API server: address: %s", s.Config.ApiAddress())
	httpServer := &http.Server{
		Handler: s.Handler(),
		Addr:    s.Config.ApiAddress(),
	}
	go func() {
		<-s.Context.Done()
		httpServer.Close()
	}()
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/regs", s.handleRegs()).Methods("GET")
	// swagger:operation GET /reg/r/{device}/{name} reg getReg
	// ---
	// summary: last known value of a register
	// responses:
	//   "200":
	//     description: register value
	//   "404":
	//     description: unknown device or register not read yet
	subRouter.HandleFunc("/reg/r/{device}/{name}", s.handleRegRead()).Methods("GET")
	// swagger:operation GET /reg/r/{device} reg getRegAll
	// ---
	// summary: last known values of all registers
	// responses:
	//   "200":
	//     description: register values in table order
	subRouter.HandleFunc("/reg/r/{device}", s.handleRegReadAll()).Methods("GET")
	// swagger:operation POST /reg/w/{device} reg writeReg
	// ---
	// summary: write register
	// responses:
	//   "200":
	//     description: write request queued
	//   "400":
	//     description: bad value or read only register
	subRouter.HandleFunc("/reg/w/{device}", s.handleRegWrite()).Methods("POST")
	subRouter.HandleFunc("/reg/q/{device}", s.handleRegRequest()).Methods("POST")
	subRouter.HandleFunc("/frame/{device}", s.handleFrame()).Methods("POST")
	subRouter.HandleFunc("/decode", s.handleDecode()).Methods("POST")
	// swagger:operation POST /camera/{action}/{device} camera cameraAction
	// ---
	// summary: start, stop or single shot cameras, both if none listed
	// responses:
	//   "200":
	//     description: command queued
	//   "400":
	//     description: bad camera index
	subRouter.HandleFunc("/camera/{action:start|stop|single}/{device}", s.handleCamera()).Methods("POST")
	// swagger:operation POST /trigger/{device} camera configureTrigger
	// ---
	// summary: configure trigger source, frequency and pulse duration of a camera
	// responses:
	//   "200":
	//     description: configuration queued
	//   "400":
	//     description: value out of range
	subRouter.HandleFunc("/trigger/{device}", s.handleTrigger()).Methods("POST")
	subRouter.HandleFunc("/event/{device}", s.handleEvent()).Methods("POST")
	subRouter.HandleFunc("/lines/{device}", s.handleLines()).Methods("POST")
	subRouter.HandleFunc("/output/{device}", s.handleOutput()).Methods("POST")
	subRouter.HandleFunc("/outputs/{action:set|clear|toggle}/{device}", s.handleOutputs()).Methods("POST")
	subRouter.HandleFunc("/io/{device}", s.handleIO()).Methods("GET")
}

func (s *ApiServer) handleRegs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var regs []*RegInfo
		for _, d := range reg.Registers() {
			regs = append(regs, NewRegInfo(d))
		}
		writeJSON(w, regs)
	}
}

func (s *ApiServer) handleRegRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		log.Debug("Handling reg read request: device: %s, name: %s", vars["device"], vars["name"])

		device, err := s.ctrl.GetDeviceByName(vars["device"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		msg, err := device.RegRead(vars["name"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		regHex, err := NewRegHex(msg)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, regHex)
	}
}

func (s *ApiServer) handleRegReadAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		log.Debug("Handling reg read all request: device: %s", vars["device"])

		device, err := s.ctrl.GetDeviceByName(vars["device"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		msgs, err := device.RegReadAll()
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		regsHex := []*RegHex{}
		for _, msg := range msgs {
			regHex, err := NewRegHex(msg)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			regsHex = append(regsHex, regHex)
		}
		writeJSON(w, regsHex)
	}
}

func (s *ApiServer) handleRegWrite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		value := &RegValue{}
		err := json.NewDecoder(r.Body).Decode(value)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Debug("Handling reg write request: device: %s name: %s value: %s",
			vars["device"], value.Name, value.Value)

		desc, err := reg.LookupByName(value.Name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		raw, err := desc.Semantic.Parse(value.Value)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		device, err := s.ctrl.GetDeviceByName(vars["device"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		err = device.RegWrite(desc.Name, raw)
		if err != nil {
			http.Error(w, err.Error(), errorStatus(err))
			return
		}
	}
}

func (s *ApiServer) handleRegRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		value := &RegValue{}
		err := json.NewDecoder(r.Body).Decode(value)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Debug("Handling reg request: device: %s name: %s", vars["device"], value.Name)

		device, err := s.ctrl.GetDeviceByName(vars["device"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		err = device.RegRequest(value.Name)
		if err != nil {
			http.Error(w, err.Error(), errorStatus(err))
			return
		}
	}
}

func (s *ApiServer) handleFrame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		frameHex := &FrameHex{}
		err := json.NewDecoder(r.Body).Decode(frameHex)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Debug("Handling frame: device: %s frame: %s", vars["device"], frameHex.Frame)

		frame, err := ParseFrameHex(frameHex.Frame)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		msg, err := s.ctrl.Ingest(frame, vars["device"])
		if err != nil {
			status := errorStatus(err)
			if status == http.StatusBadGateway {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}
		regHex, err := NewRegHex(msg)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, regHex)
	}
}

func (s *ApiServer) handleDecode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		frameHex := &FrameHex{}
		err := json.NewDecoder(r.Body).Decode(frameHex)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		frame, err := ParseFrameHex(frameHex.Frame)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		msg, err := reg.ParseMessage(frame)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		regHex, err := NewRegHex(msg)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, regHex)
	}
}
