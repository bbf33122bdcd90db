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
	"io"
	"net/http"
	"sync"

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-camtrig/pkg/config"
	devicepkg "jinr.ru/greenlab/go-camtrig/pkg/device"
	deviceifc "jinr.ru/greenlab/go-camtrig/pkg/device/ifc"
	"jinr.ru/greenlab/go-camtrig/pkg/layers"
	"jinr.ru/greenlab/go-camtrig/pkg/log"
	"jinr.ru/greenlab/go-camtrig/pkg/reg"
	"jinr.ru/greenlab/go-camtrig/pkg/srv"
	"jinr.ru/greenlab/go-camtrig/pkg/srv/control/ifc"
)

const (
	// OutQueueSize is how many frames may wait for the link writer
	OutQueueSize = 256
)

type ControlServer struct {
	srv.Server
	state   *RegState
	api     *ApiServer
	devices map[string]deviceifc.Device
	mu      sync.Mutex
	links   map[string]io.ReadWriter
	errChan chan error
	cancel  context.CancelFunc
}

var _ ifc.ControlServer = &ControlServer{}

// NewControlServer ...
func NewControlServer(ctx context.Context, cfg *config.Config) (*ControlServer, error) {
	log.Debug("Initializing control server with db: %s", cfg.DBPath)

	ctx, cancel := context.WithCancel(ctx)
	regState, err := NewRegState(ctx, cfg)
	if err != nil {
		cancel()
		return nil, err
	}

	s := &ControlServer{
		Server: srv.Server{
			Context: ctx,
			Config:  cfg,
			ChIn:    make(chan srv.InPacket),
			ChOut:   make(chan srv.OutPacket, OutQueueSize),
		},
		state:   regState,
		devices: make(map[string]deviceifc.Device),
		links:   make(map[string]io.ReadWriter),
		errChan: make(chan error, 1),
		cancel:  cancel,
	}

	for _, d := range cfg.Devices {
		device, err := devicepkg.NewDevice(d, s, regState)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.devices[d.Name] = device
	}

	apiServer, err := NewApiServer(ctx, cfg, s)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.api = apiServer

	return s, nil
}

// Attach starts reading frames from the link of the device. Frames queued
// for the device are written to the same link.
func (s *ControlServer) Attach(deviceName string, link io.ReadWriter) error {
	if _, ok := s.devices[deviceName]; !ok {
		return ErrDeviceNotFound{Device: deviceName}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.links[deviceName]; ok {
		return ErrLinkAttached{Device: deviceName}
	}
	s.links[deviceName] = link
	log.Info("Link attached to device: %s", deviceName)
	go s.readLink(deviceName, link)
	return nil
}

// Detach forgets the link of the device, frames for it are dropped from now on
func (s *ControlServer) Detach(deviceName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.links, deviceName)
}

func (s *ControlServer) getLink(deviceName string) io.ReadWriter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.links[deviceName]
}

func (s *ControlServer) fail(err error) {
	select {
	case s.errChan <- err:
	default:
	}
}

// readLink splits the link stream into frames and puts them to the input queue
func (s *ControlServer) readLink(deviceName string, link io.ReadWriter) {
	r := srv.NewFrameReader(link)
	for {
		frame, err := r.ReadFrame()
		if err != nil {
			s.Detach(deviceName)
			if s.Context.Err() == nil {
				log.Error("Error while reading link of device %s: %s", deviceName, err)
				s.fail(err)
			}
			return
		}
		select {
		case s.ChIn <- srv.NewInPacket(frame, deviceName):
		case <-s.Context.Done():
			return
		}
	}
}

// Close stops everything started by Run and releases the register state
func (s *ControlServer) Close() error {
	s.cancel()
	return s.state.Close()
}

// Run serves until the context is done or a link fails. In both cases
// the workers are stopped before the register state is closed.
func (s *ControlServer) Run() error {
	var wg sync.WaitGroup
	defer s.Close()
	defer wg.Wait()
	defer s.cancel()

	wg.Add(3)
	// Read captured frames from input queue, parse them and update the state
	go func() {
		defer wg.Done()
		source := gopacket.NewPacketSource(s, layers.HarpLayerType)
		for packet := range source.Packets() {
			deviceName, packetErr := srv.GetDeviceName(packet)
			if packetErr != nil {
				log.Error(packetErr.Error())
				continue
			}
			msg, packetErr := reg.FromPacket(packet)
			if packetErr != nil {
				log.Error("Drop frame from device %s: %s", deviceName, packetErr)
				continue
			}
			if _, packetErr = s.store(msg, deviceName); packetErr != nil {
				log.Error("Drop message from device %s: %s", deviceName, packetErr)
			}
		}
	}()

	// Read frames from output queue and send them to the device links
	go func() {
		defer wg.Done()
		for {
			select {
			case <-s.Context.Done():
				return
			case outPacket := <-s.ChOut:
				link := s.getLink(outPacket.Device)
				if link == nil {
					log.Warning("Drop frame % x. No link attached to device %s", outPacket.Data, outPacket.Device)
					continue
				}
				if _, sendErr := link.Write(outPacket.Data); sendErr != nil {
					log.Error("Error while sending data to %s", outPacket.Device)
					s.fail(sendErr)
					return
				}
			}
		}
	}()

	go func() {
		defer wg.Done()
		if err := s.api.Run(); err != nil {
			s.fail(err)
		}
	}()

	select {
	case <-s.Context.Done():
		return s.Context.Err()
	case err := <-s.errChan:
		return err
	}
}

// store validates the message against the register table and caches it.
// Error replies are reported but not cached.
func (s *ControlServer) store(msg *reg.Message, deviceName string) (*reg.Message, error) {
	device, ok := s.devices[deviceName]
	if !ok {
		return nil, ErrDeviceNotFound{Device: deviceName}
	}
	value, err := reg.Decode(msg)
	if err != nil {
		return nil, err
	}
	if msg.Error {
		log.Warning("Device %s replied with error: %s", deviceName, value)
		return msg, nil
	}
	log.Debug("Device %s: %s %s", deviceName, msg.Type, value)
	if err := device.UpdateReg(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Ingest ...
func (s *ControlServer) Ingest(frame []byte, deviceName string) (*reg.Message, error) {
	msg, err := reg.ParseMessage(frame)
	if err != nil {
		return nil, err
	}
	return s.store(msg, deviceName)
}

// RegRequest frames the messages and queues them for the device link
func (s *ControlServer) RegRequest(msgs []*reg.Message, deviceName string) error {
	if _, ok := s.devices[deviceName]; !ok {
		return ErrDeviceNotFound{Device: deviceName}
	}
	for _, msg := range msgs {
		data, err := msg.Bytes()
		if err != nil {
			log.Error("Error while serializing message for device %s: %s", deviceName, msg)
			return err
		}
		select {
		case s.ChOut <- srv.OutPacket{Data: data, Device: deviceName}:
		case <-s.Context.Done():
			return s.Context.Err()
		}
	}
	return nil
}

// Handler is the HTTP handler of the API server
func (s *ControlServer) Handler() http.Handler {
	return s.api.Handler()
}

func (s *ControlServer) GetDeviceByName(deviceName string) (deviceifc.Device, error) {
	device, ok := s.devices[deviceName]
	if !ok {
		return nil, ErrDeviceNotFound{Device: deviceName}
	}
	return device, nil
}

func (s *ControlServer) GetAllDevices() map[string]deviceifc.Device {
	return s.devices
}
