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

package device

import (
	"jinr.ru/greenlab/go-camtrig/pkg/config"
	deviceifc "jinr.ru/greenlab/go-camtrig/pkg/device/ifc"
	"jinr.ru/greenlab/go-camtrig/pkg/layers"
	"jinr.ru/greenlab/go-camtrig/pkg/log"
	"jinr.ru/greenlab/go-camtrig/pkg/reg"
	"jinr.ru/greenlab/go-camtrig/pkg/srv/control/ifc"
)

const (
	NumCameras = 2
	NumOutputs = 2
)

// camera groups the flags and registers controlling one camera
type camera struct {
	start     reg.CameraFlags
	stop      reg.CameraFlags
	single    reg.CameraFlags
	event     reg.Register[reg.EventConfiguration]
	trigger   reg.Register[reg.TriggerSource]
	inverted  reg.Register[reg.TriggerInverted]
	strobe    reg.Register[reg.StrobeSource]
	frequency reg.Register[uint16]
	duration  reg.Register[uint16]
}

var cameras = [NumCameras]camera{
	{
		start:     reg.StartCam0,
		stop:      reg.StopCam0,
		single:    reg.SingleFrameCam0,
		event:     reg.ConfigureCam0Event,
		trigger:   reg.TriggerConfigCam0,
		inverted:  reg.TriggerInvertedCam0,
		strobe:    reg.StrobeSourceCam0,
		frequency: reg.TriggerFrequencyCam0,
		duration:  reg.TriggerDurationCam0,
	},
	{
		start:     reg.StartCam1,
		stop:      reg.StopCam1,
		single:    reg.SingleFrameCam1,
		event:     reg.ConfigureCam1Event,
		trigger:   reg.TriggerConfigCam1,
		inverted:  reg.TriggerInvertedCam1,
		strobe:    reg.StrobeSourceCam1,
		frequency: reg.TriggerFrequencyCam1,
		duration:  reg.TriggerDurationCam1,
	},
}

var outputs = [NumOutputs]reg.Register[reg.OutputConfiguration]{
	reg.ConfigureOutput0,
	reg.ConfigureOutput1,
}

type Device struct {
	*config.Device
	ctrl  ifc.ControlServer
	state ifc.State
}

var _ deviceifc.Device = &Device{}

// NewDevice ...
func NewDevice(device *config.Device, ctrl ifc.ControlServer, state ifc.State) (*Device, error) {
	return &Device{
		Device: device,
		ctrl:   ctrl,
		state:  state,
	}, nil
}

func (d *Device) GetName() string {
	return d.Name
}

func (d *Device) write(msgs ...*reg.Message) error {
	for _, msg := range msgs {
		log.Debug("Device %s: %s", d.Name, msg)
	}
	return d.ctrl.RegRequest(msgs, d.Name)
}

// RegRead ...
func (d *Device) RegRead(name string) (*reg.Message, error) {
	desc, err := reg.LookupByName(name)
	if err != nil {
		return nil, err
	}
	return d.state.GetReg(desc.Address, d.Name)
}

// RegReadAll ...
func (d *Device) RegReadAll() ([]*reg.Message, error) {
	return d.state.GetRegAll(d.Name)
}

// RegWrite ...
func (d *Device) RegWrite(name string, raw uint32) error {
	desc, err := reg.LookupByName(name)
	if err != nil {
		return err
	}
	if desc.ReadOnly {
		return ErrReadOnly{Register: desc.Name}
	}
	return d.write(desc.Encode(layers.MessageTypeWrite, raw))
}

func (d *Device) RegRequest(name string) error {
	desc, err := reg.LookupByName(name)
	if err != nil {
		return err
	}
	return d.write(desc.ReadRequest())
}

// UpdateReg ...
func (d *Device) UpdateReg(msg *reg.Message) error {
	return d.state.SetReg(msg, d.Name)
}

func getCamera(cam int) (*camera, error) {
	if cam < 0 || cam >= NumCameras {
		return nil, ErrBadIndex{What: "camera", Index: cam}
	}
	return &cameras[cam], nil
}

// cameraCommand writes StartAndStop with the flag selected for every camera.
// No cameras means all of them.
func (d *Device) cameraCommand(cams []int, flag func(*camera) reg.CameraFlags) error {
	if len(cams) == 0 {
		cams = []int{0, 1}
	}
	var flags reg.CameraFlags
	for _, cam := range cams {
		c, err := getCamera(cam)
		if err != nil {
			return err
		}
		flags |= flag(c)
	}
	return d.write(reg.StartAndStop.Encode(layers.MessageTypeWrite, flags))
}

func (d *Device) Start(cams ...int) error {
	return d.cameraCommand(cams, func(c *camera) reg.CameraFlags { return c.start })
}

func (d *Device) Stop(cams ...int) error {
	return d.cameraCommand(cams, func(c *camera) reg.CameraFlags { return c.stop })
}

func (d *Device) SingleFrame(cams ...int) error {
	return d.cameraCommand(cams, func(c *camera) reg.CameraFlags { return c.single })
}

// ConfigureTrigger sets the trigger source, the frequency in Hz and the
// pulse duration in microseconds. The pulse must fit into the period.
func (d *Device) ConfigureTrigger(cam int, source reg.TriggerSource, frequency, duration uint16) error {
	c, err := getCamera(cam)
	if err != nil {
		return err
	}
	if frequency < reg.TriggerFrequencyMin || frequency > reg.TriggerFrequencyMax {
		return ErrOutOfRange{
			What:  "trigger frequency",
			Value: int(frequency),
			Min:   reg.TriggerFrequencyMin,
			Max:   reg.TriggerFrequencyMax,
		}
	}
	period := 1000000 / int(frequency)
	if int(duration) < reg.TriggerDurationMin || int(duration) >= period {
		return ErrOutOfRange{
			What:  "trigger duration",
			Value: int(duration),
			Min:   reg.TriggerDurationMin,
			Max:   period - 1,
		}
	}
	return d.write(
		c.trigger.Encode(layers.MessageTypeWrite, source),
		c.frequency.Encode(layers.MessageTypeWrite, frequency),
		c.duration.Encode(layers.MessageTypeWrite, duration),
	)
}

func (d *Device) ConfigureEvent(cam int, event reg.EventConfiguration) error {
	c, err := getCamera(cam)
	if err != nil {
		return err
	}
	return d.write(c.event.Encode(layers.MessageTypeWrite, event))
}

func (d *Device) ConfigureLines(cam int, inverted reg.TriggerInverted, strobe reg.StrobeSource) error {
	c, err := getCamera(cam)
	if err != nil {
		return err
	}
	return d.write(
		c.inverted.Encode(layers.MessageTypeWrite, inverted),
		c.strobe.Encode(layers.MessageTypeWrite, strobe),
	)
}

func (d *Device) ConfigureOutput(out int, cfg reg.OutputConfiguration) error {
	if out < 0 || out >= NumOutputs {
		return ErrBadIndex{What: "output", Index: out}
	}
	return d.write(outputs[out].Encode(layers.MessageTypeWrite, cfg))
}

func (d *Device) SetOutputs(o reg.DigitalOutputs) error {
	return d.write(reg.OutputSet.Encode(layers.MessageTypeWrite, o))
}

func (d *Device) ClearOutputs(o reg.DigitalOutputs) error {
	return d.write(reg.OutputClear.Encode(layers.MessageTypeWrite, o))
}

func (d *Device) ToggleOutputs(o reg.DigitalOutputs) error {
	return d.write(reg.OutputToggle.Encode(layers.MessageTypeWrite, o))
}

// Outputs returns the last reported output state
func (d *Device) Outputs() (reg.DigitalOutputs, error) {
	msg, err := d.state.GetReg(reg.OutputState.Descriptor().Address, d.Name)
	if err != nil {
		return 0, err
	}
	return reg.OutputState.Decode(msg)
}

// Inputs returns the last reported input state
func (d *Device) Inputs() (reg.DigitalInputs, error) {
	msg, err := d.state.GetReg(reg.InputState.Descriptor().Address, d.Name)
	if err != nil {
		return 0, err
	}
	return reg.InputState.Decode(msg)
}
