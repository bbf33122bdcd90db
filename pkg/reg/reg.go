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

package reg

import (
	"encoding/binary"
	"fmt"

	"jinr.ru/greenlab/go-camtrig/pkg/layers"
)

type RegAlias int

const (
	RegCam0Event RegAlias = iota
	RegCam1Event
	RegConfigureCam0Event
	RegConfigureCam1Event
	RegStartAndStop
	RegStartAndStopTimestamped
	RegStartTimestamp
	RegStopTimestamp
	RegTriggerConfigCam0
	RegTriggerInvertedCam0
	RegStrobeSourceCam0
	RegTriggerFrequencyCam0
	RegTriggerDurationCam0
	RegTriggerConfigCam1
	RegTriggerInvertedCam1
	RegStrobeSourceCam1
	RegTriggerFrequencyCam1
	RegTriggerDurationCam1
	RegConfigureOutput0
	RegConfigureOutput1
	RegOutputSet
	RegOutputClear
	RegOutputToggle
	RegOutputState
	RegInputState
	RegAliasLimit
)

const (
	TriggerFrequencyMin = 1
	TriggerFrequencyMax = 1000
	// TriggerDurationMin is in microseconds
	TriggerDurationMin = 100
)

// Descriptor is the static description of a device register
type Descriptor struct {
	Alias    RegAlias
	Name     string
	Address  uint8
	Width    layers.PayloadType
	Semantic *Semantic
	ReadOnly bool
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s(%d)", d.Name, d.Address)
}

// Addresses are in the device register map, the gaps are reserved registers
var regTable = [RegAliasLimit]Descriptor{
	RegCam0Event:               {Name: "Cam0Event", Address: 32, Width: layers.PayloadTypeU8, Semantic: CameraEventsSemantic},
	RegCam1Event:               {Name: "Cam1Event", Address: 33, Width: layers.PayloadTypeU8, Semantic: CameraEventsSemantic},
	RegConfigureCam0Event:      {Name: "ConfigureCam0Event", Address: 34, Width: layers.PayloadTypeU8, Semantic: EventConfigurationSemantic},
	RegConfigureCam1Event:      {Name: "ConfigureCam1Event", Address: 35, Width: layers.PayloadTypeU8, Semantic: EventConfigurationSemantic},
	RegStartAndStop:            {Name: "StartAndStop", Address: 36, Width: layers.PayloadTypeU8, Semantic: CameraFlagsSemantic},
	RegStartAndStopTimestamped: {Name: "StartAndStopTimestamped", Address: 37, Width: layers.PayloadTypeU8, Semantic: CameraFlagsSemantic},
	RegStartTimestamp:          {Name: "StartTimestamp", Address: 38, Width: layers.PayloadTypeU32, Semantic: RawU32},
	RegStopTimestamp:           {Name: "StopTimestamp", Address: 39, Width: layers.PayloadTypeU32, Semantic: RawU32},
	RegTriggerConfigCam0:       {Name: "TriggerConfigCam0", Address: 42, Width: layers.PayloadTypeU8, Semantic: TriggerSourceSemantic},
	RegTriggerInvertedCam0:     {Name: "TriggerInvertedCam0", Address: 43, Width: layers.PayloadTypeU8, Semantic: TriggerInvertedSemantic},
	RegStrobeSourceCam0:        {Name: "StrobeSourceCam0", Address: 44, Width: layers.PayloadTypeU8, Semantic: StrobeSourceSemantic},
	RegTriggerFrequencyCam0:    {Name: "TriggerFrequencyCam0", Address: 45, Width: layers.PayloadTypeU16, Semantic: RawU16},
	RegTriggerDurationCam0:     {Name: "TriggerDurationCam0", Address: 46, Width: layers.PayloadTypeU16, Semantic: RawU16},
	RegTriggerConfigCam1:       {Name: "TriggerConfigCam1", Address: 49, Width: layers.PayloadTypeU8, Semantic: TriggerSourceSemantic},
	RegTriggerInvertedCam1:     {Name: "TriggerInvertedCam1", Address: 50, Width: layers.PayloadTypeU8, Semantic: TriggerInvertedSemantic},
	RegStrobeSourceCam1:        {Name: "StrobeSourceCam1", Address: 51, Width: layers.PayloadTypeU8, Semantic: StrobeSourceSemantic},
	RegTriggerFrequencyCam1:    {Name: "TriggerFrequencyCam1", Address: 52, Width: layers.PayloadTypeU16, Semantic: RawU16},
	RegTriggerDurationCam1:     {Name: "TriggerDurationCam1", Address: 53, Width: layers.PayloadTypeU16, Semantic: RawU16},
	RegConfigureOutput0:        {Name: "ConfigureOutput0", Address: 56, Width: layers.PayloadTypeU8, Semantic: OutputConfigurationSemantic},
	RegConfigureOutput1:        {Name: "ConfigureOutput1", Address: 57, Width: layers.PayloadTypeU8, Semantic: OutputConfigurationSemantic},
	RegOutputSet:               {Name: "OutputSet", Address: 60, Width: layers.PayloadTypeU8, Semantic: DigitalOutputsSemantic},
	RegOutputClear:             {Name: "OutputClear", Address: 61, Width: layers.PayloadTypeU8, Semantic: DigitalOutputsSemantic},
	RegOutputToggle:            {Name: "OutputToggle", Address: 62, Width: layers.PayloadTypeU8, Semantic: DigitalOutputsSemantic},
	RegOutputState:             {Name: "OutputState", Address: 63, Width: layers.PayloadTypeU8, Semantic: DigitalOutputsSemantic},
	RegInputState:              {Name: "InputState", Address: 64, Width: layers.PayloadTypeU8, Semantic: DigitalInputsSemantic, ReadOnly: true},
}

var (
	Cam0Event               = Register[CameraEvents]{RegCam0Event}
	Cam1Event               = Register[CameraEvents]{RegCam1Event}
	ConfigureCam0Event      = Register[EventConfiguration]{RegConfigureCam0Event}
	ConfigureCam1Event      = Register[EventConfiguration]{RegConfigureCam1Event}
	StartAndStop            = Register[CameraFlags]{RegStartAndStop}
	StartAndStopTimestamped = Register[CameraFlags]{RegStartAndStopTimestamped}
	StartTimestamp          = Register[uint32]{RegStartTimestamp}
	StopTimestamp           = Register[uint32]{RegStopTimestamp}
	TriggerConfigCam0       = Register[TriggerSource]{RegTriggerConfigCam0}
	TriggerInvertedCam0     = Register[TriggerInverted]{RegTriggerInvertedCam0}
	StrobeSourceCam0        = Register[StrobeSource]{RegStrobeSourceCam0}
	TriggerFrequencyCam0    = Register[uint16]{RegTriggerFrequencyCam0}
	TriggerDurationCam0     = Register[uint16]{RegTriggerDurationCam0}
	TriggerConfigCam1       = Register[TriggerSource]{RegTriggerConfigCam1}
	TriggerInvertedCam1     = Register[TriggerInverted]{RegTriggerInvertedCam1}
	StrobeSourceCam1        = Register[StrobeSource]{RegStrobeSourceCam1}
	TriggerFrequencyCam1    = Register[uint16]{RegTriggerFrequencyCam1}
	TriggerDurationCam1     = Register[uint16]{RegTriggerDurationCam1}
	ConfigureOutput0        = Register[OutputConfiguration]{RegConfigureOutput0}
	ConfigureOutput1        = Register[OutputConfiguration]{RegConfigureOutput1}
	OutputSet               = Register[DigitalOutputs]{RegOutputSet}
	OutputClear             = Register[DigitalOutputs]{RegOutputClear}
	OutputToggle            = Register[DigitalOutputs]{RegOutputToggle}
	OutputState             = Register[DigitalOutputs]{RegOutputState}
	InputState              = Register[DigitalInputs]{RegInputState}
)

type typedRegister interface {
	Descriptor() *Descriptor
	size() int
}

var typedRegisters = []typedRegister{
	Cam0Event, Cam1Event, ConfigureCam0Event, ConfigureCam1Event,
	StartAndStop, StartAndStopTimestamped, StartTimestamp, StopTimestamp,
	TriggerConfigCam0, TriggerInvertedCam0, StrobeSourceCam0, TriggerFrequencyCam0, TriggerDurationCam0,
	TriggerConfigCam1, TriggerInvertedCam1, StrobeSourceCam1, TriggerFrequencyCam1, TriggerDurationCam1,
	ConfigureOutput0, ConfigureOutput1,
	OutputSet, OutputClear, OutputToggle, OutputState, InputState,
}

// byAddress is indexed directly by the register address
var byAddress [256]*Descriptor
var byName = make(map[string]*Descriptor, RegAliasLimit)
var ordered = make([]*Descriptor, 0, RegAliasLimit)

func init() {
	for i := range regTable {
		d := &regTable[i]
		d.Alias = RegAlias(i)
		if d.Name == "" || d.Semantic == nil {
			panic(fmt.Sprintf("register %d is not described", i))
		}
		if byAddress[d.Address] != nil {
			panic(fmt.Sprintf("duplicate register address %d: %s and %s", d.Address, byAddress[d.Address].Name, d.Name))
		}
		if _, ok := byName[d.Name]; ok {
			panic(fmt.Sprintf("duplicate register name %s", d.Name))
		}
		byAddress[d.Address] = d
		byName[d.Name] = d
		ordered = append(ordered, d)
	}
	if len(typedRegisters) != int(RegAliasLimit) {
		panic("typed registers do not cover the register table")
	}
	for _, r := range typedRegisters {
		d := r.Descriptor()
		if r.size() != d.Width.Size() {
			panic(fmt.Sprintf("register %s: Go type size %d does not match width %s", d.Name, r.size(), d.Width))
		}
	}
}

// Lookup returns the descriptor of the register with the given address
func Lookup(addr uint8) (*Descriptor, error) {
	d := byAddress[addr]
	if d == nil {
		return nil, ErrUnknownRegister{Address: addr}
	}
	return d, nil
}

// LookupByName returns the descriptor of the register with the given name
func LookupByName(name string) (*Descriptor, error) {
	d, ok := byName[name]
	if !ok {
		return nil, ErrUnknownRegisterName{Name: name}
	}
	return d, nil
}

// Get returns the descriptor for the alias. It panics if the alias is out of range.
func Get(alias RegAlias) *Descriptor {
	return &regTable[alias]
}

// Registers returns all registers ordered by address.
// The returned slice must not be modified.
func Registers() []*Descriptor {
	return ordered
}

func (d *Descriptor) payload(raw uint32) []byte {
	buf := make([]byte, d.Width.Size())
	switch d.Width {
	case layers.PayloadTypeU8:
		buf[0] = uint8(raw)
	case layers.PayloadTypeU16:
		binary.LittleEndian.PutUint16(buf, uint16(raw))
	case layers.PayloadTypeU32:
		binary.LittleEndian.PutUint32(buf, raw)
	}
	return buf
}

func (d *Descriptor) extract(msg *Message) (uint32, error) {
	if msg.Address != d.Address {
		return 0, ErrAddressMismatch{Register: d.Name, Expected: d.Address, Actual: msg.Address}
	}
	if len(msg.Payload) != d.Width.Size() {
		return 0, ErrLengthMismatch{Register: d.Name, Expected: d.Width.Size(), Actual: len(msg.Payload)}
	}
	switch d.Width {
	case layers.PayloadTypeU16:
		return uint32(binary.LittleEndian.Uint16(msg.Payload)), nil
	case layers.PayloadTypeU32:
		return binary.LittleEndian.Uint32(msg.Payload), nil
	}
	return uint32(msg.Payload[0]), nil
}
