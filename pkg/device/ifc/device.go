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

package ifc

import (
	"jinr.ru/greenlab/go-camtrig/pkg/reg"
)

type Device interface {
	GetName() string

	// RegRead returns the last message cached for the register
	RegRead(name string) (*reg.Message, error)
	RegReadAll() ([]*reg.Message, error)
	RegWrite(name string, raw uint32) error
	// RegRequest asks the device to report the current value of the register
	RegRequest(name string) error

	UpdateReg(msg *reg.Message) error

	Start(cams ...int) error
	Stop(cams ...int) error
	SingleFrame(cams ...int) error

	ConfigureTrigger(cam int, source reg.TriggerSource, frequency, duration uint16) error
	ConfigureEvent(cam int, event reg.EventConfiguration) error
	ConfigureLines(cam int, inverted reg.TriggerInverted, strobe reg.StrobeSource) error
	ConfigureOutput(out int, cfg reg.OutputConfiguration) error

	SetOutputs(outputs reg.DigitalOutputs) error
	ClearOutputs(outputs reg.DigitalOutputs) error
	ToggleOutputs(outputs reg.DigitalOutputs) error

	Outputs() (reg.DigitalOutputs, error)
	Inputs() (reg.DigitalInputs, error)
}
