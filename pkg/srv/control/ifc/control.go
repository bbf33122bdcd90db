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
	"io"

	deviceifc "jinr.ru/greenlab/go-camtrig/pkg/device/ifc"
	"jinr.ru/greenlab/go-camtrig/pkg/reg"
)

type ControlServer interface {
	Run() error

	// Attach binds the transport stream of a configured device
	Attach(deviceName string, link io.ReadWriter) error
	// Ingest decodes a frame received from a device and updates the register state
	Ingest(frame []byte, deviceName string) (*reg.Message, error)
	RegRequest(msgs []*reg.Message, deviceName string) error

	GetDeviceByName(deviceName string) (deviceifc.Device, error)
	GetAllDevices() map[string]deviceifc.Device
}

// State keeps the last message seen for every register of every device
type State interface {
	SetReg(msg *reg.Message, deviceName string) error
	GetReg(addr uint8, deviceName string) (*reg.Message, error)
	GetRegAll(deviceName string) ([]*reg.Message, error)
	Close() error
}

type ApiServer interface {
	Run() error
}
