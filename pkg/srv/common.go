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

package srv

import (
	"context"
	"io"
	"time"

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-camtrig/pkg/config"
)

type InPacket struct {
	Data []byte
	gopacket.CaptureInfo
}

// OutPacket is a framed message queued for the link of a device
type OutPacket struct {
	Data   []byte
	Device string
}

// NewInPacket wraps a frame received from a device. The device name is
// carried as ancillary data and recovered with GetDeviceName.
func NewInPacket(data []byte, deviceName string) InPacket {
	return InPacket{
		Data: data,
		CaptureInfo: gopacket.CaptureInfo{
			Timestamp:     time.Now(),
			Length:        len(data),
			CaptureLength: len(data),
			AncillaryData: []interface{}{deviceName},
		},
	}
}

// GetDeviceName returns the name of the device that sent the packet
func GetDeviceName(packet gopacket.Packet) (string, error) {
	meta := packet.Metadata()
	if len(meta.CaptureInfo.AncillaryData) >= 1 {
		ancillary := meta.CaptureInfo.AncillaryData[0]
		deviceName, ok := ancillary.(string)
		if !ok {
			return "", ErrGetDeviceName{What: "can not cast ancillary data to string"}
		}
		return deviceName, nil
	}
	return "", ErrGetDeviceName{What: "not enough ancillary data"}
}

type Server struct {
	context.Context
	*config.Config
	ChIn  chan InPacket
	ChOut chan OutPacket
}

// ReadPacketData reads ChIn channel and returns packet data and metadata.
// This method is from PacketDataSource interface.
func (s *Server) ReadPacketData() ([]byte, gopacket.CaptureInfo, error) {
	select {
	case <-s.Context.Done():
		return nil, gopacket.CaptureInfo{}, io.EOF
	case p := <-s.ChIn:
		return p.Data, p.CaptureInfo, nil
	}
}
