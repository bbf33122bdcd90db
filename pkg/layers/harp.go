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

package layers

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	// HarpLayerNum identifies the layer
	HarpLayerNum = 2001
	// HarpPortDevice addresses the device itself rather than one of its expansion ports
	HarpPortDevice = 0xff
	// HarpHeaderSize is message type, length, address, port and payload type
	HarpHeaderSize = 5
	// HarpTimestampSize is 4 bytes of seconds and 2 bytes of 32us ticks
	HarpTimestampSize = 6
	// HarpMinFrameSize is the header plus the checksum
	HarpMinFrameSize = HarpHeaderSize + 1
	// HarpMaxFrameSize is limited by the one byte length field
	HarpMaxFrameSize = 0xff + 2
	// TickMicroseconds is the resolution of the device clock
	TickMicroseconds = 32
	TicksPerSecond   = 1000000 / TickMicroseconds
)

type MessageType uint8

const (
	MessageTypeRead  MessageType = 0x01
	MessageTypeWrite MessageType = 0x02
	MessageTypeEvent MessageType = 0x03

	messageTypeErrorFlag = 0x08
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeRead:
		return "Read"
	case MessageTypeWrite:
		return "Write"
	case MessageTypeEvent:
		return "Event"
	}
	return fmt.Sprintf("MessageType(%d)", uint8(t))
}

// ParseMessageType accepts read, write and event in any case
func ParseMessageType(s string) (MessageType, error) {
	switch s {
	case "read", "Read", "READ":
		return MessageTypeRead, nil
	case "write", "Write", "WRITE":
		return MessageTypeWrite, nil
	case "event", "Event", "EVENT":
		return MessageTypeEvent, nil
	}
	return 0, ErrUnknownMessageType{What: s}
}

type PayloadType uint8

const (
	PayloadTypeU8    PayloadType = 0x01
	PayloadTypeU16   PayloadType = 0x02
	PayloadTypeU32   PayloadType = 0x04
	PayloadTypeU64   PayloadType = 0x08
	PayloadTypeS8    PayloadType = 0x81
	PayloadTypeS16   PayloadType = 0x82
	PayloadTypeS32   PayloadType = 0x84
	PayloadTypeS64   PayloadType = 0x88
	PayloadTypeFloat PayloadType = 0x44

	payloadTypeTimestampFlag = 0x10
	payloadTypeSizeMask      = 0x0f
)

// Size returns the number of bytes of a single element of the payload type
func (t PayloadType) Size() int {
	return int(t & payloadTypeSizeMask)
}

func (t PayloadType) String() string {
	switch t {
	case PayloadTypeU8:
		return "U8"
	case PayloadTypeU16:
		return "U16"
	case PayloadTypeU32:
		return "U32"
	case PayloadTypeU64:
		return "U64"
	case PayloadTypeS8:
		return "S8"
	case PayloadTypeS16:
		return "S16"
	case PayloadTypeS32:
		return "S32"
	case PayloadTypeS64:
		return "S64"
	case PayloadTypeFloat:
		return "Float"
	}
	return fmt.Sprintf("PayloadType(0x%02x)", uint8(t))
}

// HarpLayer is a single device message.
//
//	[0] message type | error flag
//	[1] number of bytes following this one, checksum included
//	[2] register address
//	[3] port
//	[4] payload type | timestamp flag
//	[5:11] seconds (u32) and 32us ticks (u16), timestamped messages only
//	[..] payload
//	[last] checksum, sum of all previous bytes
type HarpLayer struct {
	layers.BaseLayer
	Type         MessageType
	Error        bool
	Length       uint8
	Address      uint8
	Port         uint8
	PayloadType  PayloadType // timestamp flag is kept in HasTimestamp
	HasTimestamp bool
	Seconds      uint32
	Ticks        uint16
	Checksum     uint8
}

var HarpLayerType = gopacket.RegisterLayerType(HarpLayerNum,
	gopacket.LayerTypeMetadata{Name: "HarpLayerType", Decoder: gopacket.DecodeFunc(decodeHarpLayer)})

// LayerType returns the type of the Harp layer in the layer catalog
func (h *HarpLayer) LayerType() gopacket.LayerType {
	return HarpLayerType
}

func (h *HarpLayer) CanDecode() gopacket.LayerClass {
	return HarpLayerType
}

func (h *HarpLayer) NextLayerType() gopacket.LayerType {
	return gopacket.LayerTypePayload
}

// HeaderSize returns the size of the header including the timestamp if any
func (h *HarpLayer) HeaderSize() int {
	if h.HasTimestamp {
		return HarpHeaderSize + HarpTimestampSize
	}
	return HarpHeaderSize
}

// Timestamp returns the device time in seconds
func (h *HarpLayer) Timestamp() float64 {
	return float64(h.Seconds) + float64(uint32(h.Ticks)*TickMicroseconds)/1e6
}

// SetTimestamp rounds seconds to the nearest tick and sets HasTimestamp
func (h *HarpLayer) SetTimestamp(seconds float64) {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	if math.IsInf(seconds, 1) || seconds > math.MaxUint32 {
		seconds = math.MaxUint32
	}
	whole := math.Floor(seconds)
	ticks := math.Round((seconds - whole) * TicksPerSecond)
	if ticks >= TicksPerSecond {
		whole++
		ticks = 0
	}
	if whole > math.MaxUint32 {
		whole = math.MaxUint32
	}
	h.Seconds = uint32(whole)
	h.Ticks = uint16(ticks)
	h.HasTimestamp = true
}

// SerializeHeader serializes the header (and the timestamp) to a buffer
// which must be at least HeaderSize bytes long
func (h *HarpLayer) SerializeHeader(buf []byte) {
	messageType := uint8(h.Type)
	if h.Error {
		messageType |= messageTypeErrorFlag
	}
	payloadType := uint8(h.PayloadType)
	if h.HasTimestamp {
		payloadType |= payloadTypeTimestampFlag
	}
	buf[0] = messageType
	buf[1] = h.Length
	buf[2] = h.Address
	buf[3] = h.Port
	buf[4] = payloadType
	if h.HasTimestamp {
		binary.LittleEndian.PutUint32(buf[5:9], h.Seconds)
		binary.LittleEndian.PutUint16(buf[9:11], h.Ticks)
	}
}

// SerializeTo prepends the header to the payload already written to the buffer
// and appends the checksum
func (h *HarpLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	payloadSize := len(b.Bytes())
	frameSize := h.HeaderSize() + payloadSize + 1
	if frameSize > HarpMaxFrameSize {
		return ErrHarpFrameTooLong{Size: frameSize}
	}
	if opts.FixLengths {
		h.Length = uint8(frameSize - 2)
	}
	headerBytes, err := b.PrependBytes(h.HeaderSize())
	if err != nil {
		return err
	}
	h.SerializeHeader(headerBytes)

	tailBytes, err := b.AppendBytes(1)
	if err != nil {
		return err
	}
	if opts.ComputeChecksums {
		h.Checksum = Checksum(b.Bytes()[:frameSize-1])
	}
	tailBytes[0] = h.Checksum
	return nil
}

// DecodeFromBytes attempts to decode the byte slice as a Harp message.
// Bytes after the declared length are ignored.
func (h *HarpLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < HarpMinFrameSize {
		df.SetTruncated()
		return ErrHarpTruncated{Size: len(data), Expected: HarpMinFrameSize}
	}
	frameSize := int(data[1]) + 2
	if frameSize < HarpMinFrameSize {
		return ErrHarpLength{Length: data[1]}
	}
	if len(data) < frameSize {
		df.SetTruncated()
		return ErrHarpTruncated{Size: len(data), Expected: frameSize}
	}
	data = data[:frameSize]

	h.Type = MessageType(data[0] &^ messageTypeErrorFlag)
	h.Error = data[0]&messageTypeErrorFlag != 0
	h.Length = data[1]
	h.Address = data[2]
	h.Port = data[3]
	h.PayloadType = PayloadType(data[4] &^ payloadTypeTimestampFlag)
	h.HasTimestamp = data[4]&payloadTypeTimestampFlag != 0
	h.Seconds = 0
	h.Ticks = 0

	headerSize := h.HeaderSize()
	if frameSize < headerSize+1 {
		df.SetTruncated()
		return ErrHarpTruncated{Size: frameSize, Expected: headerSize + 1}
	}
	if h.HasTimestamp {
		h.Seconds = binary.LittleEndian.Uint32(data[5:9])
		h.Ticks = binary.LittleEndian.Uint16(data[9:11])
	}

	h.Checksum = data[frameSize-1]
	if sum := Checksum(data[:frameSize-1]); sum != h.Checksum {
		return ErrHarpChecksum{Expected: sum, Actual: h.Checksum}
	}

	h.BaseLayer = layers.BaseLayer{
		Contents: data[:headerSize],
		Payload:  data[headerSize : frameSize-1],
	}
	return nil
}

func decodeHarpLayer(data []byte, p gopacket.PacketBuilder) error {
	h := &HarpLayer{}
	err := h.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(h)
	return p.NextDecoder(h.NextLayerType())
}

// Checksum is the modulo 256 sum of the bytes
func Checksum(data []byte) uint8 {
	var sum uint8
	for _, b := range data {
		sum += b
	}
	return sum
}

// FrameSize returns the full size of the frame which starts with the given bytes.
// Only the first two bytes are inspected.
func FrameSize(head []byte) (int, error) {
	if len(head) < 2 {
		return 0, ErrHarpTruncated{Size: len(head), Expected: 2}
	}
	size := int(head[1]) + 2
	if size < HarpMinFrameSize {
		return 0, ErrHarpLength{Length: head[1]}
	}
	return size, nil
}

// SerializeHarp frames the payload with the given header fields
func SerializeHarp(h *HarpLayer, payload []byte) ([]byte, error) {
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{
		FixLengths:       true,
		ComputeChecksums: true,
	}
	err := gopacket.SerializeLayers(buf, opts, h, gopacket.Payload(payload))
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
