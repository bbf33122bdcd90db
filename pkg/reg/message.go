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

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-camtrig/pkg/layers"
)

// Message is a single register message exchanged with the device
type Message struct {
	Address      uint8
	Port         uint8
	Type         layers.MessageType
	Error        bool
	PayloadType  layers.PayloadType
	Payload      []byte
	HasTimestamp bool
	// Timestamp is the device time in seconds, valid if HasTimestamp is set
	Timestamp float64
}

func newMessage(addr uint8, kind layers.MessageType, payloadType layers.PayloadType, payload []byte) *Message {
	return &Message{
		Address:     addr,
		Port:        layers.HarpPortDevice,
		Type:        kind,
		PayloadType: payloadType,
		Payload:     payload,
	}
}

func timestamped(seconds float64, msg *Message) *Message {
	msg.HasTimestamp = true
	msg.Timestamp = seconds
	return msg
}

func FromByte(addr uint8, kind layers.MessageType, value uint8) *Message {
	return newMessage(addr, kind, layers.PayloadTypeU8, []byte{value})
}

func FromUInt16(addr uint8, kind layers.MessageType, value uint16) *Message {
	payload := make([]byte, 2)
	binary.LittleEndian.PutUint16(payload, value)
	return newMessage(addr, kind, layers.PayloadTypeU16, payload)
}

func FromUInt32(addr uint8, kind layers.MessageType, value uint32) *Message {
	payload := make([]byte, 4)
	binary.LittleEndian.PutUint32(payload, value)
	return newMessage(addr, kind, layers.PayloadTypeU32, payload)
}

func FromByteTimestamped(seconds float64, addr uint8, kind layers.MessageType, value uint8) *Message {
	return timestamped(seconds, FromByte(addr, kind, value))
}

func FromUInt16Timestamped(seconds float64, addr uint8, kind layers.MessageType, value uint16) *Message {
	return timestamped(seconds, FromUInt16(addr, kind, value))
}

func FromUInt32Timestamped(seconds float64, addr uint8, kind layers.MessageType, value uint32) *Message {
	return timestamped(seconds, FromUInt32(addr, kind, value))
}

func (m *Message) checkSize(size int) error {
	if len(m.Payload) != size {
		return ErrLengthMismatch{Register: fmt.Sprintf("0x%02x", m.Address), Expected: size, Actual: len(m.Payload)}
	}
	return nil
}

func (m *Message) checkTimestamp() error {
	if !m.HasTimestamp {
		return ErrMissingTimestamp{Register: fmt.Sprintf("0x%02x", m.Address), Address: m.Address}
	}
	return nil
}

func (m *Message) PayloadUint8() (uint8, error) {
	if err := m.checkSize(1); err != nil {
		return 0, err
	}
	return m.Payload[0], nil
}

func (m *Message) PayloadUint16() (uint16, error) {
	if err := m.checkSize(2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(m.Payload), nil
}

func (m *Message) PayloadUint32() (uint32, error) {
	if err := m.checkSize(4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(m.Payload), nil
}

func (m *Message) TimestampedUint8() (Timestamped[uint8], error) {
	if err := m.checkTimestamp(); err != nil {
		return Timestamped[uint8]{}, err
	}
	v, err := m.PayloadUint8()
	return Timestamped[uint8]{Seconds: m.Timestamp, Value: v}, err
}

func (m *Message) TimestampedUint16() (Timestamped[uint16], error) {
	if err := m.checkTimestamp(); err != nil {
		return Timestamped[uint16]{}, err
	}
	v, err := m.PayloadUint16()
	return Timestamped[uint16]{Seconds: m.Timestamp, Value: v}, err
}

func (m *Message) TimestampedUint32() (Timestamped[uint32], error) {
	if err := m.checkTimestamp(); err != nil {
		return Timestamped[uint32]{}, err
	}
	v, err := m.PayloadUint32()
	return Timestamped[uint32]{Seconds: m.Timestamp, Value: v}, err
}

func (m *Message) String() string {
	ts := ""
	if m.HasTimestamp {
		ts = fmt.Sprintf(" ts=%.6f", m.Timestamp)
	}
	return fmt.Sprintf("%s addr=%d type=%s payload=% x%s", m.Type, m.Address, m.PayloadType, m.Payload, ts)
}

// Layer converts the message to the Harp layer. Length and checksum are filled when serializing.
func (m *Message) Layer() *layers.HarpLayer {
	h := &layers.HarpLayer{
		Type:        m.Type,
		Error:       m.Error,
		Address:     m.Address,
		Port:        m.Port,
		PayloadType: m.PayloadType,
	}
	if m.HasTimestamp {
		h.SetTimestamp(m.Timestamp)
	}
	return h
}

// Bytes returns the message framed for the wire
func (m *Message) Bytes() ([]byte, error) {
	return layers.SerializeHarp(m.Layer(), m.Payload)
}

// FromLayer copies a decoded Harp layer to a message
func FromLayer(h *layers.HarpLayer) *Message {
	payload := make([]byte, len(h.LayerPayload()))
	copy(payload, h.LayerPayload())
	m := &Message{
		Address:      h.Address,
		Port:         h.Port,
		Type:         h.Type,
		Error:        h.Error,
		PayloadType:  h.PayloadType,
		Payload:      payload,
		HasTimestamp: h.HasTimestamp,
	}
	if h.HasTimestamp {
		m.Timestamp = h.Timestamp()
	}
	return m
}

// FromPacket extracts the message from a decoded packet
func FromPacket(packet gopacket.Packet) (*Message, error) {
	if errLayer := packet.ErrorLayer(); errLayer != nil {
		return nil, errLayer.Error()
	}
	h, ok := packet.Layer(layers.HarpLayerType).(*layers.HarpLayer)
	if !ok {
		return nil, ErrNotHarpFrame{}
	}
	return FromLayer(h), nil
}

// ParseMessage decodes a single framed message
func ParseMessage(data []byte) (*Message, error) {
	return FromPacket(gopacket.NewPacket(data, layers.HarpLayerType, gopacket.Default))
}
