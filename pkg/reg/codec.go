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

// Raw is the set of Go types a register value can be decoded to
type Raw interface {
	~uint8 | ~uint16 | ~uint32
}

// Timestamped pairs a value with the device time it was captured at
type Timestamped[T any] struct {
	Seconds float64
	Value   T
}

// Value is a decoded register value of any register
type Value struct {
	Register *Descriptor
	Raw      uint32
}

// Label is the symbolic form of the value, see Semantic.Label
func (v Value) Label() (string, bool) {
	return v.Register.Semantic.Label(v.Raw)
}

func (v Value) String() string {
	l, _ := v.Label()
	return fmt.Sprintf("%s=%s", v.Register.Name, l)
}

// Decode checks the message address and payload length and returns the register value.
// Values outside of the register semantic members are returned as is.
func (d *Descriptor) Decode(msg *Message) (Value, error) {
	raw, err := d.extract(msg)
	if err != nil {
		return Value{}, err
	}
	return Value{Register: d, Raw: raw}, nil
}

// DecodeTimestamped is Decode for messages which must carry a timestamp
func (d *Descriptor) DecodeTimestamped(msg *Message) (Timestamped[Value], error) {
	v, err := d.Decode(msg)
	if err != nil {
		return Timestamped[Value]{}, err
	}
	if !msg.HasTimestamp {
		return Timestamped[Value]{}, ErrMissingTimestamp{Register: d.Name, Address: msg.Address}
	}
	return Timestamped[Value]{Seconds: msg.Timestamp, Value: v}, nil
}

// Encode builds a message for the register. The raw value is truncated to the register width.
func (d *Descriptor) Encode(kind layers.MessageType, raw uint32) *Message {
	return newMessage(d.Address, kind, d.Width, d.payload(raw))
}

func (d *Descriptor) EncodeTimestamped(seconds float64, kind layers.MessageType, raw uint32) *Message {
	return timestamped(seconds, d.Encode(kind, raw))
}

// ReadRequest builds a read command. It carries no payload, the device
// answers with a read reply holding the current value.
func (d *Descriptor) ReadRequest() *Message {
	return newMessage(d.Address, layers.MessageTypeRead, d.Width, nil)
}

// Register is the typed view of a register descriptor
type Register[T Raw] struct {
	alias RegAlias
}

func (r Register[T]) Descriptor() *Descriptor {
	return &regTable[r.alias]
}

func (r Register[T]) size() int {
	return binary.Size(T(0))
}

func (r Register[T]) Decode(msg *Message) (T, error) {
	v, err := r.Descriptor().Decode(msg)
	if err != nil {
		return 0, err
	}
	return T(v.Raw), nil
}

func (r Register[T]) DecodeTimestamped(msg *Message) (Timestamped[T], error) {
	v, err := r.Descriptor().DecodeTimestamped(msg)
	if err != nil {
		return Timestamped[T]{}, err
	}
	return Timestamped[T]{Seconds: v.Seconds, Value: T(v.Value.Raw)}, nil
}

func (r Register[T]) Encode(kind layers.MessageType, value T) *Message {
	return r.Descriptor().Encode(kind, uint32(value))
}

func (r Register[T]) EncodeTimestamped(seconds float64, kind layers.MessageType, value T) *Message {
	return r.Descriptor().EncodeTimestamped(seconds, kind, uint32(value))
}

// Decode dispatches the message to the register with the message address
func Decode(msg *Message) (Value, error) {
	d, err := Lookup(msg.Address)
	if err != nil {
		return Value{}, err
	}
	return d.Decode(msg)
}

// DecodeTimestamped dispatches the message to the register with the message address
func DecodeTimestamped(msg *Message) (Timestamped[Value], error) {
	d, err := Lookup(msg.Address)
	if err != nil {
		return Timestamped[Value]{}, err
	}
	return d.DecodeTimestamped(msg)
}

// Encode builds a message for the register with the given name
func Encode(name string, kind layers.MessageType, raw uint32) (*Message, error) {
	d, err := LookupByName(name)
	if err != nil {
		return nil, err
	}
	return d.Encode(kind, raw), nil
}
