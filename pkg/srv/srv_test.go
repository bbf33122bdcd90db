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
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-camtrig/pkg/layers"
)

func TestFrameReader(t *testing.T) {
	write := []byte{0x02, 0x05, 0x24, 0xff, 0x01, 0x03, 0x2e}
	read := []byte{0x01, 0x04, 0x40, 0xff, 0x01, 0x45}
	stream := append([]byte{0x00, 0x01}, write...)
	stream = append(stream, read...)

	r := NewFrameReader(bytes.NewReader(stream))
	for _, expected := range [][]byte{write, read} {
		frame, err := r.ReadFrame()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(frame, expected) {
			t.Errorf("wrong frame: % x, expected % x", frame, expected)
		}
	}
	if _, err := r.ReadFrame(); !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestFrameReaderPartialFrame(t *testing.T) {
	r := NewFrameReader(bytes.NewReader([]byte{0x02, 0x05, 0x24}))
	if _, err := r.ReadFrame(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestFrameReaderResync(t *testing.T) {
	errorReply := []byte{0x0a, 0x05, 0x24, 0xff, 0x01, 0x03, 0x36}
	write := []byte{0x02, 0x05, 0x24, 0xff, 0x01, 0x03, 0x2e}
	tests := []struct {
		name     string
		stream   [][]byte
		expected [][]byte
	}{
		{
			name:     "junk before error reply",
			stream:   [][]byte{{0x00}, errorReply, write},
			expected: [][]byte{errorReply, write},
		},
		{
			name:     "corrupted frame",
			stream:   [][]byte{{0x02, 0x05, 0x24, 0xff, 0x01, 0x03, 0x00}, write},
			expected: [][]byte{write},
		},
		{
			name:     "junk claims long frame",
			stream:   [][]byte{{0x00, 0x20}, write, errorReply},
			expected: [][]byte{write, errorReply},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewFrameReader(bytes.NewReader(bytes.Join(tc.stream, nil)))
			for _, expected := range tc.expected {
				frame, err := r.ReadFrame()
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !bytes.Equal(frame, expected) {
					t.Fatalf("wrong frame: % x, expected % x", frame, expected)
				}
			}
			if _, err := r.ReadFrame(); !errors.Is(err, io.EOF) {
				t.Errorf("expected EOF, got %v", err)
			}
		})
	}
}

func TestServerPacketSource(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		Context: ctx,
		ChIn:    make(chan InPacket),
	}
	go func() {
		s.ChIn <- NewInPacket([]byte{0x02, 0x05, 0x24, 0xff, 0x01, 0x03, 0x2e}, "camtrig0")
		cancel()
	}()

	source := gopacket.NewPacketSource(s, layers.HarpLayerType)
	packet, err := source.NextPacket()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if packet.Layer(layers.HarpLayerType) == nil {
		t.Error("Harp layer not decoded")
	}
	name, err := GetDeviceName(packet)
	if err != nil || name != "camtrig0" {
		t.Errorf("unexpected device name: %s %v", name, err)
	}

	if _, err := source.NextPacket(); !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF after cancel, got %v", err)
	}
}

func TestGetDeviceNameMissing(t *testing.T) {
	packet := gopacket.NewPacket([]byte{0x01, 0x04, 0x40, 0xff, 0x01, 0x45}, layers.HarpLayerType, gopacket.Default)
	var nameErr ErrGetDeviceName
	if _, err := GetDeviceName(packet); !errors.As(err, &nameErr) {
		t.Errorf("expected ErrGetDeviceName, got %v", err)
	}
}
