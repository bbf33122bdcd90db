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
	"bufio"
	"io"

	"jinr.ru/greenlab/go-camtrig/pkg/layers"
	"jinr.ru/greenlab/go-camtrig/pkg/log"
)

// FrameReader splits a byte stream into device frames using the length byte
type FrameReader struct {
	r *bufio.Reader
}

func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: bufio.NewReader(r)}
}

// ReadFrame returns the next frame with a valid checksum. Bytes that can not
// start such a frame are skipped until the stream is in sync again.
// A stream that ends inside a frame gives io.ErrUnexpectedEOF.
func (f *FrameReader) ReadFrame() ([]byte, error) {
	truncated := false
	for {
		head, err := f.r.Peek(2)
		if err != nil {
			if err == io.EOF && (truncated || len(head) > 0) {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		size, err := layers.FrameSize(head)
		if err != nil {
			log.Debug("Skip byte 0x%02x: %s", head[0], err)
			if err := f.skip(); err != nil {
				return nil, err
			}
			continue
		}
		data, err := f.r.Peek(size)
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			// the stream ends before the claimed frame does
			truncated = true
			if err := f.skip(); err != nil {
				return nil, err
			}
			continue
		}
		if sum := layers.Checksum(data[:size-1]); sum != data[size-1] {
			log.Debug("Skip byte 0x%02x: wrong checksum of %d byte frame", head[0], size)
			if err := f.skip(); err != nil {
				return nil, err
			}
			continue
		}
		frame := make([]byte, size)
		copy(frame, data)
		if _, err := f.r.Discard(size); err != nil {
			return nil, err
		}
		return frame, nil
	}
}

func (f *FrameReader) skip() error {
	_, err := f.r.Discard(1)
	return err
}
