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
	"fmt"
)

// ErrHarpTruncated returned when there are less bytes than the frame needs
type ErrHarpTruncated struct {
	Size     int
	Expected int
}

func (e ErrHarpTruncated) Error() string {
	return fmt.Sprintf("Harp frame too short: %d bytes, expected at least %d", e.Size, e.Expected)
}

// ErrHarpLength returned when the length field can not describe a valid frame
type ErrHarpLength struct {
	Length uint8
}

func (e ErrHarpLength) Error() string {
	return fmt.Sprintf("Wrong Harp frame length field: %d", e.Length)
}

type ErrHarpChecksum struct {
	Expected uint8
	Actual   uint8
}

func (e ErrHarpChecksum) Error() string {
	return fmt.Sprintf("Wrong Harp checksum: 0x%02x, must be 0x%02x", e.Actual, e.Expected)
}

type ErrHarpFrameTooLong struct {
	Size int
}

func (e ErrHarpFrameTooLong) Error() string {
	return fmt.Sprintf("Harp frame too long: %d bytes, max is %d", e.Size, HarpMaxFrameSize)
}

type ErrUnknownMessageType struct {
	What string
}

func (e ErrUnknownMessageType) Error() string {
	return fmt.Sprintf("Unknown message type: %s. Must be one of read/write/event", e.What)
}
