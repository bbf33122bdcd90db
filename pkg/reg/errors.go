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
	"fmt"
)

// ErrAddressMismatch returned when a message is decoded by a register with another address
type ErrAddressMismatch struct {
	Register string
	Expected uint8
	Actual   uint8
}

func (e ErrAddressMismatch) Error() string {
	return fmt.Sprintf("Register %s: wrong message address %d, must be %d", e.Register, e.Actual, e.Expected)
}

// ErrLengthMismatch returned when the payload length differs from the register width
type ErrLengthMismatch struct {
	Register string
	Expected int
	Actual   int
}

func (e ErrLengthMismatch) Error() string {
	return fmt.Sprintf("Register %s: wrong payload length %d, must be %d", e.Register, e.Actual, e.Expected)
}

type ErrMissingTimestamp struct {
	Register string
	Address  uint8
}

func (e ErrMissingTimestamp) Error() string {
	return fmt.Sprintf("Register %s: message has no timestamp", e.Register)
}

type ErrUnknownRegister struct {
	Address uint8
}

func (e ErrUnknownRegister) Error() string {
	return fmt.Sprintf("Unknown register address: %d", e.Address)
}

type ErrUnknownRegisterName struct {
	Name string
}

func (e ErrUnknownRegisterName) Error() string {
	return fmt.Sprintf("Unknown register: %s", e.Name)
}

// ErrBadValue returned when a text can not be parsed to a register value
type ErrBadValue struct {
	Semantic string
	Value    string
}

func (e ErrBadValue) Error() string {
	return fmt.Sprintf("Can not parse %q as %s", e.Value, e.Semantic)
}

type ErrNotHarpFrame struct{}

func (e ErrNotHarpFrame) Error() string {
	return "Data is not a Harp frame"
}
