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

package device

import (
	"fmt"
)

// ErrBadIndex returned when a camera or an output index does not exist
type ErrBadIndex struct {
	What  string
	Index int
}

func (e ErrBadIndex) Error() string {
	return fmt.Sprintf("No such %s: %d", e.What, e.Index)
}

type ErrReadOnly struct {
	Register string
}

func (e ErrReadOnly) Error() string {
	return fmt.Sprintf("Register %s is read only", e.Register)
}

type ErrOutOfRange struct {
	What  string
	Value int
	Min   int
	Max   int
}

func (e ErrOutOfRange) Error() string {
	return fmt.Sprintf("%s out of range: %d not in [%d, %d]", e.What, e.Value, e.Min, e.Max)
}
