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

package control

import (
	"fmt"
)

// ErrBucketNotFound returned when the device is not configured
type ErrBucketNotFound struct {
	Device string
}

func (e ErrBucketNotFound) Error() string {
	return fmt.Sprintf("Bucket not found for device: %s", e.Device)
}

// ErrRegNotFound returned when the device did not report the register yet
type ErrRegNotFound struct {
	Device  string
	Address uint8
}

func (e ErrRegNotFound) Error() string {
	return fmt.Sprintf("Register %d not found for device: %s", e.Address, e.Device)
}

type ErrDeviceNotFound struct {
	Device string
}

func (e ErrDeviceNotFound) Error() string {
	return fmt.Sprintf("Device not found: %s", e.Device)
}

type ErrLinkAttached struct {
	Device string
}

func (e ErrLinkAttached) Error() string {
	return fmt.Sprintf("Link already attached to device: %s", e.Device)
}
