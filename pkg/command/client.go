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

package command

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-camtrig/pkg/config"
	"jinr.ru/greenlab/go-camtrig/pkg/srv/control"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

func NewApiClient(cfg *config.Config) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s/api", cfg.ApiAddress()),
	}
}

func (c *ApiClient) regReadUrl(device string) string {
	return fmt.Sprintf("%s/reg/r/%s", c.ApiPrefix, device)
}

func (c *ApiClient) regWriteUrl(device string) string {
	return fmt.Sprintf("%s/reg/w/%s", c.ApiPrefix, device)
}

func (c *ApiClient) regRequestUrl(device string) string {
	return fmt.Sprintf("%s/reg/q/%s", c.ApiPrefix, device)
}

func checkStatus(r *req.Resp) error {
	if r.Response().StatusCode != http.StatusOK {
		return ErrApi{
			Status:  r.Response().Status,
			Message: strings.TrimSpace(r.String()),
		}
	}
	return nil
}

// Registers sends request to get the register table
func (c *ApiClient) Registers() ([]*control.RegInfo, error) {
	r, err := req.Get(fmt.Sprintf("%s/regs", c.ApiPrefix))
	if err != nil {
		return nil, err
	}
	if err = checkStatus(r); err != nil {
		return nil, err
	}
	var regs []*control.RegInfo
	err = r.ToJSON(&regs)
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// RegRead sends request to get the cached value of a register of a device
func (c *ApiClient) RegRead(device, name string) (*control.RegHex, error) {
	r, err := req.Get(fmt.Sprintf("%s/%s", c.regReadUrl(device), name))
	if err != nil {
		return nil, err
	}
	if err = checkStatus(r); err != nil {
		return nil, err
	}
	reg := &control.RegHex{}
	err = r.ToJSON(reg)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// RegReadAll sends request to get cached values of all registers of a device
func (c *ApiClient) RegReadAll(device string) ([]*control.RegHex, error) {
	r, err := req.Get(c.regReadUrl(device))
	if err != nil {
		return nil, err
	}
	if err = checkStatus(r); err != nil {
		return nil, err
	}
	var regs []*control.RegHex
	err = r.ToJSON(&regs)
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// RegWrite sends request to write the value to a register of a device.
// The value is either symbolic or a number.
func (c *ApiClient) RegWrite(device, name, value string) error {
	reg := &control.RegValue{
		Name:  name,
		Value: value,
	}
	r, err := req.Post(c.regWriteUrl(device), req.BodyJSON(reg))
	if err != nil {
		return err
	}
	return checkStatus(r)
}

// RegRequest asks the device to report the value of a register
func (c *ApiClient) RegRequest(device, name string) error {
	reg := &control.RegValue{
		Name: name,
	}
	r, err := req.Post(c.regRequestUrl(device), req.BodyJSON(reg))
	if err != nil {
		return err
	}
	return checkStatus(r)
}

// Ingest sends a frame received from a device to the control server
func (c *ApiClient) Ingest(device, frame string) (*control.RegHex, error) {
	return c.postFrame(fmt.Sprintf("%s/frame/%s", c.ApiPrefix, device), frame)
}

// Decode sends request to decode a frame without touching the state
func (c *ApiClient) Decode(frame string) (*control.RegHex, error) {
	return c.postFrame(fmt.Sprintf("%s/decode", c.ApiPrefix), frame)
}

func (c *ApiClient) postFrame(url, frame string) (*control.RegHex, error) {
	r, err := req.Post(url, req.BodyJSON(&control.FrameHex{Frame: frame}))
	if err != nil {
		return nil, err
	}
	if err = checkStatus(r); err != nil {
		return nil, err
	}
	reg := &control.RegHex{}
	err = r.ToJSON(reg)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func (c *ApiClient) post(url string, body interface{}) error {
	r, err := req.Post(url, req.BodyJSON(body))
	if err != nil {
		return err
	}
	return checkStatus(r)
}

// Camera starts, stops or single shots the cameras of a device.
// The action is one of start, stop and single, no cameras means both.
func (c *ApiClient) Camera(device, action string, cameras ...int) error {
	return c.post(fmt.Sprintf("%s/camera/%s/%s", c.ApiPrefix, action, device), &control.CameraSetup{Cameras: cameras})
}

func (c *ApiClient) ConfigureTrigger(device string, setup *control.TriggerSetup) error {
	return c.post(fmt.Sprintf("%s/trigger/%s", c.ApiPrefix, device), setup)
}

func (c *ApiClient) ConfigureEvent(device string, setup *control.EventSetup) error {
	return c.post(fmt.Sprintf("%s/event/%s", c.ApiPrefix, device), setup)
}

func (c *ApiClient) ConfigureLines(device string, setup *control.LinesSetup) error {
	return c.post(fmt.Sprintf("%s/lines/%s", c.ApiPrefix, device), setup)
}

func (c *ApiClient) ConfigureOutput(device string, setup *control.OutputSetup) error {
	return c.post(fmt.Sprintf("%s/output/%s", c.ApiPrefix, device), setup)
}

// Outputs sets, clears or toggles digital outputs, e.g. DO0|DO1
func (c *ApiClient) Outputs(device, action, outputs string) error {
	return c.post(fmt.Sprintf("%s/outputs/%s/%s", c.ApiPrefix, action, device), &control.OutputsSetup{Outputs: outputs})
}

// IO returns the last reported digital lines of a device
func (c *ApiClient) IO(device string) (*control.IOState, error) {
	r, err := req.Get(fmt.Sprintf("%s/io/%s", c.ApiPrefix, device))
	if err != nil {
		return nil, err
	}
	if err = checkStatus(r); err != nil {
		return nil, err
	}
	state := &control.IOState{}
	err = r.ToJSON(state)
	if err != nil {
		return nil, err
	}
	return state, nil
}
