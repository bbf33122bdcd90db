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
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"jinr.ru/greenlab/go-camtrig/pkg/config"
	"jinr.ru/greenlab/go-camtrig/pkg/log"
	"jinr.ru/greenlab/go-camtrig/pkg/reg"
	"jinr.ru/greenlab/go-camtrig/pkg/srv/control/ifc"
)

const (
	BucketNamePrefix = "reg_"
)

// RegState keeps the last framed message of every register in a bbolt bucket per device
type RegState struct {
	context.Context
	DB *bbolt.DB
}

var _ ifc.State = &RegState{}

func NewRegState(ctx context.Context, cfg *config.Config) (*RegState, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, err
	}
	// open register database
	db, err := bbolt.Open(cfg.DBPath, 0600, nil)
	if err != nil {
		return nil, err
	}
	// create buckets in the register database for all devices
	if err = db.Update(func(tx *bbolt.Tx) error {
		for _, device := range cfg.Devices {
			_, err := tx.CreateBucketIfNotExists([]byte(bucketName(device.Name)))
			if err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &RegState{
		Context: ctx,
		DB:      db,
	}, nil
}

func bucketName(deviceName string) string {
	return fmt.Sprintf("%s%s", BucketNamePrefix, deviceName)
}

// Close ...
func (s *RegState) Close() error {
	return s.DB.Close()
}

// SetReg stores the message under its register address
func (s *RegState) SetReg(msg *reg.Message, deviceName string) error {
	log.Debug("Setting register: device: %s %s", deviceName, msg)
	data, err := msg.Bytes()
	if err != nil {
		return err
	}
	return s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(deviceName)))
		if b == nil {
			return ErrBucketNotFound{Device: deviceName}
		}
		return b.Put([]byte{msg.Address}, data)
	})
}

// GetReg ...
func (s *RegState) GetReg(addr uint8, deviceName string) (*reg.Message, error) {
	log.Debug("Getting register: device: %s addr: %d", deviceName, addr)
	var data []byte
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(deviceName)))
		if b == nil {
			return ErrBucketNotFound{Device: deviceName}
		}
		value := b.Get([]byte{addr})
		if value == nil {
			return ErrRegNotFound{Device: deviceName, Address: addr}
		}
		// value is only valid inside the transaction
		data = append([]byte{}, value...)
		return nil
	}); err != nil {
		return nil, err
	}
	return reg.ParseMessage(data)
}

// GetRegAll returns the stored registers in address order.
// Registers the device did not report yet are skipped.
func (s *RegState) GetRegAll(deviceName string) ([]*reg.Message, error) {
	log.Debug("Getting all registers: device: %s", deviceName)
	var frames [][]byte
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(deviceName)))
		if b == nil {
			return ErrBucketNotFound{Device: deviceName}
		}
		for _, d := range reg.Registers() {
			value := b.Get([]byte{d.Address})
			if value == nil {
				continue
			}
			frames = append(frames, append([]byte{}, value...))
		}
		return nil
	}); err != nil {
		return nil, err
	}
	msgs := make([]*reg.Message, 0, len(frames))
	for _, frame := range frames {
		msg, err := reg.ParseMessage(frame)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}
