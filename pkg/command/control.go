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
	"context"
	"os"
	"os/signal"
	"syscall"

	"jinr.ru/greenlab/go-camtrig/pkg/config"
	"jinr.ru/greenlab/go-camtrig/pkg/log"
	"jinr.ru/greenlab/go-camtrig/pkg/srv/control"
)

// StartControlServer runs the control server until interrupted. With attach
// set the configured port of every device is opened as its link, the port
// itself must already be set up.
func StartControlServer(cfg *config.Config, attach bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := control.NewControlServer(ctx, cfg)
	if err != nil {
		return err
	}

	if attach {
		for _, d := range cfg.Devices {
			if d.Port == "" {
				continue
			}
			link, err := os.OpenFile(d.Port, os.O_RDWR, 0)
			if err != nil {
				s.Close()
				return err
			}
			defer link.Close()
			if err := s.Attach(d.Name, link); err != nil {
				s.Close()
				return err
			}
			log.Info("Device %s attached to %s", d.Name, d.Port)
		}
	}

	err = s.Run()
	if err == context.Canceled {
		return nil
	}
	return err
}
