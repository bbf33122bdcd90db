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

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-camtrig/pkg/command"
	"jinr.ru/greenlab/go-camtrig/pkg/config"
)

const (
	IPOptionName      = "ip"
	ApiPortOptionName = "api-port"
	AttachOptionName  = "attach"
)

func NewStartCommand(cfg *config.Config) *cobra.Command {
	var ip string
	var apiPort int
	var attach bool
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start control server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ip != "" {
				cfg.IP = ip
			}
			if apiPort != 0 {
				cfg.ApiPort = apiPort
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return command.StartControlServer(cfg, attach)
		},
	}
	cmd.Flags().StringVar(&ip, IPOptionName, "", fmt.Sprintf("IP to bind. E.g. %s", config.DefaultIP))
	cmd.Flags().IntVar(&apiPort, ApiPortOptionName, 0, fmt.Sprintf("API port to bind. E.g. %d", config.DefaultApiPort))
	cmd.Flags().BoolVar(&attach, AttachOptionName, false, "Open the configured port of every device as its link")

	return cmd
}
