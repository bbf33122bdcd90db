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

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-camtrig/pkg/command"
	"jinr.ru/greenlab/go-camtrig/pkg/config"
	"jinr.ru/greenlab/go-camtrig/pkg/srv/control"
)

func printReg(cmd *cobra.Command, reg *control.RegHex) {
	if reg.Timestamp != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Register state: %s = %s (%s) at %.6fs\n", reg.Name, reg.Label, reg.Value, *reg.Timestamp)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Register state: %s = %s (%s)\n", reg.Name, reg.Label, reg.Value)
}

func NewReadCommand(cfg *config.Config) *cobra.Command {
	var device, name string
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read last reported value of registers",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			if name != "" {
				reg, err := apiClient.RegRead(device, name)
				if err != nil {
					return err
				}
				printReg(cmd, reg)
				return nil
			}
			regs, err := apiClient.RegReadAll(device)
			if err != nil {
				return err
			}
			for _, reg := range regs {
				printReg(cmd, reg)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&device, DeviceOptionName, config.DefaultDeviceName, "Device name")
	cmd.Flags().StringVar(&name, NameOptionName, "", "Register name. All registers if not set")

	return cmd
}
