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
	"strings"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-camtrig/cmd/control/reg"
	"jinr.ru/greenlab/go-camtrig/pkg/command"
	"jinr.ru/greenlab/go-camtrig/pkg/config"
)

func NewFrameCommand(cfg *config.Config) *cobra.Command {
	var device string
	cmd := &cobra.Command{
		Use:   "frame FRAME",
		Short: "Pass a frame received from a device to the control server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			regHex, err := apiClient.Ingest(device, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s)\n", regHex.Name, regHex.Label, regHex.Value)
			return nil
		},
	}
	cmd.Flags().StringVar(&device, reg.DeviceOptionName, config.DefaultDeviceName, "Device name")

	return cmd
}
