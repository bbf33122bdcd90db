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
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-camtrig/pkg/command"
	"jinr.ru/greenlab/go-camtrig/pkg/config"
)

func NewWriteCommand(cfg *config.Config) *cobra.Command {
	var device, name, value string
	cmd := &cobra.Command{
		Use:     "write",
		Short:   "Write value to register",
		Example: "# go-camtrig control reg write --name StartAndStop --value 'StartCam0|StartCam1'",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			return apiClient.RegWrite(device, name, value)
		},
	}
	cmd.Flags().StringVar(&device, DeviceOptionName, config.DefaultDeviceName, "Device name")
	cmd.Flags().StringVar(&name, NameOptionName, "", "Register name")
	cmd.MarkFlagRequired(NameOptionName)
	cmd.Flags().StringVar(&value, ValueOptionName, "", "Register value. Member name, flags joined with | or a number")
	cmd.MarkFlagRequired(ValueOptionName)

	return cmd
}
