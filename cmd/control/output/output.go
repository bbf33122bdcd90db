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

package output

import (
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-camtrig/cmd/control/reg"
	"jinr.ru/greenlab/go-camtrig/pkg/command"
	"jinr.ru/greenlab/go-camtrig/pkg/config"
	"jinr.ru/greenlab/go-camtrig/pkg/srv/control"
)

const (
	OutputOptionName = "output"
	DriveOptionName  = "drive"
)

// NewCommand creates a cobra command object for the digital output subcommands
func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "output",
		Short: "Configure and drive digital outputs",
	}
	cmd.AddCommand(NewConfigureCommand(cfg))
	for _, action := range []string{"set", "clear", "toggle"} {
		cmd.AddCommand(NewActionCommand(cfg, action))
	}
	cmd.AddCommand(NewStateCommand(cfg))
	return cmd
}

func NewConfigureCommand(cfg *config.Config) *cobra.Command {
	var device string
	setup := &control.OutputSetup{}
	cmd := &cobra.Command{
		Use:     "configure",
		Short:   "Select what drives a digital output",
		Example: "# go-camtrig control output configure --output 1 --drive StrobeCamera",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			return apiClient.ConfigureOutput(device, setup)
		},
	}
	cmd.Flags().StringVar(&device, reg.DeviceOptionName, config.DefaultDeviceName, "Device name")
	cmd.Flags().IntVar(&setup.Output, OutputOptionName, 0, "Output index")
	cmd.Flags().StringVar(&setup.Config, DriveOptionName, "Software", "Software, TriggerCamera or StrobeCamera")
	return cmd
}

func NewActionCommand(cfg *config.Config, action string) *cobra.Command {
	var device string
	cmd := &cobra.Command{
		Use:     fmt.Sprintf("%s OUTPUTS", action),
		Short:   fmt.Sprintf("%s digital outputs", action),
		Example: fmt.Sprintf("# go-camtrig control output %s 'DO0|DO1'", action),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			return apiClient.Outputs(device, action, args[0])
		},
	}
	cmd.Flags().StringVar(&device, reg.DeviceOptionName, config.DefaultDeviceName, "Device name")
	return cmd
}

func NewStateCommand(cfg *config.Config) *cobra.Command {
	var device string
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show last reported digital outputs and inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			state, err := apiClient.IO(device)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Outputs: %s\nInputs: %s\n", orUnknown(state.Outputs), orUnknown(state.Inputs))
			return nil
		},
	}
	cmd.Flags().StringVar(&device, reg.DeviceOptionName, config.DefaultDeviceName, "Device name")
	return cmd
}

func orUnknown(label string) string {
	if label == "" {
		return "not reported"
	}
	return label
}
