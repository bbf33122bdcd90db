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

package camera

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-camtrig/cmd/control/reg"
	"jinr.ru/greenlab/go-camtrig/pkg/command"
	"jinr.ru/greenlab/go-camtrig/pkg/config"
	"jinr.ru/greenlab/go-camtrig/pkg/srv/control"
)

const (
	CameraOptionName    = "camera"
	SourceOptionName    = "source"
	FrequencyOptionName = "frequency"
	DurationOptionName  = "duration"
	EventOptionName     = "event"
	InvertedOptionName  = "inverted"
	StrobeOptionName    = "strobe"
)

// NewCommand creates a cobra command object for the camera subcommands
func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "camera",
		Short: "Start, stop and configure cameras",
	}
	cmd.AddCommand(NewActionCommand(cfg, "start", "Start acquisition"))
	cmd.AddCommand(NewActionCommand(cfg, "stop", "Stop acquisition"))
	cmd.AddCommand(NewActionCommand(cfg, "single", "Take a single frame"))
	cmd.AddCommand(NewTriggerCommand(cfg))
	cmd.AddCommand(NewEventCommand(cfg))
	cmd.AddCommand(NewLinesCommand(cfg))
	return cmd
}

func NewActionCommand(cfg *config.Config, action, short string) *cobra.Command {
	var device string
	cmd := &cobra.Command{
		Use:     fmt.Sprintf("%s [CAMERA...]", action),
		Short:   fmt.Sprintf("%s. Both cameras if none given", short),
		Example: fmt.Sprintf("# go-camtrig control camera %s 0", action),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cameras []int
			for _, arg := range args {
				cam, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("wrong camera index: %s", arg)
				}
				cameras = append(cameras, cam)
			}
			apiClient := command.NewApiClient(cfg)
			return apiClient.Camera(device, action, cameras...)
		},
	}
	cmd.Flags().StringVar(&device, reg.DeviceOptionName, config.DefaultDeviceName, "Device name")
	return cmd
}

func NewTriggerCommand(cfg *config.Config) *cobra.Command {
	var device string
	setup := &control.TriggerSetup{}
	cmd := &cobra.Command{
		Use:     "trigger",
		Short:   "Configure trigger source, frequency and pulse duration",
		Example: "# go-camtrig control camera trigger --camera 1 --source Internal50Hz --frequency 50 --duration 1000",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			return apiClient.ConfigureTrigger(device, setup)
		},
	}
	cmd.Flags().StringVar(&device, reg.DeviceOptionName, config.DefaultDeviceName, "Device name")
	cmd.Flags().IntVar(&setup.Camera, CameraOptionName, 0, "Camera index")
	cmd.Flags().StringVar(&setup.Source, SourceOptionName, "", "Trigger source, e.g. Internal50Hz or ExternalInput0")
	cmd.MarkFlagRequired(SourceOptionName)
	cmd.Flags().Uint16Var(&setup.Frequency, FrequencyOptionName, 0, "Trigger frequency in Hz, 1 to 1000")
	cmd.MarkFlagRequired(FrequencyOptionName)
	cmd.Flags().Uint16Var(&setup.Duration, DurationOptionName, 0, "Trigger pulse duration in microseconds, at least 100")
	cmd.MarkFlagRequired(DurationOptionName)
	return cmd
}

func NewEventCommand(cfg *config.Config) *cobra.Command {
	var device string
	setup := &control.EventSetup{}
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Select the edge which produces camera events",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			return apiClient.ConfigureEvent(device, setup)
		},
	}
	cmd.Flags().StringVar(&device, reg.DeviceOptionName, config.DefaultDeviceName, "Device name")
	cmd.Flags().IntVar(&setup.Camera, CameraOptionName, 0, "Camera index")
	cmd.Flags().StringVar(&setup.Event, EventOptionName, "", "EventOnStrobe or EventOnTrigger")
	cmd.MarkFlagRequired(EventOptionName)
	return cmd
}

func NewLinesCommand(cfg *config.Config) *cobra.Command {
	var device string
	setup := &control.LinesSetup{}
	cmd := &cobra.Command{
		Use:   "lines",
		Short: "Configure trigger polarity and strobe input",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			return apiClient.ConfigureLines(device, setup)
		},
	}
	cmd.Flags().StringVar(&device, reg.DeviceOptionName, config.DefaultDeviceName, "Device name")
	cmd.Flags().IntVar(&setup.Camera, CameraOptionName, 0, "Camera index")
	cmd.Flags().StringVar(&setup.Inverted, InvertedOptionName, "No", "Invert trigger output. No or Yes")
	cmd.Flags().StringVar(&setup.Strobe, StrobeOptionName, "Direct", "Strobe input. Direct or PullUp")
	return cmd
}
