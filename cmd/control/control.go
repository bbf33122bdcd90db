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
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-camtrig/cmd/control/camera"
	"jinr.ru/greenlab/go-camtrig/cmd/control/output"
	"jinr.ru/greenlab/go-camtrig/cmd/control/reg"
	"jinr.ru/greenlab/go-camtrig/pkg/config"
)

// NewCommand creates a cobra command object for the control server subcommands
func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "control",
		Short: "Run and talk to the control server",
	}
	cmd.AddCommand(NewStartCommand(cfg))
	cmd.AddCommand(NewFrameCommand(cfg))
	cmd.AddCommand(reg.NewCommand(cfg))
	cmd.AddCommand(camera.NewCommand(cfg))
	cmd.AddCommand(output.NewCommand(cfg))
	return cmd
}
