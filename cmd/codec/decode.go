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

package codec

import (
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-camtrig/pkg/reg"
	"jinr.ru/greenlab/go-camtrig/pkg/srv/control"
)

func NewDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decode FRAME",
		Short:   "Decode a hex frame",
		Example: "# go-camtrig codec decode 02 05 24 ff 01 03 2e",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := control.ParseFrameHex(strings.Join(args, " "))
			if err != nil {
				return err
			}
			msg, err := reg.ParseMessage(frame)
			if err != nil {
				return err
			}
			regHex, err := control.NewRegHex(msg)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(regHex)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	return cmd
}
