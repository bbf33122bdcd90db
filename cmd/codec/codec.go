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

	"jinr.ru/greenlab/go-camtrig/pkg/reg"
)

const (
	TypeOptionName      = "type"
	TimestampOptionName = "timestamp"
)

// NewCommand creates a cobra command object for the offline codec subcommands
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codec",
		Short: "Encode and decode register messages without a device",
	}
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewEncodeCommand())
	cmd.AddCommand(NewDecodeCommand())
	return cmd
}

// CompleteRegValue completes a register name as the first argument and
// a member of its semantic as the second one
func CompleteRegValue(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	switch len(args) {
	case 0:
		for _, d := range reg.Registers() {
			if strings.HasPrefix(d.Name, toComplete) {
				names = append(names, d.Name)
			}
		}
	case 1:
		d, err := reg.LookupByName(args[0])
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		for _, m := range d.Semantic.Members {
			if strings.HasPrefix(m.Name, toComplete) {
				names = append(names, m.Name)
			}
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
