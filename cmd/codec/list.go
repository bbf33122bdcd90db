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
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-camtrig/pkg/reg"
)

func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ADDR\tNAME\tWIDTH\tACCESS\tVALUES")
			for _, d := range reg.Registers() {
				access := "rw"
				if d.ReadOnly {
					access = "r"
				}
				var members []string
				for _, m := range d.Semantic.Members {
					members = append(members, m.Name)
				}
				values := d.Semantic.Name
				if len(members) > 0 {
					values = fmt.Sprintf("%s(%s)", d.Semantic.Name, strings.Join(members, ","))
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", d.Address, d.Name, d.Width, access, values)
			}
			return w.Flush()
		},
	}
	return cmd
}
