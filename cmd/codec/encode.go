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

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-camtrig/pkg/layers"
	"jinr.ru/greenlab/go-camtrig/pkg/reg"
)

const encodeExample = `
Frame a write of both start flags
# go-camtrig codec encode StartAndStop 'StartCam0|StartCam1'

Frame a timestamped event
# go-camtrig codec encode TriggerFrequencyCam0 500 --type event --timestamp 12.5
`

func NewEncodeCommand() *cobra.Command {
	var messageType string
	var timestamp float64
	cmd := &cobra.Command{
		Use:               "encode NAME VALUE",
		Short:             "Frame a register value, print the frame as hex",
		Example:           encodeExample,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: CompleteRegValue,
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := reg.LookupByName(args[0])
			if err != nil {
				return err
			}
			raw, err := desc.Semantic.Parse(args[1])
			if err != nil {
				return err
			}
			kind, err := layers.ParseMessageType(messageType)
			if err != nil {
				return err
			}
			msg := desc.Encode(kind, raw)
			if cmd.Flags().Changed(TimestampOptionName) {
				msg = desc.EncodeTimestamped(timestamp, kind, raw)
			}
			data, err := msg.Bytes()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "% x\n", data)
			return nil
		},
	}
	cmd.Flags().StringVar(&messageType, TypeOptionName, "write", "Message type. One of read, write, event")
	cmd.Flags().Float64Var(&timestamp, TimestampOptionName, 0, "Device time in seconds")
	return cmd
}
