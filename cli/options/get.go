/*
	tiflash
	Copyright (c) 2021 the tiflash authors.  All right reserved.

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package options

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/webbcam/tiflash/cli/arguments"
	"github.com/webbcam/tiflash/cli/common"
	"github.com/webbcam/tiflash/cli/feedback"
	"github.com/webbcam/tiflash/session"
)

func newGetCommand() *cobra.Command {
	var sessionFlags arguments.SessionFlags
	var preOperation string

	command := &cobra.Command{
		Use:   "get <option-id>",
		Short: "Reads the value of one device option.",
		Long:  "Reads the current value of the given device option, optionally running a flash operation first.",
		Example: "" +
			"  " + os.Args[0] + " options get ResetOnRestart -s L4000CE\n" +
			"  " + os.Args[0] + " options get DeviceInfoRevision --pre-op ReadDeviceInfo -s L4000CE\n",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			s := common.NewSession(cmd, &sessionFlags, false)
			value, err := s.GetOption(context.Background(), args[0], preOperation)
			if err != nil {
				feedback.Fatal(fmt.Sprintf("Error reading option %s: %s", args[0], err), feedback.ErrGeneric)
			}
			feedback.PrintResult(&GetResult{OptionValue: session.OptionValue{ID: args[0], Value: value}})
		},
	}
	sessionFlags.AddToCommand(command)
	command.Flags().StringVar(&preOperation, "pre-op", "", "Flash operation to run before reading the option")
	return command
}

// GetResult is the value of a single device option.
type GetResult struct {
	session.OptionValue
}

func (r *GetResult) String() string {
	return r.Value
}

// Data implements feedback.Result interface
func (r *GetResult) Data() interface{} {
	return r.OptionValue
}
