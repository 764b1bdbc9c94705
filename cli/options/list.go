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
	"strings"

	"github.com/spf13/cobra"

	"github.com/webbcam/tiflash/cli/arguments"
	"github.com/webbcam/tiflash/cli/common"
	"github.com/webbcam/tiflash/cli/feedback"
	"github.com/webbcam/tiflash/session"
)

func newListCommand() *cobra.Command {
	var sessionFlags arguments.SessionFlags

	command := &cobra.Command{
		Use:   "list [filter]",
		Short: "Lists the device options of the target.",
		Long:  "Lists the device options available for the target session and their current values, optionally filtered by id substring.",
		Example: "" +
			"  " + os.Args[0] + " options list -s L4000CE\n" +
			"  " + os.Args[0] + " options list Erase -s L4000CE\n",
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			s := common.NewSession(cmd, &sessionFlags, false)
			opts, err := s.ListOptions(context.Background(), filter)
			if err != nil {
				feedback.Fatal(fmt.Sprintf("Error listing options: %s", err), feedback.ErrGeneric)
			}
			feedback.PrintResult(ListResult(opts))
		},
	}
	sessionFlags.AddToCommand(command)
	return command
}

// ListResult is the list of device options and their values.
type ListResult []session.OptionValue

func (l ListResult) String() string {
	if len(l) == 0 {
		return "No options available."
	}
	lines := make([]string, len(l))
	for i, opt := range l {
		lines[i] = fmt.Sprintf("%s = %s", opt.ID, opt.Value)
	}
	return strings.Join(lines, "\n")
}

// Data implements feedback.Result interface
func (l ListResult) Data() interface{} {
	return l
}
