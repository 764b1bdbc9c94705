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

package target

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/webbcam/tiflash/cli/arguments"
	"github.com/webbcam/tiflash/cli/common"
	"github.com/webbcam/tiflash/cli/feedback"
)

// NewResetCommand creates a new `reset` command
func NewResetCommand() *cobra.Command {
	var sessionFlags arguments.SessionFlags
	var operationFlags arguments.OperationFlags

	command := &cobra.Command{
		Use:   "reset",
		Short: "Performs a board reset on the target device.",
		Long:  "Performs a board reset on the target device, applying the given device options first (e.g. FlashResetType).",
		Example: "" +
			"  " + os.Args[0] + " reset -s L4000CE\n" +
			"  " + os.Args[0] + " reset -s L4000CE -o FlashResetType=hard\n",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			options := parseOptions(operationFlags.Options)
			s := common.NewSession(cmd, &sessionFlags, false)
			if err := s.Reset(operationContext(), options); err != nil {
				feedback.Fatal(fmt.Sprintf("Error during reset: %s", err), feedback.ErrGeneric)
			}
			feedback.PrintResult(&OperationResult{Operation: "reset", Success: true})
		},
	}
	sessionFlags.AddToCommand(command)
	operationFlags.AddToCommand(command)
	return command
}
