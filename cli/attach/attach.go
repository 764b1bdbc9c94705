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

// Package attach holds the command that opens a CCS session and leaves
// it attached to the device.
package attach

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/webbcam/tiflash/cli/arguments"
	"github.com/webbcam/tiflash/cli/common"
	"github.com/webbcam/tiflash/cli/feedback"
)

// NewCommand created a new `attach` command
func NewCommand() *cobra.Command {
	var sessionFlags arguments.SessionFlags

	command := &cobra.Command{
		Use:     "attach",
		Short:   "Opens a CCS session attached to the device.",
		Long:    "Opens a CCS debug session and keeps it attached to the target device after the command returns.",
		Example: "  " + os.Args[0] + " attach -s L4000CE",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := common.NewSession(cmd, &sessionFlags, true)
			if err := s.Nop(context.Background()); err != nil {
				feedback.Fatal(fmt.Sprintf("Error during attach: %s", err), feedback.ErrGeneric)
			}
		},
	}
	sessionFlags.AddToCommand(command)
	return command
}
