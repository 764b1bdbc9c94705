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

// Package xds110 holds the commands that manage XDS110 debug probes
// through the xdsdfu executable.
package xds110

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/webbcam/tiflash/ccs"
	"github.com/webbcam/tiflash/cli/feedback"
	"github.com/webbcam/tiflash/xds110"
)

// NewCommand created a new `xds110` command
func NewCommand() *cobra.Command {
	xds110Cmd := &cobra.Command{
		Use:     "xds110",
		Short:   "Manages XDS110 debug probes.",
		Long:    "Resets, enumerates and upgrades XDS110 debug probes through the xdsdfu executable shipped with CCS.",
		Example: "  " + os.Args[0] + " xds110 list",
	}

	xds110Cmd.AddCommand(newResetCommand())
	xds110Cmd.AddCommand(newListCommand())
	xds110Cmd.AddCommand(newUpgradeCommand())

	return xds110Cmd
}

func newTool(ccsSpec string) *xds110.Tool {
	ccsPath, err := ccs.Find(ccsSpec)
	if err != nil {
		feedback.FatalError(err, feedback.ErrGeneric)
	}
	tool, err := xds110.New(ccsPath)
	if err != nil {
		feedback.FatalError(err, feedback.ErrMissingProgram)
	}
	return tool
}

func newResetCommand() *cobra.Command {
	var ccsSpec string
	var serno string

	command := &cobra.Command{
		Use:     "reset",
		Short:   "Resets an XDS110 debug probe.",
		Example: "  " + os.Args[0] + " xds110 reset -s L4000CE",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			tool := newTool(ccsSpec)
			if err := tool.Reset(context.Background(), serno); err != nil {
				feedback.Fatal(fmt.Sprintf("Error resetting probe: %s", err), feedback.ErrGeneric)
			}
		},
	}
	command.Flags().StringVar(&ccsSpec, "ccs", "", "CCS version (e.g.: 12, 12.3) or path to a custom CCS installation")
	command.Flags().StringVarP(&serno, "serno", "s", "", "Serial number of the probe to reset")
	return command
}

func newListCommand() *cobra.Command {
	var ccsSpec string

	command := &cobra.Command{
		Use:     "list",
		Short:   "Lists the serial numbers of the connected XDS110 probes.",
		Example: "  " + os.Args[0] + " xds110 list",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			tool := newTool(ccsSpec)
			sernos, err := tool.List(context.Background())
			if err != nil {
				feedback.Fatal(fmt.Sprintf("Error enumerating probes: %s", err), feedback.ErrGeneric)
			}
			feedback.PrintResult(SernosResult(sernos))
		},
	}
	command.Flags().StringVar(&ccsSpec, "ccs", "", "CCS version (e.g.: 12, 12.3) or path to a custom CCS installation")
	return command
}

func newUpgradeCommand() *cobra.Command {
	var ccsSpec string
	var serno string

	command := &cobra.Command{
		Use:     "upgrade",
		Short:   "Upgrades the firmware of an XDS110 debug probe.",
		Long:    "Puts the probe in DFU mode and flashes the probe firmware bundled with the CCS installation.",
		Example: "  " + os.Args[0] + " xds110 upgrade -s L4000CE",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			tool := newTool(ccsSpec)
			if err := tool.Upgrade(context.Background(), serno); err != nil {
				feedback.Fatal(fmt.Sprintf("Error upgrading probe: %s", err), feedback.ErrGeneric)
			}
		},
	}
	command.Flags().StringVar(&ccsSpec, "ccs", "", "CCS version (e.g.: 12, 12.3) or path to a custom CCS installation")
	command.Flags().StringVarP(&serno, "serno", "s", "", "Serial number of the probe to upgrade")
	return command
}

// SernosResult is the list of connected probe serial numbers.
type SernosResult []string

func (s SernosResult) String() string {
	if len(s) == 0 {
		return "No XDS110 probes found."
	}
	return strings.Join(s, "\n")
}

// Data implements feedback.Result interface
func (s SernosResult) Data() interface{} {
	return s
}
