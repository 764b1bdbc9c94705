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

// Package list holds the commands that enumerate what the CCS
// installation knows: connections, devicetypes and cpus.
package list

import (
	"fmt"
	"os"
	"strings"

	"github.com/arduino/go-paths-helper"
	"github.com/spf13/cobra"

	"github.com/webbcam/tiflash/ccs"
	"github.com/webbcam/tiflash/cli/feedback"
	"github.com/webbcam/tiflash/devicexml"
)

// NewCommand created a new `list` command
func NewCommand() *cobra.Command {
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "Lists what the CCS installation supports.",
		Long:    "Lists the connections, devicetypes or cpus installed in the CCS target database.",
		Example: "  " + os.Args[0] + " list devicetypes --search CC13",
	}

	listCmd.AddCommand(newCatalogCommand("connections", "connection types", devicexml.ListConnections))
	listCmd.AddCommand(newCatalogCommand("devicetypes", "devicetypes", devicexml.ListDevicetypes))
	listCmd.AddCommand(newCatalogCommand("cpus", "cpus", devicexml.ListCPUs))

	return listCmd
}

func newCatalogCommand(use, what string, lister func(*paths.Path) ([]string, error)) *cobra.Command {
	var ccsSpec string
	var search string

	command := &cobra.Command{
		Use:     use,
		Short:   fmt.Sprintf("Lists the %s installed in CCS.", what),
		Example: "  " + os.Args[0] + " list " + use,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ccsPath, err := ccs.Find(ccsSpec)
			if err != nil {
				feedback.FatalError(err, feedback.ErrGeneric)
			}
			entries, err := lister(ccs.TargetDB(ccsPath))
			if err != nil {
				feedback.Fatal(fmt.Sprintf("Error listing %s: %s", what, err), feedback.ErrGeneric)
			}
			if search != "" {
				filtered := entries[:0]
				for _, entry := range entries {
					if strings.Contains(strings.ToLower(entry), strings.ToLower(search)) {
						filtered = append(filtered, entry)
					}
				}
				entries = filtered
			}
			feedback.PrintResult(CatalogResult(entries))
		},
	}
	command.Flags().StringVar(&ccsSpec, "ccs", "", "CCS version (e.g.: 12, 12.3) or path to a custom CCS installation")
	command.Flags().StringVar(&search, "search", "", "Only show entries containing this string")
	return command
}

// CatalogResult is a list of target database entries.
type CatalogResult []string

func (c CatalogResult) String() string {
	if len(c) == 0 {
		return "No entries found."
	}
	return strings.Join(c, "\n")
}

// Data implements feedback.Result interface
func (c CatalogResult) Data() interface{} {
	return c
}
