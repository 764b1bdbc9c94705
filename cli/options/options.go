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

// Package options holds the commands that inspect the device options of
// a session.
package options

import (
	"os"

	"github.com/spf13/cobra"
)

// NewCommand created a new `options` command
func NewCommand() *cobra.Command {
	optionsCmd := &cobra.Command{
		Use:     "options",
		Short:   "Inspects the device options of the target.",
		Long:    "Lists or reads the device options available for the target session. Option sets are device specific.",
		Example: "  " + os.Args[0] + " options list Erase -s L4000CE",
	}

	optionsCmd.AddCommand(newListCommand())
	optionsCmd.AddCommand(newGetCommand())

	return optionsCmd
}
