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

// Package memory holds the commands that read and write raw target memory.
package memory

import (
	"os"

	"github.com/spf13/cobra"
)

// NewCommand created a new `memory` command
func NewCommand() *cobra.Command {
	memoryCmd := &cobra.Command{
		Use:     "memory",
		Short:   "Reads or writes raw target memory.",
		Long:    "Reads or writes bytes at an address of the target device memory.",
		Example: "  " + os.Args[0] + " memory read 0x20000000 --bytes 4 -s L4000CE",
	}

	memoryCmd.AddCommand(newReadCommand())
	memoryCmd.AddCommand(newWriteCommand())

	return memoryCmd
}
