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

package memory

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/webbcam/tiflash/cli/arguments"
	"github.com/webbcam/tiflash/cli/common"
	"github.com/webbcam/tiflash/cli/feedback"
)

func newWriteCommand() *cobra.Command {
	var sessionFlags arguments.SessionFlags
	var page int

	command := &cobra.Command{
		Use:   "write <address> <byte>...",
		Short: "Writes bytes to target memory.",
		Long:  "Writes the given bytes (decimal or 0x-prefixed hex) starting at an address of the target device memory.",
		Example: "" +
			"  " + os.Args[0] + " memory write 0x20000000 0xde 0xad 0xbe 0xef -s L4000CE\n",
		Args: cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			data := make([]byte, 0, len(args)-1)
			for _, arg := range args[1:] {
				v, err := strconv.ParseUint(arg, 0, 8)
				if err != nil {
					feedback.Fatal(fmt.Sprintf("Invalid byte value %q", arg), feedback.ErrBadArgument)
				}
				data = append(data, byte(v))
			}
			s := common.NewSession(cmd, &sessionFlags, false)
			if err := s.MemoryWrite(context.Background(), args[0], data, page); err != nil {
				feedback.Fatal(fmt.Sprintf("Error during memory write: %s", err), feedback.ErrGeneric)
			}
			feedback.PrintResult(&WriteResult{Address: args[0], Page: page, Written: len(data)})
		},
	}
	sessionFlags.AddToCommand(command)
	command.Flags().IntVar(&page, "page", 0, "Memory page to write to")
	return command
}

// WriteResult is the outcome of a memory write.
type WriteResult struct {
	Address string `json:"address"`
	Page    int    `json:"page"`
	Written int    `json:"written"`
}

func (r *WriteResult) String() string {
	return fmt.Sprintf("wrote %d bytes at %s", r.Written, r.Address)
}

// Data implements feedback.Result interface
func (r *WriteResult) Data() interface{} {
	return r
}
