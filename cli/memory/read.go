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
	"strings"

	"github.com/spf13/cobra"

	"github.com/webbcam/tiflash/cli/arguments"
	"github.com/webbcam/tiflash/cli/common"
	"github.com/webbcam/tiflash/cli/feedback"
)

func newReadCommand() *cobra.Command {
	var sessionFlags arguments.SessionFlags
	var numBytes int
	var page int

	command := &cobra.Command{
		Use:   "read <address>",
		Short: "Reads bytes from target memory.",
		Long:  "Reads the given number of bytes starting at an address of the target device memory.",
		Example: "" +
			"  " + os.Args[0] + " memory read 0x20000000 --bytes 16 -s L4000CE\n",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if numBytes < 1 {
				feedback.Fatal("Number of bytes to read should be at least 1", feedback.ErrBadArgument)
			}
			s := common.NewSession(cmd, &sessionFlags, false)
			data, err := s.MemoryRead(context.Background(), args[0], numBytes, page)
			if err != nil {
				feedback.Fatal(fmt.Sprintf("Error during memory read: %s", err), feedback.ErrGeneric)
			}
			feedback.PrintResult(&ReadResult{Address: args[0], Page: page, Bytes: data})
		},
	}
	sessionFlags.AddToCommand(command)
	command.Flags().IntVar(&numBytes, "bytes", 1, "Number of bytes to read")
	command.Flags().IntVar(&page, "page", 0, "Memory page to read from")
	return command
}

// ReadResult is the outcome of a memory read.
type ReadResult struct {
	Address string `json:"address"`
	Page    int    `json:"page"`
	Bytes   []byte `json:"bytes"`
}

func (r *ReadResult) String() string {
	hex := make([]string, len(r.Bytes))
	for i, b := range r.Bytes {
		hex[i] = fmt.Sprintf("%02x", b)
	}
	return fmt.Sprintf("%s: %s", r.Address, strings.Join(hex, " "))
}

// Data implements feedback.Result interface
func (r *ReadResult) Data() interface{} {
	return r
}
