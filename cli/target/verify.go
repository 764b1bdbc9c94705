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

	"github.com/arduino/go-paths-helper"
	"github.com/spf13/cobra"

	"github.com/webbcam/tiflash/cli/arguments"
	"github.com/webbcam/tiflash/cli/common"
	"github.com/webbcam/tiflash/cli/feedback"
	"github.com/webbcam/tiflash/session"
)

// NewVerifyCommand creates a new `verify` command
func NewVerifyCommand() *cobra.Command {
	var sessionFlags arguments.SessionFlags
	var operationFlags arguments.OperationFlags
	var binary bool
	var address string

	command := &cobra.Command{
		Use:   "verify <image>",
		Short: "Verifies the target device flash against an image.",
		Long:  "Checks that the target device flash contents match the given image, applying the given device options first.",
		Example: "" +
			"  " + os.Args[0] + " verify firmware.out -s L4000CE\n" +
			"  " + os.Args[0] + " verify firmware.bin --binary --address 0x0 -d CC1310F128\n",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			imagePath := paths.New(args[0])
			if !imagePath.Exist() {
				feedback.Fatal(fmt.Sprintf("image file not found in %s", imagePath), feedback.ErrBadArgument)
			}
			options := parseOptions(operationFlags.Options)
			s := common.NewSession(cmd, &sessionFlags, false)
			imageArgs := &session.ImageArgs{Binary: binary, Address: address}
			if err := s.Verify(operationContext(), imagePath, imageArgs, options); err != nil {
				feedback.Fatal(fmt.Sprintf("Error during verify: %s", err), feedback.ErrGeneric)
			}
			feedback.PrintResult(&OperationResult{Operation: "verify", Success: true})
		},
	}
	sessionFlags.AddToCommand(command)
	operationFlags.AddToCommand(command)
	command.Flags().BoolVar(&binary, "binary", false, "Verify the image as a raw binary")
	command.Flags().StringVar(&address, "address", "", "Offset address the image was flashed at (raw binaries only)")
	return command
}
