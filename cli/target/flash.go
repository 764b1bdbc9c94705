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
	"time"

	"github.com/arduino/go-paths-helper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/webbcam/tiflash/cli/arguments"
	"github.com/webbcam/tiflash/cli/common"
	"github.com/webbcam/tiflash/cli/feedback"
	"github.com/webbcam/tiflash/download"
	"github.com/webbcam/tiflash/session"
)

// NewFlashCommand creates a new `flash` command
func NewFlashCommand() *cobra.Command {
	var sessionFlags arguments.SessionFlags
	var operationFlags arguments.OperationFlags
	var binary bool
	var address string
	var url string
	var checksum string
	var retries int

	command := &cobra.Command{
		Use:   "flash <image>",
		Short: "Flashes an image to the target device.",
		Long:  "Programs the image on the target device, applying the given device options first. The image is a linked program (.out) unless --binary is given.",
		Example: "" +
			"  " + os.Args[0] + " flash firmware.out -s L4000CE\n" +
			"  " + os.Args[0] + " flash firmware.bin --binary --address 0x0 -d CC1310F128 -o ResetOnRestart=true\n" +
			"  " + os.Args[0] + " flash --url https://example.com/release/fw.out --checksum SHA-256:deadbeef -s L4000CE\n",
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runFlash(cmd, args, &sessionFlags, &operationFlags, binary, address, url, checksum, retries)
		},
	}
	sessionFlags.AddToCommand(command)
	operationFlags.AddToCommand(command)
	command.Flags().BoolVar(&binary, "binary", false, "Flash the image as a raw binary")
	command.Flags().StringVar(&address, "address", "", "Offset address to flash the image at (raw binaries only)")
	command.Flags().StringVar(&url, "url", "", "Download the image from this URL instead of reading a local file")
	command.Flags().StringVar(&checksum, "checksum", "", "Expected checksum of the downloaded image, as ALGO:hexdigest")
	command.Flags().IntVar(&retries, "retries", 1, "Number of attempts in case of flashing failure")
	return command
}

func runFlash(cmd *cobra.Command, args []string, sessionFlags *arguments.SessionFlags, operationFlags *arguments.OperationFlags, binary bool, address, url, checksum string, retries int) {
	if retries < 1 {
		feedback.Fatal("Number of retries should be at least 1", feedback.ErrBadArgument)
	}
	if (len(args) == 0) == (url == "") {
		feedback.Fatal("Pass either a local image or --url, not both", feedback.ErrBadArgument)
	}

	var imagePath *paths.Path
	if url != "" {
		p, err := download.DownloadImage(url, checksum)
		if err != nil {
			feedback.Fatal(fmt.Sprintf("Error downloading image from %s: %s", url, err), feedback.ErrNetwork)
		}
		logrus.Debugf("image downloaded in %s", p)
		imagePath = p
	} else {
		imagePath = paths.New(args[0])
		if !imagePath.Exist() {
			feedback.Fatal(fmt.Sprintf("image file not found in %s", imagePath), feedback.ErrBadArgument)
		}
	}

	options := parseOptions(operationFlags.Options)
	s := common.NewSession(cmd, sessionFlags, false)
	imageArgs := &session.ImageArgs{Binary: binary, Address: address}

	for retry := 1; ; retry++ {
		logrus.Infof("Flashing image (try %d of %d)", retry, retries)

		err := s.Flash(operationContext(), imagePath, imageArgs, options)
		if err == nil {
			logrus.Info("Operation completed: success! :-)")
			break
		}
		logrus.Error(err)

		if retry == retries {
			feedback.Fatal(fmt.Sprintf("Error during flash: %s", err), feedback.ErrGeneric)
		}

		logrus.Info("Waiting 1 second before retrying...")
		time.Sleep(time.Second)
	}

	feedback.PrintResult(&OperationResult{Operation: "flash", Success: true})
}
