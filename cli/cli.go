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

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/webbcam/tiflash/cli/attach"
	"github.com/webbcam/tiflash/cli/evaluate"
	"github.com/webbcam/tiflash/cli/feedback"
	"github.com/webbcam/tiflash/cli/globals"
	"github.com/webbcam/tiflash/cli/list"
	"github.com/webbcam/tiflash/cli/memory"
	"github.com/webbcam/tiflash/cli/options"
	"github.com/webbcam/tiflash/cli/target"
	"github.com/webbcam/tiflash/cli/version"
	"github.com/webbcam/tiflash/cli/xds110"
	v "github.com/webbcam/tiflash/version"
)

var (
	outputFormat string
	logFile      string
	logFormat    string
)

// NewCommand creates a new tiflash command root
func NewCommand() *cobra.Command {
	// tiflash is the root command
	tiflashCli := &cobra.Command{
		Use:              "tiflash",
		Short:            "tiflash.",
		Long:             "Flash, erase and inspect Texas Instruments devices through the CCS debug server.",
		Example:          "  " + os.Args[0] + " flash firmware.out -s L4000CE",
		Args:             cobra.NoArgs,
		PersistentPreRun: preRun,
	}

	tiflashCli.AddCommand(target.NewFlashCommand())
	tiflashCli.AddCommand(target.NewEraseCommand())
	tiflashCli.AddCommand(target.NewVerifyCommand())
	tiflashCli.AddCommand(target.NewResetCommand())
	tiflashCli.AddCommand(memory.NewCommand())
	tiflashCli.AddCommand(evaluate.NewCommand())
	tiflashCli.AddCommand(attach.NewCommand())
	tiflashCli.AddCommand(options.NewCommand())
	tiflashCli.AddCommand(list.NewCommand())
	tiflashCli.AddCommand(xds110.NewCommand())
	tiflashCli.AddCommand(version.NewCommand())

	tiflashCli.PersistentFlags().StringVar(&outputFormat, "format", "text", "The output format, can be {text|json}.")
	tiflashCli.PersistentFlags().StringVar(&globals.ConfigFile, "config", "", "Path to the configuration file with default session settings")

	tiflashCli.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to the file where logs will be written")
	tiflashCli.PersistentFlags().StringVar(&logFormat, "log-format", "", "The output format for the logs, can be {text|json}.")
	tiflashCli.PersistentFlags().StringVar(&globals.LogLevel, "log-level", "info", "Messages with this level and above will be logged. Valid levels are: trace, debug, info, warn, error, fatal, panic")
	tiflashCli.PersistentFlags().BoolVarP(&globals.Verbose, "verbose", "v", false, "Print the logs on the standard output.")

	return tiflashCli
}

// Convert the string passed to the `--log-level` option to the corresponding
// logrus formal level.
func toLogLevel(s string) (t logrus.Level, found bool) {
	t, found = map[string]logrus.Level{
		"trace": logrus.TraceLevel,
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel,
		"panic": logrus.PanicLevel,
	}[s]

	return
}

func preRun(cmd *cobra.Command, args []string) {
	// Prepare logging
	if globals.Verbose {
		// if we print on stdout, do it in full colors
		logrus.SetOutput(colorable.NewColorableStdout())
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors: true,
		})
	} else {
		logrus.SetOutput(io.Discard)
	}

	// Normalize the format strings
	logFormat = strings.ToLower(logFormat)
	if logFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			fmt.Printf("Unable to open file for logging: %s", logFile)
			os.Exit(int(feedback.ErrGeneric))
		}

		// Use a hook so we don't get color codes in the log file
		if logFormat == "json" {
			logrus.AddHook(lfshook.NewHook(file, &logrus.JSONFormatter{}))
		} else {
			logrus.AddHook(lfshook.NewHook(file, &logrus.TextFormatter{}))
		}
	}

	// Configure logging filter
	if lvl, found := toLogLevel(globals.LogLevel); !found {
		feedback.Fatal(fmt.Sprintf("Invalid option for --log-level: %s", globals.LogLevel), feedback.ErrBadArgument)
	} else {
		logrus.SetLevel(lvl)
	}

	//
	// Prepare the Feedback system
	//

	// normalize the format strings
	outputFormat = strings.ToLower(outputFormat)
	// check the right output format was passed
	format, found := feedback.ParseOutputFormat(outputFormat)
	if !found {
		feedback.Fatal(fmt.Sprintf("Invalid output format: %s", outputFormat), feedback.ErrBadArgument)
	}

	// use the output format to configure the Feedback
	feedback.SetFormat(format)

	logrus.Info(v.VersionInfo)

	if format != feedback.Text {
		cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
			logrus.Warn("Calling help on JSON format")
			feedback.Fatal("Invalid Call : should show Help, but it is available only in TEXT mode.", feedback.ErrBadArgument)
		})
	}
}
