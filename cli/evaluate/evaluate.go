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

// Package evaluate holds the command that evaluates C/GEL expressions on
// the target.
package evaluate

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/webbcam/tiflash/cli/arguments"
	"github.com/webbcam/tiflash/cli/common"
	"github.com/webbcam/tiflash/cli/feedback"
)

// NewCommand created a new `evaluate` command
func NewCommand() *cobra.Command {
	var sessionFlags arguments.SessionFlags
	var symbolFile string

	command := &cobra.Command{
		Use:   "evaluate <expression>",
		Short: "Evaluates a C or GEL expression on the target.",
		Long:  "Evaluates the given C or GEL expression on the target device, optionally loading a symbol file first.",
		Example: "" +
			"  " + os.Args[0] + " evaluate \"GEL_Go(main)\" -s L4000CE\n" +
			"  " + os.Args[0] + " evaluate counter --symbols firmware.out -s L4000CE\n",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			s := common.NewSession(cmd, &sessionFlags, false)
			value, err := s.Evaluate(context.Background(), args[0], symbolFile)
			if err != nil {
				feedback.Fatal(fmt.Sprintf("Error during evaluate: %s", err), feedback.ErrGeneric)
			}
			feedback.PrintResult(&Result{Expression: args[0], Value: value})
		},
	}
	sessionFlags.AddToCommand(command)
	command.Flags().StringVar(&symbolFile, "symbols", "", "Symbol file (.out or GEL) to load before evaluating")
	return command
}

// Result is the outcome of an expression evaluation.
type Result struct {
	Expression string `json:"expression"`
	Value      string `json:"value"`
}

func (r *Result) String() string {
	return r.Value
}

// Data implements feedback.Result interface
func (r *Result) Data() interface{} {
	return r
}
