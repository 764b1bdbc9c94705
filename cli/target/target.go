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

// Package target holds the commands that change the device flash:
// flash, erase, verify and reset.
package target

import (
	"context"
	"fmt"

	"github.com/webbcam/tiflash/cli/feedback"
	"github.com/webbcam/tiflash/flashopts"
)

// OperationResult reports the boolean outcome of a flash operation.
type OperationResult struct {
	Operation string `json:"operation"`
	Success   bool   `json:"success"`
}

func (r *OperationResult) String() string {
	if r.Success {
		return fmt.Sprintf("%s: success", r.Operation)
	}
	return fmt.Sprintf("%s: failure", r.Operation)
}

// Data implements feedback.Result interface
func (r *OperationResult) Data() interface{} {
	return r
}

// parseOptions validates the --option pairs, exiting through feedback on
// bad input.
func parseOptions(pairs []string) map[string]string {
	opts, err := flashopts.Parse(pairs)
	if err != nil {
		feedback.FatalError(err, feedback.ErrBadArgument)
	}
	return opts
}

func operationContext() context.Context {
	return context.Background()
}
