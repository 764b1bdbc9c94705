/*
	Copyright 2021 the tiflash authors.

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

package arguments

import (
	"github.com/spf13/cobra"
)

// SessionFlags contains the flags shared by every command that opens a
// debug session on a target. This is useful so all commands that need
// this information are consistent with each other.
type SessionFlags struct {
	CCS        string
	CCXML      string
	Serno      string
	Devicetype string
	Connection string
	Chip       string
	Timeout    float64
	Fresh      bool
}

// AddToCommand adds the flags used to select the target device to the specified Command
func (f *SessionFlags) AddToCommand(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.CCS, "ccs", "", "CCS version (e.g.: 12, 12.3) or path to a custom CCS installation")
	cmd.Flags().StringVar(&f.CCXML, "ccxml", "", "Path to an existing ccxml target configuration file")
	cmd.Flags().StringVarP(&f.Serno, "serno", "s", "", "Serial number of the debug probe connected to the target, e.g.: L4000CE")
	cmd.Flags().StringVarP(&f.Devicetype, "devicetype", "d", "", "Devicetype of the target, e.g.: CC1310F128")
	cmd.Flags().StringVarP(&f.Connection, "connection", "c", "", "Connection type to use, e.g.: Texas Instruments XDS110 USB Debug Probe")
	cmd.Flags().StringVar(&f.Chip, "chip", "", "CPU/core to open the session on (detected from the device catalog when omitted)")
	cmd.Flags().Float64Var(&f.Timeout, "timeout", 60, "Seconds to wait for the debug server before giving up")
	cmd.Flags().BoolVar(&f.Fresh, "fresh", false, "Regenerate the target configuration even if a cached one exists")
}

// OperationFlags contains the flags shared by the commands that modify
// the target flash (flash, erase, verify, reset).
type OperationFlags struct {
	Options []string
}

// AddToCommand adds the --option flag to the specified Command
func (f *OperationFlags) AddToCommand(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.Options, "option", "o", nil, "Device option to set before the operation, as Name=Value, multiple values allowed")
}
