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

package dss

import (
	"bytes"
	_ "embed"

	"github.com/arduino/go-paths-helper"
	"github.com/webbcam/tiflash/cli/globals"
)

//go:embed driver.js
var driverJS []byte

// driverScript materializes the embedded driver under the tiflash cache
// dir so the DSS launcher can load it, rewriting it when the embedded
// copy changed.
func driverScript() (*paths.Path, error) {
	script := globals.TiflashPath.Join("driver", "tiflash_dss.js")
	if current, err := script.ReadFile(); err == nil && bytes.Equal(current, driverJS) {
		return script, nil
	}
	if err := script.Parent().MkdirAll(); err != nil {
		return nil, err
	}
	if err := script.WriteFile(driverJS); err != nil {
		return nil, err
	}
	return script, nil
}
