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
	"testing"

	"github.com/arduino/go-paths-helper"
	"github.com/stretchr/testify/require"
)

func TestArgv(t *testing.T) {
	bridge := &Bridge{
		launcher: paths.New("/opt/ti/ccs1230/ccs_base/scripting/bin/dss.sh"),
		script:   paths.New("/home/test/.cache/tiflash/driver/tiflash_dss.js"),
	}

	req := &Request{
		Command: "flash",
		CCXML:   "/home/test/configs/L4000CE.ccxml",
		Chip:    "Cortex_M3_0",
		Options: map[string]string{
			"ResetOnRestart": "true",
			"FlashResetType": "Hard reset",
		},
		Params: map[string]string{
			"image": "/tmp/blink.hex",
		},
	}

	require.Equal(t, []string{
		"/home/test/.cache/tiflash/driver/tiflash_dss.js",
		"--ccxml", "/home/test/configs/L4000CE.ccxml",
		"--chip", "Cortex_M3_0",
		"--command", "flash",
		"--option", "FlashResetType=Hard reset",
		"--option", "ResetOnRestart=true",
		"--param", "image=/tmp/blink.hex",
	}, bridge.argv(req))
}

func TestArgvAttachAndDebug(t *testing.T) {
	bridge := &Bridge{
		launcher: paths.New("/opt/ti/ccs1230/ccs_base/scripting/bin/dss.sh"),
		script:   paths.New("/tmp/tiflash_dss.js"),
		debug:    true,
	}

	req := &Request{
		Command:   "nop",
		CCXML:     "/tmp/L4000CE.ccxml",
		Chip:      "Cortex_M3_0",
		Attach:    true,
		Workspace: "/tmp/workspaces/L4000CE",
	}

	require.Equal(t, []string{
		"/tmp/tiflash_dss.js",
		"--ccxml", "/tmp/L4000CE.ccxml",
		"--chip", "Cortex_M3_0",
		"--attach", "--workspace", "/tmp/workspaces/L4000CE",
		"--debug",
		"--command", "nop",
	}, bridge.argv(req))
}

func TestParseResponse(t *testing.T) {
	// The JVM and debug server write banners before the driver runs
	stdout := []byte(`
Picked up _JAVA_OPTIONS: -Xmx512m
Loading script...
---
success: true
result: "42"
`)
	resp, err := ParseResponse(stdout)
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, "42", resp.Result)
	require.Empty(t, resp.Error)
}

func TestParseResponseWithData(t *testing.T) {
	stdout := []byte("---\nsuccess: true\ndata: [1, 2, 255]\n")
	resp, err := ParseResponse(stdout)
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, []int{1, 2, 255}, resp.Data)
}

func TestParseResponseFailure(t *testing.T) {
	stdout := []byte("---\nsuccess: false\nerror: \"could not connect to target\"\n")
	resp, err := ParseResponse(stdout)
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, "could not connect to target", resp.Error)
}

func TestParseResponseNoDocument(t *testing.T) {
	_, err := ParseResponse([]byte("SEVERE: Timeout scanning for emulators\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "no response document")
}

func TestParseBool(t *testing.T) {
	testrunner := func(result string, expected, wantErr bool) {
		t.Run(result, func(t *testing.T) {
			b, err := ParseBool(result)
			if wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, expected, b)
		})
	}

	testrunner("true", true, false)
	testrunner("True", true, false)
	testrunner(" FALSE \n", false, false)
	testrunner("1", true, false)
	testrunner("maybe", false, true)
}

func TestParseFloat(t *testing.T) {
	testrunner := func(result string, expected float64, wantErr bool) {
		t.Run(result, func(t *testing.T) {
			f, err := ParseFloat(result)
			if wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, expected, f)
		})
	}

	testrunner("1.5", 1.5, false)
	testrunner("-3", -3, false)
	testrunner("0x20000000", 536870912, false)
	testrunner("0XFF", 255, false)
	testrunner(" 12 ", 12, false)
	testrunner("fast", 0, true)
}
