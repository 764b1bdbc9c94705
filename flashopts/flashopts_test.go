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

package flashopts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	testrunner := func(id, value, expected string, wantErr bool) {
		t.Run(id+"="+value, func(t *testing.T) {
			canonical, err := Validate(id, value)
			if wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, expected, canonical)
		})
	}

	testrunner("ResetOnRestart", "true", "true", false)
	testrunner("ResetOnRestart", "True", "true", false)
	testrunner("ResetOnRestart", "0", "false", false)
	testrunner("ResetOnRestart", "yes", "", true)

	testrunner("FlashResetType", "hard", "Hard reset", false)
	testrunner("FlashResetType", "Soft reset", "Soft reset", false)
	testrunner("FlashResetType", "soft RESET", "Soft reset", false)
	testrunner("FlashResetType", "medium", "", true)

	testrunner("FlashEraseSelection", "main", "Erase main memory only", false)
	testrunner("FlashEraseSelection", "factory",
		"Erase main, information and protected information memory", false)
	testrunner("FlashEraseSelection", "none", "Do not erase Flash memory", false)
	testrunner("FlashEraseSelection", "everything", "", true)

	testrunner("VerifyAfterProgramLoad", "fast", "Fast verification", false)
	testrunner("VerifyAfterProgramLoad", "Full verification", "Full verification", false)

	// Unknown ids pass through untouched
	testrunner("DeviceInfoPageAddress", "0x1000", "0x1000", false)
}

func TestParse(t *testing.T) {
	opts, err := Parse([]string{
		"FlashResetType=hard",
		"ResetOnRestart=TRUE",
		"AlgoBaseAddress=0x20000000",
	})
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"FlashResetType":  "Hard reset",
		"ResetOnRestart":  "true",
		"AlgoBaseAddress": "0x20000000",
	}, opts)
}

func TestParseEmpty(t *testing.T) {
	opts, err := Parse(nil)
	require.NoError(t, err)
	require.Nil(t, opts)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]string{"FlashResetType"})
	require.Error(t, err)

	_, err = Parse([]string{"=true"})
	require.Error(t, err)

	_, err = Parse([]string{"FlashResetType=medium"})
	require.Error(t, err)
}

func TestLookupAndKnown(t *testing.T) {
	opt, ok := Lookup("FlashEraseSelection")
	require.True(t, ok)
	require.Equal(t, Enum, opt.Kind)
	require.Len(t, opt.Choices, 5)

	_, ok = Lookup("NotAnOption")
	require.False(t, ok)

	known := Known()
	require.Contains(t, known, "ResetOnRestart")
	require.IsNonDecreasing(t, known)
}
