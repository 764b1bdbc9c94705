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

package ccxml

import (
	"strings"
	"testing"

	"github.com/arduino/go-paths-helper"
	"github.com/stretchr/testify/require"
)

var testConfig = &Config{
	Connection:    "Texas Instruments XDS110 USB Debug Probe",
	ConnectionXML: "TIXDS110_Connection.xml",
	Devicetype:    "CC1310F128",
	DeviceXML:     "cc1310f128.xml",
	Serno:         "L4000CE",
}

func TestRoundTrip(t *testing.T) {
	path := paths.New(t.TempDir()).Join("configs", "L4000CE.ccxml")
	require.NoError(t, testConfig.WriteTo(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, testConfig, loaded)
}

func TestRoundTripWithoutSerno(t *testing.T) {
	config := &Config{
		Connection:    "Texas Instruments XDS110 USB Debug Probe",
		ConnectionXML: "TIXDS110_Connection.xml",
		Devicetype:    "MSP432P401R",
		DeviceXML:     "msp432p401r.xml",
	}
	path := paths.New(t.TempDir()).Join("MSP432P401R.ccxml")
	require.NoError(t, config.WriteTo(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, config, loaded)
	require.Empty(t, loaded.Serno)
}

func TestWriteToProducesValidDocument(t *testing.T) {
	path := paths.New(t.TempDir()).Join("L4000CE.ccxml")
	require.NoError(t, testConfig.WriteTo(path))

	data, err := path.ReadFile()
	require.NoError(t, err)
	content := string(data)
	require.True(t, strings.HasPrefix(content, "<?xml"))
	require.Contains(t, content, `href="connections/TIXDS110_Connection.xml"`)
	require.Contains(t, content, `href="devices/cc1310f128.xml"`)
	require.Contains(t, content, "L4000CE")
}

func TestName(t *testing.T) {
	require.Equal(t, "L4000CE", testConfig.Name())

	noSerno := *testConfig
	noSerno.Serno = ""
	require.Equal(t, "CC1310F128", noSerno.Name())
}

func TestLoadMalformed(t *testing.T) {
	path := paths.New(t.TempDir()).Join("broken.ccxml")
	require.NoError(t, path.WriteFile([]byte("<configurations><configuration>")))
	_, err := Load(path)
	require.Error(t, err)

	require.NoError(t, path.WriteFile([]byte(`<?xml version="1.0"?><configurations/>`)))
	_, err = Load(path)
	require.Error(t, err)
}
