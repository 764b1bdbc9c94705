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

package session

import (
	"context"
	"testing"

	"github.com/arduino/go-paths-helper"
	"github.com/stretchr/testify/require"

	"github.com/webbcam/tiflash/ccxml"
	"github.com/webbcam/tiflash/cli/globals"
	"github.com/webbcam/tiflash/dss"
)

// fakeBridge stands in for the dss bridge: it records the last request
// and replies with a canned response.
type fakeBridge struct {
	req  *dss.Request
	resp *dss.Response
	err  error
}

func (f *fakeBridge) Run(ctx context.Context, req *dss.Request) (*dss.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func testSession(bridge *fakeBridge) *Session {
	return &Session{
		CCXMLPath: paths.New("/tmp/L4000CE.ccxml"),
		Chip:      "Cortex_M3_0",
		bridge:    bridge,
	}
}

func TestFlashRequest(t *testing.T) {
	bridge := &fakeBridge{resp: &dss.Response{Success: true}}
	s := testSession(bridge)

	err := s.Flash(context.Background(), paths.New("/tmp/blink.hex"),
		&ImageArgs{Binary: true, Address: "0x1000"},
		map[string]string{"ResetOnRestart": "true"})
	require.NoError(t, err)

	require.Equal(t, "flash", bridge.req.Command)
	require.Equal(t, "/tmp/L4000CE.ccxml", bridge.req.CCXML)
	require.Equal(t, "Cortex_M3_0", bridge.req.Chip)
	require.Equal(t, map[string]string{"ResetOnRestart": "true"}, bridge.req.Options)
	require.Equal(t, map[string]string{
		"image":   "/tmp/blink.hex",
		"binary":  "true",
		"address": "0x1000",
	}, bridge.req.Params)
	require.False(t, bridge.req.Attach)
}

func TestDriverFailureBecomesError(t *testing.T) {
	bridge := &fakeBridge{resp: &dss.Response{Success: false, Error: "could not connect to target"}}
	s := testSession(bridge)

	err := s.Erase(context.Background(), nil)
	require.EqualError(t, err, "could not connect to target")

	bridge.resp = &dss.Response{Success: false}
	err = s.Reset(context.Background(), nil)
	require.EqualError(t, err, "reset failed")
}

func TestMemoryRead(t *testing.T) {
	bridge := &fakeBridge{resp: &dss.Response{Success: true, Data: []int{0xde, 0xad, 0xbe, 0xef}}}
	s := testSession(bridge)

	data, err := s.MemoryRead(context.Background(), "0x20000000", 4, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, data)
	require.Equal(t, map[string]string{
		"address": "0x20000000",
		"bytes":   "4",
		"page":    "0",
	}, bridge.req.Params)

	bridge.resp = &dss.Response{Success: true, Data: []int{300}}
	_, err = s.MemoryRead(context.Background(), "0x20000000", 1, 0)
	require.Error(t, err)
}

func TestMemoryWrite(t *testing.T) {
	bridge := &fakeBridge{resp: &dss.Response{Success: true}}
	s := testSession(bridge)

	err := s.MemoryWrite(context.Background(), "0x20000000", []byte{1, 2, 255}, 1)
	require.NoError(t, err)
	require.Equal(t, "memory-write", bridge.req.Command)
	require.Equal(t, map[string]string{
		"address": "0x20000000",
		"data":    "1,2,255",
		"page":    "1",
	}, bridge.req.Params)
}

func TestEvaluate(t *testing.T) {
	bridge := &fakeBridge{resp: &dss.Response{Success: true, Result: "0x20000000"}}
	s := testSession(bridge)

	value, err := s.Evaluate(context.Background(), "&g_buffer", "/tmp/blink.out")
	require.NoError(t, err)
	require.Equal(t, "0x20000000", value)
	require.Equal(t, map[string]string{
		"expression": "&g_buffer",
		"symbols":    "/tmp/blink.out",
	}, bridge.req.Params)
}

func TestListOptionsSorted(t *testing.T) {
	bridge := &fakeBridge{resp: &dss.Response{Success: true, Options: map[string]string{
		"ResetOnRestart":      "true",
		"FlashResetType":      "Hard reset",
		"FlashEraseSelection": "Erase main memory only",
	}}}
	s := testSession(bridge)

	options, err := s.ListOptions(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, []OptionValue{
		{ID: "FlashEraseSelection", Value: "Erase main memory only"},
		{ID: "FlashResetType", Value: "Hard reset"},
		{ID: "ResetOnRestart", Value: "true"},
	}, options)
}

func TestGetBoolAndFloatOption(t *testing.T) {
	bridge := &fakeBridge{resp: &dss.Response{Success: true, Result: "True"}}
	s := testSession(bridge)

	b, err := s.GetBoolOption(context.Background(), "ResetOnRestart", "")
	require.NoError(t, err)
	require.True(t, b)
	require.Equal(t, map[string]string{"id": "ResetOnRestart"}, bridge.req.Params)

	bridge.resp = &dss.Response{Success: true, Result: "0x1000"}
	f, err := s.GetFloatOption(context.Background(), "AlgoBaseAddress", "erase")
	require.NoError(t, err)
	require.Equal(t, float64(0x1000), f)
	require.Equal(t, map[string]string{
		"id":            "AlgoBaseAddress",
		"pre-operation": "erase",
	}, bridge.req.Params)
}

func TestAttachRequest(t *testing.T) {
	bridge := &fakeBridge{resp: &dss.Response{Success: true}}
	s := testSession(bridge)
	s.attach = true
	s.workspace = paths.New("/tmp/workspaces/L4000CE")

	require.NoError(t, s.Nop(context.Background()))
	require.True(t, bridge.req.Attach)
	require.Equal(t, "/tmp/workspaces/L4000CE", bridge.req.Workspace)
}

const testDeviceXML = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<device XML_version="1.2" id="CC1310F128" partnum="CC1310F128">
    <cpu HW_revision="1.0" XML_version="1.2" id="Cortex_M3_0" isa="Cortex_M3">
        <property Type="stringfield" Value="TIXDS110_Connection.xml" id="DefaultConnection"/>
    </cpu>
</device>
`

const testConnectionXML = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<connection XML_version="1.2" id="Texas Instruments XDS110 USB Debug Probe"/>
`

// makeCCS builds a throwaway CCS installation with a minimal device
// catalog and redirects the configs cache to a temp dir.
func makeCCS(t *testing.T) *paths.Path {
	ccsPath := paths.New(t.TempDir()).Join("ccs1230")
	targetDB := ccsPath.Join("ccs_base", "common", "targetdb")
	deviceFile := targetDB.Join("devices", "cc1310f128.xml")
	require.NoError(t, deviceFile.Parent().MkdirAll())
	require.NoError(t, deviceFile.WriteFile([]byte(testDeviceXML)))
	connectionFile := targetDB.Join("connections", "TIXDS110_Connection.xml")
	require.NoError(t, connectionFile.Parent().MkdirAll())
	require.NoError(t, connectionFile.WriteFile([]byte(testConnectionXML)))

	configsPath := globals.ConfigsPath
	globals.ConfigsPath = paths.New(t.TempDir())
	t.Cleanup(func() { globals.ConfigsPath = configsPath })

	return ccsPath
}

func TestResolveCCXMLExplicit(t *testing.T) {
	ccsPath := makeCCS(t)

	_, err := resolveCCXML(ccsPath, &Settings{CCXML: "/does/not/exist.ccxml"})
	require.Error(t, err)

	existing := paths.New(t.TempDir()).Join("board.ccxml")
	require.NoError(t, existing.WriteFile([]byte("<configurations/>")))
	resolved, err := resolveCCXML(ccsPath, &Settings{CCXML: existing.String()})
	require.NoError(t, err)
	require.Equal(t, existing.String(), resolved.String())
}

func TestResolveCCXMLNoTarget(t *testing.T) {
	ccsPath := makeCCS(t)
	_, err := resolveCCXML(ccsPath, &Settings{})
	require.Error(t, err)
}

func TestResolveCCXMLGenerates(t *testing.T) {
	ccsPath := makeCCS(t)

	resolved, err := resolveCCXML(ccsPath, &Settings{Serno: "L4000CE", Devicetype: "CC1310F128"})
	require.NoError(t, err)
	require.Equal(t, globals.ConfigsPath.Join("L4000CE.ccxml").String(), resolved.String())

	config, err := ccxml.Load(resolved)
	require.NoError(t, err)
	require.Equal(t, "CC1310F128", config.Devicetype)
	require.Equal(t, "Texas Instruments XDS110 USB Debug Probe", config.Connection)
	require.Equal(t, "L4000CE", config.Serno)
}

func TestResolveCCXMLGenerateNeedsDevicetype(t *testing.T) {
	ccsPath := makeCCS(t)
	_, err := resolveCCXML(ccsPath, &Settings{Serno: "L4000CE"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "devicetype")
}

func TestResolveCCXMLReusesCache(t *testing.T) {
	ccsPath := makeCCS(t)

	first, err := resolveCCXML(ccsPath, &Settings{Serno: "L4000CE", Devicetype: "CC1310F128"})
	require.NoError(t, err)
	stat, err := first.Stat()
	require.NoError(t, err)

	// Same settings, devicetype now implied by the cached file
	second, err := resolveCCXML(ccsPath, &Settings{Serno: "L4000CE"})
	require.NoError(t, err)
	require.Equal(t, first.String(), second.String())
	stat2, err := second.Stat()
	require.NoError(t, err)
	require.Equal(t, stat.ModTime(), stat2.ModTime())
}

func TestResolveCCXMLConflictRegenerates(t *testing.T) {
	ccsPath := makeCCS(t)

	cached := globals.ConfigsPath.Join("L4000CE.ccxml")
	stale := &ccxml.Config{
		Connection:    "Texas Instruments XDS100v2 USB Debug Probe",
		ConnectionXML: "TIXDS100v2_Connection.xml",
		Devicetype:    "MSP432P401R",
		DeviceXML:     "msp432p401r.xml",
		Serno:         "L4000CE",
	}
	require.NoError(t, stale.WriteTo(cached))

	// Asking for a different devicetype invalidates the cached file
	resolved, err := resolveCCXML(ccsPath, &Settings{Serno: "L4000CE", Devicetype: "CC1310F128"})
	require.NoError(t, err)

	config, err := ccxml.Load(resolved)
	require.NoError(t, err)
	require.Equal(t, "CC1310F128", config.Devicetype)
	require.Equal(t, "Texas Instruments XDS110 USB Debug Probe", config.Connection)
}
