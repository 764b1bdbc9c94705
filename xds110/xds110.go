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

// Package xds110 wraps the xdsdfu executable shipped with CCS to manage
// XDS110 debug probes outside of a debug session.
package xds110

import (
	"context"
	"fmt"
	"regexp"

	"github.com/arduino/go-paths-helper"
	"github.com/sirupsen/logrus"

	"github.com/webbcam/tiflash/ccs"
)

// Tool invokes xdsdfu.
type Tool struct {
	exe *paths.Path
}

// New locates xdsdfu in the given CCS installation.
func New(ccsPath *paths.Path) (*Tool, error) {
	exe, err := ccs.XDSDFU(ccsPath)
	if err != nil {
		return nil, err
	}
	return &Tool{exe: exe}, nil
}

func (t *Tool) run(ctx context.Context, args ...string) ([]byte, error) {
	proc, err := paths.NewProcessFromPath(nil, t.exe, args...)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("running xdsdfu %v", args)
	stdout, stderr, err := proc.RunAndCaptureOutput(ctx)
	if err != nil {
		return nil, fmt.Errorf("xdsdfu %v failed: %w (%s)", args, err, stderr)
	}
	return stdout, nil
}

var sernoRe = regexp.MustCompile(`(?m)^\s*Serial Num:\s+(\S+)`)

// List returns the serial numbers of the connected XDS110 probes.
func (t *Tool) List(ctx context.Context) ([]string, error) {
	out, err := t.run(ctx, "-e")
	if err != nil {
		return nil, err
	}
	return ParseSernos(out), nil
}

// ParseSernos extracts probe serial numbers from xdsdfu enumeration
// output.
func ParseSernos(out []byte) []string {
	res := []string{}
	for _, m := range sernoRe.FindAllSubmatch(out, -1) {
		res = append(res, string(m[1]))
	}
	return res
}

// Reset power-cycles the probe with the given serial number.
func (t *Tool) Reset(ctx context.Context, serno string) error {
	if serno == "" {
		return fmt.Errorf("a serial number is required to reset a probe")
	}
	_, err := t.run(ctx, "-s", serno, "-r")
	return err
}

// Upgrade reflashes the probe firmware bundled with CCS: the probe is
// put in DFU mode first, then the firmware image found next to xdsdfu
// is programmed and the probe reset.
func (t *Tool) Upgrade(ctx context.Context, serno string) error {
	firmware := t.exe.Parent().Join("firmware.bin")
	if !firmware.Exist() {
		return fmt.Errorf("probe firmware not found at %s", firmware)
	}
	if serno != "" {
		if _, err := t.run(ctx, "-s", serno, "-m"); err != nil {
			return err
		}
	} else {
		if _, err := t.run(ctx, "-m"); err != nil {
			return err
		}
	}
	_, err := t.run(ctx, "-f", firmware.String(), "-r")
	return err
}
