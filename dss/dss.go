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

// Package dss drives the Debug Server Scripting environment shipped with
// CCS. Every device operation is one run of the DSS launcher with the
// embedded driver script; the driver prints a YAML document on stdout
// that this package decodes.
package dss

import (
	"context"
	"fmt"

	"github.com/arduino/go-paths-helper"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Bridge runs operations through a DSS launcher.
type Bridge struct {
	launcher *paths.Path
	script   *paths.Path
	debug    bool
}

// Request describes one operation to run on the target.
type Request struct {
	// Command is the driver operation: flash, erase, verify, reset,
	// memory-read, memory-write, evaluate, list-options, get-option, nop.
	Command string

	// CCXML is the full path of the target configuration to open.
	CCXML string

	// Chip is the cpu to open the session on.
	Chip string

	// Attach keeps a CCS session attached to the device after the
	// operation; Workspace is the CCS workspace to attach with.
	Attach    bool
	Workspace string

	// Options are device options set before running the command.
	Options map[string]string

	// Params are command-specific arguments (image, address, ...).
	Params map[string]string
}

// Response is the document the driver script prints.
type Response struct {
	Success bool              `yaml:"success"`
	Result  string            `yaml:"result"`
	Data    []int             `yaml:"data"`
	Options map[string]string `yaml:"options"`
	Error   string            `yaml:"error"`
}

// NewBridge creates a Bridge for the given DSS launcher. The embedded
// driver script is materialized under the tiflash cache dir on first use.
func NewBridge(launcher *paths.Path, debug bool) (*Bridge, error) {
	script, err := driverScript()
	if err != nil {
		return nil, fmt.Errorf("installing driver script: %w", err)
	}
	return &Bridge{launcher: launcher, script: script, debug: debug}, nil
}

// argv builds the command line handed to the DSS launcher. Map entries
// are emitted in sorted order so invocations are reproducible.
func (b *Bridge) argv(req *Request) []string {
	args := []string{b.script.String(), "--ccxml", req.CCXML, "--chip", req.Chip}
	if req.Attach {
		args = append(args, "--attach", "--workspace", req.Workspace)
	}
	if b.debug {
		args = append(args, "--debug")
	}
	args = append(args, "--command", req.Command)
	for _, k := range sortedKeys(req.Options) {
		args = append(args, "--option", k+"="+req.Options[k])
	}
	for _, k := range sortedKeys(req.Params) {
		args = append(args, "--param", k+"="+req.Params[k])
	}
	return args
}

func sortedKeys(m map[string]string) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// Run executes one operation and decodes the driver response. The
// context bounds the whole subprocess run.
func (b *Bridge) Run(ctx context.Context, req *Request) (*Response, error) {
	args := b.argv(req)
	logrus.WithField("launcher", b.launcher).Debugf("running dss: %v", args)

	proc, err := paths.NewProcessFromPath(nil, b.launcher, args...)
	if err != nil {
		return nil, err
	}
	stdout, stderr, err := proc.RunAndCaptureOutput(ctx)
	if b.debug && len(stderr) > 0 {
		logrus.Debugf("dss stderr: %s", stderr)
	}
	if err != nil {
		// The launcher exits nonzero on driver failures too; prefer the
		// structured error when the driver managed to print one.
		if resp, perr := ParseResponse(stdout); perr == nil && resp.Error != "" {
			return resp, nil
		}
		return nil, fmt.Errorf("debug server failed: %w", err)
	}
	return ParseResponse(stdout)
}
