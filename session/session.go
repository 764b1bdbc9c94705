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

// Package session assembles a debug session on a target device and runs
// operations on it. At the very least the caller provides a serno or a
// devicetype; everything else (CCS installation, target configuration,
// cpu) is resolved from there.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arduino/go-paths-helper"
	"github.com/sirupsen/logrus"

	"github.com/webbcam/tiflash/ccs"
	"github.com/webbcam/tiflash/ccxml"
	"github.com/webbcam/tiflash/cli/globals"
	"github.com/webbcam/tiflash/devicexml"
	"github.com/webbcam/tiflash/dss"
)

// Settings selects the target device and session behavior.
type Settings struct {
	CCS        string  // version spec or custom installation path
	CCXML      string  // existing ccxml file, overrides the fields below
	Serno      string  // debug probe serial number
	Devicetype string  // target devicetype
	Connection string  // connection display name
	Chip       string  // cpu, detected from the device catalog when empty
	Timeout    float64 // seconds to wait for the debug server
	Fresh      bool    // regenerate the target configuration
	Attach     bool    // keep a CCS session attached after the operation
	Debug      bool    // surface debug server output
}

// runner is the piece of the dss bridge the session needs; narrowed to
// an interface so operation logic is testable without a debug server.
type runner interface {
	Run(ctx context.Context, req *dss.Request) (*dss.Response, error)
}

// Session is an assembled target session.
type Session struct {
	CCSPath   *paths.Path
	CCXMLPath *paths.Path
	Chip      string

	bridge    runner
	timeout   time.Duration
	attach    bool
	workspace *paths.Path
}

// New resolves the settings into a ready-to-use Session.
func New(settings *Settings) (*Session, error) {
	ccsPath, err := ccs.Find(settings.CCS)
	if err != nil {
		return nil, err
	}

	ccxmlPath, err := resolveCCXML(ccsPath, settings)
	if err != nil {
		return nil, err
	}

	chip := settings.Chip
	if chip == "" {
		config, err := ccxml.Load(ccxmlPath)
		if err != nil {
			return nil, err
		}
		deviceFile, err := devicexml.DeviceFile(ccs.TargetDB(ccsPath), config.Devicetype)
		if err != nil {
			return nil, err
		}
		chip, err = devicexml.CPU(deviceFile)
		if err != nil {
			return nil, err
		}
		logrus.Debugf("detected cpu %s for devicetype %s", chip, config.Devicetype)
	}

	launcher, err := ccs.DSSLauncher(ccsPath)
	if err != nil {
		return nil, err
	}
	bridge, err := dss.NewBridge(launcher, settings.Debug)
	if err != nil {
		return nil, err
	}

	s := &Session{
		CCSPath:   ccsPath,
		CCXMLPath: ccxmlPath,
		Chip:      chip,
		bridge:    bridge,
		timeout:   time.Duration(settings.Timeout * float64(time.Second)),
		attach:    settings.Attach,
	}
	if settings.Attach {
		name := ccxmlPath.Base()
		name = name[:len(name)-len(ccxmlPath.Ext())]
		s.workspace = globals.WorkspacesPath.Join(name)
		if err := s.workspace.MkdirAll(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// resolveCCXML returns the target configuration to use: an explicit file,
// a cached one matching the requested settings, or a freshly generated
// one.
func resolveCCXML(ccsPath *paths.Path, settings *Settings) (*paths.Path, error) {
	if settings.CCXML != "" {
		p := paths.New(settings.CCXML)
		if !p.Exist() {
			return nil, fmt.Errorf("could not find ccxml: %s", settings.CCXML)
		}
		return p, nil
	}

	var cached *paths.Path
	if settings.Serno != "" {
		cached = globals.ConfigsPath.Join(settings.Serno + ".ccxml")
	} else if settings.Devicetype != "" {
		cached = globals.ConfigsPath.Join(settings.Devicetype + ".ccxml")
	} else {
		return nil, errors.New("could not determine the target, pass --serno, --devicetype or --ccxml")
	}

	fresh := settings.Fresh
	if cached.Exist() && !fresh {
		config, err := ccxml.Load(cached)
		if err != nil {
			return nil, err
		}
		// A cached file only counts when it agrees with what was asked for.
		if settings.Devicetype != "" && settings.Devicetype != config.Devicetype {
			fresh = true
		}
		if settings.Connection != "" && settings.Connection != config.Connection {
			fresh = true
		}
		if settings.Serno != "" && settings.Serno != config.Serno {
			fresh = true
		}
		if !fresh {
			logrus.Debugf("reusing cached target configuration %s", cached)
			return cached, nil
		}
	}

	return generateCCXML(ccsPath, settings, cached)
}

// generateCCXML builds a new target configuration from the device
// catalog and caches it.
func generateCCXML(ccsPath *paths.Path, settings *Settings, dest *paths.Path) (*paths.Path, error) {
	if settings.Devicetype == "" {
		return nil, errors.New("could not determine devicetype to use, pass --devicetype")
	}
	targetDB := ccs.TargetDB(ccsPath)

	deviceFile, err := devicexml.DeviceFile(targetDB, settings.Devicetype)
	if err != nil {
		return nil, err
	}

	connection := settings.Connection
	var connectionFile *paths.Path
	if connection == "" {
		name, err := devicexml.DefaultConnectionFile(deviceFile)
		if err != nil {
			return nil, fmt.Errorf("could not determine connection type to use: %w", err)
		}
		connectionFile = targetDB.Join("connections", name)
		if connection, err = devicexml.ConnectionName(connectionFile); err != nil {
			return nil, err
		}
	} else {
		if connectionFile, err = devicexml.ConnectionFile(targetDB, connection); err != nil {
			return nil, err
		}
	}

	config := &ccxml.Config{
		Connection:    connection,
		ConnectionXML: connectionFile.Base(),
		Devicetype:    settings.Devicetype,
		DeviceXML:     deviceFile.Base(),
		Serno:         settings.Serno,
	}
	if err := config.WriteTo(dest); err != nil {
		return nil, err
	}
	logrus.Infof("generated target configuration %s", dest)
	return dest, nil
}

// request pre-fills the session invariants of a dss request.
func (s *Session) request(command string, options map[string]string, params map[string]string) *dss.Request {
	req := &dss.Request{
		Command: command,
		CCXML:   s.CCXMLPath.String(),
		Chip:    s.Chip,
		Options: options,
		Params:  params,
	}
	if s.attach {
		req.Attach = true
		req.Workspace = s.workspace.String()
	}
	return req
}

// run executes a request with the session timeout applied and converts
// driver failures into errors.
func (s *Session) run(ctx context.Context, req *dss.Request) (*dss.Response, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	resp, err := s.bridge.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		if resp.Error != "" {
			return nil, errors.New(resp.Error)
		}
		return nil, fmt.Errorf("%s failed", req.Command)
	}
	return resp, nil
}
