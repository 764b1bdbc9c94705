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

// Package ccs locates Code Composer Studio installations on the machine
// and the vendor executables shipped inside them.
package ccs

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/arduino/go-paths-helper"
	"github.com/sirupsen/logrus"
	semver "go.bug.st/relaxed-semver"
	"golang.org/x/exp/slices"
)

// Installation is a single CCS installation found on the machine.
type Installation struct {
	Path    *paths.Path
	Version *semver.RelaxedVersion
}

func (i *Installation) String() string {
	return fmt.Sprintf("%s (%s)", i.Path, i.Version)
}

// searchRoots returns the platform-standard directories TI installers
// put CCS under.
func searchRoots() paths.PathList {
	roots := paths.NewPathList()
	if home, err := os.UserHomeDir(); err == nil {
		roots.Add(paths.New(home, "ti"))
	}
	switch runtime.GOOS {
	case "windows":
		roots.Add(paths.New("C:\\ti"))
	case "darwin":
		roots.Add(paths.New("/Applications/ti"))
	default:
		roots.Add(paths.New("/opt/ti"))
		roots.Add(paths.New("/usr/local/ti"))
	}
	return roots
}

// Installations scans the standard install roots and returns every CCS
// installation found, sorted oldest to newest.
func Installations() []*Installation {
	return installationsIn(searchRoots())
}

func installationsIn(roots paths.PathList) []*Installation {
	res := []*Installation{}
	for _, root := range roots {
		entries, err := root.ReadDir()
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Base()
			if !strings.HasPrefix(name, "ccs") || !entry.Join("ccs_base").IsDir() {
				continue
			}
			version := versionFromName(name)
			if version == nil {
				logrus.Debugf("skipping %s: cannot derive a CCS version from the directory name", entry)
				continue
			}
			res = append(res, &Installation{Path: entry, Version: version})
		}
	}
	slices.SortFunc(res, func(a, b *Installation) bool {
		return a.Version.LessThan(b.Version)
	})
	return res
}

// versionFromName derives the CCS version from the installation directory
// name. TI encodes it as a digit run: "ccsv8" is 8.0.0, "ccs920" is 9.2.0
// and "ccs1230" is 12.3.0 (two-digit major from 10 on).
func versionFromName(name string) *semver.RelaxedVersion {
	digits := strings.TrimLeft(strings.TrimPrefix(name, "ccs"), "v_")
	for _, r := range digits {
		if r < '0' || r > '9' {
			return nil
		}
	}
	var dotted string
	switch len(digits) {
	case 0:
		return nil
	case 1, 2:
		dotted = digits + ".0.0"
	case 3:
		dotted = fmt.Sprintf("%c.%c.%c", digits[0], digits[1], digits[2])
	case 4:
		dotted = fmt.Sprintf("%s.%c.%c", digits[0:2], digits[2], digits[3])
	default:
		return nil
	}
	return semver.ParseRelaxed(dotted)
}

// Find resolves the user-supplied --ccs value: an explicit installation
// path, a version spec ("12", "12.3", "12.3.0"), or empty for the newest
// installation on the machine.
func Find(spec string) (*paths.Path, error) {
	if spec != "" {
		if p := paths.New(spec); p.IsDir() {
			if !p.Join("ccs_base").IsDir() {
				return nil, fmt.Errorf("invalid CCS installation path: %s", spec)
			}
			return p, nil
		}
	}

	installs := Installations()
	if len(installs) == 0 {
		return nil, fmt.Errorf("no CCS installation found, use --ccs to point to a custom one")
	}
	if spec == "" {
		latest := installs[len(installs)-1]
		logrus.Debugf("using latest CCS installation: %s", latest)
		return latest.Path, nil
	}

	for i := len(installs) - 1; i >= 0; i-- {
		if versionMatches(installs[i].Version, spec) {
			logrus.Debugf("using CCS installation: %s", installs[i])
			return installs[i].Path, nil
		}
	}
	return nil, fmt.Errorf("no CCS installation matching %q found", spec)
}

// versionMatches reports whether version matches the requested spec as a
// dotted prefix ("12" and "12.3" both match 12.3.0).
func versionMatches(version *semver.RelaxedVersion, spec string) bool {
	want := strings.Split(spec, ".")
	got := strings.Split(version.String(), ".")
	if len(want) > len(got) {
		return false
	}
	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}

// DSSLauncher returns the path of the Debug Server Scripting launcher
// inside the given CCS installation.
func DSSLauncher(ccsPath *paths.Path) (*paths.Path, error) {
	name := "dss.sh"
	if runtime.GOOS == "windows" {
		name = "dss.bat"
	}
	launcher := ccsPath.Join("ccs_base", "scripting", "bin", name)
	if !launcher.Exist() {
		return nil, fmt.Errorf("debug server launcher not found in %s", ccsPath)
	}
	return launcher, nil
}

// XDSDFU returns the path of the xdsdfu executable used to manage XDS110
// debug probes.
func XDSDFU(ccsPath *paths.Path) (*paths.Path, error) {
	name := "xdsdfu"
	if runtime.GOOS == "windows" {
		name = "xdsdfu.exe"
	}
	exe := ccsPath.Join("ccs_base", "common", "uscif", "xds110", name)
	if !exe.Exist() {
		return nil, fmt.Errorf("xdsdfu not found in %s", ccsPath)
	}
	return exe, nil
}

// TargetDB returns the root of the target database shipped with CCS,
// holding the device, connection and cpu catalogs.
func TargetDB(ccsPath *paths.Path) *paths.Path {
	return ccsPath.Join("ccs_base", "common", "targetdb")
}
