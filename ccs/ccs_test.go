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

package ccs

import (
	"testing"

	"github.com/arduino/go-paths-helper"
	"github.com/stretchr/testify/require"
)

func TestVersionFromName(t *testing.T) {
	testrunner := func(name, expected string) {
		t.Run(name, func(t *testing.T) {
			version := versionFromName(name)
			if expected == "" {
				require.Nil(t, version)
				return
			}
			require.NotNil(t, version)
			require.Equal(t, expected, version.String())
		})
	}

	testrunner("ccsv8", "8.0.0")
	testrunner("ccs9", "9.0.0")
	testrunner("ccs920", "9.2.0")
	testrunner("ccs1011", "10.1.1")
	testrunner("ccs1230", "12.3.0")
	testrunner("ccs", "")
	testrunner("ccs-beta", "")
	testrunner("ccs12345", "")
}

func TestVersionMatches(t *testing.T) {
	version := versionFromName("ccs1230")
	require.NotNil(t, version)

	require.True(t, versionMatches(version, "12"))
	require.True(t, versionMatches(version, "12.3"))
	require.True(t, versionMatches(version, "12.3.0"))
	require.False(t, versionMatches(version, "12.4"))
	require.False(t, versionMatches(version, "9"))
	require.False(t, versionMatches(version, "12.3.0.1"))
}

func makeInstall(t *testing.T, root *paths.Path, name string) *paths.Path {
	install := root.Join(name)
	require.NoError(t, install.Join("ccs_base").MkdirAll())
	return install
}

func TestInstallationsIn(t *testing.T) {
	root := paths.New(t.TempDir())
	makeInstall(t, root, "ccs1230")
	makeInstall(t, root, "ccsv8")
	makeInstall(t, root, "ccs1011")
	// Not an installation: no ccs_base inside
	require.NoError(t, root.Join("ccs999").MkdirAll())
	// Not an installation: unrelated directory
	require.NoError(t, root.Join("xdctools").MkdirAll())

	installs := installationsIn(paths.NewPathList(root.String()))
	require.Len(t, installs, 3)
	require.Equal(t, "8.0.0", installs[0].Version.String())
	require.Equal(t, "10.1.1", installs[1].Version.String())
	require.Equal(t, "12.3.0", installs[2].Version.String())
}

func TestFindWithExplicitPath(t *testing.T) {
	root := paths.New(t.TempDir())
	install := makeInstall(t, root, "ccs1230")

	found, err := Find(install.String())
	require.NoError(t, err)
	require.Equal(t, install.String(), found.String())

	// A directory that is not a CCS installation is rejected
	bogus := root.Join("xdctools")
	require.NoError(t, bogus.MkdirAll())
	_, err = Find(bogus.String())
	require.Error(t, err)
}

func TestDSSLauncher(t *testing.T) {
	root := paths.New(t.TempDir())
	install := makeInstall(t, root, "ccs1230")
	_, err := DSSLauncher(install)
	require.Error(t, err)

	launcher := install.Join("ccs_base", "scripting", "bin", "dss.sh")
	require.NoError(t, launcher.Parent().MkdirAll())
	require.NoError(t, launcher.WriteFile([]byte("#!/bin/sh\n")))

	found, err := DSSLauncher(install)
	require.NoError(t, err)
	require.Equal(t, launcher.String(), found.String())
}

func TestTargetDB(t *testing.T) {
	install := paths.New("/opt/ti/ccs1230")
	require.Equal(t, install.Join("ccs_base", "common", "targetdb").String(), TargetDB(install).String())
}
