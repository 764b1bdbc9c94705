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

package globals

import (
	"github.com/adrg/xdg"
	"github.com/arduino/go-paths-helper"
)

var (
	// TiflashPath is the scratch directory where downloaded images and the
	// extracted debug-server driver script are kept.
	TiflashPath = paths.New(xdg.CacheHome).Join("tiflash")

	// ConfigsPath is where generated target configurations (ccxml) are cached.
	ConfigsPath = paths.New(xdg.DataHome).Join("tiflash", "configs")

	// WorkspacesPath hosts the throwaway CCS workspaces used by attach sessions.
	WorkspacesPath = paths.New(xdg.DataHome).Join("tiflash", "workspaces")

	// LogLevel is the current log level
	LogLevel string

	// Verbose if true prints the logs on stdout
	Verbose bool

	// ConfigFile is the user configuration file path given with --config
	ConfigFile string
)
