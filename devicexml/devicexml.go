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

// Package devicexml reads the device, connection and cpu catalogs of a
// CCS target database (ccs_base/common/targetdb). Catalog files are
// deeply nested vendor XML, so parsing is token based and only pulls the
// handful of attributes tiflash needs.
package devicexml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/arduino/go-paths-helper"
	"golang.org/x/exp/slices"
)

const defaultConnectionPropertyID = "DefaultConnection"

// rootID returns the id attribute of the root element named want in the
// given document.
func rootID(data []byte, want string) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if start, ok := tok.(xml.StartElement); ok {
			if start.Name.Local != want {
				return "", fmt.Errorf("unexpected root element <%s>", start.Name.Local)
			}
			return attr(start, "id"), nil
		}
	}
	return "", fmt.Errorf("no <%s> element found", want)
}

// scanAttr walks the whole document and returns the value of the given
// attribute on the first element with the given name, at any depth.
func scanAttr(data []byte, element, attribute string) (string, bool) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", false
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == element {
			if v := attr(start, attribute); v != "" {
				return v, true
			}
		}
	}
}

func attr(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// listIDs collects the root id of every XML file in the given catalog
// subdirectory, sorted and deduplicated.
func listIDs(dir *paths.Path, rootElement string) ([]string, error) {
	files, err := dir.ReadDir(paths.FilterSuffixes(".xml"))
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", dir, err)
	}
	res := []string{}
	for _, file := range files {
		data, err := file.ReadFile()
		if err != nil {
			return nil, err
		}
		id, err := rootID(data, rootElement)
		if err != nil || id == "" {
			// Vendor catalogs carry the odd helper file, skip them.
			continue
		}
		res = append(res, id)
	}
	slices.Sort(res)
	return slices.Compact(res), nil
}

// ListConnections returns the display names of every connection type
// installed in the target database.
func ListConnections(targetDB *paths.Path) ([]string, error) {
	return listIDs(targetDB.Join("connections"), "connection")
}

// ListDevicetypes returns every devicetype installed in the target database.
func ListDevicetypes(targetDB *paths.Path) ([]string, error) {
	return listIDs(targetDB.Join("devices"), "device")
}

// ListCPUs returns every cpu known to the target database.
func ListCPUs(targetDB *paths.Path) ([]string, error) {
	return listIDs(targetDB.Join("cpus"), "cpu")
}

// DeviceFile finds the catalog file describing the given devicetype.
// Matching is case-insensitive since catalog file ids and user input
// rarely agree on casing.
func DeviceFile(targetDB *paths.Path, devicetype string) (*paths.Path, error) {
	dir := targetDB.Join("devices")
	files, err := dir.ReadDir(paths.FilterSuffixes(".xml"))
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", dir, err)
	}
	for _, file := range files {
		data, err := file.ReadFile()
		if err != nil {
			return nil, err
		}
		id, err := rootID(data, "device")
		if err != nil {
			continue
		}
		if strings.EqualFold(id, devicetype) {
			return file, nil
		}
	}
	return nil, fmt.Errorf("devicetype %q not found in %s", devicetype, dir)
}

// CPU returns the name of the first cpu declared by a device catalog
// file. Devices with multiple cores declare the default debuggable core
// first.
func CPU(deviceFile *paths.Path) (string, error) {
	data, err := deviceFile.ReadFile()
	if err != nil {
		return "", err
	}
	if id, ok := scanAttr(data, "cpu", "id"); ok {
		return id, nil
	}
	return "", fmt.Errorf("no cpu declared in %s", deviceFile)
}

// DefaultConnectionFile returns the connection catalog file name a device
// declares as its default probe, e.g. "TIXDS110_Connection.xml".
func DefaultConnectionFile(deviceFile *paths.Path) (string, error) {
	data, err := deviceFile.ReadFile()
	if err != nil {
		return "", err
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "property" {
			continue
		}
		if attr(start, "id") == defaultConnectionPropertyID {
			if v := attr(start, "Value"); v != "" {
				return v, nil
			}
		}
	}
	return "", fmt.Errorf("no default connection declared in %s", deviceFile)
}

// ConnectionName returns the display name of a connection catalog file.
func ConnectionName(connectionFile *paths.Path) (string, error) {
	data, err := connectionFile.ReadFile()
	if err != nil {
		return "", err
	}
	return rootID(data, "connection")
}

// ConnectionFile finds the catalog file whose display name matches the
// given connection.
func ConnectionFile(targetDB *paths.Path, connection string) (*paths.Path, error) {
	dir := targetDB.Join("connections")
	files, err := dir.ReadDir(paths.FilterSuffixes(".xml"))
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", dir, err)
	}
	for _, file := range files {
		data, err := file.ReadFile()
		if err != nil {
			return nil, err
		}
		id, err := rootID(data, "connection")
		if err != nil {
			continue
		}
		if strings.EqualFold(id, connection) {
			return file, nil
		}
	}
	return nil, fmt.Errorf("connection %q not found in %s", connection, dir)
}
