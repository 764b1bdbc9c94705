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

// Package ccxml generates and parses CCS target-configuration (ccxml)
// files. A ccxml ties together a connection (debug probe), a devicetype
// and optionally the probe serial number; the debug server takes it as
// the description of the session to open.
package ccxml

import (
	"encoding/xml"
	"fmt"

	"github.com/arduino/go-paths-helper"
)

const (
	xmlVersion = "1.2"

	probeSelectionID = "Debug Probe Selection"
	sernoChoiceName  = "Select by serial number"
	sernoPropertyID  = "-- Enter the serial number"
	sernoChoiceValue = "1"
)

// Config is the information tiflash cares about in a ccxml file.
type Config struct {
	Connection    string // display name, e.g. "Texas Instruments XDS110 USB Debug Probe"
	ConnectionXML string // catalog file name, e.g. "TIXDS110_Connection.xml"
	Devicetype    string // e.g. "CC1310F128"
	DeviceXML     string // catalog file name, e.g. "cc1310f128.xml"
	Serno         string // debug probe serial number, may be empty
}

// Name returns the base name used to cache this configuration: the serno
// when the probe is selected by serial number, the devicetype otherwise.
func (c *Config) Name() string {
	if c.Serno != "" {
		return c.Serno
	}
	return c.Devicetype
}

type xmlConfigurations struct {
	XMLName    xml.Name         `xml:"configurations"`
	XMLVersion string           `xml:"XML_version,attr"`
	ID         string           `xml:"id,attr"`
	Config     xmlConfiguration `xml:"configuration"`
}

type xmlConfiguration struct {
	XMLVersion string        `xml:"XML_version,attr"`
	ID         string        `xml:"id,attr"`
	Instance   xmlInstance   `xml:"instance"`
	Connection xmlConnection `xml:"connection"`
}

type xmlInstance struct {
	XMLVersion string `xml:"XML_version,attr"`
	Desc       string `xml:"desc,attr,omitempty"`
	Href       string `xml:"href,attr"`
	ID         string `xml:"id,attr"`
	XML        string `xml:"xml,attr"`
	XMLPath    string `xml:"xmlpath,attr"`
}

type xmlConnection struct {
	XMLVersion string        `xml:"XML_version,attr"`
	ID         string        `xml:"id,attr"`
	Properties []xmlProperty `xml:"property"`
	Platform   xmlPlatform   `xml:"platform"`
}

type xmlProperty struct {
	Type    string      `xml:"Type,attr,omitempty"`
	Value   string      `xml:"Value,attr,omitempty"`
	ID      string      `xml:"id,attr"`
	Choices []xmlChoice `xml:"choice"`
}

type xmlChoice struct {
	Name       string        `xml:"Name,attr"`
	Value      string        `xml:"value,attr"`
	Properties []xmlProperty `xml:"property"`
}

type xmlPlatform struct {
	XMLVersion string        `xml:"XML_version,attr"`
	ID         string        `xml:"id,attr"`
	Instances  []xmlInstance `xml:"instance"`
}

// WriteTo renders the configuration as a ccxml document at the given path,
// creating parent directories as needed.
func (c *Config) WriteTo(path *paths.Path) error {
	doc := &xmlConfigurations{
		XMLVersion: xmlVersion,
		ID:         "configurations_0",
		Config: xmlConfiguration{
			XMLVersion: xmlVersion,
			ID:         "configuration_0",
			Instance: xmlInstance{
				XMLVersion: xmlVersion,
				Desc:       c.Connection,
				Href:       "connections/" + c.ConnectionXML,
				ID:         c.Connection,
				XML:        c.ConnectionXML,
				XMLPath:    "connections",
			},
			Connection: xmlConnection{
				XMLVersion: xmlVersion,
				ID:         c.Connection,
				Platform: xmlPlatform{
					XMLVersion: xmlVersion,
					ID:         "platform_0",
					Instances: []xmlInstance{{
						XMLVersion: xmlVersion,
						Desc:       c.Devicetype,
						Href:       "devices/" + c.DeviceXML,
						ID:         c.Devicetype,
						XML:        c.DeviceXML,
						XMLPath:    "devices",
					}},
				},
			},
		},
	}
	if c.Serno != "" {
		doc.Config.Connection.Properties = []xmlProperty{{
			Type:  "choicelist",
			Value: sernoChoiceValue,
			ID:    probeSelectionID,
			Choices: []xmlChoice{{
				Name:  sernoChoiceName,
				Value: sernoChoiceValue,
				Properties: []xmlProperty{{
					Type:  "stringfield",
					Value: c.Serno,
					ID:    sernoPropertyID,
				}},
			}},
		}}
	}

	data, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}
	data = append([]byte(xml.Header), data...)
	if err := path.Parent().MkdirAll(); err != nil {
		return err
	}
	return path.WriteFile(data)
}

// Load parses an existing ccxml file back into a Config.
func Load(path *paths.Path) (*Config, error) {
	data, err := path.ReadFile()
	if err != nil {
		return nil, err
	}
	var doc xmlConfigurations
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed ccxml %s: %w", path, err)
	}

	conn := &doc.Config.Connection
	res := &Config{
		Connection:    conn.ID,
		ConnectionXML: doc.Config.Instance.XML,
	}
	if len(conn.Platform.Instances) == 0 {
		return nil, fmt.Errorf("malformed ccxml %s: no device instance", path)
	}
	res.Devicetype = conn.Platform.Instances[0].ID
	res.DeviceXML = conn.Platform.Instances[0].XML

	for _, prop := range conn.Properties {
		if prop.ID != probeSelectionID {
			continue
		}
		for _, choice := range prop.Choices {
			if choice.Name != sernoChoiceName {
				continue
			}
			for _, inner := range choice.Properties {
				if inner.ID == sernoPropertyID {
					res.Serno = inner.Value
				}
			}
		}
	}
	return res, nil
}
