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

package dss

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const documentMarker = "---"

// ParseResponse extracts and decodes the driver YAML document from the
// launcher stdout. The JVM and the debug server chat on stdout before
// the driver runs, so everything up to the document marker is dropped.
func ParseResponse(stdout []byte) (*Response, error) {
	idx := bytes.Index(stdout, []byte(documentMarker))
	if idx == -1 {
		return nil, fmt.Errorf("no response document in debug server output: %q", firstLines(stdout, 3))
	}
	var resp Response
	if err := yaml.Unmarshal(stdout[idx:], &resp); err != nil {
		return nil, fmt.Errorf("malformed response document: %w", err)
	}
	return &resp, nil
}

func firstLines(out []byte, n int) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

// ParseBool interprets a driver result string as a boolean. The debug
// server is not consistent about casing ("True"/"true") so comparison
// is case-insensitive.
func ParseBool(result string) (bool, error) {
	b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(result)))
	if err != nil {
		return false, fmt.Errorf("expected a boolean response, got %q", result)
	}
	return b, nil
}

// ParseFloat interprets a driver result string as a float. Hex values
// come back from GEL evaluations as 0x-prefixed strings.
func ParseFloat(result string) (float64, error) {
	s := strings.TrimSpace(result)
	if strings.HasPrefix(strings.ToLower(s), "0x") {
		v, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("expected a numeric response, got %q", result)
		}
		return float64(v), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("expected a numeric response, got %q", result)
	}
	return v, nil
}
