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

// Package flashopts validates the device options passed to flash/erase/
// verify/reset operations. Option sets are device specific and open
// ended, so only the documented common options are validated; anything
// else is passed to the debug server untouched.
package flashopts

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Kind is the value type of a device option.
type Kind int

const (
	// String options are passed through as-is
	String Kind = iota
	// Bool options accept true/false (and the usual spellings)
	Bool
	// Float options accept any decimal number
	Float
	// Enum options accept one of a fixed set of choices
	Enum
)

// Option describes a known device option.
type Option struct {
	ID      string
	Kind    Kind
	Choices []string          // valid values, Enum only
	Aliases map[string]string // short spelling -> canonical choice
}

var registry = map[string]*Option{
	"ResetOnRestart": {
		ID:   "ResetOnRestart",
		Kind: Bool,
	},
	"AutoRunToLabelOnRestart": {
		ID:   "AutoRunToLabelOnRestart",
		Kind: Bool,
	},
	"FlashResetType": {
		ID:      "FlashResetType",
		Kind:    Enum,
		Choices: []string{"Hard reset", "Soft reset"},
		Aliases: map[string]string{
			"hard": "Hard reset",
			"soft": "Soft reset",
		},
	},
	"FlashEraseSelection": {
		ID:   "FlashEraseSelection",
		Kind: Enum,
		Choices: []string{
			"Erase main memory only",
			"Erase main and information memory",
			"Erase main, information and protected information memory",
			"Erase and download necessary segments only",
			"Do not erase Flash memory",
		},
		Aliases: map[string]string{
			"main":      "Erase main memory only",
			"main-info": "Erase main and information memory",
			"factory":   "Erase main, information and protected information memory",
			"necessary": "Erase and download necessary segments only",
			"none":      "Do not erase Flash memory",
		},
	},
	"VerifyAfterProgramLoad": {
		ID:      "VerifyAfterProgramLoad",
		Kind:    Enum,
		Choices: []string{"No verification", "Fast verification", "Full verification"},
		Aliases: map[string]string{
			"none": "No verification",
			"fast": "Fast verification",
			"full": "Full verification",
		},
	},
}

// Lookup returns the known option with the given id, if any.
func Lookup(id string) (*Option, bool) {
	opt, ok := registry[id]
	return opt, ok
}

// Known returns the ids of all validated options, sorted.
func Known() []string {
	ids := maps.Keys(registry)
	slices.Sort(ids)
	return ids
}

// Validate canonicalizes value for the option id. Unknown ids are
// accepted untouched since devices declare their own option sets.
func Validate(id, value string) (string, error) {
	opt, ok := registry[id]
	if !ok {
		return value, nil
	}
	switch opt.Kind {
	case Bool:
		b, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			return "", fmt.Errorf("option %s wants a boolean, got %q", id, value)
		}
		return strconv.FormatBool(b), nil
	case Float:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return "", fmt.Errorf("option %s wants a number, got %q", id, value)
		}
		return value, nil
	case Enum:
		if canonical, ok := opt.Aliases[strings.ToLower(value)]; ok {
			return canonical, nil
		}
		for _, choice := range opt.Choices {
			if strings.EqualFold(choice, value) {
				return choice, nil
			}
		}
		return "", fmt.Errorf("option %s wants one of %s, got %q",
			id, strings.Join(opt.Choices, ", "), value)
	default:
		return value, nil
	}
}

// Parse turns the repeatable Name=Value command line pairs into a
// validated option map.
func Parse(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	res := map[string]string{}
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid option %q, want Name=Value", pair)
		}
		canonical, err := Validate(name, value)
		if err != nil {
			return nil, err
		}
		res[name] = canonical
	}
	return res, nil
}
