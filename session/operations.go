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

package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/arduino/go-paths-helper"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/webbcam/tiflash/dss"
)

// ImageArgs qualify how an image file is loaded on the target.
type ImageArgs struct {
	// Binary loads the file as a raw binary instead of a linked program.
	Binary bool
	// Address is the load offset for raw binaries, e.g. "0x1000".
	Address string
}

func (a *ImageArgs) apply(params map[string]string) {
	if a == nil {
		return
	}
	if a.Binary {
		params["binary"] = "true"
	}
	if a.Address != "" {
		params["address"] = a.Address
	}
}

// Flash programs the image on the target, setting options first.
func (s *Session) Flash(ctx context.Context, image *paths.Path, args *ImageArgs, options map[string]string) error {
	params := map[string]string{"image": image.String()}
	args.apply(params)
	_, err := s.run(ctx, s.request("flash", options, params))
	return err
}

// Verify checks the target flash contents against the image.
func (s *Session) Verify(ctx context.Context, image *paths.Path, args *ImageArgs, options map[string]string) error {
	params := map[string]string{"image": image.String()}
	args.apply(params)
	_, err := s.run(ctx, s.request("verify", options, params))
	return err
}

// Erase clears the target flash according to the erase options.
func (s *Session) Erase(ctx context.Context, options map[string]string) error {
	_, err := s.run(ctx, s.request("erase", options, nil))
	return err
}

// Reset performs a board reset.
func (s *Session) Reset(ctx context.Context, options map[string]string) error {
	_, err := s.run(ctx, s.request("reset", options, nil))
	return err
}

// MemoryRead reads numBytes from the target memory.
func (s *Session) MemoryRead(ctx context.Context, address string, numBytes, page int) ([]byte, error) {
	resp, err := s.run(ctx, s.request("memory-read", nil, map[string]string{
		"address": address,
		"bytes":   strconv.Itoa(numBytes),
		"page":    strconv.Itoa(page),
	}))
	if err != nil {
		return nil, err
	}
	data := make([]byte, len(resp.Data))
	for i, v := range resp.Data {
		if v < 0 || v > 0xff {
			return nil, fmt.Errorf("memory read returned out of range byte %d", v)
		}
		data[i] = byte(v)
	}
	return data, nil
}

// MemoryWrite writes data to the target memory.
func (s *Session) MemoryWrite(ctx context.Context, address string, data []byte, page int) error {
	values := make([]string, len(data))
	for i, b := range data {
		values[i] = strconv.Itoa(int(b))
	}
	_, err := s.run(ctx, s.request("memory-write", nil, map[string]string{
		"address": address,
		"data":    strings.Join(values, ","),
		"page":    strconv.Itoa(page),
	}))
	return err
}

// Evaluate evaluates a C or GEL expression on the target, loading the
// symbol file first when given.
func (s *Session) Evaluate(ctx context.Context, expr, symbolFile string) (string, error) {
	params := map[string]string{"expression": expr}
	if symbolFile != "" {
		params["symbols"] = symbolFile
	}
	resp, err := s.run(ctx, s.request("evaluate", nil, params))
	if err != nil {
		return "", err
	}
	return resp.Result, nil
}

// OptionValue is one device option and its current value.
type OptionValue struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// ListOptions returns the device options whose id contains filter (all
// of them for an empty filter), sorted by id.
func (s *Session) ListOptions(ctx context.Context, filter string) ([]OptionValue, error) {
	params := map[string]string{}
	if filter != "" {
		params["filter"] = filter
	}
	resp, err := s.run(ctx, s.request("list-options", nil, params))
	if err != nil {
		return nil, err
	}
	ids := maps.Keys(resp.Options)
	slices.Sort(ids)
	res := make([]OptionValue, 0, len(ids))
	for _, id := range ids {
		res = append(res, OptionValue{ID: id, Value: resp.Options[id]})
	}
	return res, nil
}

// GetOption reads the value of one device option, optionally running a
// flash operation first (some options only materialize after one).
func (s *Session) GetOption(ctx context.Context, id, preOperation string) (string, error) {
	params := map[string]string{"id": id}
	if preOperation != "" {
		params["pre-operation"] = preOperation
	}
	resp, err := s.run(ctx, s.request("get-option", nil, params))
	if err != nil {
		return "", err
	}
	return resp.Result, nil
}

// GetBoolOption reads an option and interprets it as a boolean.
func (s *Session) GetBoolOption(ctx context.Context, id, preOperation string) (bool, error) {
	value, err := s.GetOption(ctx, id, preOperation)
	if err != nil {
		return false, err
	}
	return dss.ParseBool(value)
}

// GetFloatOption reads an option and interprets it as a number.
func (s *Session) GetFloatOption(ctx context.Context, id, preOperation string) (float64, error) {
	value, err := s.GetOption(ctx, id, preOperation)
	if err != nil {
		return 0, err
	}
	return dss.ParseFloat(value)
}

// Nop opens the session and does nothing; with attach set this leaves a
// CCS session connected to the device.
func (s *Session) Nop(ctx context.Context) error {
	_, err := s.run(ctx, s.request("nop", nil, nil))
	return err
}
