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

package download

import (
	"testing"

	"github.com/arduino/go-paths-helper"
	"github.com/stretchr/testify/require"
)

func makeImage(t *testing.T) *paths.Path {
	image := paths.New(t.TempDir()).Join("blink.bin")
	require.NoError(t, image.WriteFile([]byte("hello world")))
	return image
}

func TestVerifyFileChecksum(t *testing.T) {
	image := makeImage(t)

	require.NoError(t, VerifyFileChecksum(
		"SHA-256:b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", image))
	require.NoError(t, VerifyFileChecksum(
		"SHA-1:2aae6c35c94fcfb415dbe95f408b9ce91ee846ed", image))
	require.NoError(t, VerifyFileChecksum(
		"MD5:5eb63bbbe01eeed093cb22bb8f5acdc3", image))

	// Digest mismatch
	require.Error(t, VerifyFileChecksum(
		"SHA-256:b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcdea", image))
	// Unsupported algorithm
	require.Error(t, VerifyFileChecksum(
		"CRC32:deadbeef", image))
	// Malformed checksum strings
	require.Error(t, VerifyFileChecksum("", image))
	require.Error(t, VerifyFileChecksum("SHA-256", image))
	require.Error(t, VerifyFileChecksum("SHA-256:zzzz", image))
}

func TestVerifyFileSize(t *testing.T) {
	image := makeImage(t)

	require.NoError(t, VerifyFileSize(11, image))
	require.Error(t, VerifyFileSize(12, image))
	require.Error(t, VerifyFileSize(11, image.Parent().Join("missing.bin")))
}
