// seehuhn.de/go/type3conv - convert PDF Type 3 fonts to OpenType
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package woff

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// checksum computes the sfnt checksum of data.
func checksum(data []byte) uint32 {
	var sum uint32
	for len(data) >= 4 {
		sum += binary.BigEndian.Uint32(data)
		data = data[4:]
	}
	if len(data) > 0 {
		var last [4]byte
		copy(last[:], data)
		sum += binary.BigEndian.Uint32(last[:])
	}
	return sum
}

// makeSFNT returns a synthetic sfnt file with one compressible and one
// incompressible table.
func makeSFNT(t *testing.T) []byte {
	t.Helper()
	head := make([]byte, 54)
	binary.BigEndian.PutUint32(head[12:], 0x5F0F3CF5)
	name := bytes.Repeat([]byte("Type 3 outline "), 40)
	post := []byte{0, 3, 0}

	var tables []*table
	for _, tt := range []struct {
		tag  string
		data []byte
	}{
		{"CFF ", bytes.Repeat([]byte{1, 2, 3, 4}, 100)},
		{"head", head},
		{"name", name},
		{"post", post},
	} {
		tables = append(tables, &table{tag: tt.tag, checksum: checksum(tt.data), data: tt.data})
	}

	buf := &bytes.Buffer{}
	_, err := writeSFNT(buf, 0x4F54544F, tables)
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	sfntData := makeSFNT(t)

	woffData, err := Encode(sfntData)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(woffData, []byte("wOFF")) {
		t.Errorf("wrong signature %q", woffData[:4])
	}
	if got := binary.BigEndian.Uint32(woffData[4:]); got != 0x4F54544F {
		t.Errorf("flavor = 0x%08X", got)
	}
	if got := binary.BigEndian.Uint32(woffData[8:]); int(got) != len(woffData) {
		t.Errorf("length field %d, actual length %d", got, len(woffData))
	}
	if got := binary.BigEndian.Uint32(woffData[16:]); int(got) != len(sfntData) {
		t.Errorf("totalSfntSize %d, want %d", got, len(sfntData))
	}
	if len(woffData)%4 != 0 {
		t.Errorf("length %d is not a multiple of 4", len(woffData))
	}

	decoded, err := Decode(woffData)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(sfntData, decoded); d != "" {
		t.Errorf("round trip (-want +got):\n%s", d)
	}
}

func TestCompression(t *testing.T) {
	woffData, err := Encode(makeSFNT(t))
	if err != nil {
		t.Fatal(err)
	}

	entries := make([]directoryEntry, 4)
	err = binary.Read(bytes.NewReader(woffData[headerSize:]), binary.BigEndian, entries)
	if err != nil {
		t.Fatal(err)
	}

	compressed := map[string]bool{}
	for _, e := range entries {
		if e.CompLength > e.OrigLength {
			t.Errorf("%q: compressed length %d exceeds %d", e.Tag, e.CompLength, e.OrigLength)
		}
		compressed[string(e.Tag[:])] = e.CompLength < e.OrigLength
	}
	want := map[string]bool{"CFF ": true, "head": true, "name": true, "post": false}
	if d := cmp.Diff(want, compressed); d != "" {
		t.Errorf("compressed tables (-want +got):\n%s", d)
	}
}

func TestEncodeErrors(t *testing.T) {
	cases := map[string][]byte{
		"empty":     nil,
		"no tables": {0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		"truncated directory": {0, 1, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0,
			'h', 'e', 'a', 'd', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		"table out of range": {0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0,
			'h', 'e', 'a', 'd', 0, 0, 0, 0, 0, 0, 0, 28, 0, 0, 0, 8},
	}
	for name, data := range cases {
		if _, err := Encode(data); err == nil {
			t.Errorf("%s: no error", name)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	woffData, err := Encode(makeSFNT(t))
	if err != nil {
		t.Fatal(err)
	}

	badSig := bytes.Clone(woffData)
	copy(badSig, "OTTO")

	// corrupt the compressed data of the first table
	corrupt := bytes.Clone(woffData)
	offset := binary.BigEndian.Uint32(corrupt[headerSize+4:])
	for i := range 4 {
		corrupt[int(offset)+i] ^= 0xFF
	}

	// give the second table the tag of the first one
	dupTag := bytes.Clone(woffData)
	copy(dupTag[headerSize+entrySize:headerSize+entrySize+4], dupTag[headerSize:headerSize+4])

	cases := map[string][]byte{
		"short":           woffData[:20],
		"signature":       badSig,
		"truncated":       woffData[:len(woffData)-40],
		"corrupt table":   corrupt,
		"duplicate table": dupTag,
	}
	for name, data := range cases {
		if _, err := Decode(data); err == nil {
			t.Errorf("%s: no error", name)
		}
	}
}
