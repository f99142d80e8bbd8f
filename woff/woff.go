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

// Package woff converts between sfnt font files and the WOFF 1.0 format.
//
// Each table is compressed separately using zlib.  Tables which do not
// become smaller are stored uncompressed.  Extended metadata and private
// data blocks are not written, and are ignored when reading.
//
// See https://www.w3.org/TR/WOFF/ for the file format.
package woff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Signature is the magic number at the start of a WOFF file.
const Signature = 0x774F4646 // "wOFF"

type header struct {
	Signature      uint32
	Flavor         uint32
	Length         uint32
	NumTables      uint16
	Reserved       uint16
	TotalSfntSize  uint32
	MajorVersion   uint16
	MinorVersion   uint16
	MetaOffset     uint32
	MetaLength     uint32
	MetaOrigLength uint32
	PrivOffset     uint32
	PrivLength     uint32
}

type directoryEntry struct {
	Tag          [4]byte
	Offset       uint32
	CompLength   uint32
	OrigLength   uint32
	OrigChecksum uint32
}

const (
	headerSize = 44
	entrySize  = 20
)

var errMalformed = errors.New("malformed WOFF data")

// Encode converts an sfnt font file into WOFF format.
func Encode(sfntData []byte) ([]byte, error) {
	flavor, tables, err := readSFNT(sfntData)
	if err != nil {
		return nil, err
	}

	entries := make([]directoryEntry, len(tables))
	bodies := make([][]byte, len(tables))
	offset := uint32(headerSize + entrySize*len(tables))
	for i, t := range tables {
		body, err := compress(t.data)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", t.tag, err)
		}
		copy(entries[i].Tag[:], t.tag)
		entries[i].Offset = offset
		entries[i].CompLength = uint32(len(body))
		entries[i].OrigLength = uint32(len(t.data))
		entries[i].OrigChecksum = t.checksum
		bodies[i] = body
		offset += 4 * ((uint32(len(body)) + 3) / 4)
	}

	h := &header{
		Signature:     Signature,
		Flavor:        flavor,
		Length:        offset,
		NumTables:     uint16(len(tables)),
		TotalSfntSize: sfntSize(tables),
		MajorVersion:  1,
	}

	buf := bytes.NewBuffer(make([]byte, 0, offset))
	_ = binary.Write(buf, binary.BigEndian, h)
	_ = binary.Write(buf, binary.BigEndian, entries)
	var pad [3]byte
	for _, body := range bodies {
		buf.Write(body)
		if k := len(body) % 4; k != 0 {
			buf.Write(pad[:4-k])
		}
	}
	return buf.Bytes(), nil
}

// compress returns the zlib-compressed table data, or the data itself
// if compression does not save space.
func compress(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw, err := zlib.NewWriterLevel(buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	_, err = zw.Write(data)
	if err != nil {
		return nil, err
	}
	err = zw.Close()
	if err != nil {
		return nil, err
	}
	if buf.Len() >= len(data) {
		return data, nil
	}
	return buf.Bytes(), nil
}

// Decode converts a WOFF file back into an sfnt font file.
func Decode(woffData []byte) ([]byte, error) {
	if len(woffData) < headerSize {
		return nil, errMalformed
	}
	h := &header{}
	_ = binary.Read(bytes.NewReader(woffData[:headerSize]), binary.BigEndian, h)
	if h.Signature != Signature {
		return nil, fmt.Errorf("invalid WOFF signature 0x%08X", h.Signature)
	}
	if h.NumTables == 0 || len(woffData) < headerSize+entrySize*int(h.NumTables) {
		return nil, errMalformed
	}

	entries := make([]directoryEntry, h.NumTables)
	_ = binary.Read(bytes.NewReader(woffData[headerSize:]), binary.BigEndian, entries)

	tables := make([]*table, 0, len(entries))
	for _, e := range entries {
		tag := string(e.Tag[:])
		start := uint64(e.Offset)
		end := start + uint64(e.CompLength)
		if end > uint64(len(woffData)) || e.CompLength > e.OrigLength {
			return nil, fmt.Errorf("table %q: %w", tag, errMalformed)
		}
		body := woffData[start:end]
		if e.CompLength < e.OrigLength {
			var err error
			body, err = decompress(body, e.OrigLength)
			if err != nil {
				return nil, fmt.Errorf("table %q: %w", tag, err)
			}
		}
		tables = append(tables, &table{tag: tag, checksum: e.OrigChecksum, data: body})
	}
	if tag, dup := sortTables(tables); dup {
		return nil, fmt.Errorf("duplicate table %q: %w", tag, errMalformed)
	}

	buf := bytes.NewBuffer(make([]byte, 0, sfntSize(tables)))
	_, err := writeSFNT(buf, h.Flavor, tables)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(body []byte, origLength uint32) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	data, err := io.ReadAll(io.LimitReader(zr, int64(origLength)+1))
	if err != nil {
		return nil, err
	}
	if uint32(len(data)) != origLength {
		return nil, errMalformed
	}
	return data, nil
}
