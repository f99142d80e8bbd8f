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
	"errors"
	"io"
	"math/bits"
	"slices"
	"strings"
)

// sfntHeader is the offset sub-table at the start of an sfnt file.
type sfntHeader struct {
	ScalerType    uint32
	NumTables     uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
}

// sfntRecord describes one table in the sfnt table directory.
type sfntRecord struct {
	Tag      [4]byte
	CheckSum uint32
	Offset   uint32
	Length   uint32
}

// table is one table of an sfnt file.
type table struct {
	tag      string
	checksum uint32
	data     []byte
}

var errMalformedSFNT = errors.New("malformed sfnt data")

// readSFNT splits an sfnt file into its tables, sorted by tag.
func readSFNT(data []byte) (uint32, []*table, error) {
	if len(data) < 12 {
		return 0, nil, errMalformedSFNT
	}
	h := &sfntHeader{}
	_ = binary.Read(bytes.NewReader(data[:12]), binary.BigEndian, h)
	if h.NumTables == 0 || len(data) < 12+16*int(h.NumTables) {
		return 0, nil, errMalformedSFNT
	}

	records := make([]sfntRecord, h.NumTables)
	_ = binary.Read(bytes.NewReader(data[12:]), binary.BigEndian, records)

	tables := make([]*table, 0, len(records))
	for _, rec := range records {
		start := uint64(rec.Offset)
		end := start + uint64(rec.Length)
		if end > uint64(len(data)) {
			return 0, nil, errMalformedSFNT
		}
		tables = append(tables, &table{
			tag:      string(rec.Tag[:]),
			checksum: rec.CheckSum,
			data:     data[start:end],
		})
	}
	if _, dup := sortTables(tables); dup {
		return 0, nil, errMalformedSFNT
	}
	return h.ScalerType, tables, nil
}

// sortTables sorts the tables by tag.  If a tag occurs more than once,
// the tag is returned together with true.
func sortTables(tables []*table) (string, bool) {
	slices.SortFunc(tables, func(a, b *table) int {
		return strings.Compare(a.tag, b.tag)
	})
	for i := 1; i < len(tables); i++ {
		if tables[i].tag == tables[i-1].tag {
			return tables[i].tag, true
		}
	}
	return "", false
}

// sfntSize returns the size of the sfnt file holding the given tables.
func sfntSize(tables []*table) uint32 {
	size := uint32(12 + 16*len(tables))
	for _, t := range tables {
		size += 4 * ((uint32(len(t.data)) + 3) / 4)
	}
	return size
}

// writeSFNT writes an sfnt file containing the given tables.
// The table checksums are taken from the table records.
func writeSFNT(w io.Writer, scalerType uint32, tables []*table) (int64, error) {
	numTables := len(tables)

	// tables are written in the recommended order
	order := slices.Clone(tables)
	slices.SortStableFunc(order, func(a, b *table) int {
		return tableOrder[b.tag] - tableOrder[a.tag]
	})

	entrySelector := bits.Len(uint(numTables)) - 1
	header := &sfntHeader{
		ScalerType:    scalerType,
		NumTables:     uint16(numTables),
		SearchRange:   1 << (entrySelector + 4),
		EntrySelector: uint16(entrySelector),
		RangeShift:    uint16(16 * (numTables - 1<<entrySelector)),
	}

	offsets := make(map[string]uint32, numTables)
	offset := uint32(12 + 16*numTables)
	for _, t := range order {
		offsets[t.tag] = offset
		offset += 4 * ((uint32(len(t.data)) + 3) / 4)
	}

	records := make([]sfntRecord, numTables)
	for i, t := range tables {
		copy(records[i].Tag[:], t.tag)
		records[i].CheckSum = t.checksum
		records[i].Offset = offsets[t.tag]
		records[i].Length = uint32(len(t.data))
	}
	slices.SortFunc(records, func(a, b sfntRecord) int {
		return bytes.Compare(a.Tag[:], b.Tag[:])
	})

	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.BigEndian, header)
	_ = binary.Write(buf, binary.BigEndian, records)

	var total int64
	n, err := w.Write(buf.Bytes())
	total += int64(n)
	if err != nil {
		return total, err
	}
	var pad [3]byte
	for _, t := range order {
		n, err := w.Write(t.data)
		total += int64(n)
		if err != nil {
			return total, err
		}
		if k := n % 4; k != 0 {
			l, err := w.Write(pad[:4-k])
			total += int64(l)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// https://docs.microsoft.com/en-us/typography/opentype/spec/recom#optimized-table-ordering
var tableOrder = map[string]int{
	"head": 95,
	"hhea": 90,
	"maxp": 85,
	"OS/2": 80,
	"hmtx": 75,
	"LTSH": 70,
	"VDMX": 65,
	"hdmx": 60,
	"cmap": 55,
	"fpgm": 50,
	"prep": 45,
	"cvt ": 40,
	"loca": 35,
	"glyf": 30,
	"kern": 25,
	"name": 20,
	"post": 15,
	"gasp": 10,
	"DSIG": 5,
}
