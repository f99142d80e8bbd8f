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

package library

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"seehuhn.de/go/type3conv"
	"seehuhn.de/go/type3conv/signature"
)

// ErrDuplicate indicates that a fingerprint or UID is used by more than one
// library entry.
var ErrDuplicate = errors.New("duplicate library key")

// Index is an immutable collection of library entries.
//
// An Index is safe for concurrent use.  The zero value and the nil pointer
// are empty indices.
type Index struct {
	entries []*Entry

	exact map[string]*Entry
	alias map[string]*Entry
	uid   map[string]*Entry
}

// NewIndex builds an index from the given entries.
//
// Every fingerprint, whether used as the main fingerprint or as an alias,
// can only refer to one entry.  The same holds for font UIDs.
func NewIndex(entries []*Entry) (*Index, error) {
	idx := &Index{
		exact: make(map[string]*Entry, len(entries)),
		alias: make(map[string]*Entry),
		uid:   make(map[string]*Entry),
	}

	for _, e := range entries {
		if e == nil {
			continue
		}
		if !signature.IsValid(e.Fingerprint) {
			return nil, fmt.Errorf("entry %q: invalid fingerprint %q", e.Label, e.Fingerprint)
		}
		if other := idx.lookupAny(e.Fingerprint); other != nil {
			return nil, fmt.Errorf("entry %q: fingerprint %s also used by %q: %w",
				e.Label, e.Fingerprint, other.Label, ErrDuplicate)
		}
		idx.exact[e.Fingerprint] = e
		idx.entries = append(idx.entries, e)
	}

	for _, e := range idx.entries {
		for _, fp := range e.Aliases {
			if !signature.IsValid(fp) {
				return nil, fmt.Errorf("entry %q: invalid alias %q", e.Label, fp)
			}
			if other := idx.lookupAny(fp); other != nil {
				return nil, fmt.Errorf("entry %q: alias %s also used by %q: %w",
					e.Label, fp, other.Label, ErrDuplicate)
			}
			idx.alias[fp] = e
		}
		for _, uid := range e.UIDs {
			if uid == "" {
				continue
			}
			if other := idx.uid[uid]; other != nil {
				return nil, fmt.Errorf("entry %q: UID %q also used by %q: %w",
					e.Label, uid, other.Label, ErrDuplicate)
			}
			idx.uid[uid] = e
		}
	}

	slices.SortStableFunc(idx.entries, func(a, b *Entry) int {
		return strings.Compare(a.Label, b.Label)
	})

	return idx, nil
}

func (idx *Index) lookupAny(fp string) *Entry {
	if e := idx.exact[fp]; e != nil {
		return e
	}
	return idx.alias[fp]
}

// Len returns the number of entries in the index.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// Entries returns all entries of the index, sorted by label.
func (idx *Index) Entries() []*Entry {
	if idx == nil {
		return nil
	}
	return slices.Clone(idx.entries)
}

// Lookup returns the entry whose main fingerprint is fp, or nil if there is
// no such entry.
func (idx *Index) Lookup(fp string) *Entry {
	if idx == nil {
		return nil
	}
	return idx.exact[fp]
}

// Match looks up the font f.
// The fingerprint of f is tried first as a main fingerprint, then as an
// alias.  If neither matches and uid is not empty, the font UID is tried
// last.  If no entry matches, nil is returned.
func (idx *Index) Match(f type3conv.Font, uid string) *Match {
	if f == nil {
		return idx.MatchFingerprint("", uid)
	}
	return idx.MatchFingerprint(signature.Compute(f), uid)
}

// MatchFingerprint is like [Index.Match], but uses a precomputed
// fingerprint.
func (idx *Index) MatchFingerprint(fp, uid string) *Match {
	if idx == nil {
		return nil
	}
	if fp != "" {
		if e := idx.exact[fp]; e != nil {
			return &Match{Entry: e, Kind: KindExact}
		}
		if e := idx.alias[fp]; e != nil {
			return &Match{Entry: e, Kind: KindAlias}
		}
	}
	if uid != "" {
		if e := idx.uid[uid]; e != nil {
			return &Match{Entry: e, Kind: KindUID}
		}
	}
	return nil
}
