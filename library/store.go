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
	"sync/atomic"
)

// Store holds the current library index.
//
// Readers obtain a snapshot using [Store.Index] and use it for the whole
// lookup.  Replacing the index does not affect snapshots which are in use.
// The nil pointer is a store without index.
type Store struct {
	cur atomic.Pointer[Index]
}

// NewStore returns a store holding idx.
// If idx is nil, the store starts without index.
func NewStore(idx *Index) *Store {
	s := &Store{}
	if idx != nil {
		s.cur.Store(idx)
	}
	return s
}

// Index returns the current index, or nil if no library is loaded.
func (s *Store) Index() *Index {
	if s == nil {
		return nil
	}
	return s.cur.Load()
}

// IsLoaded reports whether the store holds an index.
func (s *Store) IsLoaded() bool {
	return s.Index() != nil
}

// Replace installs idx as the new index and returns the previous one.
// A nil idx unloads the library.
func (s *Store) Replace(idx *Index) *Index {
	return s.cur.Swap(idx)
}

// Reload loads the library in dir and installs it as the new index.
// If loading fails, the current index is kept.
func (s *Store) Reload(dir string) error {
	idx, err := Load(dir)
	if err != nil {
		return err
	}
	s.cur.Store(idx)
	return nil
}
