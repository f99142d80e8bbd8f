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

// Package library matches Type 3 fonts against a collection of previously
// converted fonts.
//
// A library is a directory containing a manifest file [ManifestName] and the
// font programs it refers to.  Each entry of the manifest describes one
// converted font: the fingerprint of the original Type 3 font, optional
// alias fingerprints and font UIDs, the glyph coverage and up to three font
// programs (native, web and PDF-embeddable).
//
// Libraries are loaded using [Load] into an immutable [Index].  A [Store]
// holds the current index and allows to replace it while lookups are in
// progress.  The [Strategy] type uses a store to implement
// [type3conv.Strategy].
package library

import (
	"fmt"

	"seehuhn.de/go/type3conv"
)

// Role identifies the intended use of a font program in a library entry.
type Role string

// These are the roles for font programs in a library entry.
const (
	RoleNative Role = "native"
	RoleWeb    Role = "web"
	RolePDF    Role = "pdf"
)

// ParseRole converts a role name from a manifest into a Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleNative, RoleWeb, RolePDF:
		return r, nil
	default:
		return "", fmt.Errorf("unknown payload role %q", s)
	}
}

// Entry describes one converted font in a library.
//
// Entries are shared by all users of an [Index] and must not be modified
// once the index has been created.
type Entry struct {
	// Label is a human-readable name for the entry.
	Label string

	// Fingerprint is the fingerprint of the Type 3 font the entry was
	// created from.
	Fingerprint string

	// Aliases lists the fingerprints of other Type 3 fonts which are known to
	// produce the same glyphs.
	Aliases []string

	// UIDs lists font UIDs which identify the font.
	UIDs []string

	// Coverage lists the glyph names covered by the font programs,
	// in sorted order.
	Coverage []string

	Native *type3conv.Payload
	Web    *type3conv.Payload
	PDF    *type3conv.Payload
}

// Variant returns the font program for the given role,
// or nil if the entry has none.
func (e *Entry) Variant(role Role) *type3conv.Payload {
	switch role {
	case RoleNative:
		return e.Native
	case RoleWeb:
		return e.Web
	case RolePDF:
		return e.PDF
	default:
		return nil
	}
}

// setVariant stores p as the font program for the given role.
// It is an error to set the same role twice.
func (e *Entry) setVariant(role Role, p *type3conv.Payload) error {
	var slot **type3conv.Payload
	switch role {
	case RoleNative:
		slot = &e.Native
	case RoleWeb:
		slot = &e.Web
	case RolePDF:
		slot = &e.PDF
	default:
		return fmt.Errorf("unknown payload role %q", role)
	}
	if *slot != nil {
		return fmt.Errorf("duplicate %s payload", role)
	}
	*slot = p
	return nil
}

// HasPayload reports whether the entry has at least one non-empty font
// program.
func (e *Entry) HasPayload() bool {
	return !e.Native.IsEmpty() || !e.Web.IsEmpty() || !e.PDF.IsEmpty()
}

// Match is the result of a successful library lookup.
type Match struct {
	Entry *Entry

	// Kind describes how the font was matched, for example [KindExact].
	Kind string
}

// These are the match kinds reported by [Index.Match].
const (
	KindExact = "exact"
	KindAlias = "alias"
	KindUID   = "uid"
)
