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

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/runenames"
	"seehuhn.de/go/postscript/type1/names"

	"seehuhn.de/go/type3conv/library"
)

func runLibrary(cfg *config, args []string) error {
	fs := flag.NewFlagSet("library", flag.ExitOnError)
	verbose := fs.Bool("v", false, "list the glyphs of every entry")
	fs.Parse(args)

	if cfg.Library.Dir == "" {
		return errors.New("library: no library directory configured")
	}
	idx, err := library.Load(cfg.Library.Dir)
	if err != nil {
		return err
	}
	listLibrary(os.Stdout, idx, *verbose)
	return nil
}

// listLibrary prints one line per library entry.
// If verbose is set, the covered glyphs are listed below each entry.
func listLibrary(w io.Writer, idx *library.Index, verbose bool) {
	for _, e := range idx.Entries() {
		var roles []string
		for _, role := range []library.Role{library.RoleNative, library.RoleWeb, library.RolePDF} {
			if p := e.Variant(role); !p.IsEmpty() {
				roles = append(roles, string(role)+"="+p.Format.String())
			}
		}
		fmt.Fprintf(w, "%s  %s  %d glyphs  %s\n",
			e.Fingerprint, e.Label, len(e.Coverage), strings.Join(roles, " "))
		if !verbose {
			continue
		}
		for _, name := range e.Coverage {
			fmt.Fprintf(w, "    %-16s %s\n", name, describeGlyph(name))
		}
	}
	fmt.Fprintf(w, "%d entries\n", idx.Len())
}

// describeGlyph returns the Unicode text and character names a glyph name
// maps to, or the empty string if the name has no Unicode interpretation.
func describeGlyph(name string) string {
	rr := []rune(names.ToUnicode(name, ""))
	if len(rr) == 0 {
		return ""
	}
	var runeNames []string
	for _, r := range rr {
		n := runenames.Name(r)
		if n == "" {
			n = fmt.Sprintf("U+%04X", r)
		}
		runeNames = append(runeNames, n)
	}
	return fmt.Sprintf("%q %s", string(rr), strings.Join(runeNames, ", "))
}
