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
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/xdg-go/stringprep"
	"gopkg.in/yaml.v2"

	"seehuhn.de/go/type3conv"
	"seehuhn.de/go/type3conv/signature"
)

// ManifestName is the name of the manifest file in a library directory.
const ManifestName = "library.yaml"

// LoadError is returned by [Load] if a manifest entry cannot be used.
type LoadError struct {
	// Entry identifies the manifest entry, by label if it has one
	// and by position otherwise.
	Entry string

	Err error
}

func (err *LoadError) Error() string {
	return "library entry " + err.Entry + ": " + err.Err.Error()
}

func (err *LoadError) Unwrap() error {
	return err.Err
}

type manifest struct {
	Entries []*manifestEntry `yaml:"entries"`
}

type manifestEntry struct {
	Label       string             `yaml:"label"`
	Fingerprint string             `yaml:"fingerprint"`
	Aliases     []string           `yaml:"aliases"`
	UIDs        []string           `yaml:"uids"`
	Coverage    []string           `yaml:"coverage"`
	Payloads    []*manifestPayload `yaml:"payloads"`
}

type manifestPayload struct {
	Role   string `yaml:"role"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Load reads the library in the directory dir.
//
// Font program files are resolved relative to dir and must not refer to
// locations outside dir.  Labels are normalized using SASLprep.
func Load(dir string) (*Index, error) {
	body, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, err
	}

	m := &manifest{}
	err = yaml.UnmarshalStrict(body, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ManifestName, err)
	}

	entries := make([]*Entry, 0, len(m.Entries))
	for i, me := range m.Entries {
		if me == nil {
			continue
		}
		e, err := me.load(dir)
		if err != nil {
			name := strconv.Quote(me.Label)
			if me.Label == "" {
				name = "#" + strconv.Itoa(i)
			}
			return nil, &LoadError{Entry: name, Err: err}
		}
		entries = append(entries, e)
	}

	return NewIndex(entries)
}

func (me *manifestEntry) load(dir string) (*Entry, error) {
	label, err := stringprep.SASLprep.Prepare(me.Label)
	if err != nil {
		return nil, fmt.Errorf("invalid label: %w", err)
	}
	if label == "" {
		return nil, errMissingLabel
	}
	if !signature.IsValid(me.Fingerprint) {
		return nil, fmt.Errorf("invalid fingerprint %q", me.Fingerprint)
	}
	for _, fp := range me.Aliases {
		if !signature.IsValid(fp) {
			return nil, fmt.Errorf("invalid alias %q", fp)
		}
	}

	e := &Entry{
		Label:       label,
		Fingerprint: me.Fingerprint,
		Aliases:     slices.Clone(me.Aliases),
		UIDs:        slices.Clone(me.UIDs),
	}
	if len(me.Coverage) > 0 {
		e.Coverage = slices.Clone(me.Coverage)
		slices.Sort(e.Coverage)
		e.Coverage = slices.Compact(e.Coverage)
	}

	for _, mp := range me.Payloads {
		if mp == nil {
			continue
		}
		role, err := ParseRole(mp.Role)
		if err != nil {
			return nil, err
		}
		format, err := type3conv.ParseFormat(mp.Format)
		if err != nil {
			return nil, err
		}
		if !filepath.IsLocal(mp.File) {
			return nil, fmt.Errorf("%s payload: invalid file name %q", role, mp.File)
		}
		data, err := os.ReadFile(filepath.Join(dir, mp.File))
		if err != nil {
			return nil, fmt.Errorf("%s payload: %w", role, err)
		}
		err = e.setVariant(role, &type3conv.Payload{Data: data, Format: format})
		if err != nil {
			return nil, err
		}
	}

	return e, nil
}

var errMissingLabel = errors.New("missing label")
