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
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/type3conv"
	"seehuhn.de/go/type3conv/charproc"
	"seehuhn.de/go/type3conv/library"
	"seehuhn.de/go/type3conv/outline"
	"seehuhn.de/go/type3conv/signature"
)

var errNoSuccess = errors.New("no strategy could convert the font")

func runSig(args []string) error {
	if len(args) == 0 {
		return errors.New("sig: no font files given")
	}
	for _, fname := range args {
		f, _, err := readFontFile(fname)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s\n", signature.Compute(f), fname)
	}
	return nil
}

func runConvert(cfg *config, log *logrus.Logger, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	outDir := fs.String("o", "", "write the converted fonts to `dir`")
	fs.Parse(args)
	if fs.NArg() == 0 {
		return errors.New("convert: no font files given")
	}

	s := newSynthesizer(cfg, log)

	var failed []string
	for _, fname := range fs.Args() {
		f, uid, err := readFontFile(fname)
		if err != nil {
			return err
		}
		if err := f.Validate(); err != nil {
			log.WithError(err).WithField("file", fname).Warn("inconsistent font")
		}

		req := &type3conv.Request{
			Font:    f,
			FontID:  fontID(fname),
			FontUID: uid,
		}
		cands := s.Synthesize(req)
		fmt.Println(fname + ":")
		for _, c := range cands {
			fmt.Printf("  [%s] %s: %s\n", c.Status, c.StrategyLabel, c.Message)
		}

		best := type3conv.FirstSuccess(cands)
		if best == nil {
			failed = append(failed, fname)
			continue
		}
		if *outDir != "" {
			err := writePayloads(*outDir, req.FontID, best)
			if err != nil {
				return err
			}
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(failed, ", "), errNoSuccess)
	}
	return nil
}

// newSynthesizer sets up the library and outline strategies as configured.
// If the library cannot be loaded, a warning is logged and library
// matching is reported as skipped.
func newSynthesizer(cfg *config, log *logrus.Logger) *type3conv.Synthesizer {
	lib, err := cfg.Library.NewStrategy(log)
	if err != nil {
		log.WithError(err).Warn("library not loaded")
	}

	opt := cfg.Outline
	opt.Logger = log

	strategies := []type3conv.Strategy{lib, outline.New(&opt)}
	return type3conv.New(strategies, &type3conv.Options{
		Extractor: &charproc.Extractor{Logger: log},
		Logger:    log,
	})
}

// writePayloads stores the font programs of c in dir.
// The file names are formed from the font ID, the role and the format.
func writePayloads(dir, id string, c *type3conv.Candidate) error {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return err
	}
	payloads := []struct {
		role library.Role
		p    *type3conv.Payload
	}{
		{library.RoleNative, c.Native},
		{library.RoleWeb, c.Web},
		{library.RolePDF, c.PDF},
	}
	for _, pl := range payloads {
		p := pl.p
		if p.IsEmpty() {
			continue
		}
		fname := filepath.Join(dir, id+"."+string(pl.role)+p.Format.Ext())
		err := os.WriteFile(fname, p.Data, 0o644)
		if err != nil {
			return err
		}
	}
	return nil
}

// fontID derives a font identifier from the name of a font description.
func fontID(fname string) string {
	base := filepath.Base(fname)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
