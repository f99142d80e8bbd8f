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
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/type3conv/library"
	"seehuhn.de/go/type3conv/outline"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(fname, []byte(content), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return fname
}

func TestLoadConfig(t *testing.T) {
	fname := writeFile(t, "config.yaml", `
library:
  enabled: true
  dir: /srv/fonts
outline:
  family_prefix: Doc
log:
  level: debug
`)
	got, err := loadConfig(fname)
	if err != nil {
		t.Fatal(err)
	}
	want := &config{
		Library: library.Config{Enabled: true, Dir: "/srv/fonts"},
		Outline: outline.Options{Enabled: true, FamilyPrefix: "Doc"},
		Log:     logConfig{Level: "debug"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("config (-want +got):\n%s", d)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Library.Enabled || !cfg.Outline.Enabled || cfg.Log.Level != "warning" {
		t.Errorf("wrong defaults %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := map[string]string{
		"unknown key": "library:\n  path: /tmp\n",
		"bad level":   "log:\n  level: loud\n",
		"bad yaml":    "library: [",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig(writeFile(t, "config.yaml", content))
			if err == nil {
				t.Error("invalid configuration accepted")
			}
		})
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := defaultConfig()
	cfg.applyFlags("lib", false, "")
	if !cfg.Library.Enabled || cfg.Library.Dir != "lib" {
		t.Errorf("-lib not applied: %+v", cfg.Library)
	}
	cfg.applyFlags("", true, "info")
	if cfg.Library.Enabled || cfg.Library.Dir != "lib" {
		t.Errorf("-no-lib not applied: %+v", cfg.Library)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level %q", cfg.Log.Level)
	}
}
