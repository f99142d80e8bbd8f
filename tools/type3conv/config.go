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
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"seehuhn.de/go/type3conv/library"
	"seehuhn.de/go/type3conv/outline"
)

// config is the contents of the configuration file.
type config struct {
	Library library.Config  `yaml:"library"`
	Outline outline.Options `yaml:"outline"`
	Log     logConfig       `yaml:"log"`
}

type logConfig struct {
	Level string `yaml:"level"`
}

func defaultConfig() *config {
	return &config{
		Outline: outline.Options{Enabled: true},
		Log:     logConfig{Level: "warning"},
	}
}

// loadConfig reads the configuration file fname.
// Keys which are missing from the file keep their default values.
// If fname is empty, the defaults are returned.
func loadConfig(fname string) (*config, error) {
	cfg := defaultConfig()
	if fname == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	err = yaml.UnmarshalStrict(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return cfg, nil
}

// applyFlags overrides configuration values with command line flags.
// Empty flag values leave the configuration unchanged.
func (cfg *config) applyFlags(libDir string, noLib bool, level string) {
	if libDir != "" {
		cfg.Library.Dir = libDir
		cfg.Library.Enabled = true
	}
	if noLib {
		cfg.Library.Enabled = false
	}
	if level != "" {
		cfg.Log.Level = level
	}
}
