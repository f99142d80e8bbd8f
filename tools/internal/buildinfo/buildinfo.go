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

// Package buildinfo reports version information for the command line tools.
package buildinfo

import (
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// Info describes the build of a command line tool.
type Info struct {
	Tool     string
	Module   string
	Version  string
	Revision string
	Dirty    bool
}

// Read returns the build information for the tool.
// Fields which are not recorded in the binary are left empty.
func Read(toolName string) *Info {
	res := &Info{Tool: toolName}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return res
	}

	res.Module = info.Main.Path
	if v := info.Main.Version; v != "(devel)" {
		res.Version = v
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			res.Revision = s.Value
		case "vcs.modified":
			res.Dirty = s.Value == "true"
		}
	}
	return res
}

// String returns a short version string, e.g.
// "type3conv (seehuhn.de/go/type3conv v0.1.0)".
// If no version is known, the VCS revision is used instead.
func (info *Info) String() string {
	version := info.Version
	if version == "" && info.Revision != "" {
		version = info.Revision
		if len(version) > 8 {
			version = version[:8]
		}
		if info.Dirty {
			version += "+dirty"
		}
	}
	if version == "" || info.Module == "" {
		return info.Tool
	}
	return info.Tool + " (" + info.Module + " " + version + ")"
}

// Fields returns the build information as log fields.
func (info *Info) Fields() logrus.Fields {
	f := logrus.Fields{"tool": info.Tool}
	if info.Version != "" {
		f["version"] = info.Version
	}
	if info.Revision != "" {
		f["revision"] = info.Revision
	}
	return f
}

// Short returns the short version string for the tool.
func Short(toolName string) string {
	return Read(toolName).String()
}
