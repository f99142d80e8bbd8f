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

// Command type3conv converts Type 3 fonts into OpenType fonts.
//
// Fonts are read from YAML font descriptions.  The tool can compute font
// fingerprints, run the conversion strategies, list the contents of a font
// library and show previews of the glyph outlines.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"seehuhn.de/go/type3conv/tools/internal/buildinfo"
	"seehuhn.de/go/type3conv/tools/internal/profile"
)

const toolName = "type3conv"

var (
	configArg  = flag.String("config", "", "read configuration from `file`")
	libArg     = flag.String("lib", "", "use the font library in `dir`")
	noLibArg   = flag.Bool("no-lib", false, "disable library matching")
	logArg     = flag.String("log", "", "set the log `level`")
	versionArg = flag.Bool("version", false, "print version information and exit")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "type3conv - convert Type 3 fonts to OpenType\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short(toolName))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  type3conv [options] sig <font.yaml>...\n")
		fmt.Fprintf(os.Stderr, "  type3conv [options] convert [-o dir] <font.yaml>...\n")
		fmt.Fprintf(os.Stderr, "  type3conv [options] library [-v]\n")
		fmt.Fprintf(os.Stderr, "  type3conv [options] preview [-size n] <font.yaml> [glyph]...\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  type3conv sig font.yaml\n")
		fmt.Fprintf(os.Stderr, "  type3conv -lib ./fonts convert -o out font.yaml\n")
	}
	flag.Parse()

	if *versionArg {
		fmt.Println(buildinfo.Short(toolName))
		return
	}
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd string, args []string) error {
	cfg, err := loadConfig(*configArg)
	if err != nil {
		return err
	}
	cfg.applyFlags(*libArg, *noLibArg, *logArg)

	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	log.WithFields(buildinfo.Read(toolName).Fields()).Debug("starting")

	stop, err := profile.Start(*cpuprofile, *memprofile, log)
	if err != nil {
		return err
	}
	defer stop()

	switch cmd {
	case "sig":
		return runSig(args)
	case "convert":
		return runConvert(cfg, log, args)
	case "library":
		return runLibrary(cfg, args)
	case "preview":
		return runPreview(log, args)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// newLogger returns a logger which writes to stderr.
// Timestamps are omitted unless stderr is a terminal.
func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !term.IsTerminal(int(os.Stderr.Fd())),
	})
	return log, nil
}
