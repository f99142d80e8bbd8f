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

// Package charproc interprets the content streams of Type 3 glyphs.
//
// The [Scanner] breaks a content stream into operators and their operands.
// [Interpret] runs the operators of one glyph and records the painted
// outline.  [Extractor] applies this to all glyphs of a font, and
// [Rasterize] renders an outline to a grey-scale image.
package charproc

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
)

// Object is an operand in a content stream.
// The concrete type is one of float64, bool, Name, String, Array, Dict,
// or nil for the null object.
type Object any

// Name is a PDF name, without the leading slash.
type Name string

// String is a PDF string.
type String []byte

// Array is a PDF array.
type Array []Object

// Dict is a PDF dictionary.
type Dict map[Name]Object

// SyntaxError reports a malformed content stream.
type SyntaxError struct {
	// Line is the 1-based line number where the error was found.
	Line int

	Err error
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %v", err.Line, err.Err)
}

func (err *SyntaxError) Unwrap() error {
	return err.Err
}

var (
	errUnterminated = errors.New("unexpected end of content stream")
	errHexString    = errors.New("malformed hex string")
	errNameEscape   = errors.New("malformed name escape")
)

// A Scanner breaks a content stream into operators.
//
// Unbalanced brackets are ignored.  Truncated strings and inline images
// are reported as errors.
type Scanner struct {
	data []byte
	pos  int
	line int

	stack []*scanStackFrame
	args  []Object
	err   error
}

type scanStackFrame struct {
	data   []Object
	isDict bool
}

// keyword is an operator or delimiter token.
type keyword string

// NewScanner returns a scanner which reads the content stream data.
func NewScanner(data []byte) *Scanner {
	return &Scanner{data: data, line: 1}
}

// All returns an iterator over the operators of the content stream.
// Each operator is yielded together with its operands.
//
// The operand slice is owned by the scanner and is only valid until the
// yield function returns.  After the iteration has finished, [Scanner.Err]
// reports whether the stream was read completely.
func (s *Scanner) All() iter.Seq2[string, []Object] {
	return func(yield func(string, []Object) bool) {
	tokenLoop:
		for {
			obj, err := s.nextToken()
			if err != nil {
				s.err = err
				return
			}
			if obj == keyword("") {
				return // end of stream
			}

			switch obj {
			case keyword("<<"):
				s.stack = append(s.stack, &scanStackFrame{isDict: true})
				continue tokenLoop
			case keyword(">>"):
				if len(s.stack) == 0 || !s.stack[len(s.stack)-1].isDict {
					continue tokenLoop
				}
				frame := s.pop()
				dict := Dict{}
				for i := 0; i+1 < len(frame.data); i += 2 {
					key, ok := frame.data[i].(Name)
					if !ok || frame.data[i+1] == nil {
						continue
					}
					dict[key] = frame.data[i+1]
				}
				obj = dict
			case keyword("["):
				s.stack = append(s.stack, &scanStackFrame{})
				continue tokenLoop
			case keyword("]"):
				if len(s.stack) == 0 || s.stack[len(s.stack)-1].isDict {
					continue tokenLoop
				}
				obj = Array(s.pop().data)
			}

			if len(s.stack) > 0 {
				top := s.stack[len(s.stack)-1]
				top.data = append(top.data, obj)
				continue
			}

			op, isOp := obj.(keyword)
			if !isOp {
				s.args = append(s.args, obj)
				continue
			}
			if op == "BI" {
				dict, err := s.readInlineImage()
				if err != nil {
					s.err = err
					return
				}
				s.args = append(s.args[:0], dict)
			}
			cont := yield(string(op), s.args)
			s.args = s.args[:0]
			if !cont {
				return
			}
		}
	}
}

// Err returns the first error encountered during iteration.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) pop() *scanStackFrame {
	frame := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return frame
}

func (s *Scanner) errorf(err error) error {
	return &SyntaxError{Line: s.line, Err: err}
}

// nextToken returns the next token.  At the end of the stream,
// the empty keyword is returned.
func (s *Scanner) nextToken() (Object, error) {
	s.skipWhiteSpace()
	if s.pos >= len(s.data) {
		return keyword(""), nil
	}

	b := s.data[s.pos]
	switch b {
	case '(':
		return s.readString()
	case '<':
		if s.hasPrefix("<<") {
			s.pos += 2
			return keyword("<<"), nil
		}
		return s.readHexString()
	case '>':
		if s.hasPrefix(">>") {
			s.pos += 2
			return keyword(">>"), nil
		}
		s.pos++
		return keyword(">"), nil
	case '/':
		return s.readName()
	case '[', ']', '{', '}', ')':
		s.pos++
		return keyword(string(b)), nil
	}

	start := s.pos
	for s.pos < len(s.data) && class[s.data[s.pos]] == regular {
		s.pos++
	}
	tok := s.data[start:s.pos]
	if x, ok := parseNumber(tok); ok {
		return x, nil
	}
	switch string(tok) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null":
		return nil, nil
	}
	return keyword(tok), nil
}

func (s *Scanner) hasPrefix(p string) bool {
	return len(s.data)-s.pos >= len(p) && string(s.data[s.pos:s.pos+len(p)]) == p
}

// skipWhiteSpace skips white space and comments.
func (s *Scanner) skipWhiteSpace() {
	for s.pos < len(s.data) {
		b := s.data[s.pos]
		switch {
		case b == '%':
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
		case class[b] == space:
			s.skipByte()
		default:
			return
		}
	}
}

// skipByte advances by one byte and keeps track of line numbers.
func (s *Scanner) skipByte() {
	b := s.data[s.pos]
	s.pos++
	if b == '\n' || b == '\r' && (s.pos >= len(s.data) || s.data[s.pos] != '\n') {
		s.line++
	}
}

func (s *Scanner) readString() (String, error) {
	s.pos++ // '('
	var res []byte
	level := 1
	for s.pos < len(s.data) {
		b := s.data[s.pos]
		s.skipByte()
		switch b {
		case '(':
			level++
		case ')':
			level--
			if level == 0 {
				return String(res), nil
			}
		case '\\':
			if s.pos >= len(s.data) {
				return nil, s.errorf(errUnterminated)
			}
			b = s.data[s.pos]
			s.skipByte()
			switch b {
			case 'n':
				res = append(res, '\n')
			case 'r':
				res = append(res, '\r')
			case 't':
				res = append(res, '\t')
			case 'b':
				res = append(res, '\b')
			case 'f':
				res = append(res, '\f')
			case '\n':
				// line continuation
			case '\r':
				if s.pos < len(s.data) && s.data[s.pos] == '\n' {
					s.skipByte()
				}
			case '0', '1', '2', '3', '4', '5', '6', '7':
				oct := b - '0'
				for range 2 {
					if s.pos >= len(s.data) || s.data[s.pos] < '0' || s.data[s.pos] > '7' {
						break
					}
					oct = oct*8 + (s.data[s.pos] - '0')
					s.pos++
				}
				res = append(res, oct)
			default:
				res = append(res, b)
			}
			continue
		}
		res = append(res, b)
	}
	return nil, s.errorf(errUnterminated)
}

func (s *Scanner) readHexString() (String, error) {
	s.pos++ // '<'
	var res []byte
	first := true
	var hi byte
	for s.pos < len(s.data) {
		b := s.data[s.pos]
		s.skipByte()
		var lo byte
		switch {
		case b == '>':
			if !first {
				res = append(res, hi)
			}
			return String(res), nil
		case class[b] == space:
			continue
		case b >= '0' && b <= '9':
			lo = b - '0'
		case b >= 'A' && b <= 'F':
			lo = b - 'A' + 10
		case b >= 'a' && b <= 'f':
			lo = b - 'a' + 10
		default:
			return nil, s.errorf(errHexString)
		}
		if first {
			hi = lo << 4
		} else {
			res = append(res, hi|lo)
		}
		first = !first
	}
	return nil, s.errorf(errUnterminated)
}

func (s *Scanner) readName() (Name, error) {
	s.pos++ // '/'
	var name []byte
	for s.pos < len(s.data) {
		b := s.data[s.pos]
		if class[b] != regular {
			break
		}
		s.pos++
		if b != '#' {
			name = append(name, b)
			continue
		}
		if len(s.data)-s.pos < 2 {
			return "", s.errorf(errNameEscape)
		}
		x, err := strconv.ParseUint(string(s.data[s.pos:s.pos+2]), 16, 8)
		if err != nil {
			return "", s.errorf(errNameEscape)
		}
		name = append(name, byte(x))
		s.pos += 2
	}
	return Name(name), nil
}

// readInlineImage reads the image dictionary and the image data of an
// inline image.  The "BI" operator has already been consumed.
// The image data is skipped.
func (s *Scanner) readInlineImage() (Dict, error) {
	var data []Object
	for {
		obj, err := s.nextToken()
		if err != nil {
			return nil, err
		}
		if obj == keyword("") {
			return nil, s.errorf(errUnterminated)
		}
		if obj == keyword("ID") {
			break
		}
		data = append(data, obj)
	}

	dict := Dict{}
	for i := 0; i+1 < len(data); i += 2 {
		if key, ok := data[i].(Name); ok {
			dict[key] = data[i+1]
		}
	}

	// A single white-space character separates "ID" from the image data.
	// The data ends at "EI" surrounded by white space.
	if s.pos < len(s.data) {
		s.skipByte()
	}
	for s.pos+1 < len(s.data) {
		if s.data[s.pos] == 'E' && s.data[s.pos+1] == 'I' &&
			s.pos > 0 && class[s.data[s.pos-1]] == space &&
			(s.pos+2 == len(s.data) || class[s.data[s.pos+2]] != regular) {
			s.pos += 2
			return dict, nil
		}
		s.skipByte()
	}
	return nil, s.errorf(errUnterminated)
}

// parseNumber parses a PDF number.  Exponents, hex floats and the special
// values accepted by strconv are not valid in content streams.
func parseNumber(tok []byte) (float64, bool) {
	digits := 0
	for i, b := range tok {
		switch {
		case b >= '0' && b <= '9':
			digits++
		case b == '.':
		case (b == '+' || b == '-') && i == 0:
		default:
			return 0, false
		}
	}
	if digits == 0 {
		return 0, false
	}
	x, err := strconv.ParseFloat(string(tok), 64)
	if err != nil {
		return 0, false
	}
	return x, true
}

type characterClass byte

const (
	regular characterClass = iota
	space
	delimiter
)

var class [256]characterClass

func init() {
	for _, c := range []byte{0, 9, 10, 12, 13, 32} {
		class[c] = space
	}
	for _, c := range []byte("()<>[]{}/%") {
		class[c] = delimiter
	}
}
