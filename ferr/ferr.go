// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ferr implements the structured error taxonomy shared by every feacore package.
package ferr

import "github.com/cpmech/gosl/io"

// Kind classifies the failure modes a caller of feacore needs to branch on.
type Kind int

const (
	ConfigurationError Kind = iota
	NotImplemented
	DegenerateElement
	SingularMatrix
	PivotTooSmall
	DidNotConverge
	Diverged
	FrontExceeded
	NoSummedRows
	MeshImportError
)

var names = [...]string{
	"ConfigurationError",
	"NotImplemented",
	"DegenerateElement",
	"SingularMatrix",
	"PivotTooSmall",
	"DidNotConverge",
	"Diverged",
	"FrontExceeded",
	"NoSummedRows",
	"MeshImportError",
}

// String implements fmt.Stringer
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(names) {
		return "UnknownKind"
	}
	return names[k]
}

// Error is the structured record every feacore public API returns on failure.
type Error struct {
	Kind    Kind
	Message string
	Element int // -1 when not applicable
	Row     int // -1 when not applicable
	Col     int // -1 when not applicable
}

// Error implements the error interface
func (e *Error) Error() string {
	return io.Sf("%s: %s", e.Kind, e.Message)
}

// New creates an Error with no element/row/col context
func New(kind Kind, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: io.Sf(msg, args...), Element: -1, Row: -1, Col: -1}
}

// AtElement creates an Error tagged with the originating element index
func AtElement(kind Kind, elem int, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: io.Sf(msg, args...), Element: elem, Row: -1, Col: -1}
}

// AtRowCol creates an Error tagged with the offending matrix row/column
func AtRowCol(kind Kind, row, col int, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: io.Sf(msg, args...), Element: -1, Row: row, Col: col}
}
