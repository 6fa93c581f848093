// Package lperr defines the stage-tagged error returned by every step of the
// expression pipeline.
package lperr

import (
	"errors"
	"fmt"

	"github.com/luthersystems/lndw/parser/token"
)

// Kind identifies the pipeline stage which produced an Error.
type Kind uint

// Kind constants, one per pipeline stage.
const (
	SExpr     Kind = iota // lexing and reading s-expressions
	Parse                 // syntax errors distinct from s-expression structure
	IR                    // building the AST from an s-expression
	Interpret             // tree-walking evaluation
	Compile               // instruction selection and register allocation
	Runtime               // register machine execution

	numKinds
)

// String returns the tag appended to error messages of kind k.
func (k Kind) String() string {
	kindStrings := [numKinds]string{
		SExpr:     "s-expr",
		Parse:     "parse",
		IR:        "ir gen",
		Interpret: "interpreter",
		Compile:   "compile",
		Runtime:   "runtime",
	}
	if k >= numKinds {
		return "unknown"
	}
	return kindStrings[k]
}

// Error is a failure in one pipeline stage.  The message is human readable
// and the Kind names the stage.  Source is only set by stages that track
// positions in the input text.
type Error struct {
	Kind   Kind
	Msg    string
	Source *token.Location
}

// Error implements the error interface.
func (err *Error) Error() string {
	return fmt.Sprintf("%s (%s)", err.Msg, err.Kind)
}

// Detail is like Error but includes the source location when one is known.
func (err *Error) Detail() string {
	if err.Source == nil {
		return err.Error()
	}
	return fmt.Sprintf("%s: %s (%s)", err.Source, err.Msg, err.Kind)
}

// Errorf returns an Error of the given kind with a formatted message.
func Errorf(kind Kind, format string, v ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, v...)}
}

// At returns a copy of err with its source location set to loc.
func (err *Error) At(loc *token.Location) *Error {
	cp := *err
	cp.Source = loc
	return &cp
}

// Wrap converts err into an Error of the given kind.  If err already is an
// Error (possibly wrapped) it is returned unchanged so that the stage which
// first failed keeps its tag.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	var lerr *Error
	if errors.As(err, &lerr) {
		return err
	}
	return &Error{Kind: kind, Msg: err.Error()}
}

// KindOf returns the Kind of the first Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var lerr *Error
	if !errors.As(err, &lerr) {
		return 0, false
	}
	return lerr.Kind, true
}

// Is returns true if err's chain contains an Error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
