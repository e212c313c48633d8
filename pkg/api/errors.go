package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why an ejection stopped.
type ErrorKind int

const (
	_ ErrorKind = iota
	PermissionDenied
	BuildFailed
	MissingAssets
	MissingManifest
	DirectoryCreateFailed
	Cancelled
	ActivationFailed
	InvalidConfig
)

var errorKindNames = map[ErrorKind]string{
	PermissionDenied:      "permission denied",
	BuildFailed:           "build failed",
	MissingAssets:         "missing assets",
	MissingManifest:       "missing manifest",
	DirectoryCreateFailed: "directory create failed",
	Cancelled:             "cancelled",
	ActivationFailed:      "activation failed",
	InvalidConfig:         "invalid configuration",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Fatal reports whether an error of this kind stops the pipeline.
func (k ErrorKind) Fatal() bool {
	return k != ActivationFailed
}

// Error is returned by pipeline steps.
type Error struct {
	Kind    ErrorKind
	Step    string
	Missing []string // MissingAssets only
	Err     error
}

// NewError creates an Error of the given kind wrapping err.
func NewError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Step != "" {
		b.WriteString(e.Step)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if len(e.Missing) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Missing, ", "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain, or zero.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsFatal reports whether err must stop the pipeline. Errors that are not
// *Error are always fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind.Fatal()
	}
	return true
}
