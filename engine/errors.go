package engine

import "errors"

var (
	ErrInvalidHandle   = errors.New("invalid handle")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNoRootSet       = errors.New("no root set")
	ErrNotAChild       = errors.New("not a child")
	ErrInternalPanic   = errors.New("internal panic")
	ErrClosed          = errors.New("engine closed")
)

// ErrorCode is the stable numeric class of an engine error
type ErrorCode int32

const (
	CodeOK ErrorCode = iota
	CodeInvalidHandle
	CodeTypeMismatch
	CodeInvalidArgument
	CodeNoRootSet
	CodeNotAChild
	CodeInternalPanic
	CodeClosed
	CodeIO
)

var errorCodes = []struct {
	err  error
	code ErrorCode
}{
	{ErrInvalidHandle, CodeInvalidHandle},
	{ErrTypeMismatch, CodeTypeMismatch},
	{ErrInvalidArgument, CodeInvalidArgument},
	{ErrNoRootSet, CodeNoRootSet},
	{ErrNotAChild, CodeNotAChild},
	{ErrInternalPanic, CodeInternalPanic},
	{ErrClosed, CodeClosed},
}

// CodeOf classifies err; errors outside the engine taxonomy (backend I/O)
// report CodeIO
func CodeOf(err error) ErrorCode {
	if err == nil {
		return CodeOK
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return CodeIO
}

func (c ErrorCode) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeInvalidHandle:
		return "invalid handle"
	case CodeTypeMismatch:
		return "type mismatch"
	case CodeInvalidArgument:
		return "invalid argument"
	case CodeNoRootSet:
		return "no root set"
	case CodeNotAChild:
		return "not a child"
	case CodeInternalPanic:
		return "internal panic"
	case CodeClosed:
		return "closed"
	}
	return "io"
}
