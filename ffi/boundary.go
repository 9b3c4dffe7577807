// Package ffi is the integer-handle surface of the engine. It owns one
// process-wide engine behind a mutex, converts errors into status codes
// and keeps the last error message for the caller. Every entry point
// recovers panics, reports StatusPanic and repairs the engine's references
// before returning.
package ffi

import (
	"fmt"
	"log"
	"sync"

	"github.com/pkg/errors"

	"github.com/lixenwraith/termgraph/engine"
)

// Status values returned by every non-allocating call
const (
	StatusOK    int32 = 0
	StatusError int32 = -1
	StatusPanic int32 = -2
)

// ErrNotInitialized reports a call made before Init or after Shutdown
var ErrNotInitialized = fmt.Errorf("not initialized: %w", engine.ErrClosed)

var errNilOut = fmt.Errorf("%w: nil output pointer", engine.ErrInvalidArgument)

var (
	mu      sync.Mutex
	eng     *engine.Engine
	lastErr error
)

// Init creates the process-wide engine. A second Init without Shutdown
// fails.
func Init(opts engine.Options) int32 {
	return install("init", func() (engine.Options, error) { return opts, nil }, nil)
}

// install builds the options, creates the engine and runs setup, all under
// mu and guard. A setup error closes the new engine again.
func install(name string, build func() (engine.Options, error), setup func(e *engine.Engine) error) int32 {
	mu.Lock()
	defer mu.Unlock()
	return guard(name, func() error {
		if eng != nil {
			return fmt.Errorf("%w: already initialized", engine.ErrInvalidArgument)
		}
		opts, err := build()
		if err != nil {
			return err
		}
		e, err := engine.New(opts)
		if err != nil {
			return err
		}
		eng = e
		if setup != nil {
			if err := setup(e); err != nil {
				eng = nil
				if cerr := e.Close(); cerr != nil {
					log.Printf("ffi: close after failed %s: %v", name, cerr)
				}
				return err
			}
		}
		log.Printf("ffi: initialized")
		return nil
	})
}

// Shutdown closes the engine and restores the terminal. Handles from the
// closed engine are invalid; a later Init starts over.
func Shutdown() int32 {
	mu.Lock()
	defer mu.Unlock()
	return guard("shutdown", func() error {
		if eng == nil {
			return ErrNotInitialized
		}
		err := eng.Close()
		eng = nil
		log.Printf("ffi: shut down")
		return err
	})
}

// Initialized reports whether an engine is live
func Initialized() bool {
	mu.Lock()
	defer mu.Unlock()
	return eng != nil
}

// call runs fn against the live engine with exclusive access
func call(name string, fn func(e *engine.Engine) error) int32 {
	mu.Lock()
	defer mu.Unlock()
	return guard(name, func() error {
		if eng == nil {
			return ErrNotInitialized
		}
		return fn(eng)
	})
}

// alloc runs fn and returns its handle, or 0 on any failure
func alloc(name string, fn func(e *engine.Engine) (uint32, error)) uint32 {
	var h uint32
	st := call(name, func(e *engine.Engine) error {
		var err error
		h, err = fn(e)
		return err
	})
	if st != StatusOK {
		return 0
	}
	return h
}

// count runs fn and returns its non-negative result, or a status on failure
func count(name string, fn func(e *engine.Engine) (int, error)) int32 {
	var n int
	st := call(name, func(e *engine.Engine) error {
		var err error
		n, err = fn(e)
		return err
	})
	if st != StatusOK {
		return st
	}
	return int32(n)
}

// guard converts fn's outcome into a status. Callers hold mu.
func guard(name string, fn func() error) (status int32) {
	callCount.Add(1)
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		perr := errors.Errorf("panic in %s: %v", name, r)
		log.Printf("ffi: caught %+v", perr)
		panicCount.Add(1)
		lastPanic.Store(name)
		lastErr = fmt.Errorf("%w: %w", engine.ErrInternalPanic, perr)
		repair()
		status = StatusPanic
	}()

	if err := fn(); err != nil {
		errorCount.Add(1)
		lastErr = fmt.Errorf("%s: %w", name, err)
		return StatusError
	}
	return StatusOK
}

// repair restores engine invariants after a caught panic. A panic inside
// repair leaves the engine unusable and it is dropped.
func repair() {
	if eng == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ffi: %+v", errors.Errorf("repair failed: %v", r))
			eng = nil
		}
	}()
	repairCount.Add(int64(eng.Repair()))
}

// LastError copies the last error message into buf, truncating, and
// returns the full message length. 0 means no error is recorded.
func LastError(buf []byte) int32 {
	mu.Lock()
	defer mu.Unlock()
	if lastErr == nil {
		return 0
	}
	msg := lastErr.Error()
	copy(buf, msg)
	return int32(len(msg))
}

// LastErrorCode classifies the last error
func LastErrorCode() int32 {
	mu.Lock()
	defer mu.Unlock()
	return int32(engine.CodeOf(lastErr))
}

// ClearError forgets the last error
func ClearError() {
	mu.Lock()
	defer mu.Unlock()
	lastErr = nil
}
