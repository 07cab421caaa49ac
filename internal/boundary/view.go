// Package boundary turns raw caller memory into validated Go values and
// maps every outcome onto an errcode.Code. It holds the logic behind the
// C exports in cmd/catalystffi so that it can be tested without cgo.
//
// Caller buffers are only read through View and the fixed-size helpers.
// Nothing is retained after a call returns.
package boundary

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/catalyst-network/catalyst-ffi-go/pkg/errcode"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/stdsig"
)

// MaxMessageLength bounds variable-length message input.
const MaxMessageLength = math.MaxInt32

var (
	ErrNullPointer = fmt.Errorf("%w: null pointer", errcode.ErrInvalidInput)
	ErrTooLarge    = fmt.Errorf("%w: buffer too large", errcode.ErrInvalidInput)
)

// View returns the n bytes at ptr as a slice. A zero length yields an empty
// slice whatever ptr is; a nil ptr with non-zero length and a length above
// max are rejected before ptr is dereferenced.
func View(ptr unsafe.Pointer, n uintptr, max int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	if ptr == nil {
		return nil, ErrNullPointer
	}
	if n > uintptr(max) {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooLarge, n, max)
	}
	return unsafe.Slice((*byte)(ptr), int(n)), nil
}

// contextView is View with the context bound reported as
// INVALID_CONTEXT_LENGTH rather than INVALID_INPUT.
func contextView(ptr unsafe.Pointer, n uintptr) ([]byte, error) {
	if n > stdsig.ContextMaxLength {
		return nil, fmt.Errorf("%w: %d > %d", stdsig.ErrInvalidContextLength, n, stdsig.ContextMaxLength)
	}
	return View(ptr, n, stdsig.ContextMaxLength)
}

func fixed32(ptr unsafe.Pointer) (*[32]byte, error) {
	if ptr == nil {
		return nil, ErrNullPointer
	}
	return (*[32]byte)(ptr), nil
}

func fixed64(ptr unsafe.Pointer) (*[64]byte, error) {
	if ptr == nil {
		return nil, ErrNullPointer
	}
	return (*[64]byte)(ptr), nil
}

func fixedN(ptr unsafe.Pointer, n int) ([]byte, error) {
	if ptr == nil {
		return nil, ErrNullPointer
	}
	return unsafe.Slice((*byte)(ptr), n), nil
}
