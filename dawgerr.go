package dawgo

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by dawgo operations.
//
// Callers should use [errors.Is] to check error kinds:
//
//	if errors.Is(err, dawgo.ErrMalformed) {
//	    // the file is not a valid dawgo image
//	}
var (
	// ErrNotFound indicates the requested key is absent from the automaton.
	//
	// Membership queries (Contains) return false instead of this error.
	// IntDAWG.FindSentinel returns the sentinel -1 instead, for source
	// parity with the integer-DAWG convention.
	ErrNotFound = errors.New("dawgo: key not found")

	// ErrNotLoaded indicates a query was issued before Open succeeded, or
	// after Close. This is a programming error.
	ErrNotLoaded = errors.New("dawgo: reader not loaded")

	// ErrMalformed indicates a file's headers could not be parsed, or a
	// declared section extends past end of file. Fatal to the reader
	// instance; see MalformedError for which image and offset.
	ErrMalformed = errors.New("dawgo: malformed file")

	// ErrInvalidReplaceTable indicates a fuzzy replacement table's value
	// set overlaps its key set, which would cause infinite substitution
	// chains. Fatal to CompileReplaces; the fuzzy query cannot run.
	ErrInvalidReplaceTable = errors.New("dawgo: invalid replacement table")

	// ErrStructuralMismatch indicates an expected transition went missing
	// during enumeration — an internal inconsistency between the
	// Dictionary and Guide images. Fatal to the current query.
	ErrStructuralMismatch = errors.New("dawgo: structural mismatch between dictionary and guide")
)

// MalformedError wraps ErrMalformed with the image and offset where
// parsing failed, for diagnosis.
type MalformedError struct {
	Image  string // "record-header", "dictionary", "guide", or "payload"
	Offset int64
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dawgo: malformed %s at offset %d: %v", e.Image, e.Offset, e.Err)
	}
	return fmt.Sprintf("dawgo: malformed %s at offset %d", e.Image, e.Offset)
}

func (e *MalformedError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformed, e.Err}
	}
	return []error{ErrMalformed}
}

func malformed(image string, offset int64, err error) error {
	return &MalformedError{Image: image, Offset: offset, Err: err}
}
