package importer

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an import failure.
type ErrorKind string

const (
	// KindTransport covers network failures and non-success HTTP
	// responses.
	KindTransport ErrorKind = "transport"

	// KindParse covers response bodies that are not valid JSON.
	KindParse ErrorKind = "parse"

	// KindShape covers valid JSON whose structure is not a technology
	// collection.
	KindShape ErrorKind = "shape"

	// KindSuperseded marks a run abandoned because a newer run started
	// or the active identity changed before commit.
	KindSuperseded ErrorKind = "superseded"
)

// ImportError is the single error type surfaced by the import
// pipeline. Status carries the HTTP status code for transport errors,
// zero otherwise.
type ImportError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("import failed (%s, HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("import failed (%s): %s", e.Kind, e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// AsImportError unwraps err into an *ImportError if one is in its chain.
func AsImportError(err error) (*ImportError, bool) {
	var ie *ImportError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// IsKind reports whether err is an ImportError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	ie, ok := AsImportError(err)
	return ok && ie.Kind == kind
}
