package lexicon

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for malformed queries, such as an
	// analogy with only one of minus and plus.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = fmt.Errorf("%w: k must be positive", ErrInvalidArgument)

	// ErrNoCandidates is returned when no word remains after excluding
	// the query terms.
	ErrNoCandidates = errors.New("no candidate words left after excluding query terms")

	// ErrMissingHeader is returned when the input has no header line.
	ErrMissingHeader = errors.New("missing header line")

	// ErrDuplicateWord is wrapped by ErrMalformedLine when a word occurs
	// twice.
	ErrDuplicateWord = errors.New("duplicate word")
)

// ErrUnknownWord indicates that a query term is not in the lexicon.
type ErrUnknownWord struct {
	Word string
}

func (e *ErrUnknownWord) Error() string {
	return fmt.Sprintf("unknown word: %s", e.Word)
}

// ErrMalformedLine indicates a data line that cannot be parsed.
//
// The underlying cause can be accessed via errors.Unwrap.
type ErrMalformedLine struct {
	Line  int
	cause error
}

func (e *ErrMalformedLine) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.cause)
}

func (e *ErrMalformedLine) Unwrap() error { return e.cause }

// ErrHeaderMismatch indicates that the header does not describe the data
// that follows it. It is only returned when strict header checking is on.
type ErrHeaderMismatch struct {
	Header      string
	Words, Dims int
	cause       error
}

func (e *ErrHeaderMismatch) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("invalid header %q: %s", e.Header, e.cause)
	}
	return fmt.Sprintf("header %q does not match data: %d words, %d dimensions", e.Header, e.Words, e.Dims)
}

func (e *ErrHeaderMismatch) Unwrap() error { return e.cause }
