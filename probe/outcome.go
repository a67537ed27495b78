package probe

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxExcerptLength is the longest body excerpt included in a diagnostic message.
const MaxExcerptLength = 300

// Kind says which of the three possible results a probe had.
type Kind int

const (
	// Success means a response was received and its status was acceptable.
	Success Kind = iota
	// WrongStatus means a response was received but its status was not acceptable.
	WrongStatus
	// TransportError means no usable response was received.
	TransportError
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case WrongStatus:
		return "wrong status"
	case TransportError:
		return "transport error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is the immutable result of one probe.
type Outcome struct {
	Kind   Kind
	Status int
	Body   []byte
	Err    error
}

// TransportFailure returns a TransportError outcome for err.
func TransportFailure(err error) Outcome {
	return Outcome{Kind: TransportError, Err: err}
}

// OK is true for a Success outcome.
func (o Outcome) OK() bool {
	return o.Kind == Success
}

// GotResponse is true if the server answered at all.
func (o Outcome) GotResponse() bool {
	return o.Kind == Success || o.Kind == WrongStatus
}

func (o Outcome) String() string {
	if o.Kind == TransportError {
		return fmt.Sprintf("transport error: %s", o.Err)
	}
	return fmt.Sprintf("status %d, body: %s", o.Status, Excerpt(o.Body))
}

// Excerpt returns at most MaxExcerptLength characters of body. A truncated excerpt ends in "...".
func Excerpt(body []byte) string {
	return excerpt(body, MaxExcerptLength)
}

func excerpt(body []byte, max int) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "<empty>"
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
