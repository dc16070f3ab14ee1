package cbor

import "fmt"

// Kind classifies a codec failure so callers can branch on it with Is,
// without parsing message text. It mirrors the error taxonomy a Cardano CBOR
// codec needs: malformed wire bytes are a different failure mode than a
// domain-level invariant rejecting an otherwise well-formed value.
type Kind int

const (
	// InputTruncated means a declared length exceeds the bytes available.
	InputTruncated Kind = iota
	// TrailingInput means a top-level decode did not consume the full buffer.
	TrailingInput
	// MalformedHeader means a reserved additional-info value, a break byte
	// in an illegal position, or a nested indefinite-length string.
	MalformedHeader
	// InvalidUtf8 means a text string's bytes are not valid UTF-8.
	InvalidUtf8
	// InvalidTagPayload means a structural tag's inner value had the wrong shape,
	// e.g. tag 2/3 wrapping something other than a byte string.
	InvalidTagPayload
	// OutOfRange means an integer or byte length violates a refinement.
	OutOfRange
	// InvalidVariant means no union arm matched during decode.
	InvalidVariant
	// InvariantViolation means a domain invariant was violated, e.g. a
	// NonZeroInt64 of zero, or an empty non-empty set.
	InvariantViolation
	// EncoderRefusal means the writer was asked to emit something it cannot
	// represent under the requested options.
	EncoderRefusal
)

func (k Kind) String() string {
	switch k {
	case InputTruncated:
		return "InputTruncated"
	case TrailingInput:
		return "TrailingInput"
	case MalformedHeader:
		return "MalformedHeader"
	case InvalidUtf8:
		return "InvalidUtf8"
	case InvalidTagPayload:
		return "InvalidTagPayload"
	case OutOfRange:
		return "OutOfRange"
	case InvalidVariant:
		return "InvalidVariant"
	case InvariantViolation:
		return "InvariantViolation"
	case EncoderRefusal:
		return "EncoderRefusal"
	default:
		return "Unknown"
	}
}

// Error is a structured codec error carrying a kind, a human-readable
// message and an optional underlying cause. It never silently swallows the
// cause: Unwrap exposes it so errors.Is/errors.As keep working through
// composed schemas.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether err, or any error in its Cause/Unwrap chain, is an
// *Error of the given kind. It is a standalone helper rather than an
// errors.Is target because Kind is not itself an error.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ce, ok := err.(*Error); ok {
			e = ce
			if e.Kind == kind {
				return true
			}
			err = e.Cause
			continue
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Newf builds an *Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind, wrapping an underlying cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}
