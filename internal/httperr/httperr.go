package httperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies an error into one of the HTTP status classes the API speaks.
type Kind int

const (
	BadRequest Kind = iota
	Unauthorized
	Forbidden
	NotFound
	MethodNotAllowed
	Internal
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case BadRequest:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case MethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Name returns the fixed human-readable name for the kind.
func (k Kind) Name() string {
	switch k {
	case BadRequest:
		return "Bad Request"
	case Unauthorized:
		return "Unauthorized"
	case Forbidden:
		return "Forbidden"
	case NotFound:
		return "Not Found"
	case MethodNotAllowed:
		return "Method Not Allowed"
	default:
		return "Internal Server Error"
	}
}

// Error is a classified error carried from services and middleware up to the
// HTTP boundary, where Render turns it into a JSON response.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.Name(), e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Name(), e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a classified error with a client-visible message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds a classified error with a formatted client-visible message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error. The wrapped error is logged but never
// sent to the client.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, defaulting to Internal for anything
// unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Render writes err to the client as the JSON error envelope. Unclassified
// errors become a generic 500; internal details are never exposed.
func Render(c *gin.Context, err error) {
	kind := KindOf(err)
	message := kind.Name()

	var e *Error
	if errors.As(err, &e) && kind != Internal {
		message = e.Message
	}

	c.AbortWithStatusJSON(kind.Status(), gin.H{
		"status":  kind.Name(),
		"message": message,
	})
}
