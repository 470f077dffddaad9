package healthsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failed call.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthenticated
	KindValidation
	KindNotFound
	KindConflict
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is against an *Error's Kind.
var (
	ErrUnknown         = errors.New("healthsdk: unknown error")
	ErrUnauthenticated = errors.New("healthsdk: unauthenticated")
	ErrValidation      = errors.New("healthsdk: validation failed")
	ErrNotFound        = errors.New("healthsdk: not found")
	ErrConflict        = errors.New("healthsdk: conflict")
	ErrNetwork         = errors.New("healthsdk: network failure")
)

func (k Kind) sentinel() error {
	switch k {
	case KindUnauthenticated:
		return ErrUnauthenticated
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	case KindNetwork:
		return ErrNetwork
	default:
		return ErrUnknown
	}
}

// ============================================================================
// Error
// ============================================================================

// Error is the single error type every SDK method returns.
type Error struct {
	// Op is the operation name, e.g. "createClient".
	Op string

	// Kind classifies the failure.
	Kind Kind

	// Message is human readable and safe to show as-is.
	Message string

	// StatusCode is the HTTP status, or 0 if no response was received.
	StatusCode int

	// Fields holds per-field messages for KindValidation raised client-side.
	Fields FieldErrors

	// Err is the underlying transport or decode error, if any.
	Err error
}

// Error returns the display message.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Op + ": " + e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the Kind sentinels.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// KindOf returns the Kind of an SDK error, or KindUnknown for anything else.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns err's display message, or fallback when err is not an SDK
// error.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}

// ============================================================================
// Operations
// ============================================================================

const msgNotLoggedIn = "You must be logged in."

// operation names a call and the message shown when the registry gives none.
type operation struct {
	name     string
	fallback string
}

var (
	opLogin            = operation{"login", "Login failed. Please check your credentials."}
	opListClients      = operation{"listClients", "Failed to fetch clients. Please try again."}
	opSearchClients    = operation{"searchClients", "Failed to search clients."}
	opGetClient        = operation{"getClient", "Failed to load client profile."}
	opCreateClient     = operation{"createClient", "Failed to register client."}
	opUpdateClient     = operation{"updateClient", "Failed to update client."}
	opDeleteEnrollment = operation{"deleteEnrollment", "Failed to unenroll client."}
	opListPrograms     = operation{"listPrograms", "Failed to fetch programs."}
	opCreateProgram    = operation{"createProgram", "Failed to create program."}
	opUpdateProgram    = operation{"updateProgram", "Failed to update program."}
	opCreateEnrollment = operation{"createEnrollment", "Failed to enroll client."}
	opLiveness         = operation{"getLiveness", "Registry is not responding."}
	opReadiness        = operation{"getReadiness", "Registry is not ready."}
)

// fail builds an *Error for op. An empty msg uses the fallback.
func (op operation) fail(kind Kind, status int, msg string, cause error) *Error {
	if msg == "" {
		msg = op.fallback
	}
	return &Error{Op: op.name, Kind: kind, Message: msg, StatusCode: status, Err: cause}
}

func (op operation) invalid(fields FieldErrors) *Error {
	e := op.fail(KindValidation, 0, fields.Message(), nil)
	e.Fields = fields
	return e
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindUnauthenticated
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	default:
		return KindUnknown
	}
}

// parseErrorResponse maps a non-2xx response to an *Error. The message is
// taken from "message", then "error", and only when it is a non-empty string.
func parseErrorResponse(op operation, status int, body []byte) *Error {
	msg := ""

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err == nil {
		for _, key := range []string{"message", "error"} {
			if s, ok := doc[key].(string); ok && strings.TrimSpace(s) != "" {
				msg = s
				break
			}
		}
	}

	return op.fail(kindForStatus(status), status, msg, fmt.Errorf("HTTP %d: %s", status, http.StatusText(status)))
}
