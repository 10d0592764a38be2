// Package outcome normalizes heterogeneous FortiGate API responses into
// one canonical result.
//
// The device client yields three shapes: a status-coded response (HTTP
// status plus body, where FortiOS may embed an error marker inside a 2xx
// body), an already-decoded mapping with no status code, and — from
// misbehaving transports — anything else. Normalize collapses all three
// into an Outcome tagged with one of four classes:
//
//   - ClassSuccess: the operation took effect
//   - ClassNotFound: the target does not exist on the device
//   - ClassConflict: the target already exists (warning-eligible; create
//     operations downgrade this to a non-fatal warning)
//   - ClassError: everything else
//
// Normalize and ErrorDetails never return an error and never panic;
// every input terminates in an Outcome.
package outcome

import (
	"fmt"
	"strings"
)

// Class tags an Outcome with its normalized result kind.
type Class int

const (
	ClassSuccess Class = iota
	ClassError
	ClassNotFound
	ClassConflict
)

// SyntheticStatus is the http_status sentinel attached when the response
// carried no real HTTP status code (plain mapping responses).
const SyntheticStatus = -1

// CodeDuplicate is the FortiOS numeric error code reported for duplicate
// entries inside response payloads.
const CodeDuplicate = -5

// Outcome is the canonical normalized result of one device call.
type Outcome struct {
	Class   Class
	Message string
	Details any
	// HTTPStatus is the device's status code, SyntheticStatus when the
	// response had none, or 0 when not applicable (2xx success paths).
	HTTPStatus int
}

// Responder is the status-coded response shape. *fortigate.Response
// satisfies it; tests may provide their own.
type Responder interface {
	StatusCode() int
	JSON() (map[string]any, bool)
	Text() string
}

// Markers the classifier matches against lowercased error text. FortiOS
// wordings vary across releases; extend here, not at call sites.
var (
	notFoundMarkers = []string{"not found", "entry not found", "-404"}
	conflictMarkers = []string{"already exist", "duplicate entry", "already_exists"}
)

// IsNotFound reports whether the error text indicates an absent target.
func IsNotFound(text string) bool {
	return containsAny(text, notFoundMarkers)
}

// IsConflict reports whether the error text indicates an already-existing
// target.
func IsConflict(text string) bool {
	return containsAny(text, conflictMarkers)
}

func containsAny(text string, markers []string) bool {
	lower := strings.ToLower(text)
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// hasDuplicateCode reports whether a decoded payload carries the FortiOS
// duplicate-entry error code.
func hasDuplicateCode(body map[string]any) bool {
	code, ok := body["error"]
	if !ok {
		return false
	}
	// JSON numbers decode as float64; be liberal about the rest.
	switch v := code.(type) {
	case float64:
		return int(v) == CodeDuplicate
	case int:
		return v == CodeDuplicate
	}
	return false
}

// Normalize collapses a device response into an Outcome. The action name
// is used only for messages ("interface creation", "policy update", ...).
func Normalize(resp any, action string) Outcome {
	switch r := resp.(type) {
	case Responder:
		return normalizeStatusCoded(r, action)
	case map[string]any:
		return normalizeMapping(r, action)
	default:
		return Outcome{
			Class:   ClassError,
			Message: "unexpected response type from API client",
			Details: fmt.Sprintf("%v", resp),
		}
	}
}

func normalizeStatusCoded(r Responder, action string) Outcome {
	code := r.StatusCode()
	body, isJSON := r.JSON()
	var details any
	if isJSON {
		details = body
	} else {
		details = r.Text()
	}

	if code >= 200 && code < 300 {
		// FortiOS sometimes reports failure inside a 200 body.
		if isJSON && body["status"] == "error" {
			return Outcome{
				Class:   ClassError,
				Message: fmt.Sprintf("FortiGate API error for %s", action),
				Details: body,
			}
		}
		return Outcome{
			Class:   ClassSuccess,
			Message: fmt.Sprintf("%s completed successfully", capitalize(action)),
			Details: details,
		}
	}

	errText := ErrorDetails(r)

	if code == 404 || IsNotFound(errText) {
		return Outcome{
			Class:      ClassNotFound,
			Message:    fmt.Sprintf("%s target not found", capitalize(action)),
			Details:    errText,
			HTTPStatus: code,
		}
	}

	if code == 500 && (IsConflict(errText) || (isJSON && hasDuplicateCode(body))) {
		return Outcome{
			Class:      ClassConflict,
			Message:    fmt.Sprintf("%s target already exists", capitalize(action)),
			Details:    details,
			HTTPStatus: code,
		}
	}

	return Outcome{
		Class:      ClassError,
		Message:    fmt.Sprintf("FortiGate API error (HTTP %d) for %s", code, action),
		Details:    details,
		HTTPStatus: code,
	}
}

func normalizeMapping(body map[string]any, action string) Outcome {
	if body["status"] == "success" {
		return Outcome{
			Class:   ClassSuccess,
			Message: fmt.Sprintf("%s completed successfully", capitalize(action)),
			Details: body,
		}
	}

	errText := ErrorDetails(body)

	if IsConflict(errText) || hasDuplicateCode(body) {
		return Outcome{
			Class:      ClassConflict,
			Message:    fmt.Sprintf("%s target already exists", capitalize(action)),
			Details:    body,
			HTTPStatus: SyntheticStatus,
		}
	}

	if IsNotFound(errText) || emptyResults(body) {
		return Outcome{
			Class:      ClassNotFound,
			Message:    fmt.Sprintf("%s target not found", capitalize(action)),
			Details:    errText,
			HTTPStatus: SyntheticStatus,
		}
	}

	return Outcome{
		Class:      ClassError,
		Message:    fmt.Sprintf("%s failed", capitalize(action)),
		Details:    body,
		HTTPStatus: SyntheticStatus,
	}
}

// emptyResults reports whether the mapping carries a present-but-empty
// results slice, which the device uses for misses on some endpoints.
func emptyResults(body map[string]any) bool {
	results, ok := body["results"]
	if !ok {
		return false
	}
	s, ok := results.([]any)
	return ok && len(s) == 0
}

// ErrorDetails extracts a human-readable error string from a response,
// mapping, or error value. FortiOS puts CLI-level messages under
// "cli_error", generic ones under "message"; the full stringified
// structure is the last resort. Never fails.
func ErrorDetails(v any) string {
	switch r := v.(type) {
	case Responder:
		if body, ok := r.JSON(); ok {
			return detailsFromMap(body)
		}
		return r.Text()
	case map[string]any:
		return detailsFromMap(r)
	case error:
		return r.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func detailsFromMap(body map[string]any) string {
	if s, ok := body["cli_error"].(string); ok && s != "" {
		return s
	}
	if s, ok := body["message"].(string); ok && s != "" {
		return s
	}
	return fmt.Sprintf("%v", body)
}

// Success builds a success outcome with a preset message.
func Success(message string, details any) Outcome {
	return Outcome{Class: ClassSuccess, Message: message, Details: details}
}

// Errorf builds an error outcome from a format string.
func Errorf(format string, args ...any) Outcome {
	return Outcome{Class: ClassError, Message: fmt.Sprintf(format, args...)}
}

// IsError reports whether the outcome is any of the failure classes.
// Conflicts count as failures here; create operations that want the
// idempotent-warning behavior check Class directly.
func (o Outcome) IsError() bool {
	return o.Class != ClassSuccess
}

// AsMap renders the canonical outcome mapping. Success carries "status",
// "message" and "details"; failures carry "error" plus "details" and
// "http_status" when known. Exactly one of "status"/"error" appears.
func (o Outcome) AsMap() map[string]any {
	if o.Class == ClassSuccess {
		m := map[string]any{
			"status":  "success",
			"message": o.Message,
		}
		if o.Details != nil {
			m["details"] = o.Details
		}
		return m
	}

	m := map[string]any{"error": o.Message}
	if o.Details != nil {
		m["details"] = o.Details
	}
	if o.HTTPStatus != 0 {
		m["http_status"] = o.HTTPStatus
	}
	return m
}

// AsWarningMap renders the idempotent-conflict warning mapping used when
// a create hits an already-existing target.
func (o Outcome) AsWarningMap() map[string]any {
	m := map[string]any{
		"status":  "warning",
		"message": o.Message,
	}
	if o.Details != nil {
		m["details"] = o.Details
	}
	return m
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
