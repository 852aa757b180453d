package datum

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/datum/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeNoSuchField      = "no_such_field"
	CodeNoSuchBranch     = "no_such_branch"
	CodeIndexOutOfRange  = "index_out_of_range"
	CodeReservedName     = "reserved_name"
	CodeUnresolvableKind = "unresolvable_kind"
	CodeInvalidValue     = "invalid_value"
	CodeInvalidOperation = "invalid_operation"
	CodeReleasedValue    = "released_value"
	CodeSchemaMismatch   = "schema_mismatch"
	CodeEncodeError      = "encode_error"
)

// Issue represents a single access or derivation failure.
type Issue struct {
	Path    string // Key path within the value (for example: /items/2).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error surfaced verbatim.
	// Params carries structured parameters (e.g., {"key":"price", "size":3})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of access failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. no_such_field at /name
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IssueAt creates a single-Issue error at the given key with the provided
// code and message. An empty message falls back to the i18n catalogue for
// the code. This is the convenience constructor used throughout the package
// and by raw-value engines.
func IssueAt(k Key, code, msg string) Issues {
	if msg == "" {
		msg = i18n.T(code, nil)
	}
	return Issues{{Path: "/" + k.String(), Code: code, Message: msg}}
}

// IssueAtPath is IssueAt with an explicit path string.
func IssueAtPath(path, code, msg string) Issues {
	if msg == "" {
		msg = i18n.T(code, nil)
	}
	return Issues{{Path: path, Code: code, Message: msg}}
}

// HasCode reports whether err is an Issues error containing the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}
