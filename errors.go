package blocksig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/blocksig/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType     = "invalid_type"
	CodeRequired        = "required"
	CodeUnknownKey      = "unknown_key"
	CodeDuplicateKey    = "duplicate_key"
	CodeUnknownType     = "unknown_type"
	CodeOutOfRange      = "out_of_range"
	CodeInvalidPosition = "invalid_position"
	CodeTooSmall        = "too_small"
	CodeParseError      = "parse_error"
)

// ErrConfiguration is matched by every Issues value under errors.Is. All
// failures of this package are configuration errors: signature generation
// itself cannot fail once a strategy set is valid for a record.
var ErrConfiguration = errors.New("blocksig: configuration error")

// Issue represents a single configuration problem.
type Issue struct {
	Path    string // JSON Pointer into the strategy-set document (for example: /0/1/config/n).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	// Params carries structured parameters (e.g., {"index":4, "fields":3})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of configuration errors that implements error.
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
		// e.g. unknown_type at /0/1/type: unknown signature type: "phonex"
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is reports whether target is ErrConfiguration.
func (iss Issues) Is(target error) bool { return target == ErrConfiguration }

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
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

// errOrNil converts an empty collection into a nil error.
func (iss Issues) errOrNil() error {
	if len(iss) == 0 {
		return nil
	}
	return iss
}

// newIssue builds an Issue whose message is taken from the i18n catalog with
// detail appended.
func newIssue(path, code, detail string) Issue {
	var data map[string]string
	if detail != "" {
		data = map[string]string{"detail": detail}
	}
	return Issue{Path: path, Code: code, Message: i18n.T(code, data)}
}
