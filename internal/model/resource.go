package model

import (
	"fmt"
	"strings"
)

// DefaultResultCode replaces an empty first value of a resource entry.
const DefaultResultCode = "000000"

// ResourceEntry is one key/value pair of a properties resource.
type ResourceEntry struct {
	Key   string
	Value string
}

// Split divides the raw value on commas. Trailing empty parts are dropped
// before counting, so "300003," is a single part. Two or more parts yield the
// first two; a single part becomes the second value. An empty first value
// falls back to DefaultResultCode.
func (e ResourceEntry) Split() (string, string) {
	parts := strings.Split(e.Value, ",")
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var v1, v2 string

	if len(parts) > 1 {
		v1, v2 = parts[0], parts[1]
	} else {
		v2 = parts[0]
	}

	if v1 == "" {
		v1 = DefaultResultCode
	}

	return v1, v2
}

// FailureReason explains why a resource produced no entries.
type FailureReason int

// Available FailureReason values.
const (
	FailureNotFound FailureReason = iota
	FailureNotRegular
	FailureUnreadable
	FailureMalformed
)

func (r FailureReason) String() string {
	switch r {
	case FailureNotFound:
		return "not found"
	case FailureNotRegular:
		return "not a regular file"
	case FailureUnreadable:
		return "unreadable"
	case FailureMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// ResourceFailure is the structured failure of a resource load.
type ResourceFailure struct {
	Reason FailureReason
	Path   Path
	Err    error
}

func (f *ResourceFailure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("resource %s: %s", f.Path, f.Reason)
	}

	return fmt.Sprintf("resource %s: %s: %v", f.Path, f.Reason, f.Err)
}

func (f *ResourceFailure) Unwrap() error {
	return f.Err
}

// ResourceLoad is the outcome of loading a resource: either its entries in
// file order or a failure.
type ResourceLoad struct {
	Path    Path
	Entries []ResourceEntry
	Failure *ResourceFailure
}

// OK reports whether the resource was loaded.
func (l ResourceLoad) OK() bool {
	return l.Failure == nil
}
