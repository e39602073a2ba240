package autoclean

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotSpecified is matched by every *ConfigError.
var ErrNotSpecified = errors.New("autoclean: options are not specified")

// ConfigError means a selector passed to the cleaner has no bits set.
type ConfigError struct {
	// Selector is "hierarchy" or "visibility".
	Selector string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("autoclean: %s options are not specified", e.Selector)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrNotSpecified
}

// TypeError means the target or declared type cannot be cleaned.
type TypeError struct {
	Type   reflect.Type
	Reason string
	Err    error
}

func (e *TypeError) Error() string {
	msg := "autoclean: " + typeName(e.Type) + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TypeError) Unwrap() error {
	return e.Err
}

// TagError means a clean struct tag is malformed.
type TagError struct {
	Tag    string
	Option string
	Reason string
}

func (e *TagError) Error() string {
	return fmt.Sprintf("invalid clean tag %q: option %q: %s", e.Tag, e.Option, e.Reason)
}

// ReleaseError wraps a failure returned by a member's Close method. The Close
// error is available through Unwrap.
type ReleaseError struct {
	Owner  reflect.Type
	Member string
	Err    error
}

func (e *ReleaseError) Error() string {
	return fmt.Sprintf("autoclean: release %s.%s: %v", typeName(e.Owner), e.Member, e.Err)
}

func (e *ReleaseError) Unwrap() error {
	return e.Err
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
