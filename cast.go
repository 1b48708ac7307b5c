package dbf

import (
	"strings"
	"time"
)

// This file contains casting helpers for the interface{} values a Row
// stores per column, plus name-based accessors that go straight from a
// Row and a field name to a typed value.

// RowString returns the named column's value as a string, or "" if the
// column is absent or holds a different type.
func RowString(r *Row, name string) string {
	v, _ := r.ValueByName(name)
	return ToString(v)
}

// RowTrimmedString returns the named column's value as a space-trimmed
// string.
func RowTrimmedString(r *Row, name string) string {
	v, _ := r.ValueByName(name)
	return ToTrimmedString(v)
}

// RowInt64 returns the named column's value as an int64, or 0 if the
// column is absent or holds a different type.
func RowInt64(r *Row, name string) int64 {
	v, _ := r.ValueByName(name)
	return ToInt64(v)
}

// ToString always returns a string
func ToString(in interface{}) string {
	if str, ok := in.(string); ok {
		return str
	}
	return ""
}

// ToTrimmedString always returns a string with spaces trimmed
func ToTrimmedString(in interface{}) string {
	if str, ok := in.(string); ok {
		return strings.TrimSpace(str)
	}
	return ""
}

// ToInt64 always returns an int64
func ToInt64(in interface{}) int64 {
	if i, ok := in.(int64); ok {
		return i
	}
	return 0
}

// ToFloat64 always returns a float64
func ToFloat64(in interface{}) float64 {
	if f, ok := in.(float64); ok {
		return f
	}
	return 0.0
}

// ToTime always returns a time.Time
func ToTime(in interface{}) time.Time {
	if t, ok := in.(time.Time); ok {
		return t
	}
	return time.Time{}
}

// ToBool always returns a boolean
func ToBool(in interface{}) bool {
	if b, ok := in.(bool); ok {
		return b
	}
	return false
}
