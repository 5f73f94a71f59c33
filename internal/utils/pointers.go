// Package utils holds helpers for the optional fields of the API payloads.
package utils

// Value dereferences v, returning the zero value when v is nil.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

func Ptr[T any](v T) *T {
	return &v
}

// Present reports whether v is set to a non-zero value.
func Present[T comparable](v *T) bool {
	var zero T
	return v != nil && *v != zero
}
