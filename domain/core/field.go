package core

// Field wraps a single upstream-sourced attribute with its provenance.
// A nil Value means the provider did not report the attribute - it never
// means zero. Consumers must go through Get and treat nil as "unknown".
type Field[T any] struct {
	Value      *T     `json:"value"`
	Source     string `json:"source,omitempty"`
	Confidence string `json:"confidence,omitempty"`
}

// FieldOf wraps a known value with its source
func FieldOf[T any](value T, source string) Field[T] {
	return Field[T]{Value: &value, Source: source}
}

// Get returns the wrapped value, or nil when the field is absent or null.
// This is the sole point of contact with the wrapper shape - the rest of
// the pipeline never inspects Field internals directly. Never panics.
func (f *Field[T]) Get() *T {
	if f == nil || f.Value == nil {
		return nil
	}
	return f.Value
}

// IsKnown reports whether the field carries a real value
func (f *Field[T]) IsKnown() bool {
	return f != nil && f.Value != nil
}

// Ptr returns a pointer to v. Convenience for building records and fixtures.
func Ptr[T any](v T) *T {
	return &v
}
