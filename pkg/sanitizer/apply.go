package sanitizer

// Apply runs transforms over value in order.
func Apply[T any](value T, transforms ...func(T) T) T {
	result := value

	for _, transform := range transforms {
		result = transform(result)
	}

	return result
}

// Compose stores a transform chain for reuse.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}

// Hook adapts string transforms to a raw input hook. Strings are transformed,
// any other value passes through untouched so type checks still see it.
func Hook(transforms ...func(string) string) func(any) (any, error) {
	chain := Compose(transforms...)
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return value, nil
		}
		return chain(s), nil
	}
}
