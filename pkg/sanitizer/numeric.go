package sanitizer

import "math"

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

type Float interface {
	~float32 | ~float64
}

// RoundToDecimalPlaces rounds half away from zero. Negative places count as zero.
func RoundToDecimalPlaces[T Float](value T, places int) T {
	if places < 0 {
		places = 0
	}

	multiplier := math.Pow(10, float64(places))
	return T(math.Round(float64(value)*multiplier) / multiplier)
}

// SafeDivide returns fallback instead of dividing by zero.
func SafeDivide[T Numeric](numerator T, denominator T, fallback T) T {
	if denominator == 0 {
		return fallback
	}
	return numerator / denominator
}
