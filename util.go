package main

import (
	"fmt"
)

func _Clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func _Wrap(err error, value string) error {
	return fmt.Errorf("%w: %q", err, value)
}
