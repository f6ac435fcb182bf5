package container

import "fmt"

// DefaultLess orders two dynamically typed values for the factory-default
// SortedSet/SortedMap, where the resolver has no compile-time element type
// to derive a narrower comparator from. Same-kind numeric, string, and bool
// values compare by value; anything else, or a comparison across differing
// dynamic types, falls back to comparing the formatted text, so ordering
// stays total even over a mixed-type collection.
func DefaultLess(a, b any) bool {
	switch av := a.(type) {
	case int64:
		if bv, ok := b.(int64); ok {
			return av < bv
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return av < bv
		}
	case string:
		if bv, ok := b.(string); ok {
			return av < bv
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return !av && bv
		}
	}

	return fmt.Sprint(a) < fmt.Sprint(b)
}
