package cache

import "reflect"

const unitWeight = 1

// Sizer is implemented by values that know how much capacity they occupy,
// for example the byte length of a payload. A Cache holding Sizer values
// becomes a byte-budget cache; all other values weigh 1.
//
// MemorySize must be safe to call while the cache lock is held and must not
// call back into the cache.
type Sizer interface {
	MemorySize() int
}

// weightOf derives the weight of v.
//
// Pointer values are seen through: a *T reports the size of the T it
// points to whenever T implements Sizer. A concrete T whose MemorySize is
// declared on *T is sized through the address of the copy. A nil pointer
// has nothing to size and weighs 1.
func weightOf[V any](v V) int {
	if s, ok := any(v).(Sizer); ok {
		if isNilPointer(s) {
			return unitWeight
		}
		return clampWeight(s.MemorySize())
	}

	if s, ok := any(&v).(Sizer); ok {
		return clampWeight(s.MemorySize())
	}

	return unitWeight
}

func isNilPointer(s Sizer) bool {
	rv := reflect.ValueOf(s)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// clampWeight keeps weights non-negative so accounting can only shrink
// when entries are removed.
func clampWeight(w int) int {
	if w < 0 {
		return 0
	}
	return w
}
