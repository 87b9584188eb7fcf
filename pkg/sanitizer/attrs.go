package sanitizer

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// StatusKey is reserved by the telemetry envelope. Attributes removes it
// unconditionally so caller-supplied tags can never shadow the envelope's
// own status field.
const StatusKey = "status"

// Attributes normalises a key/value mapping into a telemetry-safe set:
//
//   - keys whose value is nil (including typed nil pointers, maps, slices
//     and funcs) are omitted;
//   - keys whose value is a plain object (a map or a struct, but not a
//     slice or an array) are replaced by their JSON text via Stringify;
//   - all other values pass through unchanged;
//   - the reserved StatusKey is always dropped.
//
// The input mapping is never modified. A nil input yields an empty,
// non-nil mapping so callers can range over the result without checks.
func Attributes(attrs map[string]any) map[string]any {
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		if k == StatusKey {
			continue
		}
		if isNil(v) {
			continue
		}
		if isPlainObject(v) {
			out[k] = Stringify(v)
			continue
		}
		out[k] = v
	}
	return out
}

// Stringify serialises a value to its JSON text. Serialization failures are
// swallowed and replaced with a diagnostic placeholder so a single bad value
// can never abort a log emission.
func Stringify(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("unable to stringify value: %v", err)
	}
	return string(data)
}

// isNil reports whether v is nil, covering typed nils hidden inside the
// interface value.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// isPlainObject reports whether v is a map or a struct (directly or behind
// pointers). Slices and arrays are not plain objects and pass through
// Attributes unchanged.
func isPlainObject(v any) bool {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		return true
	default:
		return false
	}
}
