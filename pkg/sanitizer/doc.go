// Package sanitizer normalises arbitrary data into shapes that are safe to
// emit as telemetry attributes or store as user-facing text.
//
// The package is split into two areas:
//
//   - Attributes – flattening of key/value mappings into telemetry-safe sets:
//     nil-valued keys are dropped, plain objects (maps and structs) are
//     replaced by their JSON text, primitives and slices pass through
//     unchanged, and the reserved "status" key is always removed so it can
//     never collide with the log envelope's own status field.
//
//   - Strings – trimming, whitespace normalisation and length limiting for
//     free-form user input such as task titles.
//
// All helpers are pure, stateless functions over the standard library. The
// higher-order Apply and Compose helpers allow the creation of sanitisation
// pipelines:
//
//	clean := sanitizer.Compose(
//	    sanitizer.Trim,
//	    sanitizer.RemoveExtraWhitespace,
//	)
//
//	title := clean("  buy   milk \n") // "buy milk"
//
// Attribute sanitization is idempotent: applying Attributes to its own
// output returns an equal mapping, because every transformation it performs
// produces a value the function passes through untouched.
package sanitizer
