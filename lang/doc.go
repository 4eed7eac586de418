// Package lang implements the binconf configuration language: a small
// textual format translated into a JSON-compatible value tree.
//
// # The language
//
// A program is zero or more constant definitions followed by exactly one
// value:
//
//	(def base_port 0b111111011000);
//	(def host_name [[localhost]]);
//
//	@{
//	  port = $base_port$;
//	  host = $host_name$;
//	}
//
// Values take one of four forms:
//
//   - binary integers: 0b1010 or 0B1010
//   - strings: [[verbatim text]], no escape sequences
//   - arrays: array(v1, v2, ...), possibly empty
//   - dictionaries: @{ key = value; ... }, ordered, possibly empty
//
// A constant reference $name$ may stand anywhere a value may. References
// resolve eagerly against strictly earlier definitions; a later definition
// of the same name silently replaces the earlier one.
//
// # Translation
//
// [Translate] runs the full pipeline: [lexer.Scan] produces the token
// sequence, and a recursive-descent parser with one token of lookahead
// consumes it, folding constant resolution into parsing. The result is a
// [Value] ready for serialization with [Value.EncodeJSON],
// [Value.EncodeYAML], or [Value.Format].
//
// Translation stops at the first error. Every error wraps one of the
// package's sentinel errors, so callers can classify failures with
// errors.Is.
package lang
