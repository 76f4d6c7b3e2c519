package ir

import "strings"

// stripSubstrings are deleted wholesale from an operand after its leading
// sigil is stripped.
var stripSubstrings = []string{"*", "i32", "float", "f32", "ptr", " "}

// CleanOperand normalizes an LLVM operand's textual rendering into the
// single key used throughout TypeMap and the Emitter:
//
//  1. trim surrounding whitespace
//  2. take the last whitespace-delimited token (drops type prefixes like
//     "i32", "float*")
//  3. strip a leading '%' or '@'
//  4. delete "*", "i32", "float", "f32", "ptr" and spaces globally
//
// CleanOperand is idempotent: re-applying it to its own output is a no-op,
// since the output never again contains whitespace, a leading sigil, or any
// of the deleted substrings.
func CleanOperand(text string) string {
	text = strings.TrimSpace(text)

	fields := strings.Fields(text)
	if len(fields) > 0 {
		text = fields[len(fields)-1]
	}

	text = strings.TrimPrefix(text, "%")
	text = strings.TrimPrefix(text, "@")

	for _, sub := range stripSubstrings {
		text = strings.ReplaceAll(text, sub, "")
	}

	return text
}
