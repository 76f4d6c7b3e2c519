package ir

import "testing"

func TestCleanOperand(t *testing.T) {
	cases := map[string]string{
		"%x":          "x",
		"i32 %x":      "x",
		"float* %x":   "x",
		"  %y  ":      "y",
		"@foo":        "foo",
		"i32 %a_b":    "a_b",
	}
	for in, want := range cases {
		if got := CleanOperand(in); got != want {
			t.Errorf("CleanOperand(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanOperandIdempotent(t *testing.T) {
	inputs := []string{"%x", "i32 %x", "float* %x", "@foo", "plain", ""}
	for _, in := range inputs {
		once := CleanOperand(in)
		twice := CleanOperand(once)
		if once != twice {
			t.Errorf("CleanOperand not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}
