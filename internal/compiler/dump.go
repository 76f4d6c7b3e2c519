package compiler

import (
	"fmt"
	"strings"

	"github.com/treutech/ptxgen/internal/ir"
	"github.com/treutech/ptxgen/internal/llvmsrc"
	"github.com/treutech/ptxgen/internal/lower"
)

// DumpIR parses irText and renders the lowered instruction sequence for
// every function, one line per Instruction, before type inference or
// emission runs.
func DumpIR(irText string) (string, error) {
	module, err := llvmsrc.Parse(irText)
	if err != nil {
		return "", &ParseError{Err: err}
	}

	var out []string
	for _, fn := range module.Funcs {
		name := functionName(fn)
		out = append(out, fmt.Sprintf("function %s:", name))
		for _, block := range lower.Function(fn) {
			out = append(out, fmt.Sprintf("  %s:", block.Name))
			for _, inst := range block.Instructions {
				out = append(out, fmt.Sprintf("    %s", describe(inst)))
			}
		}
	}
	return strings.Join(out, "\n"), nil
}

func describe(inst ir.Instruction) string {
	return fmt.Sprintf("%v %v", inst.Kind, inst.UsedOperands())
}
