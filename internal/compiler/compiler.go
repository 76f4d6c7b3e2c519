// Package compiler implements the Driver glue:
// parse → lower per function → type-infer → emit per function →
// concatenate. Compile is a pure, synchronous function of its arguments;
// nothing it touches survives past its return.
package compiler

import (
	"strings"

	"github.com/treutech/ptxgen/internal/diag"
	"github.com/treutech/ptxgen/internal/emit"
	"github.com/treutech/ptxgen/internal/ir"
	"github.com/treutech/ptxgen/internal/llvmsrc"
	"github.com/treutech/ptxgen/internal/lower"
)

// DefaultTarget is used when a caller does not specify an SM architecture.
const DefaultTarget = "sm_75"

// Compile parses irText as an LLVM IR module, lowers and emits every
// function in parse order, and concatenates their PTX text separated by
// blank lines. A parse failure is returned as a *ParseError; nothing else
// Compile does can fail, by construction (the Lowerer and Emitter are
// total).
func Compile(irText, target string, sink *diag.Sink) (string, error) {
	if target == "" {
		target = DefaultTarget
	}

	module, err := llvmsrc.Parse(irText)
	if err != nil {
		return "", &ParseError{Err: err}
	}

	var sections []string
	for _, fn := range module.Funcs {
		blocks := lower.Function(fn)
		flat := lower.Flatten(blocks)
		typeMap := ir.BuildTypeMap(flat)

		recordDiagnostics(sink, flat)

		lines := emit.Function(functionName(fn), blocks, typeMap, target)
		sections = append(sections, strings.Join(lines, "\n"))
	}

	return strings.Join(sections, "\n\n"), nil
}

func functionName(fn *llvmsrc.Function) string {
	return ir.CleanOperand(fn.Ident())
}

// recordDiagnostics surfaces every KUnhandled instruction as an
// UnhandledOpcode event.
func recordDiagnostics(sink *diag.Sink, instructions []ir.Instruction) {
	if sink == nil {
		return
	}
	for _, inst := range instructions {
		if inst.Kind == ir.KUnhandled {
			sink.Record(diag.Event{
				Kind:     diag.UnhandledOpcode,
				Function: inst.Function,
				Detail:   inst.Text,
			})
		}
	}
}
