// Package emit renders the canonical Instruction union (internal/ir) into
// PTX assembly text. The Emitter never fails: every
// Instruction maps to either correct PTX or a "// unhandled: ..." comment.
package emit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/treutech/ptxgen/internal/ir"
	"github.com/treutech/ptxgen/internal/lower"
)

// Function renders one LLVM function's lowered blocks into PTX text lines,
// following a fixed sequence: header comment, version/target/
// address-size header, entry opener, register declarations, blocks in
// source order (empty ones skipped), one indented line per instruction,
// a guaranteed terminator, and the closing brace.
func Function(name string, blocks []lower.Block, typeMap *ir.TypeMap, target string) []string {
	var lines []string

	lines = append(lines, fmt.Sprintf("// Function: %s", name))
	lines = append(lines, header(target)...)
	lines = append(lines, fmt.Sprintf(".entry %s {", ir.CleanOperand(name)))
	lines = append(lines, registerDecls(typeMap)...)

	lastMeaningful := ""
	for _, block := range blocks {
		if len(block.Instructions) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s:", block.Name))
		for _, inst := range block.Instructions {
			text := instructionText(inst, typeMap)
			if text == "" {
				continue
			}
			for _, l := range strings.Split(text, "\n") {
				lines = append(lines, "    "+l)
				lastMeaningful = l
			}
		}
	}

	if !isTerminator(lastMeaningful) {
		lines = append(lines, "    ret;")
	}

	lines = append(lines, "}")
	return lines
}

// header renders the module-level directives. Per Open Question #2
// (decided in DESIGN.md), one header block is emitted per
// function rather than deduplicated across a module.
func header(target string) []string {
	return []string{
		".version 7.0",
		fmt.Sprintf(".target %s", target),
		".address_size 64",
		"",
	}
}

func isTerminator(line string) bool {
	return strings.HasPrefix(line, "ret;") || strings.HasPrefix(line, "bra ") || strings.HasPrefix(line, "@")
}

// registerDecls groups every name TypeMap knows about by PTX type and
// emits one ".reg .<type> %a, %b, ...;" directive per non-empty group, in
// the deterministic type order S32, S64, F32, F64, Pred, Ptr, names sorted
// alphabetically within each group.
func registerDecls(typeMap *ir.TypeMap) []string {
	var lines []string
	for _, typ := range ir.TypeOrder() {
		names := typeMap.NamesOfType(typ)
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)
		regs := make([]string, len(names))
		for i, n := range names {
			regs[i] = reg(n)
		}
		lines = append(lines, fmt.Sprintf(".reg .%s %s;", typ, strings.Join(regs, ", ")))
	}
	return lines
}

func reg(name string) string {
	name = ir.CleanOperand(name)
	if strings.HasPrefix(name, "%") {
		return name
	}
	return "%" + name
}

func mem(name string) string {
	return "[" + ir.CleanOperand(name) + "]"
}
