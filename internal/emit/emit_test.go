package emit

import (
	"strings"
	"testing"

	"github.com/treutech/ptxgen/internal/ir"
	"github.com/treutech/ptxgen/internal/lower"
)

func TestFunctionMinimalRet(t *testing.T) {
	blocks := []lower.Block{
		{Name: "entry", Instructions: []ir.Instruction{
			{Kind: ir.KRet, Function: "main"},
		}},
	}
	typeMap := ir.NewTypeMap()
	lines := Function("main", blocks, typeMap, "sm_75")
	text := strings.Join(lines, "\n")

	if !strings.Contains(text, ".entry main {") {
		t.Errorf("missing entry opener:\n%s", text)
	}
	if !strings.Contains(text, "    ret;") {
		t.Errorf("missing terminator:\n%s", text)
	}
	if !strings.HasSuffix(strings.TrimRight(text, "\n"), "}") {
		t.Errorf("missing closing brace:\n%s", text)
	}
}

func TestFunctionAddRegistersAlphabetical(t *testing.T) {
	blocks := []lower.Block{
		{Name: "entry", Instructions: []ir.Instruction{
			{Kind: ir.KAdd, Function: "add", Dst: "c", Lhs: "a", Rhs: "b"},
			{Kind: ir.KRet, Function: "add"},
		}},
	}
	flat := lower.Flatten(blocks)
	typeMap := ir.BuildTypeMap(flat)
	lines := Function("add", blocks, typeMap, "sm_75")
	text := strings.Join(lines, "\n")

	if !strings.Contains(text, ".reg .s32 %a, %b, %c;") {
		t.Errorf("missing register declaration:\n%s", text)
	}
	if !strings.Contains(text, "add.s32 %c, %a, %b;") {
		t.Errorf("missing add instruction:\n%s", text)
	}
}

func TestFunctionTerminatorGuaranteeAppendsRet(t *testing.T) {
	blocks := []lower.Block{
		{Name: "entry", Instructions: []ir.Instruction{
			{Kind: ir.KAdd, Function: "f", Dst: "c", Lhs: "a", Rhs: "b"},
		}},
	}
	flat := lower.Flatten(blocks)
	typeMap := ir.BuildTypeMap(flat)
	lines := Function("f", blocks, typeMap, "sm_75")
	text := strings.Join(lines, "\n")

	if !strings.HasSuffix(strings.TrimRight(text, "\n"), "ret;\n}") && !strings.Contains(text, "    ret;\n}") {
		t.Errorf("expected a synthesized terminator before the closing brace:\n%s", text)
	}
}

func TestFunctionSkipsEmptyBlocks(t *testing.T) {
	blocks := []lower.Block{
		{Name: "dead"},
		{Name: "entry", Instructions: []ir.Instruction{{Kind: ir.KRet, Function: "f"}}},
	}
	typeMap := ir.NewTypeMap()
	lines := Function("f", blocks, typeMap, "sm_75")
	text := strings.Join(lines, "\n")

	if strings.Contains(text, "dead:") {
		t.Errorf("empty block should be skipped:\n%s", text)
	}
}

func TestCallExpansion(t *testing.T) {
	inst := ir.Instruction{Kind: ir.KCall, Function: "f", Callee: "foo"}
	typeMap := ir.NewTypeMap()
	text := instructionText(inst, typeMap)
	if text != "call foo, ();" {
		t.Errorf("got %q, want %q", text, "call foo, ();")
	}
}

func TestCallWithArgsExpansion(t *testing.T) {
	inst := ir.Instruction{Kind: ir.KCall, Function: "f", Callee: "foo", Args: []string{"x", "y"}}
	typeMap := ir.NewTypeMap()
	typeMap.Insert("x", ir.S32)
	typeMap.Insert("y", ir.F32)

	text := instructionText(inst, typeMap)
	for _, want := range []string{
		".param .s32 arg0;",
		".param .f32 arg1;",
		"st.param.s32 [arg0], %x;",
		"st.param.f32 [arg1], %y;",
		"call foo, (arg0, arg1);",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expansion missing %q:\n%s", want, text)
		}
	}
}

func TestGetElementPtrExpansion(t *testing.T) {
	inst := ir.Instruction{Kind: ir.KGetElementPtr, Function: "f", Dst: "p", Base: "base", Index: "i"}
	text := instructionText(inst, ir.NewTypeMap())
	if !strings.Contains(text, "mul.lo.s32 %p_offset, %i, 4;") {
		t.Errorf("missing offset computation: %s", text)
	}
	if !strings.Contains(text, "add.s32 %p, %base, %p_offset;") {
		t.Errorf("missing address add: %s", text)
	}
}

func TestICmpMnemonics(t *testing.T) {
	cases := map[ir.ICmpPred]string{
		ir.IEQ: "eq", ir.INE: "ne", ir.IUGT: "gt", ir.ISGT: "gt",
		ir.IUGE: "ge", ir.ISGE: "ge", ir.IULT: "lt", ir.ISLT: "lt",
		ir.IULE: "le", ir.ISLE: "le",
	}
	for pred, want := range cases {
		if got := icmpMnemonic(pred); got != want {
			t.Errorf("icmpMnemonic(%v) = %q, want %q", pred, got, want)
		}
	}
}

func TestAllocaEmitsNothing(t *testing.T) {
	inst := ir.Instruction{Kind: ir.KAlloca, Function: "f", Dst: "p"}
	if got := instructionText(inst, ir.NewTypeMap()); got != "" {
		t.Errorf("alloca should emit nothing, got %q", got)
	}
}

func TestPhiEmitsComment(t *testing.T) {
	inst := ir.Instruction{Kind: ir.KPhi, Function: "f", Dst: "p"}
	got := instructionText(inst, ir.NewTypeMap())
	if !strings.HasPrefix(got, "// ") {
		t.Errorf("phi should emit a comment, got %q", got)
	}
}

func TestUnhandledEmitsComment(t *testing.T) {
	inst := ir.Instruction{Kind: ir.KUnhandled, Function: "f", Text: "weird op"}
	got := instructionText(inst, ir.NewTypeMap())
	if got != "// unhandled: weird op" {
		t.Errorf("got %q", got)
	}
}
