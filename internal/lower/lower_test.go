package lower

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	myir "github.com/treutech/ptxgen/internal/ir"
)

func TestFunctionLowersAdd(t *testing.T) {
	m := ir.NewModule()
	fn := m.NewFunc("add", types.I32,
		ir.NewParam("a", types.I32),
		ir.NewParam("b", types.I32),
	)
	entry := fn.NewBlock("entry")
	sum := entry.NewAdd(fn.Params[0], fn.Params[1])
	sum.SetName("c")
	entry.NewRet(sum)

	blocks := Function(fn)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	insts := blocks[0].Instructions
	if len(insts) != 2 {
		t.Fatalf("expected 2 instructions, got %d", len(insts))
	}
	if insts[0].Kind != myir.KAdd || insts[0].Dst != "c" || insts[0].Lhs != "a" || insts[0].Rhs != "b" {
		t.Errorf("unexpected add instruction: %+v", insts[0])
	}
	if insts[1].Kind != myir.KRet {
		t.Errorf("expected terminator Ret, got %+v", insts[1])
	}
}

func TestFunctionNameMatchesEveryInstruction(t *testing.T) {
	m := ir.NewModule()
	fn := m.NewFunc("kernel", types.Void)
	entry := fn.NewBlock("entry")
	entry.NewRet(nil)

	for _, b := range Function(fn) {
		for _, inst := range b.Instructions {
			if inst.FunctionName() != "kernel" {
				t.Errorf("instruction carries wrong function name: %q", inst.FunctionName())
			}
		}
	}
}

func TestFunctionLowersConditionalBranch(t *testing.T) {
	m := ir.NewModule()
	fn := m.NewFunc("branchy", types.Void)
	entry := fn.NewBlock("entry")
	trueBlock := fn.NewBlock("true_blk")
	falseBlock := fn.NewBlock("false_blk")

	cmp := entry.NewICmp(enum.IPredSLT, constZero(), constZero())
	cmp.SetName("cmp")
	entry.NewCondBr(cmp, trueBlock, falseBlock)
	trueBlock.NewRet(nil)
	falseBlock.NewRet(nil)

	blocks := Function(fn)
	entryInsts := blocks[0].Instructions
	term := entryInsts[len(entryInsts)-1]
	if term.Kind != myir.KBr || !term.HasCond || !term.HasFalse {
		t.Fatalf("expected a conditional Br, got %+v", term)
	}
	if term.TargetTrue != "true_blk" || term.TargetFalse != "false_blk" {
		t.Errorf("unexpected branch targets: %+v", term)
	}
}

func constZero() *constant.Int {
	return constant.NewInt(types.I32, 0)
}
