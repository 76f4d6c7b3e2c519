// Package lower implements the pure, total mapping from parsed LLVM IR
// nodes (internal/llvmsrc) to the canonical Instruction union
// (internal/ir). The Lowerer never fails: unsupported
// opcodes, unsupported terminators, indirect calls and operands that
// cannot be rendered textually all degrade to ir.KUnhandled or a
// documented default rather than propagating an error.
package lower

import (
	"fmt"

	"github.com/treutech/ptxgen/internal/ir"
	"github.com/treutech/ptxgen/internal/llvmsrc"
)

// Block is one lowered basic block: its normalized label and the ordered
// instructions (including the lowered terminator, always last) that came
// from it. The Driver needs block boundaries to let the Emitter reproduce
// the source's block-label structure; the Instruction union itself
// carries no notion of block membership, only a flat UsedOperands() view.
type Block struct {
	Name         string
	Instructions []ir.Instruction
}

// Function lowers every instruction and terminator of fn, in source block
// and instruction order, into one Block per LLVM basic block. The lowered
// terminator of each block is always the final instruction in that block's
// Instructions slice.
func Function(fn *llvmsrc.Function) []Block {
	name := operandText(fn)
	out := make([]Block, 0, len(fn.Blocks))
	for _, block := range fn.Blocks {
		b := Block{Name: blockLabel(block)}
		for _, inst := range block.Insts {
			b.Instructions = append(b.Instructions, lowerInst(name, inst))
		}
		if block.Term != nil {
			b.Instructions = append(b.Instructions, lowerTerm(name, block.Term))
		}
		out = append(out, b)
	}
	return out
}

// Flatten concatenates every block's instructions in source order, the
// view TypeMap's single pass and diagnostics consume.
func Flatten(blocks []Block) []ir.Instruction {
	var out []ir.Instruction
	for _, b := range blocks {
		out = append(out, b.Instructions...)
	}
	return out
}

// operandText renders any LLVM value's textual identifier, normalized. It
// is the single call site every operand flows through, so clean_operand
// always sees exactly what the lowerer intends as an SSA name.
func operandText(v llvmsrc.Value) string {
	return ir.CleanOperand(v.Ident())
}

func blockLabel(b *llvmsrc.Block) string {
	return ir.CleanOperand(b.Ident())
}

func unhandled(function, text string) ir.Instruction {
	return ir.Instruction{Kind: ir.KUnhandled, Function: function, Text: text}
}

func lowerInst(function string, inst llvmsrc.Instruction) ir.Instruction {
	switch v := inst.(type) {
	case *llvmsrc.InstLoad:
		return ir.Instruction{Kind: ir.KLoad, Function: function,
			Dst: operandText(v), Src: operandText(v.Src)}

	case *llvmsrc.InstStore:
		return ir.Instruction{Kind: ir.KStore, Function: function,
			Dst: operandText(v.Dst), Value: operandText(v.Src)}

	case *llvmsrc.InstAlloca:
		typeDesc := ""
		if v.ElemType != nil {
			typeDesc = v.ElemType.String()
		}
		return ir.Instruction{Kind: ir.KAlloca, Function: function,
			Dst: operandText(v), TypeDesc: typeDesc, Align: int(v.Align)}

	case *llvmsrc.InstGetElementPtr:
		index := ""
		if len(v.Indices) > 0 {
			index = operandText(v.Indices[len(v.Indices)-1])
		}
		return ir.Instruction{Kind: ir.KGetElementPtr, Function: function,
			Dst: operandText(v), Base: operandText(v.Src), Index: index}

	case *llvmsrc.InstAdd:
		return binop(function, ir.KAdd, v, v.X, v.Y)
	case *llvmsrc.InstSub:
		return binop(function, ir.KSub, v, v.X, v.Y)
	case *llvmsrc.InstMul:
		return binop(function, ir.KMul, v, v.X, v.Y)
	case *llvmsrc.InstUDiv:
		return binop(function, ir.KUDiv, v, v.X, v.Y)
	case *llvmsrc.InstSDiv:
		return binop(function, ir.KSDiv, v, v.X, v.Y)
	case *llvmsrc.InstURem:
		return binop(function, ir.KURem, v, v.X, v.Y)
	case *llvmsrc.InstSRem:
		return binop(function, ir.KSRem, v, v.X, v.Y)
	case *llvmsrc.InstFAdd:
		return binop(function, ir.KFAdd, v, v.X, v.Y)
	case *llvmsrc.InstFSub:
		return binop(function, ir.KFSub, v, v.X, v.Y)
	case *llvmsrc.InstFMul:
		return binop(function, ir.KFMul, v, v.X, v.Y)
	case *llvmsrc.InstFDiv:
		return binop(function, ir.KFDiv, v, v.X, v.Y)
	case *llvmsrc.InstFRem:
		return binop(function, ir.KFRem, v, v.X, v.Y)

	case *llvmsrc.InstICmp:
		return ir.Instruction{Kind: ir.KICmp, Function: function,
			Dst: operandText(v), Lhs: operandText(v.X), Rhs: operandText(v.Y),
			ICmpPredicate: icmpPred(v.Pred)}

	case *llvmsrc.InstFCmp:
		return ir.Instruction{Kind: ir.KFCmp, Function: function,
			Dst: operandText(v), Lhs: operandText(v.X), Rhs: operandText(v.Y),
			FCmpPredicate: fcmpPred(v.Pred)}

	case *llvmsrc.InstPhi:
		incoming := make([]ir.Incoming, 0, len(v.Incs))
		for _, in := range v.Incs {
			incoming = append(incoming, ir.Incoming{
				Label: blockLabel(in.Pred.(*llvmsrc.Block)),
				Value: operandText(in.X),
			})
		}
		return ir.Instruction{Kind: ir.KPhi, Function: function,
			Dst: operandText(v), Incoming: incoming}

	case *llvmsrc.InstSelect:
		return ir.Instruction{Kind: ir.KSelect, Function: function,
			Dst: operandText(v), Cond: operandText(v.Cond),
			ValTrue: operandText(v.X), ValFalse: operandText(v.Y)}

	case *llvmsrc.InstBitCast:
		return ir.Instruction{Kind: ir.KBitcast, Function: function,
			Dst: operandText(v), Src: operandText(v.From)}

	case *llvmsrc.InstZExt:
		return ir.Instruction{Kind: ir.KZExt, Function: function,
			Dst: operandText(v), Src: operandText(v.From)}

	case *llvmsrc.InstTrunc:
		return ir.Instruction{Kind: ir.KTrunc, Function: function,
			Dst: operandText(v), Src: operandText(v.From)}

	case *llvmsrc.InstCall:
		args := make([]string, 0, len(v.Args))
		for _, a := range v.Args {
			args = append(args, operandText(a))
		}
		callee := "unknown_fn"
		if name, ok := llvmsrc.CalleeName(v.Callee); ok {
			callee = name
		}
		hasRet := false
		ret := ""
		if v.Typ != nil && v.Typ.String() != "void" {
			hasRet = true
			ret = operandText(v)
		}
		return ir.Instruction{Kind: ir.KCall, Function: function,
			Callee: callee, Args: args, Ret: ret, HasRet: hasRet}

	default:
		return unhandled(function, fmt.Sprintf("%v", inst))
	}
}

func binop(function string, kind ir.Kind, dst llvmsrc.Value, lhs, rhs llvmsrc.Value) ir.Instruction {
	return ir.Instruction{Kind: kind, Function: function,
		Dst: operandText(dst), Lhs: operandText(lhs), Rhs: operandText(rhs)}
}

func lowerTerm(function string, term llvmsrc.Terminator) ir.Instruction {
	switch t := term.(type) {
	case *llvmsrc.TermRet:
		return ir.Instruction{Kind: ir.KRet, Function: function}

	case *llvmsrc.TermBr:
		return ir.Instruction{Kind: ir.KBr, Function: function,
			TargetTrue: blockLabel(t.Target.(*llvmsrc.Block))}

	case *llvmsrc.TermCondBr:
		return ir.Instruction{Kind: ir.KBr, Function: function,
			HasCond: true, Cond: operandText(t.Cond),
			TargetTrue: blockLabel(t.TargetTrue.(*llvmsrc.Block)),
			HasFalse:   true, TargetFalse: blockLabel(t.TargetFalse.(*llvmsrc.Block))}

	default:
		return unhandled(function, fmt.Sprintf("%v", term))
	}
}

func icmpPred(p llvmsrc.IPred) ir.ICmpPred {
	switch p {
	case llvmsrc.IPredEQ:
		return ir.IEQ
	case llvmsrc.IPredNE:
		return ir.INE
	case llvmsrc.IPredUGT:
		return ir.IUGT
	case llvmsrc.IPredUGE:
		return ir.IUGE
	case llvmsrc.IPredULT:
		return ir.IULT
	case llvmsrc.IPredULE:
		return ir.IULE
	case llvmsrc.IPredSGT:
		return ir.ISGT
	case llvmsrc.IPredSGE:
		return ir.ISGE
	case llvmsrc.IPredSLT:
		return ir.ISLT
	case llvmsrc.IPredSLE:
		return ir.ISLE
	default:
		return ir.IEQ
	}
}

func fcmpPred(p llvmsrc.FPred) ir.FCmpPred {
	switch p {
	case llvmsrc.FPredOEQ:
		return ir.FOEQ
	case llvmsrc.FPredUEQ:
		return ir.FUEQ
	case llvmsrc.FPredONE:
		return ir.FONE
	case llvmsrc.FPredUNE:
		return ir.FUNE
	case llvmsrc.FPredOGT:
		return ir.FOGT
	case llvmsrc.FPredUGT:
		return ir.FUGT
	case llvmsrc.FPredOGE:
		return ir.FOGE
	case llvmsrc.FPredUGE:
		return ir.FUGE
	case llvmsrc.FPredOLT:
		return ir.FOLT
	case llvmsrc.FPredULT:
		return ir.FULT
	case llvmsrc.FPredOLE:
		return ir.FOLE
	case llvmsrc.FPredULE:
		return ir.FULE
	default:
		return ir.FULT
	}
}
