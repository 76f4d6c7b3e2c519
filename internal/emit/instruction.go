package emit

import (
	"fmt"
	"strings"

	"github.com/treutech/ptxgen/internal/ir"
)

// instructionText renders a single Instruction's PTX text, per the
// instruction-to-PTX table below. The returned string may contain embedded newlines for
// multi-line expansions (GetElementPtr, Call, Br with a false target);
// Function splits and indents each line independently. An empty string
// (Alloca, Phi's comment aside) means "no PTX output".
func instructionText(inst ir.Instruction, typeMap *ir.TypeMap) string {
	switch inst.Kind {
	case ir.KFMul:
		return arith3("mul.f32", inst)
	case ir.KFAdd:
		return arith3("add.f32", inst)
	case ir.KFSub:
		return arith3("sub.f32", inst)
	case ir.KFDiv:
		return arith3("div.f32", inst)
	case ir.KFRem:
		return arith3("rem.f32", inst)

	case ir.KAdd:
		return arith3("add.s32", inst)
	case ir.KSub:
		return arith3("sub.s32", inst)
	case ir.KMul:
		return arith3("mul.lo.s32", inst)
	case ir.KUDiv:
		return arith3("div.u32", inst)
	case ir.KSDiv:
		return arith3("div.s32", inst)
	case ir.KURem:
		return arith3("rem.u32", inst)
	case ir.KSRem:
		return arith3("rem.s32", inst)

	case ir.KICmp:
		return fmt.Sprintf("setp.%s.s32 %s, %s, %s;", icmpMnemonic(inst.ICmpPredicate), reg(inst.Dst), reg(inst.Lhs), reg(inst.Rhs))

	case ir.KFCmp:
		return fmt.Sprintf("setp.%s.f32 %s, %s, %s;", fcmpMnemonic(inst.FCmpPredicate), reg(inst.Dst), reg(inst.Lhs), reg(inst.Rhs))

	case ir.KLoad:
		ty := typeMap.GetOrDefault(inst.Dst, ir.S32)
		return fmt.Sprintf("ld.global.%s %s, %s;", ty, reg(inst.Dst), mem(inst.Src))

	case ir.KStore:
		ty := typeMap.GetOrDefault(inst.Value, ir.S32)
		return fmt.Sprintf("st.global.%s %s, %s;", ty, mem(inst.Dst), reg(inst.Value))

	case ir.KBr:
		if inst.HasCond && inst.HasFalse {
			return fmt.Sprintf("@%s bra %s;\nbra %s;", reg(inst.Cond), inst.TargetTrue, inst.TargetFalse)
		}
		return fmt.Sprintf("bra %s;", inst.TargetTrue)

	case ir.KRet:
		return "ret;"

	case ir.KSelect:
		ty := typeMap.GetOrDefault(inst.Dst, ir.S32)
		return fmt.Sprintf("selp.%s %s, %s, %s, %s;", ty, reg(inst.Dst), reg(inst.ValTrue), reg(inst.ValFalse), reg(inst.Cond))

	case ir.KBitcast:
		return fmt.Sprintf("mov.b32 %s, %s;", reg(inst.Dst), reg(inst.Src))

	case ir.KZExt:
		return fmt.Sprintf("cvt.u32.u8 %s, %s;", reg(inst.Dst), reg(inst.Src))

	case ir.KTrunc:
		return fmt.Sprintf("cvt.u8.u32 %s, %s;", reg(inst.Dst), reg(inst.Src))

	case ir.KPhi:
		return fmt.Sprintf("// phi %s", reg(inst.Dst))

	case ir.KGetElementPtr:
		offset := reg(inst.Dst) + "_offset"
		return fmt.Sprintf("mul.lo.s32 %s, %s, 4;\nadd.s32 %s, %s, %s;",
			offset, reg(inst.Index), reg(inst.Dst), reg(inst.Base), offset)

	case ir.KAlloca:
		return ""

	case ir.KCall:
		return callText(inst, typeMap)

	case ir.KUnhandled:
		return fmt.Sprintf("// unhandled: %s", inst.Text)

	default:
		return fmt.Sprintf("// unhandled: %v", inst.Kind)
	}
}

func arith3(op string, inst ir.Instruction) string {
	return fmt.Sprintf("%s %s, %s, %s;", op, reg(inst.Dst), reg(inst.Lhs), reg(inst.Rhs))
}

// icmpMnemonic implements the integer predicate-to-mnemonic table.
func icmpMnemonic(p ir.ICmpPred) string {
	switch p {
	case ir.IEQ:
		return "eq"
	case ir.INE:
		return "ne"
	case ir.IUGT, ir.ISGT:
		return "gt"
	case ir.IUGE, ir.ISGE:
		return "ge"
	case ir.IULT, ir.ISLT:
		return "lt"
	case ir.IULE, ir.ISLE:
		return "le"
	default:
		return "lt"
	}
}

// fcmpMnemonic implements the float predicate-to-mnemonic table,
// defaulting to "lt" on an unrecognized predicate.
func fcmpMnemonic(p ir.FCmpPred) string {
	switch p {
	case ir.FOEQ, ir.FUEQ:
		return "eq"
	case ir.FONE, ir.FUNE:
		return "ne"
	case ir.FOGT, ir.FUGT:
		return "gt"
	case ir.FOGE, ir.FUGE:
		return "ge"
	case ir.FOLT, ir.FULT:
		return "lt"
	case ir.FOLE, ir.FULE:
		return "le"
	default:
		return "lt"
	}
}

// callText expands a Call instruction into PTX parameter passing: one
// ".param" declaration per argument (and one for the return value if
// present), the stores into those params, the call itself, and a load
// of the return value.
func callText(inst ir.Instruction, typeMap *ir.TypeMap) string {
	var lines []string

	argNames := make([]string, len(inst.Args))
	for i, a := range inst.Args {
		argNames[i] = fmt.Sprintf("arg%d", i)
		ty := typeMap.GetOrDefault(a, ir.S32)
		lines = append(lines, fmt.Sprintf(".param .%s %s;", ty, argNames[i]))
	}

	retName := ""
	if inst.HasRet {
		retName = fmt.Sprintf("retval_%s", ir.CleanOperand(inst.Ret))
		ty := typeMap.GetOrDefault(inst.Ret, ir.S32)
		lines = append(lines, fmt.Sprintf(".param .%s %s;", ty, retName))
	}

	for i, a := range inst.Args {
		ty := typeMap.GetOrDefault(a, ir.S32)
		lines = append(lines, fmt.Sprintf("st.param.%s [%s], %s;", ty, argNames[i], reg(a)))
	}

	if inst.HasRet {
		lines = append(lines, fmt.Sprintf("call (%s) %s, (%s);", retName, inst.Callee, strings.Join(argNames, ", ")))
		ty := typeMap.GetOrDefault(inst.Ret, ir.S32)
		lines = append(lines, fmt.Sprintf("ld.param.%s %s, [%s];", ty, reg(inst.Ret), retName))
	} else {
		lines = append(lines, fmt.Sprintf("call %s, (%s);", inst.Callee, strings.Join(argNames, ", ")))
	}

	return strings.Join(lines, "\n")
}
