package ir

// Kind tags the closed Instruction union. Adding a variant here is a
// deliberate change: the Go compiler does not check switches over Kind for
// missing cases. A new tag that UsedOperands and the Emitter's
// instructionText do not list falls to their default branches (no
// operands, and a "// unhandled: <kind>" comment respectively), and
// TypeMap's Oracle assigns it no types.
type Kind uint8

const (
	KUnhandled Kind = iota
	KLoad
	KStore
	KAlloca
	KGetElementPtr
	KAdd
	KSub
	KMul
	KUDiv
	KSDiv
	KURem
	KSRem
	KFAdd
	KFSub
	KFMul
	KFDiv
	KFRem
	KICmp
	KFCmp
	KPhi
	KBr
	KRet
	KSelect
	KBitcast
	KZExt
	KTrunc
	KCall
)

var kindNames = map[Kind]string{
	KUnhandled:     "unhandled",
	KLoad:          "load",
	KStore:         "store",
	KAlloca:        "alloca",
	KGetElementPtr: "getelementptr",
	KAdd:           "add",
	KSub:           "sub",
	KMul:           "mul",
	KUDiv:          "udiv",
	KSDiv:          "sdiv",
	KURem:          "urem",
	KSRem:          "srem",
	KFAdd:          "fadd",
	KFSub:          "fsub",
	KFMul:          "fmul",
	KFDiv:          "fdiv",
	KFRem:          "frem",
	KICmp:          "icmp",
	KFCmp:          "fcmp",
	KPhi:           "phi",
	KBr:            "br",
	KRet:           "ret",
	KSelect:        "select",
	KBitcast:       "bitcast",
	KZExt:          "zext",
	KTrunc:         "trunc",
	KCall:          "call",
}

// String renders the instruction's opcode name, for diagnostics and
// --dump-ir output.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ICmpPred is an integer-compare predicate.
type ICmpPred uint8

const (
	IEQ ICmpPred = iota
	INE
	IUGT
	IUGE
	IULT
	IULE
	ISGT
	ISGE
	ISLT
	ISLE
)

// FCmpPred is a float-compare predicate.
type FCmpPred uint8

const (
	FOEQ FCmpPred = iota
	FUEQ
	FONE
	FUNE
	FOGT
	FUGT
	FOGE
	FUGE
	FOLT
	FULT
	FOLE
	FULE
)

// Incoming is one (predecessor label, value) pair of a Phi instruction.
type Incoming struct {
	Label string
	Value string
}

// Instruction is the single struct implementing the closed tagged union
// of the instruction set this compiler understands. Only the fields relevant to Kind are
// populated; this is one struct with a Kind tag and a union of fields
// rather than an interface hierarchy, so every consumer keeps a single
// type switch.
type Instruction struct {
	Kind     Kind
	Function string

	// Memory / local storage / address calc.
	Dst      string
	Src      string
	Value    string
	Base     string
	Index    string
	TypeDesc string
	Align    int

	// Arithmetic / compare / select / conversion.
	Lhs string
	Rhs string
	Cond string
	ValTrue  string
	ValFalse string

	ICmpPredicate ICmpPred
	FCmpPredicate FCmpPred

	// Phi.
	Incoming []Incoming

	// Br.
	HasCond     bool
	TargetTrue  string
	TargetFalse string
	HasFalse    bool

	// Call.
	Callee string
	Args   []string
	Ret    string
	HasRet bool

	// Unhandled.
	Text string
}

// FunctionName returns the name of the LLVM function this instruction was
// lowered from.
func (i Instruction) FunctionName() string {
	return i.Function
}

// UsedOperands returns every textual operand name the instruction
// references, in a stable order. TypeMap's Oracle reads it for the
// arithmetic kinds and --dump-ir prints it. The Emitter declares registers
// from the TypeMap, which can also hold names not listed here (the
// "<dst>_offset" register of a GetElementPtr).
func (i Instruction) UsedOperands() []string {
	switch i.Kind {
	case KLoad:
		return []string{i.Dst, i.Src}
	case KStore:
		return []string{i.Dst, i.Value}
	case KAlloca:
		return []string{i.Dst}
	case KGetElementPtr:
		return []string{i.Dst, i.Base, i.Index}
	case KAdd, KSub, KMul, KUDiv, KSDiv, KURem, KSRem,
		KFAdd, KFSub, KFMul, KFDiv, KFRem:
		return []string{i.Dst, i.Lhs, i.Rhs}
	case KICmp, KFCmp:
		return []string{i.Dst, i.Lhs, i.Rhs}
	case KPhi:
		out := make([]string, 0, 1+2*len(i.Incoming))
		out = append(out, i.Dst)
		for _, in := range i.Incoming {
			out = append(out, in.Label, in.Value)
		}
		return out
	case KBr:
		return nil
	case KRet:
		return nil
	case KSelect:
		return []string{i.Dst, i.Cond, i.ValTrue, i.ValFalse}
	case KBitcast, KZExt, KTrunc:
		return []string{i.Dst, i.Src}
	case KCall:
		out := make([]string, 0, 1+len(i.Args))
		if i.HasRet {
			out = append(out, i.Ret)
		}
		out = append(out, i.Args...)
		return out
	case KUnhandled:
		return []string{i.Text}
	default:
		return nil
	}
}
