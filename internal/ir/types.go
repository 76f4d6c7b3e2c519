package ir

// Type is a PTX register type, the closed set named in the data model:
// S32, S64, F32, F64, Pred and Ptr (rendered as u64).
type Type uint8

const (
	// Unknown marks an operand with no assigned type. It is never declared
	// and never appears in emitted PTX; Emitter falls back to S32 for any
	// operand left unassigned.
	Unknown Type = iota
	S32
	S64
	F32
	F64
	Pred
	Ptr
)

// String renders the PTX register-type mnemonic used in ".reg .<type>"
// declarations and instruction suffixes.
func (t Type) String() string {
	switch t {
	case S32:
		return "s32"
	case S64:
		return "s64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Pred:
		return "pred"
	case Ptr:
		return "u64"
	default:
		return "s32"
	}
}

// dominantRank orders the lattice Pred > Ptr > F64 > F32 > S64 > S32 used to
// reconcile a name assigned conflicting types by different instructions.
// Higher rank wins.
var dominantRank = map[Type]int{
	S32: 1,
	S64: 2,
	F32: 3,
	F64: 4,
	Ptr: 5,
	Pred: 6,
}

// Dominant returns the higher-ranked of a and b per the §4.3 lattice. It is
// commutative and associative: reducing any multiset of types in any order
// yields the same result, since it always keeps the single highest-ranked
// element seen so far.
func Dominant(a, b Type) Type {
	if a == Unknown {
		return b
	}
	if b == Unknown {
		return a
	}
	if dominantRank[b] > dominantRank[a] {
		return b
	}
	return a
}

// typeOrder is the deterministic declaration order for .reg groups in the
// Emitter: S32, S64, F32, F64, Pred, Ptr.
var typeOrder = []Type{S32, S64, F32, F64, Pred, Ptr}

// TypeOrder returns the declaration order for .reg groups.
func TypeOrder() []Type {
	out := make([]Type, len(typeOrder))
	copy(out, typeOrder)
	return out
}
