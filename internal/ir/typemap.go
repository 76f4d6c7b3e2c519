package ir

// TypeMap maps a normalized operand name to its inferred PTX type. Keys are
// unique; insertion order does not affect the final mapping, only emission
// order (driven separately by the Emitter, alphabetical within each type
// group).
type TypeMap struct {
	types map[string]Type
}

// NewTypeMap returns an empty TypeMap.
func NewTypeMap() *TypeMap {
	return &TypeMap{types: make(map[string]Type)}
}

// Insert upserts name -> typ. If name already has a type, the stored type
// becomes Dominant(existing, typ) per the §4.3 lattice, so a name used both
// as a predicate and as arithmetic ends up typed Pred.
func (m *TypeMap) Insert(name string, typ Type) {
	if name == "" {
		return
	}
	if existing, ok := m.types[name]; ok {
		m.types[name] = Dominant(existing, typ)
		return
	}
	m.types[name] = typ
}

// Get returns the current type for name and whether one is assigned.
func (m *TypeMap) Get(name string) (Type, bool) {
	t, ok := m.types[name]
	return t, ok
}

// GetOrDefault returns the current type for name, or def if none is
// assigned.
func (m *TypeMap) GetOrDefault(name string, def Type) Type {
	if t, ok := m.types[name]; ok {
		return t
	}
	return def
}

// Names returns every name the map assigns a type to, in no particular
// order; callers that need a deterministic order (the Emitter) sort it
// themselves, grouped by type.
func (m *TypeMap) Names() []string {
	out := make([]string, 0, len(m.types))
	for n := range m.types {
		out = append(out, n)
	}
	return out
}

// NamesOfType returns every name currently assigned exactly typ.
func (m *TypeMap) NamesOfType(typ Type) []string {
	var out []string
	for n, t := range m.types {
		if t == typ {
			out = append(out, n)
		}
	}
	return out
}

// Oracle assigns a PTX type to every operand an Instruction uses, per the
// per-instruction table below. Operands the oracle has no opinion
// about are simply absent from the returned map.
func Oracle(inst Instruction) map[string]Type {
	out := make(map[string]Type)
	switch inst.Kind {
	case KFAdd, KFSub, KFMul, KFDiv, KFRem:
		for _, n := range inst.UsedOperands() {
			out[n] = F32
		}
	case KAdd, KSub, KMul, KUDiv, KSDiv, KURem, KSRem:
		for _, n := range inst.UsedOperands() {
			out[n] = S32
		}
	case KICmp:
		out[inst.Lhs] = S32
		out[inst.Rhs] = S32
		out[inst.Dst] = Pred
	case KFCmp:
		out[inst.Lhs] = F32
		out[inst.Rhs] = F32
		out[inst.Dst] = Pred
	case KLoad:
		out[inst.Dst] = F32
	case KStore:
		out[inst.Value] = F32
	case KGetElementPtr:
		out[inst.Base] = S32
		out[inst.Index] = S32
		out[inst.Dst] = S32
		out[inst.Dst+"_offset"] = S32
	}
	return out
}

// BuildTypeMap performs the single pass over every lowered instruction of a
// single pass over a function's instructions: for each instruction, for each
// operand name in its oracle result, upsert into the map with dominant-type
// resolution.
func BuildTypeMap(instructions []Instruction) *TypeMap {
	m := NewTypeMap()
	for _, inst := range instructions {
		for name, typ := range Oracle(inst) {
			m.Insert(name, typ)
		}
	}
	return m
}
