// Package llvmsrc adapts github.com/llir/llvm's LLVM IR AST into the
// narrow, read-only view of an external LLVM AST: a list of
// functions, each with a name, parameters and an ordered list of basic
// blocks, each block an ordered list of instructions and a single
// terminator. Outside of tests, only this package imports
// github.com/llir/llvm directly;
// internal/lower consumes the type aliases declared here so that swapping
// the parser never touches the lowering core.
package llvmsrc

import (
	"strings"

	"github.com/llir/llvm/asm"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"
	"github.com/pkg/errors"
)

// Re-exported so callers of internal/lower never need to import
// github.com/llir/llvm themselves.
type (
	Module   = ir.Module
	Function = ir.Func
	Block    = ir.Block
	Param    = ir.Param
	Value    = value.Value

	Instruction = ir.Instruction
	Terminator  = ir.Terminator

	InstLoad          = ir.InstLoad
	InstStore         = ir.InstStore
	InstAlloca        = ir.InstAlloca
	InstGetElementPtr = ir.InstGetElementPtr
	InstAdd           = ir.InstAdd
	InstFAdd          = ir.InstFAdd
	InstSub           = ir.InstSub
	InstFSub          = ir.InstFSub
	InstMul           = ir.InstMul
	InstFMul          = ir.InstFMul
	InstUDiv          = ir.InstUDiv
	InstSDiv          = ir.InstSDiv
	InstFDiv          = ir.InstFDiv
	InstURem          = ir.InstURem
	InstSRem          = ir.InstSRem
	InstFRem          = ir.InstFRem
	InstICmp          = ir.InstICmp
	InstFCmp          = ir.InstFCmp
	InstPhi           = ir.InstPhi
	InstSelect        = ir.InstSelect
	InstBitCast       = ir.InstBitCast
	InstZExt          = ir.InstZExt
	InstTrunc         = ir.InstTrunc
	InstCall          = ir.InstCall

	TermRet    = ir.TermRet
	TermBr     = ir.TermBr
	TermCondBr = ir.TermCondBr

	IPred = enum.IPred
	FPred = enum.FPred
)

// Integer-compare predicate constants, re-exported for internal/lower.
const (
	IPredEQ  = enum.IPredEQ
	IPredNE  = enum.IPredNE
	IPredUGT = enum.IPredUGT
	IPredUGE = enum.IPredUGE
	IPredULT = enum.IPredULT
	IPredULE = enum.IPredULE
	IPredSGT = enum.IPredSGT
	IPredSGE = enum.IPredSGE
	IPredSLT = enum.IPredSLT
	IPredSLE = enum.IPredSLE
)

// Float-compare predicate constants, re-exported for internal/lower.
const (
	FPredOEQ = enum.FPredOEQ
	FPredUEQ = enum.FPredUEQ
	FPredONE = enum.FPredONE
	FPredUNE = enum.FPredUNE
	FPredOGT = enum.FPredOGT
	FPredUGT = enum.FPredUGT
	FPredOGE = enum.FPredOGE
	FPredUGE = enum.FPredUGE
	FPredOLT = enum.FPredOLT
	FPredULT = enum.FPredULT
	FPredOLE = enum.FPredOLE
	FPredULE = enum.FPredULE
)

// Parse parses irText, an LLVM IR textual module, into a *Module. Parse
// failures are wrapped with github.com/pkg/errors, which records the stack
// at the wrap site; the CLI prints only the error text, not that stack.
func Parse(irText string) (*Module, error) {
	m, err := asm.ParseString("<input>", irText)
	if err != nil {
		return nil, errors.Wrap(err, "parsing LLVM IR")
	}
	return m, nil
}

// CalleeName returns the textual name of a call instruction's callee if it
// is a direct reference to a module-level function, and ok=false otherwise
// (indirect calls, inline asm, etc. — the unknown-callee case).
func CalleeName(callee Value) (name string, ok bool) {
	fn, isFunc := callee.(*ir.Func)
	if !isFunc {
		return "", false
	}
	return strings.TrimPrefix(fn.Ident(), "@"), true
}
