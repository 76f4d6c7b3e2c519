package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const minimalRetIR = `
define void @main() {
entry:
  ret void
}
`

const addIR = `
define i32 @add(i32 %a, i32 %b) {
entry:
  %c = add i32 %a, %b
  ret i32 %c
}
`

const multiFnIR = `
define void @foo() {
entry:
  ret void
}

define void @bar() {
entry:
  ret void
}

define void @baz() {
entry:
  ret void
}
`

const callIR = `
declare void @foo()

define void @main() {
entry:
  call void @foo()
  ret void
}
`

const callWithArgsIR = `
declare void @foo(i32, float)

define void @main(i32 %x, float %y) {
entry:
  %a = add i32 %x, %x
  %b = fadd float %y, %y
  call void @foo(i32 %a, float %b)
  ret void
}
`

func TestCompileMinimalRet(t *testing.T) {
	ptx, err := Compile(minimalRetIR, "sm_75", nil)
	require.NoError(t, err)
	require.Contains(t, ptx, ".entry main {")
	require.Contains(t, ptx, "ret;")
	require.True(t, strings.Contains(ptx, "}"))
}

func TestCompileAdd(t *testing.T) {
	ptx, err := Compile(addIR, "sm_75", nil)
	require.NoError(t, err)
	require.Contains(t, ptx, ".reg .s32 %a, %b, %c;")
	require.Contains(t, ptx, "add.s32 %c, %a, %b;")
}

func TestCompileMultiFunctionModuleHasOneEntryEach(t *testing.T) {
	ptx, err := Compile(multiFnIR, "sm_75", nil)
	require.NoError(t, err)
	if got := strings.Count(ptx, ".entry "); got != 3 {
		t.Fatalf("expected exactly 3 .entry occurrences, got %d:\n%s", got, ptx)
	}
}

func TestCompileDirectCall(t *testing.T) {
	ptx, err := Compile(callIR, "sm_75", nil)
	require.NoError(t, err)
	require.Contains(t, ptx, "call foo, ();")
}

func TestCompileCallWithArgs(t *testing.T) {
	ptx, err := Compile(callWithArgsIR, "sm_75", nil)
	require.NoError(t, err)
	require.Contains(t, ptx, ".param .s32 arg0;")
	require.Contains(t, ptx, ".param .f32 arg1;")
	require.Contains(t, ptx, "st.param.s32 [arg0], %a;")
	require.Contains(t, ptx, "st.param.f32 [arg1], %b;")
	require.Contains(t, ptx, "call foo, (arg0, arg1);")
}

func TestCompileInvalidIRReturnsParseError(t *testing.T) {
	_, err := Compile("this is not valid llvm ir {{{", "sm_75", nil)
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestCompileHeaderAppearsOncePerFunction(t *testing.T) {
	ptx, err := Compile(addIR, "sm_80", nil)
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(ptx, ".version 7.0"))
	require.Equal(t, 1, strings.Count(ptx, ".target sm_80"))
	require.Equal(t, 1, strings.Count(ptx, ".address_size 64"))
}
