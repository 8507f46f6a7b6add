package internalcheck

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"
	"testing"
)

func TestNoDirectByteComparison(t *testing.T) {
	var findings []string
	for _, pkg := range load(t) {
		for _, file := range pkg.Syntax {
			ast.Inspect(file, func(n ast.Node) bool {
				be, ok := n.(*ast.BinaryExpr)
				if !ok || (be.Op != token.EQL && be.Op != token.NEQ) {
					return true
				}
				if isByteSlice(pkg.TypesInfo.TypeOf(be.X)) && isByteSlice(pkg.TypesInfo.TypeOf(be.Y)) {
					findings = append(findings, fmt.Sprintf("%s: avoid == on byte buffers; use crypto/subtle", pkg.Fset.Position(be.Pos())))
				}
				return true
			})
		}
	}
	if len(findings) > 0 {
		t.Fatalf("constant-time policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

func isByteSlice(typ types.Type) bool {
	switch tt := typ.(type) {
	case nil:
		return false
	case *types.Slice:
		return isByte(tt.Elem())
	case *types.Array:
		return isByte(tt.Elem())
	case *types.Pointer:
		return isByteSlice(tt.Elem())
	case *types.Named:
		return isByteSlice(tt.Underlying())
	default:
		return false
	}
}

func isByte(t types.Type) bool {
	basic, ok := t.(*types.Basic)
	return ok && basic.Kind() == types.Byte
}

func TestIsByteSlice(t *testing.T) {
	byteT := types.Typ[types.Byte]
	if !isByteSlice(types.NewSlice(byteT)) {
		t.Fatal("[]byte not detected")
	}
	if !isByteSlice(types.NewPointer(types.NewArray(byteT, 256))) {
		t.Fatal("*[256]byte not detected")
	}
	if isByteSlice(types.NewSlice(types.Typ[types.Uint32])) {
		t.Fatal("[]uint32 flagged")
	}
	if isByteSlice(nil) {
		t.Fatal("nil flagged")
	}
}
