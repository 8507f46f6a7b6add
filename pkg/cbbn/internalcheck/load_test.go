package internalcheck

import (
	"testing"

	"golang.org/x/tools/go/packages"
)

// checked lists the packages whose sources must follow the key-material
// policies.
var checked = []string{
	"github.com/coinbase/cb-bn-go/pkg/cbbn",
	"github.com/coinbase/cb-bn-go/pkg/cbbn/rsa",
	"github.com/coinbase/cb-bn-go/pkg/cbbn/prng",
	"github.com/coinbase/cb-bn-go/pkg/cbbn/bigint",
}

func load(t *testing.T) []*packages.Package {
	t.Helper()
	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedFiles | packages.NeedName,
	}
	pkgs, err := packages.Load(cfg, checked...)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if n := packages.PrintErrors(pkgs); n > 0 {
		t.Fatalf("%d errors loading packages", n)
	}
	if len(pkgs) != len(checked) {
		t.Fatalf("loaded %d packages, want %d", len(pkgs), len(checked))
	}
	return pkgs
}
