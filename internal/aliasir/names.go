// Package aliasir lowers monomorphized procedures into internal/morphic's
// analysis-IR, grounded on
// original_source/crates/compiler/alias_analysis/src/lib.rs.
package aliasir

import (
	"encoding/binary"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mitchellh/hashstructure"

	"github.com/novalang/typecore/internal/config"
	"github.com/novalang/typecore/internal/ir"
)

// baseNameSize is the original's bit-exact 16-byte procedure name: 8 bytes
// little-endian symbol, 8 bytes little-endian hash of (argument layouts,
// return layout). debugNameBytes is how many trailing ASCII bytes a debug
// build appends - the original source we grounded this on writes those
// bytes starting past index 25 of an array the retrieved snapshot declares
// as only 16 bytes wide (a tension in the filtered source, not in spec.md,
// which describes both the 16-byte bit-exact core and the debug-only
// trailing bytes as real). We resolve it the only way that keeps both
// descriptions true: the bit-exact core is always exactly 16 bytes;
// debug mode appends up to debugNameBytes more.
const (
	baseNameSize   = 16
	debugNameBytes = 25
)

// FuncNameBytes reproduces spec.md §6's hash-based procedure identifier.
// The procedure is passed as its symbol, argument layouts, return layout and
// debug name rather than as a whole ir.Proc.
func FuncNameBytes(symbol ir.Symbol, argLayouts []ir.Layout, retLayout ir.Layout, debugName string) ([]byte, error) {
	layoutHash, err := hashstructure.Hash(struct {
		Args []ir.Layout
		Ret  ir.Layout
	}{argLayouts, retLayout}, nil)
	if err != nil {
		return nil, fmt.Errorf("aliasir: hashing layouts: %w", err)
	}

	out := make([]byte, baseNameSize)
	binary.LittleEndian.PutUint64(out[0:8], uint64(symbol))
	binary.LittleEndian.PutUint64(out[8:16], layoutHash)

	if config.DebugFlags().DebugAliasAnalysis {
		trailing := []byte(debugName)
		if len(trailing) > debugNameBytes {
			trailing = trailing[:debugNameBytes]
		}
		out = append(out, trailing...)
	}

	return out, nil
}

// recursiveTagUnionNameCache memoizes the 8-byte name already computed for
// a given union layout's structural hash, mirroring the original's
// `static_tag_union_types` MutMap cache. It caches names only; TypeDef
// registration is deduplicated separately by Lowering.registeredTypes.
var recursiveTagUnionNameCache, _ = lru.New[uint64, []byte](1024)

// RecursiveTagUnionName returns the 8-byte little-endian hash naming a
// recursive union layout's registered TypeDef, memoized so the same shape
// always maps to the same name within a process.
func RecursiveTagUnionName(layout ir.Layout) ([]byte, error) {
	h, err := hashstructure.Hash(layout, nil)
	if err != nil {
		return nil, fmt.Errorf("aliasir: hashing union layout: %w", err)
	}

	if cached, ok := recursiveTagUnionNameCache.Get(h); ok {
		return cached, nil
	}

	name := make([]byte, 8)
	binary.LittleEndian.PutUint64(name, h)
	recursiveTagUnionNameCache.Add(h, name)
	return name, nil
}
