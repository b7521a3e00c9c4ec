package semantic

import (
	"aize/internal/ast"
	"aize/internal/symbols"
)

// resolveType looks up a type reference from the current scope. A nil
// reference is void.
func (a *Analyzer) resolveType(ref *ast.TypeRef) (symbols.TypeSymbol, error) {
	if ref == nil {
		return a.env.Void, nil
	}
	if len(ref.Path) == 1 {
		typ, err := a.table.LookupType(ref.Path[0].Value)
		if err != nil {
			return nil, a.convertLookupError(err, ref, "type")
		}
		return typ, nil
	}

	ns, err := a.resolvePath(ref.Path[:len(ref.Path)-1])
	if err != nil {
		return nil, err
	}
	last := &ref.Path[len(ref.Path)-1]
	typ, err := ns.LookupType(last.Value, symbols.Here())
	if err != nil {
		return nil, a.convertLookupError(err, last, "type")
	}
	return typ, nil
}

// resolvePath finds the namespace named by path. The first segment is
// searched through the scope chain, later segments only inside the namespace
// found so far.
func (a *Analyzer) resolvePath(path []ast.Ident) (*symbols.Namespace, error) {
	first := &path[0]
	ns, err := a.table.LookupNamespace(first.Value)
	if err != nil {
		return nil, a.convertLookupError(err, first, "namespace")
	}
	for i := 1; i < len(path); i++ {
		seg := &path[i]
		ns, err = ns.LookupNamespace(seg.Value, symbols.Here())
		if err != nil {
			return nil, a.convertLookupError(err, seg, "namespace")
		}
	}
	return ns, nil
}
