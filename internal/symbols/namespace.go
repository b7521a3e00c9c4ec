package symbols

import (
	"sort"

	"aize/internal/ast"
)

type NamespaceKind int

const (
	BuiltinNamespace NamespaceKind = iota
	FileNamespace
	FunctionNamespace
	MethodNamespace
	BlockNamespace
	ClassNamespace
	ObjectNamespace
	NativeNamespace
)

func (k NamespaceKind) String() string {
	switch k {
	case BuiltinNamespace:
		return "builtin"
	case FileNamespace:
		return "file"
	case FunctionNamespace:
		return "function"
	case MethodNamespace:
		return "method"
	case BlockNamespace:
		return "block"
	case ClassNamespace:
		return "class"
	case ObjectNamespace:
		return "object"
	case NativeNamespace:
		return "native"
	}
	return "unknown"
}

// Axis selects one of the three independent name mappings of a namespace.
type Axis int

const (
	ValueAxis Axis = iota
	TypeAxis
	NamespaceAxis
)

func (a Axis) String() string {
	switch a {
	case ValueAxis:
		return "value"
	case TypeAxis:
		return "type"
	default:
		return "namespace"
	}
}

// Namespace is a scope. Its parent is the namespace it was first defined in.
type Namespace struct {
	symbolBase
	Kind NamespaceKind

	id         NamespaceID
	values     map[string]*VariableSymbol
	types      map[string]TypeSymbol
	namespaces map[string]*Namespace
	blocks     int
}

// Parent returns the enclosing namespace, nil for the root.
func (n *Namespace) Parent() *Namespace { return n.Namespace() }

// Parents returns n followed by its ancestors, nearest first.
func (n *Namespace) Parents() []*Namespace {
	var chain []*Namespace
	for ns := n; ns != nil; ns = ns.Parent() {
		chain = append(chain, ns)
	}
	return chain
}

// NextBlock hands out sequential block indices for blocks directly inside n.
func (n *Namespace) NextBlock() int {
	i := n.blocks
	n.blocks++
	return i
}

type lookupConfig struct {
	here      bool
	outermost bool
}

type LookupOption func(*lookupConfig)

// Here restricts a lookup to the namespace itself.
func Here() LookupOption {
	return func(c *lookupConfig) { c.here = true }
}

// Outermost searches the chain starting from the root.
func Outermost() LookupOption {
	return func(c *lookupConfig) { c.outermost = true }
}

func (n *Namespace) chain(opts []LookupOption) []*Namespace {
	var cfg lookupConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.here {
		return []*Namespace{n}
	}
	chain := n.Parents()
	if cfg.outermost {
		for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
			chain[i], chain[j] = chain[j], chain[i]
		}
	}
	return chain
}

func (n *Namespace) LookupValue(name string, opts ...LookupOption) (*VariableSymbol, error) {
	for _, ns := range n.chain(opts) {
		if v, ok := ns.values[name]; ok {
			return v, nil
		}
	}
	return nil, n.notFound(ValueAxis, name, opts)
}

func (n *Namespace) LookupType(name string, opts ...LookupOption) (TypeSymbol, error) {
	for _, ns := range n.chain(opts) {
		if t, ok := ns.types[name]; ok {
			return t, nil
		}
	}
	return nil, n.notFound(TypeAxis, name, opts)
}

func (n *Namespace) LookupNamespace(name string, opts ...LookupOption) (*Namespace, error) {
	for _, ns := range n.chain(opts) {
		if sub, ok := ns.namespaces[name]; ok {
			return sub, nil
		}
	}
	return nil, n.notFound(NamespaceAxis, name, opts)
}

func (n *Namespace) notFound(axis Axis, name string, opts []LookupOption) error {
	seen := make(map[string]bool)
	var candidates []string
	for _, ns := range n.chain(opts) {
		for _, c := range ns.Names(axis) {
			if !seen[c] {
				seen[c] = true
				candidates = append(candidates, c)
			}
		}
	}
	return &LookupError{Kind: NameNotFound, Axis: axis, Name: name, Namespace: n, Candidates: candidates}
}

// Names returns the sorted visible names on one axis of n.
func (n *Namespace) Names(axis Axis) []string {
	var names []string
	switch axis {
	case ValueAxis:
		for k := range n.values {
			names = append(names, k)
		}
	case TypeAxis:
		for k := range n.types {
			names = append(names, k)
		}
	case NamespaceAxis:
		for k := range n.namespaces {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

type defineConfig struct {
	name    string
	visible bool
	body    ast.Node
}

type DefineOption func(*defineConfig)

// As binds the symbol under name instead of its own name.
func As(name string) DefineOption {
	return func(c *defineConfig) { c.name = name }
}

// Hidden records the symbol without making it searchable by name.
func Hidden() DefineOption {
	return func(c *defineConfig) { c.visible = false }
}

// AsBody marks the defined namespace as the body of node. Later definitions
// for the same node replace earlier ones.
func AsBody(node ast.Node) DefineOption {
	return func(c *defineConfig) { c.body = node }
}

func (n *Namespace) define(sym Symbol, axis Axis, opts []DefineOption) (*defineConfig, error) {
	cfg := &defineConfig{name: sym.Name(), visible: true}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.visible {
		if existing := n.get(axis, cfg.name); existing != nil {
			return nil, &LookupError{Kind: AlreadyDefined, Axis: axis, Name: cfg.name, Namespace: n, Existing: existing}
		}
	}
	sym.base().adopt(n)
	if n.table != nil && sym.Node() != nil {
		n.table.defined[sym.Node()] = append(n.table.defined[sym.Node()], sym)
	}
	return cfg, nil
}

func (n *Namespace) get(axis Axis, name string) Symbol {
	switch axis {
	case ValueAxis:
		if v, ok := n.values[name]; ok {
			return v
		}
	case TypeAxis:
		if t, ok := n.types[name]; ok {
			return t
		}
	case NamespaceAxis:
		if ns, ok := n.namespaces[name]; ok {
			return ns
		}
	}
	return nil
}

func (n *Namespace) DefineValue(sym *VariableSymbol, opts ...DefineOption) error {
	cfg, err := n.define(sym, ValueAxis, opts)
	if err != nil {
		return err
	}
	if cfg.visible {
		n.values[cfg.name] = sym
	}
	return nil
}

func (n *Namespace) DefineType(sym TypeSymbol, opts ...DefineOption) error {
	cfg, err := n.define(sym, TypeAxis, opts)
	if err != nil {
		return err
	}
	if cfg.visible {
		n.types[cfg.name] = sym
	}
	return nil
}

func (n *Namespace) DefineNamespace(sym *Namespace, opts ...DefineOption) error {
	cfg, err := n.define(sym, NamespaceAxis, opts)
	if err != nil {
		return err
	}
	if cfg.visible {
		n.namespaces[cfg.name] = sym
	}
	if cfg.body != nil && n.table != nil {
		n.table.bodies[cfg.body] = sym
	}
	return nil
}
