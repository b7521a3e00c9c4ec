// Package linkage lays out the link-level skeleton of an analyzed program as
// an LLVM module: one named struct per class, a vtable struct per class and a
// declaration for every function, method, constructor, native and runtime
// routine under its mangled name.
package linkage

import (
	"fmt"

	"aize/internal/ast"
	"aize/internal/builtins"
	"aize/internal/semantic"
	"aize/internal/stdlib"
	"aize/internal/symbols"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// Runtime routines of the reference-counting allocator every program links
// against.
const (
	MemEnter   = "aize_mem_enter"
	MemExit    = "aize_mem_exit"
	MemMalloc  = "aize_mem_malloc"
	MemCollect = "aize_mem_collect"
)

// VTableSuffix is appended to a class struct name to name its vtable struct.
const VTableSuffix = "_vtable"

type builder struct {
	module  *ir.Module
	info    *semantic.Info
	structs map[*symbols.ClassType]*types.StructType
	funcs   map[string]*ir.Func
}

// Build declares the program's symbols in a new module. The program must
// have been analyzed successfully.
func Build(program *ast.Program, info *semantic.Info) (*ir.Module, error) {
	if program.Entry == nil || info == nil {
		return nil, fmt.Errorf("program has not been analyzed")
	}

	b := &builder{
		module:  ir.NewModule(),
		info:    info,
		structs: make(map[*symbols.ClassType]*types.StructType),
		funcs:   make(map[string]*ir.Func),
	}
	b.module.SourceFilename = program.Main.Path

	classes := append([]*symbols.ClassType{info.Env.Object, info.Env.List}, info.Classes...)
	for _, ct := range classes {
		b.structs[ct] = types.NewStruct()
		b.module.NewTypeDef(ct.StructName, b.structs[ct])
	}
	for _, ct := range classes {
		b.layout(ct)
	}

	b.declareRuntime()
	if err := b.declareNatives(program.NeededStd); err != nil {
		return nil, err
	}

	for _, ct := range info.Classes {
		if err := b.declareClass(ct); err != nil {
			return nil, err
		}
	}
	for _, file := range program.Files {
		for _, top := range file.Tops {
			fn, ok := top.(*ast.Function)
			if !ok {
				continue
			}
			if err := b.declareFunction(fn, fn.Unique, fn.Params); err != nil {
				return nil, err
			}
		}
	}

	return b.module, nil
}

// layout fills a class struct: the vtable slot and reference-count header
// for the root class, then inherited attributes, then the class's own.
func (b *builder) layout(ct *symbols.ClassType) {
	st := b.structs[ct]
	st.Fields = []types.Type{types.NewPointer(types.I8), types.I32, types.I32}

	var chain []*symbols.ClassType
	for c := ct; c != nil && c.Base != nil; c = c.Base {
		chain = append([]*symbols.ClassType{c}, chain...)
	}
	for _, c := range chain {
		for _, attr := range c.Attributes {
			st.Fields = append(st.Fields, b.typ(attr.Type))
		}
	}
}

// typ maps a semantic type to its LLVM representation. Objects are passed by
// pointer.
func (b *builder) typ(t symbols.TypeSymbol) types.Type {
	switch t := t.(type) {
	case *symbols.IntType:
		return types.NewInt(uint64(t.BitWidth))
	case *symbols.LongType:
		return types.I64
	case *symbols.BoolType:
		return types.I1
	case *symbols.VoidType:
		return types.Void
	case *symbols.ClassType:
		if st, ok := b.structs[t]; ok {
			return types.NewPointer(st)
		}
	}
	return types.NewPointer(types.I8)
}

func (b *builder) declare(name string, ft *symbols.FunctionType, names []string) (*ir.Func, error) {
	if _, dup := b.funcs[name]; dup {
		return nil, fmt.Errorf("symbol %s is declared twice", name)
	}
	params := make([]*ir.Param, len(ft.Params))
	for i, p := range ft.Params {
		var pname string
		if i < len(names) {
			pname = names[i]
		}
		params[i] = ir.NewParam(pname, b.typ(p))
	}
	fn := b.module.NewFunc(name, b.typ(ft.Ret), params...)
	b.funcs[name] = fn
	return fn, nil
}

func (b *builder) declareRuntime() {
	b.funcs[MemEnter] = b.module.NewFunc(MemEnter, types.Void)
	b.funcs[MemExit] = b.module.NewFunc(MemExit, types.Void)
	b.funcs[MemMalloc] = b.module.NewFunc(MemMalloc, types.NewPointer(types.I8), ir.NewParam("size", types.I64))
	b.funcs[MemCollect] = b.module.NewFunc(MemCollect, types.Void)
	b.funcs[builtins.ListNew] = b.module.NewFunc(builtins.ListNew, types.NewPointer(b.structs[b.info.Env.List]))
}

func (b *builder) declareNatives(needed []string) error {
	for _, name := range needed {
		module := stdlib.GetModuleDefinition(name)
		if module == nil {
			continue
		}
		ns, err := module.Namespace(symbols.NewTable(), b.info.Env.Lookup)
		if err != nil {
			return err
		}
		for _, fname := range module.FunctionNames() {
			sym, err := ns.LookupValue(fname, symbols.Here())
			if err != nil {
				return err
			}
			var names []string
			for _, p := range module.Functions[fname].Parameters {
				names = append(names, p.Name)
			}
			if _, err := b.declare(sym.Linkage, sym.Type.(*symbols.FunctionType), names); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) declareClass(ct *symbols.ClassType) error {
	vtable := types.NewStruct()
	for _, slot := range ct.Slots() {
		fn, ok := b.info.FunctionType(slot.Method)
		if !ok {
			return fmt.Errorf("method %s.%s has no signature", slot.Owner.Name(), slot.Name)
		}
		params := make([]types.Type, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = b.typ(p)
		}
		vtable.Fields = append(vtable.Fields, types.NewPointer(types.NewFunc(b.typ(fn.Ret), params...)))
	}
	for _, name := range ct.VTable {
		m := ct.Methods[name]
		if err := b.declareFunction(m, m.Unique, m.Params); err != nil {
			return err
		}
	}
	b.module.NewTypeDef(ct.StructName+VTableSuffix, vtable)

	if ct.Constructor != nil {
		var names []string
		for _, attr := range ct.Attributes {
			names = append(names, attr.Name())
		}
		if _, err := b.declare(ct.Constructor.Linkage, ct.Constructor.Type.(*symbols.FunctionType), names); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) declareFunction(decl ast.Node, unique string, params []*ast.Param) error {
	ft, ok := b.info.FunctionType(decl)
	if !ok {
		return fmt.Errorf("%s has no signature", unique)
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Unique
	}
	_, err := b.declare(unique, ft, names)
	return err
}
