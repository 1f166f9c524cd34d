package compiler

import (
	"fmt"
	"sort"
	"strings"
)

type SymbolKind int

const (
	SymGlobal SymbolKind = iota // lives in the data segment
	SymLocal                    // bp-negative stack slot
	SymParam                    // bp-positive stack slot
)

func (k SymbolKind) String() string {
	switch k {
	case SymGlobal:
		return "global"
	case SymLocal:
		return "local"
	case SymParam:
		return "param"
	}
	return fmt.Sprintf("SymbolKind(%d)", int(k))
}

// Symbol is one declared variable. Every variable occupies exactly one
// 16-bit word regardless of its declared type.
type Symbol struct {
	Name   string
	Type   TokenType // INT, FLOAT, BOOL, CHAR, DOUBLE
	Kind   SymbolKind
	Offset int    // bp-relative offset for locals and params
	Label  string // data-segment label for globals
	Depth  int    // scope nesting depth, 0 for file-scope globals
}

// FunctionDescriptor is the callable signature the resolver binds each call
// site to. ParamTypes carries arity (all values are word-sized).
type FunctionDescriptor struct {
	Name         string
	ReturnType   TokenType
	ParamTypes   []TokenType
	EntryLabel   string // jump target, F_<name> for user functions
	FrameSize    int    // bytes reserved below bp for locals
	CalleeCleans bool   // callee pops its own arguments (ret imm)
	Builtin      bool
	Defined      bool // a body has been seen, not just a prototype
}

// SymbolTable maps variable names to data-segment labels or stack offsets.
//
// Globals use labels emitted into the data segment. Locals get negative
// bp offsets, allocated downwards and never reused within a function, so
// the frame size is simply the total number of locals times two. Params
// sit above the saved bp and return address, pushed left to right:
// with N params, param i lives at bp+4+2*(N-1-i).
type SymbolTable struct {
	globals     map[string]*Symbol
	globalOrder []*Symbol // data-segment emission order
	usedLabels  map[string]bool

	// Stack of scopes. Inside a function these are stack-slot scopes;
	// at the top level an anonymous block pushes a scope whose variables
	// still live in the data segment (under uniquified labels).
	locals []map[string]*Symbol

	// Next free local offset, monotonically decreasing.
	nextLocal int

	inFunction bool

	functions map[string]*FunctionDescriptor
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		globals:    make(map[string]*Symbol),
		usedLabels: make(map[string]bool),
		functions:  make(map[string]*FunctionDescriptor),
	}
}

func (s *SymbolTable) EnterFunction() {
	s.locals = []map[string]*Symbol{make(map[string]*Symbol)}
	s.nextLocal = 0
	s.inFunction = true
}

// ExitFunction tears down the local scopes and returns the frame size in
// bytes. Slots are never reclaimed on scope exit, so the deepest offset
// reached is the frame.
func (s *SymbolTable) ExitFunction() int {
	frame := -s.nextLocal
	s.locals = nil
	s.inFunction = false
	return frame
}

// EnterScope opens a nested scope. Inside a function this is a block scope;
// at the top level it is an anonymous block whose names shadow globals.
func (s *SymbolTable) EnterScope() {
	s.locals = append(s.locals, make(map[string]*Symbol))
}

func (s *SymbolTable) ExitScope() {
	if len(s.locals) > 0 {
		s.locals = s.locals[:len(s.locals)-1]
	}
}

// dataLabel returns an unused data-segment label for name. The first
// declaration of a name claims "_name"; later shadows (from anonymous
// blocks) get a numeric suffix.
func (s *SymbolTable) dataLabel(name string) string {
	label := "_" + name
	for n := 2; s.usedLabels[label]; n++ {
		label = fmt.Sprintf("_%s_%d", name, n)
	}
	s.usedLabels[label] = true
	return label
}

// DefineParam records a parameter in the function-level scope. idx is the
// parameter's 0-based position out of total.
func (s *SymbolTable) DefineParam(name string, typ TokenType, idx, total int) (*Symbol, bool) {
	if len(s.locals) == 0 {
		panic("DefineParam called outside function")
	}
	scope := s.locals[0]
	if _, ok := scope[name]; ok {
		return nil, false
	}
	sym := &Symbol{
		Name:   name,
		Type:   typ,
		Kind:   SymParam,
		Offset: 4 + 2*(total-idx-1),
		Depth:  1,
	}
	scope[name] = sym
	return sym, true
}

// Allocate assigns storage to name in the current scope. It reports false
// when name is already declared in that scope.
func (s *SymbolTable) Allocate(name string, typ TokenType) (*Symbol, bool) {
	if len(s.locals) > 0 {
		scope := s.locals[len(s.locals)-1]
		if _, ok := scope[name]; ok {
			return nil, false
		}
		var sym *Symbol
		if s.inFunction {
			s.nextLocal -= 2
			sym = &Symbol{Name: name, Type: typ, Kind: SymLocal, Offset: s.nextLocal, Depth: len(s.locals)}
		} else {
			// Top-level anonymous block: the variable still lives in
			// the data segment, under a label of its own.
			sym = &Symbol{Name: name, Type: typ, Kind: SymGlobal, Label: s.dataLabel(name), Depth: len(s.locals)}
			s.globalOrder = append(s.globalOrder, sym)
		}
		scope[name] = sym
		return sym, true
	}

	if _, ok := s.globals[name]; ok {
		return nil, false
	}
	sym := &Symbol{Name: name, Type: typ, Kind: SymGlobal, Label: s.dataLabel(name)}
	s.globals[name] = sym
	s.globalOrder = append(s.globalOrder, sym)
	return sym, true
}

// Lookup resolves name from the innermost scope outwards, falling back to
// the globals.
func (s *SymbolTable) Lookup(name string) (*Symbol, bool) {
	for i := len(s.locals) - 1; i >= 0; i-- {
		if sym, ok := s.locals[i][name]; ok {
			return sym, true
		}
	}
	sym, ok := s.globals[name]
	return sym, ok
}

// Globals returns every data-segment variable in declaration order.
func (s *SymbolTable) Globals() []*Symbol {
	return s.globalOrder
}

// DefineFunction registers desc under its name. It reports false when the
// name is already taken by another function.
func (s *SymbolTable) DefineFunction(desc *FunctionDescriptor) bool {
	if _, ok := s.functions[desc.Name]; ok {
		return false
	}
	s.functions[desc.Name] = desc
	return true
}

// LookupFunction returns the descriptor registered for name.
func (s *SymbolTable) LookupFunction(name string) (*FunctionDescriptor, bool) {
	desc, ok := s.functions[name]
	return desc, ok
}

// String returns a deterministically ordered dump of the table.
func (s *SymbolTable) String() string {
	var sb strings.Builder
	if len(s.globals) > 0 || len(s.globalOrder) > 0 {
		sb.WriteString("Globals:\n")
		for _, sym := range s.globalOrder {
			fmt.Fprintf(&sb, "  %-20s  Label: %s (Type: %s)\n", sym.Name, sym.Label, sym.Type)
		}
	} else {
		sb.WriteString("Globals: (empty)\n")
	}

	if len(s.locals) > 0 {
		sb.WriteString("Locals (Active Stack):\n")
		for i, scope := range s.locals {
			fmt.Fprintf(&sb, "  Scope %d:\n", i)
			names := make([]string, 0, len(scope))
			for name := range scope {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				sym := scope[name]
				fmt.Fprintf(&sb, "    %-20s  Offset: %d (%s, Type: %s)\n", name, sym.Offset, sym.Kind, sym.Type)
			}
		}
	}

	if len(s.functions) > 0 {
		sb.WriteString("Functions:\n")
		names := make([]string, 0, len(s.functions))
		for name := range s.functions {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			desc := s.functions[name]
			fmt.Fprintf(&sb, "  %-20s  Entry: %s (Params: %d, Frame: %d)\n",
				name, desc.EntryLabel, len(desc.ParamTypes), desc.FrameSize)
		}
	}
	return sb.String()
}
