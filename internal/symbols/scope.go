package symbols

import (
	"maps"
	"slices"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeRoot               // stdlib + top-level declarations
	ScopeFunction           // function body scope
	ScopeBlock              // conditional branch
	ScopeLoop               // loop body
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeRoot:
		return "root"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeLoop:
		return "loop"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope with a parent chain.
// Shadowing is not allowed: a name visible anywhere in the chain of its
// namespace cannot be declared again.
type Scope struct {
	kind     ScopeKind
	parent   *Scope
	values   map[string]Entity
	funcs    map[string]Entity
	inLoop   bool
	function *Function
	depth    int
}

// NewRoot creates a scope without parent.
func NewRoot() *Scope {
	return &Scope{
		kind:   ScopeRoot,
		values: make(map[string]Entity),
		funcs:  make(map[string]Entity),
	}
}

// ChildOptions overrides inherited properties of a child scope.
// Nil fields are inherited from the parent.
type ChildOptions struct {
	Kind     ScopeKind
	InLoop   *bool
	Function *Function
}

// Child creates a nested scope.
func (s *Scope) Child(opts ChildOptions) *Scope {
	kind := opts.Kind
	if kind == ScopeInvalid {
		kind = ScopeBlock
	}
	child := &Scope{
		kind:     kind,
		parent:   s,
		values:   make(map[string]Entity),
		funcs:    make(map[string]Entity),
		inLoop:   s.inLoop,
		function: s.function,
		depth:    s.depth + 1,
	}
	if opts.InLoop != nil {
		child.inLoop = *opts.InLoop
	}
	if opts.Function != nil {
		child.function = opts.Function
	}
	return child
}

func (s *Scope) table(ns Namespace) map[string]Entity {
	if ns == NSFunction {
		return s.funcs
	}
	return s.values
}

// Declare binds name to e in this scope.
func (s *Scope) Declare(name string, e Entity) error {
	if name == "" || e == nil {
		return &DeclError{Name: name, Reason: DeclInvalid}
	}
	ns := e.Namespace()
	if prev, ok := s.Lookup(ns, name); ok {
		return &DeclError{Name: name, Namespace: ns, Reason: DeclDuplicate, Previous: prev}
	}
	s.table(ns)[name] = e
	return nil
}

// Lookup finds the nearest binding outward.
func (s *Scope) Lookup(ns Namespace, name string) (Entity, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if e, ok := cur.table(ns)[name]; ok {
			return e, true
		}
	}
	return nil, false
}

// Resolve is Lookup that reports a missing name as *LookupError.
func (s *Scope) Resolve(ns Namespace, name string) (Entity, error) {
	if e, ok := s.Lookup(ns, name); ok {
		return e, nil
	}
	return nil, &LookupError{Name: name, Namespace: ns}
}

// IsVisible reports whether name is bound somewhere in the chain.
func (s *Scope) IsVisible(ns Namespace, name string) bool {
	_, ok := s.Lookup(ns, name)
	return ok
}

// Locals returns the names declared directly in this scope, sorted.
func (s *Scope) Locals(ns Namespace) []string {
	return slices.Sorted(maps.Keys(s.table(ns)))
}

func (s *Scope) Kind() ScopeKind     { return s.kind }
func (s *Scope) Parent() *Scope      { return s.parent }
func (s *Scope) Depth() int          { return s.depth }
func (s *Scope) InLoop() bool        { return s.inLoop }
func (s *Scope) Function() *Function { return s.function }
