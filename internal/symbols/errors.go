package symbols

import "fmt"

// DeclReason explains why a declaration was rejected.
type DeclReason uint8

const (
	DeclDuplicate DeclReason = iota + 1
	DeclInvalid
)

// DeclError reports a rejected declaration.
type DeclError struct {
	Name      string
	Namespace Namespace
	Reason    DeclReason
	Previous  Entity
}

func (e *DeclError) Error() string {
	switch e.Reason {
	case DeclDuplicate:
		if e.Previous != nil {
			return fmt.Sprintf("%q is already declared as a %s", e.Name, EntityKind(e.Previous))
		}
		return fmt.Sprintf("%q is already declared", e.Name)
	default:
		return fmt.Sprintf("cannot declare %q", e.Name)
	}
}

// LookupError reports a name that is not visible from the scope.
type LookupError struct {
	Name      string
	Namespace Namespace
}

func (e *LookupError) Error() string {
	if e.Namespace == NSFunction {
		return fmt.Sprintf("function %q is not declared", e.Name)
	}
	return fmt.Sprintf("identifier %q is not declared", e.Name)
}
