// Package sema resolves names, assigns types and rejects ill-formed programs.
//
// Analyze walks the tree once. Declarations are handled pre-order, so a name is
// visible to the statements after it; expressions are checked post-order, so
// operands are typed before their operator. Functions of a block are bound
// before any statement of the block runs, which makes direct and mutual
// recursion resolve.
//
// The current scope is passed explicitly to every rule. Analysis stops at the
// first violation and returns it as *Error.
package sema
