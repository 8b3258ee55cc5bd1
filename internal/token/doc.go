// Package token defines the lexical categories of leaf tokens handed over by
// the parser.
// Invariants:
//   - Token.Text is the lexeme exactly as written (string literals keep no quotes).
//   - Token.Span covers the lexeme in the original source file.
//   - Built-in type names (int, num, str, ...) are identifiers.
//     They are recognized by the semantic layer, not by the token category.
package token
