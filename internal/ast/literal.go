package ast

import (
	"fmt"
	"strconv"
	"strings"

	"mum/internal/token"
)

// LiteralValue converts a literal token into its Go value:
// int64, float64, string, bool or uint64 for binary literals.
func LiteralValue(tok token.Token) (any, error) {
	switch tok.Kind {
	case token.IntLit:
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid int literal %q: %w", tok.Text, err)
		}
		return v, nil
	case token.FloatLit:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float literal %q: %w", tok.Text, err)
		}
		return v, nil
	case token.StringLit:
		text := tok.Text
		if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
			if s, err := strconv.Unquote(text); err == nil {
				return s, nil
			}
		}
		return text, nil
	case token.BoolLit:
		switch tok.Text {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("invalid bool literal %q", tok.Text)
	case token.BinaryLit:
		digits := strings.TrimPrefix(strings.TrimPrefix(tok.Text, "0b"), "0B")
		v, err := strconv.ParseUint(digits, 2, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid binary literal %q: %w", tok.Text, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("token %s is not a literal", tok)
	}
}

// FormatValue renders a constant the way it would be written in source.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "<unknown>"
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		s := strconv.FormatFloat(x, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case uint64:
		return "0b" + strconv.FormatUint(x, 2)
	case []any:
		parts := make([]string, len(x))
		for i, el := range x {
			parts[i] = FormatValue(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(x)
	}
}
