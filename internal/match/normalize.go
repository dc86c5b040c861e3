package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent lowercases an identifier and drops its separators, so that
// "OrderID", "orderId" and "order_id" all become "orderid".
func NormalizeIdent(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, token := range TokenizeIdent(s) {
		sb.WriteString(token)
	}

	return sb.String()
}

// TokenizeIdent splits an identifier into lowercase words:
//   - "OrderID" -> ["order", "id"]
//   - "XMLParser" -> ["xml", "parser"]
//   - "price_cents" -> ["price", "cents"]
func TokenizeIdent(s string) []string {
	var (
		tokens  []string
		current []rune
	)

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' {
			flush()

			continue
		}

		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			// "orderID" splits before 'I', "XMLParser" splits before 'P'
			if !unicode.IsUpper(prev) || nextLower {
				flush()
			}
		}

		current = append(current, r)
	}

	flush()

	return tokens
}
