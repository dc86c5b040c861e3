package mapping

import (
	"fmt"
	"strings"
)

// ExprKind tags the shape of a type expression.
type ExprKind int

const (
	// ExprNamed - a builtin or qualified name, optionally with type arguments.
	ExprNamed ExprKind = iota
	// ExprSlice - "[]T".
	ExprSlice
	// ExprMap - "map[K]V".
	ExprMap
)

// TypeExpr is a parsed type expression such as "int", "time.Time",
// "example.com/shop.Order", "[]T", "map[K]V" or "example.com/coll.List[T]".
// A leading "*" is accepted and ignored: pointers are transparent.
type TypeExpr struct {
	Kind    ExprKind
	PkgPath string // ExprNamed only, empty for builtins and type parameters
	Name    string // ExprNamed only
	// Args are the type arguments of a named type, the element of a slice or
	// the key and value of a map.
	Args []*TypeExpr
}

// String renders the expression in canonical form.
func (e *TypeExpr) String() string {
	switch e.Kind {
	case ExprSlice:
		return "[]" + e.Args[0].String()
	case ExprMap:
		return "map[" + e.Args[0].String() + "]" + e.Args[1].String()
	}

	name := e.Name
	if e.PkgPath != "" {
		name = e.PkgPath + "." + e.Name
	}

	if len(e.Args) == 0 {
		return name
	}

	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}

	return name + "[" + strings.Join(args, ", ") + "]"
}

// IsQualified returns true for named expressions with a package path and no arguments.
func (e *TypeExpr) IsQualified() bool {
	return e.Kind == ExprNamed && e.PkgPath != "" && len(e.Args) == 0
}

// ParseTypeExpr parses a type expression.
func ParseTypeExpr(s string) (*TypeExpr, error) {
	p := &exprParser{src: s}

	expr, err := p.expr()
	if err != nil {
		return nil, fmt.Errorf("invalid type %q: %w", s, err)
	}

	p.skipSpaces()

	if p.pos != len(p.src) {
		return nil, fmt.Errorf("invalid type %q: unexpected %q at offset %d", s, p.src[p.pos:], p.pos)
	}

	return expr, nil
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *exprParser) consume(prefix string) bool {
	p.skipSpaces()

	if strings.HasPrefix(p.src[p.pos:], prefix) {
		p.pos += len(prefix)

		return true
	}

	return false
}

func (p *exprParser) expr() (*TypeExpr, error) {
	switch {
	case p.consume("*"):
		return p.expr()
	case p.consume("[]"):
		elem, err := p.expr()
		if err != nil {
			return nil, err
		}

		return &TypeExpr{Kind: ExprSlice, Args: []*TypeExpr{elem}}, nil
	case p.consume("map["):
		key, err := p.expr()
		if err != nil {
			return nil, err
		}

		if !p.consume("]") {
			return nil, fmt.Errorf("missing ] after map key at offset %d", p.pos)
		}

		value, err := p.expr()
		if err != nil {
			return nil, err
		}

		return &TypeExpr{Kind: ExprMap, Args: []*TypeExpr{key, value}}, nil
	case p.consume("interface{}"):
		return &TypeExpr{Kind: ExprNamed, Name: "any"}, nil
	}

	return p.named()
}

func (p *exprParser) named() (*TypeExpr, error) {
	p.skipSpaces()

	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune("[], *", rune(p.src[p.pos])) {
		p.pos++
	}

	if start == p.pos {
		return nil, fmt.Errorf("missing type name at offset %d", p.pos)
	}

	pkgPath, name := splitQualified(p.src[start:p.pos])
	if pkgPath == "" && strings.Contains(name, "/") {
		return nil, fmt.Errorf("missing type name after package path %q", name)
	}

	if !isValidIdent(name) {
		return nil, fmt.Errorf("invalid type name %q", name)
	}

	res := &TypeExpr{Kind: ExprNamed, PkgPath: pkgPath, Name: name}

	if !p.consume("[") {
		return res, nil
	}

	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}

		res.Args = append(res.Args, arg)

		if p.consume("]") {
			return res, nil
		}

		if !p.consume(",") {
			return nil, fmt.Errorf("expected , or ] at offset %d", p.pos)
		}
	}
}

// splitQualified splits "example.com/shop.Order" into "example.com/shop" and
// "Order". The package path ends at the first dot after the last slash.
func splitQualified(s string) (pkgPath, name string) {
	slash := strings.LastIndex(s, "/")

	dot := strings.Index(s[slash+1:], ".")
	if dot < 0 {
		return "", s
	}

	dot += slash + 1

	return s[:dot], s[dot+1:]
}
