package convert

import "fmt"

// UnsupportedConstructError reports a source node the conversion has no
// sound mapping for. Conversion stops at the first such node.
type UnsupportedConstructError struct {
	Kind string // what was being converted, e.g. "expression"
	Node any    // the offending source node
}

// Error implements the error interface.
func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported %s %T", e.Kind, e.Node)
}

func unsupportedExpr(node any) error {
	return &UnsupportedConstructError{Kind: "expression", Node: node}
}

func unsupportedStmt(node any) error {
	return &UnsupportedConstructError{Kind: "statement", Node: node}
}
