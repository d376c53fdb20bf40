package aast

// WalkExpr invokes f on e and then on every sub-expression, preorder.
// Traversal stops early within a subtree when f returns false for its
// root.
func WalkExpr(e Expression, f func(Expression) bool) {
	if e == nil || !f(e) {
		return
	}
	switch n := e.(type) {
	case *Conjunction:
		for _, c := range n.Conjuncts {
			WalkExpr(c, f)
		}
	case *Disjunction:
		for _, d := range n.Disjuncts {
			WalkExpr(d, f)
		}
	case *ConjunctionChain:
		for _, s := range n.Subroutines {
			WalkExpr(s, f)
		}
	case *FirstMatchChain:
		for _, s := range n.Subroutines {
			WalkExpr(s, f)
		}
	case *Not:
		WalkExpr(n.Expr, f)
	case *BinaryArith:
		WalkExpr(n.Operand1, f)
		WalkExpr(n.Operand2, f)
	case *Comparison:
		WalkExpr(n.Operand1, f)
		WalkExpr(n.Operand2, f)
	case *LiteralSet:
		for _, el := range n.Elements {
			WalkExpr(el, f)
		}
	case *SetBinary:
		WalkExpr(n.Operand1, f)
		WalkExpr(n.Operand2, f)
	case *SetUnion:
		for _, s := range n.Sets {
			WalkExpr(s, f)
		}
	case *CreateRecord:
		for _, fe := range n.Fields {
			WalkExpr(fe, f)
		}
	case *GetField:
		WalkExpr(n.Record, f)
	case *WithField:
		WalkExpr(n.Record, f)
		WalkExpr(n.FieldValue, f)
	case *Pair:
		WalkExpr(n.First, f)
		WalkExpr(n.Second, f)
	case *First:
		WalkExpr(n.Pair, f)
	case *Second:
		WalkExpr(n.Pair, f)
	case *PrefixContains:
		WalkExpr(n.Addr, f)
		WalkExpr(n.Prefix, f)
	case *MatchSet:
		WalkExpr(n.Permit, f)
		WalkExpr(n.Deny, f)
	}
}

// WalkStmt invokes f on s and then on every nested statement and guard or
// assigned expression, preorder. g may be nil when expressions are not of
// interest.
func WalkStmt(s Statement, f func(Statement) bool, g func(Expression) bool) {
	if s == nil || !f(s) {
		return
	}
	walkExprIf := func(e Expression) {
		if g != nil {
			WalkExpr(e, g)
		}
	}
	switch n := s.(type) {
	case *Seq:
		WalkStmt(n.First, f, g)
		WalkStmt(n.Second, f, g)
	case *If:
		walkExprIf(n.Guard)
		for _, t := range n.ThenCase {
			WalkStmt(t, f, g)
		}
		for _, e := range n.ElseCase {
			WalkStmt(e, f, g)
		}
	case *Assign:
		walkExprIf(n.Expr)
	case *Return:
		walkExprIf(n.Expr)
	}
}
