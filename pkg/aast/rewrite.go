package aast

// SubstExpr replaces free variable references named in env with the bound
// expressions, returning a new tree. Unchanged subtrees are shared; shared
// nodes are never mutated.
func SubstExpr(e Expression, env map[string]Expression) Expression {
	if e == nil || len(env) == 0 {
		return e
	}
	switch n := e.(type) {
	case *Var:
		if bound, ok := env[n.Name]; ok {
			return bound
		}
		return n
	case *Conjunction:
		return &Conjunction{Conjuncts: substAll(n.Conjuncts, env)}
	case *Disjunction:
		return &Disjunction{Disjuncts: substAll(n.Disjuncts, env)}
	case *ConjunctionChain:
		return &ConjunctionChain{Subroutines: substAll(n.Subroutines, env)}
	case *FirstMatchChain:
		return &FirstMatchChain{Subroutines: substAll(n.Subroutines, env)}
	case *Not:
		return &Not{Expr: SubstExpr(n.Expr, env)}
	case *BinaryArith:
		return &BinaryArith{
			Op:       n.Op,
			Width:    n.Width,
			Operand1: SubstExpr(n.Operand1, env),
			Operand2: SubstExpr(n.Operand2, env),
		}
	case *Comparison:
		return &Comparison{
			Op:       n.Op,
			Width:    n.Width,
			Operand1: SubstExpr(n.Operand1, env),
			Operand2: SubstExpr(n.Operand2, env),
		}
	case *LiteralSet:
		return &LiteralSet{Elements: substAll(n.Elements, env)}
	case *SetBinary:
		return &SetBinary{
			Op:       n.Op,
			Operand1: SubstExpr(n.Operand1, env),
			Operand2: SubstExpr(n.Operand2, env),
		}
	case *SetUnion:
		return &SetUnion{Sets: substAll(n.Sets, env)}
	case *CreateRecord:
		fields := make(map[string]Expression, len(n.Fields))
		for name, fe := range n.Fields {
			fields[name] = SubstExpr(fe, env)
		}
		return &CreateRecord{Fields: fields, RecordTy: n.RecordTy}
	case *GetField:
		return &GetField{
			Record:    SubstExpr(n.Record, env),
			FieldName: n.FieldName,
			RecordTy:  n.RecordTy,
			FieldTy:   n.FieldTy,
		}
	case *WithField:
		return &WithField{
			Record:     SubstExpr(n.Record, env),
			FieldName:  n.FieldName,
			FieldValue: SubstExpr(n.FieldValue, env),
			RecordTy:   n.RecordTy,
			FieldTy:    n.FieldTy,
		}
	case *Pair:
		return &Pair{
			First:    SubstExpr(n.First, env),
			Second:   SubstExpr(n.Second, env),
			FirstTy:  n.FirstTy,
			SecondTy: n.SecondTy,
		}
	case *First:
		return &First{Pair: SubstExpr(n.Pair, env), FirstTy: n.FirstTy, SecondTy: n.SecondTy}
	case *Second:
		return &Second{Pair: SubstExpr(n.Pair, env), FirstTy: n.FirstTy, SecondTy: n.SecondTy}
	case *PrefixContains:
		return &PrefixContains{Addr: SubstExpr(n.Addr, env), Prefix: SubstExpr(n.Prefix, env)}
	case *MatchSet:
		return &MatchSet{Permit: SubstExpr(n.Permit, env), Deny: SubstExpr(n.Deny, env)}
	default:
		// leaf: literals, Havoc, CallExpr, addresses, prefixes
		return e
	}
}

func substAll(es []Expression, env map[string]Expression) []Expression {
	out := make([]Expression, len(es))
	for i, e := range es {
		out[i] = SubstExpr(e, env)
	}
	return out
}

// SubstStmt applies SubstExpr to every expression of a statement,
// returning a new tree.
func SubstStmt(s Statement, env map[string]Expression) Statement {
	if s == nil || len(env) == 0 {
		return s
	}
	switch n := s.(type) {
	case *Seq:
		return &Seq{First: SubstStmt(n.First, env), Second: SubstStmt(n.Second, env), Ty: n.Ty}
	case *If:
		return &If{
			Comment:  n.Comment,
			Guard:    SubstExpr(n.Guard, env),
			ThenCase: SubstStmts(n.ThenCase, env),
			ElseCase: SubstStmts(n.ElseCase, env),
			Ty:       n.Ty,
		}
	case *Assign:
		return &Assign{Var: n.Var, Expr: SubstExpr(n.Expr, env), Ty: n.Ty}
	case *Return:
		return &Return{Expr: SubstExpr(n.Expr, env), Ty: n.Ty}
	default:
		return s
	}
}

// SubstStmts applies SubstStmt element-wise.
func SubstStmts(ss []Statement, env map[string]Expression) []Statement {
	if len(env) == 0 {
		return ss
	}
	out := make([]Statement, len(ss))
	for i, s := range ss {
		out[i] = SubstStmt(s, env)
	}
	return out
}
