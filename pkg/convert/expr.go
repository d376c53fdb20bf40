package convert

import (
	"github.com/NetworkVerification/angler-sub000/pkg/aast"
	"github.com/NetworkVerification/angler-sub000/pkg/bast"
)

// Expr converts a source expression into an IR expression. IPv6 tests
// become the literal false under the IPv4-only assumption; AS-path and
// community-regex tests degrade to an explicit nondeterministic choice.
func (c *Converter) Expr(e bast.Expression) (aast.Expression, error) {
	switch n := e.(type) {
	case *bast.CallExpr:
		return &aast.CallExpr{Policy: n.Policy}, nil
	case *bast.StaticBooleanExpr:
		switch n.Type {
		case bast.StaticTrue:
			return boolLit(true), nil
		case bast.StaticFalse:
			return boolLit(false), nil
		case bast.StaticCallContext:
			return &aast.Havoc{}, nil
		}
		return nil, unsupportedExpr(n)
	case *bast.Conjunction:
		return c.conjunction(n.Conjuncts)
	case *bast.Disjunction:
		return c.disjunction(n.Disjuncts)
	case *bast.ConjunctionChain:
		subs, err := c.booleanExprs(n.Subroutines)
		if err != nil {
			return nil, err
		}
		return &aast.ConjunctionChain{Subroutines: subs}, nil
	case *bast.FirstMatchChain:
		subs, err := c.booleanExprs(n.Subroutines)
		if err != nil {
			return nil, err
		}
		return &aast.FirstMatchChain{Subroutines: subs}, nil
	case *bast.Not:
		inner, err := c.Expr(n.Expr)
		if err != nil {
			return nil, err
		}
		if c.opts.Simplify {
			if v, ok := literalBool(inner); ok {
				return boolLit(!v), nil
			}
		}
		return &aast.Not{Expr: inner}, nil
	case *bast.MatchIpv4:
		return boolLit(true), nil
	case *bast.MatchIpv6:
		return boolLit(false), nil
	case *bast.MatchPrefix6Set:
		return boolLit(false), nil
	case *bast.MatchProtocol:
		return boolLit(n.HasBGP()), nil
	case *bast.MatchPrefixSet:
		prefix, err := c.Expr(n.Prefix)
		if err != nil {
			return nil, err
		}
		set, err := c.Expr(n.PrefixSet)
		if err != nil {
			return nil, err
		}
		return &aast.PrefixContains{Addr: prefix, Prefix: set}, nil
	case *bast.MatchCommunities:
		return c.matchCommunities(n)
	case *bast.MatchTag:
		tag, err := c.Expr(n.Tag)
		if err != nil {
			return nil, err
		}
		op, err := comparisonOp(n.Cmp)
		if err != nil {
			return nil, err
		}
		return aast.Compare(op, getEnv(aast.EnvTag), tag), nil
	case *bast.LegacyMatchAsPath:
		return &aast.Havoc{}, nil
	case *bast.InputCommunities:
		return getEnv(aast.EnvCommunities), nil
	case *bast.LiteralCommunitySet:
		els := make([]aast.Expression, len(n.Communities))
		for i, comm := range n.Communities {
			els[i] = &aast.LiteralString{Value: comm}
		}
		return &aast.LiteralSet{Elements: els}, nil
	case *bast.CommunitySetUnion:
		sets := make([]aast.Expression, len(n.Exprs))
		for i, sub := range n.Exprs {
			s, err := c.Expr(sub)
			if err != nil {
				return nil, err
			}
			sets[i] = s
		}
		return &aast.SetUnion{Sets: sets}, nil
	case *bast.CommunitySetDifference:
		// Removing every standard community leaves nothing: routes carry
		// standard communities only.
		if _, all := n.Remove.(*bast.AllStandardCommunities); all {
			return &aast.LiteralSet{Elements: []aast.Expression{}}, nil
		}
		remove, err := c.Expr(n.Remove)
		if err != nil {
			return nil, err
		}
		initial, err := c.Expr(n.Initial)
		if err != nil {
			return nil, err
		}
		return aast.SetRemove(remove, initial), nil
	case *bast.CommunitySetReference:
		return &aast.Var{Name: communitySetName(n.Name), Ty: aast.TypeUnknown}, nil
	case *bast.CommunityMatchExprReference:
		return &aast.Var{Name: communityMatchName(n.Name), Ty: aast.TypeUnknown}, nil
	case *bast.CommunitySetMatchExprReference:
		return &aast.Var{Name: communityMatchName(n.Name), Ty: aast.TypeUnknown}, nil
	case *bast.CommunityIs:
		return &aast.LiteralString{Value: n.Community}, nil
	case *bast.CommunityMatchRegex:
		return &aast.Havoc{}, nil
	case *bast.CommunitySetMatchAll:
		els := make([]aast.Expression, len(n.Exprs))
		for i, sub := range n.Exprs {
			s, err := c.Expr(sub)
			if err != nil {
				return nil, err
			}
			els[i] = s
		}
		return &aast.LiteralSet{Elements: els}, nil
	case *bast.HasCommunity:
		return c.Expr(n.Expr)
	case *bast.LiteralLong:
		return &aast.LiteralUInt{Value: n.Value, Width: 32}, nil
	case *bast.LiteralInt:
		return &aast.LiteralUInt{Value: n.Value, Width: 32}, nil
	case *bast.IncrementLocalPref:
		return aast.Add(getEnv(aast.EnvLp), &aast.LiteralUInt{Value: n.Addend, Width: 32}), nil
	case *bast.DecrementLocalPref:
		return aast.Sub(getEnv(aast.EnvLp), &aast.LiteralUInt{Value: n.Subtrahend, Width: 32}), nil
	case *bast.LiteralOrigin:
		return &aast.LiteralUInt{Value: n.Origin.Int(), Width: 2}, nil
	case *bast.DestinationNetwork:
		return getEnv(aast.EnvPrefix), nil
	case *bast.NamedPrefixSet:
		return &aast.Var{Name: routeFilterListName(n.Name), Ty: aast.TypeUnknown}, nil
	case *bast.ExplicitPrefixSet:
		return &aast.PrefixSet{PrefixSpace: n.PrefixSpace}, nil
	}
	return nil, unsupportedExpr(e)
}

// matchCommunities lowers a community set test according to the shape of
// its match operand: membership of a single community, membership of a
// declared match expression, or inclusion of a whole literal set.
func (c *Converter) matchCommunities(n *bast.MatchCommunities) (aast.Expression, error) {
	comms, err := c.Expr(n.CommunitySet)
	if err != nil {
		return nil, err
	}
	switch m := n.CommunitySetMatch.(type) {
	case *bast.HasCommunity:
		el, err := c.Expr(m.Expr)
		if err != nil {
			return nil, err
		}
		return aast.SetContains(el, comms), nil
	case *bast.CommunitySetMatchExprReference:
		ref := &aast.Var{Name: communityMatchName(m.Name), Ty: aast.TypeUnknown}
		return aast.SetContains(ref, comms), nil
	case *bast.CommunitySetMatchAll:
		set, err := c.Expr(m)
		if err != nil {
			return nil, err
		}
		return aast.Subset(set, comms), nil
	}
	return nil, unsupportedExpr(n)
}

func (c *Converter) booleanExprs(es []bast.BooleanExpr) ([]aast.Expression, error) {
	out := make([]aast.Expression, len(es))
	for i, e := range es {
		conv, err := c.Expr(e)
		if err != nil {
			return nil, err
		}
		out[i] = conv
	}
	return out, nil
}

// conjunction folds literal conjuncts under Simplify: a false conjunct
// collapses the whole expression, true conjuncts drop out, and an empty
// or singleton conjunction reduces to its value. Operands convert first
// so unsupported constructs are reported regardless of folding.
func (c *Converter) conjunction(es []bast.BooleanExpr) (aast.Expression, error) {
	conv, err := c.booleanExprs(es)
	if err != nil {
		return nil, err
	}
	if !c.opts.Simplify {
		return &aast.Conjunction{Conjuncts: conv}, nil
	}
	kept := make([]aast.Expression, 0, len(conv))
	for _, e := range conv {
		if v, ok := literalBool(e); ok {
			if !v {
				return boolLit(false), nil
			}
			continue
		}
		kept = append(kept, e)
	}
	switch len(kept) {
	case 0:
		return boolLit(true), nil
	case 1:
		return kept[0], nil
	}
	return &aast.Conjunction{Conjuncts: kept}, nil
}

// disjunction is the dual of conjunction: a true disjunct collapses the
// expression and false disjuncts drop out.
func (c *Converter) disjunction(es []bast.BooleanExpr) (aast.Expression, error) {
	conv, err := c.booleanExprs(es)
	if err != nil {
		return nil, err
	}
	if !c.opts.Simplify {
		return &aast.Disjunction{Disjuncts: conv}, nil
	}
	kept := make([]aast.Expression, 0, len(conv))
	for _, e := range conv {
		if v, ok := literalBool(e); ok {
			if v {
				return boolLit(true), nil
			}
			continue
		}
		kept = append(kept, e)
	}
	switch len(kept) {
	case 0:
		return boolLit(false), nil
	case 1:
		return kept[0], nil
	}
	return &aast.Disjunction{Disjuncts: kept}, nil
}

func comparisonOp(cmp bast.Comparator) (string, error) {
	switch cmp {
	case bast.CmpEQ:
		return "Equals", nil
	case bast.CmpGE:
		return "GreaterThanEqual", nil
	case bast.CmpGT:
		return "GreaterThan", nil
	case bast.CmpLE:
		return "LessThanEqual", nil
	case bast.CmpLT:
		return "LessThan", nil
	}
	return "", &UnsupportedConstructError{Kind: "comparator", Node: cmp}
}
