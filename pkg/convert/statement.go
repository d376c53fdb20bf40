package convert

import (
	"reflect"

	"github.com/NetworkVerification/angler-sub000/pkg/aast"
	"github.com/NetworkVerification/angler-sub000/pkg/bast"
)

// Stmts converts a source statement block element-wise, flattening each
// statement's expansion into one sequence.
func (c *Converter) Stmts(ss []bast.Statement) ([]aast.Statement, error) {
	out := make([]aast.Statement, 0, len(ss))
	for _, s := range ss {
		conv, err := c.Stmt(s)
		if err != nil {
			return nil, err
		}
		out = append(out, conv...)
	}
	return out, nil
}

// Stmt converts one source statement. A statement may expand to zero
// statements (dropped updates, trace wrappers around nothing) or several
// (flattened trace wrappers), hence the slice result.
func (c *Converter) Stmt(s bast.Statement) ([]aast.Statement, error) {
	switch n := s.(type) {
	case *bast.StaticStatement:
		return c.staticStmt(n)
	case *bast.TraceableStatement:
		// the trace annotation carries no routing semantics
		return c.Stmts(n.Inner)
	case *bast.IfStatement:
		return c.ifStmt(n)
	case *bast.SetLocalPreference:
		v, err := c.Expr(n.LP)
		if err != nil {
			return nil, err
		}
		return single(setEnv(aast.EnvLp, v)), nil
	case *bast.SetCommunities:
		v, err := c.Expr(n.CommunitySet)
		if err != nil {
			return nil, err
		}
		return single(setEnv(aast.EnvCommunities, v)), nil
	case *bast.SetMetric:
		v, err := c.Expr(n.Metric)
		if err != nil {
			return nil, err
		}
		return single(setEnv(aast.EnvMetric, v)), nil
	case *bast.SetOrigin:
		v, err := c.Expr(n.Origin)
		if err != nil {
			return nil, err
		}
		return single(setEnv(aast.EnvOriginType, v)), nil
	case *bast.SetWeight:
		v, err := c.Expr(n.Weight)
		if err != nil {
			return nil, err
		}
		return single(setEnv(aast.EnvWeight, v)), nil
	case *bast.SetNextHop:
		// next hops are not modeled; dropping the update is sound for
		// policies that never read the next hop back
		return []aast.Statement{}, nil
	case *bast.PrependAsPath:
		// the AS path is not modeled
		return []aast.Statement{}, nil
	case *bast.SetDefaultPolicy:
		return single(&aast.SetDefaultPolicy{PolicyName: n.Policy}), nil
	}
	return nil, unsupportedStmt(s)
}

// ifStmt converts a conditional. A literal guard selects its branch
// outright under Simplify, and identical branches merge into straight-line
// code regardless of the guard.
func (c *Converter) ifStmt(n *bast.IfStatement) ([]aast.Statement, error) {
	guard, err := c.Expr(n.Guard)
	if err != nil {
		return nil, err
	}
	if c.opts.Simplify {
		if v, ok := literalBool(guard); ok {
			if v {
				return c.Stmts(n.TrueStmts)
			}
			return c.Stmts(n.FalseStmts)
		}
	}
	thenCase, err := c.Stmts(n.TrueStmts)
	if err != nil {
		return nil, err
	}
	elseCase, err := c.Stmts(n.FalseStmts)
	if err != nil {
		return nil, err
	}
	if reflect.DeepEqual(thenCase, elseCase) {
		return thenCase, nil
	}
	return single(&aast.If{
		Comment:  n.Comment,
		Guard:    guard,
		ThenCase: thenCase,
		ElseCase: elseCase,
		Ty:       aast.TypeUnknown,
	}), nil
}

// staticStmt expands a fixed-effect statement. The Exit, Return and
// FallThrough family replaces the whole result record; the default-action
// family rewrites the environment's local default flag.
func (c *Converter) staticStmt(s *bast.StaticStatement) ([]aast.Statement, error) {
	switch s.Type {
	case bast.StaticExitAccept:
		return single(freshResult(override(aast.ResultValue, boolLit(true)), override(aast.ResultExit, boolLit(true)))), nil
	case bast.StaticExitReject:
		return single(freshResult(override(aast.ResultExit, boolLit(true)))), nil
	case bast.StaticReturnTrue:
		return single(freshResult(override(aast.ResultValue, boolLit(true)), override(aast.ResultReturned, boolLit(true)))), nil
	case bast.StaticReturnFalse:
		return single(freshResult(override(aast.ResultReturned, boolLit(true)))), nil
	case bast.StaticReturn:
		return single(freshResult(override(aast.ResultReturned, boolLit(true)))), nil
	case bast.StaticFallThrough:
		return single(freshResult(override(aast.ResultFallthrough, boolLit(true)), override(aast.ResultReturned, boolLit(true)))), nil
	case bast.StaticReturnLocalDefault:
		// copies the local default into the result value without ending
		// evaluation: the statement resolves the pending action, it does
		// not return
		return single(updateResult(
			override(aast.ResultValue, getEnv(aast.EnvLocalDefaultAction)),
		)), nil
	case bast.StaticSetAccept, bast.StaticSetLocalAccept:
		return single(setEnv(aast.EnvLocalDefaultAction, boolLit(true))), nil
	case bast.StaticSetReject, bast.StaticSetLocalReject:
		return single(setEnv(aast.EnvLocalDefaultAction, boolLit(false))), nil
	}
	return nil, unsupportedStmt(s)
}

func single(s aast.Statement) []aast.Statement {
	return []aast.Statement{s}
}

type resultOverride struct {
	field aast.ResultField
	value aast.Expression
}

func override(f aast.ResultField, v aast.Expression) resultOverride {
	return resultOverride{field: f, value: v}
}

// freshResult assigns the environment a brand-new result record: every
// flag false except the given overrides.
func freshResult(overrides ...resultOverride) *aast.Assign {
	fields := make(map[string]aast.Expression, len(aast.ResultFields()))
	for _, f := range aast.ResultFields() {
		fields[string(f)] = boolLit(false)
	}
	for _, ov := range overrides {
		fields[string(ov.field)] = ov.value
	}
	record := &aast.CreateRecord{Fields: fields, RecordTy: aast.TypeResult}
	return setEnv(aast.EnvResult, record)
}

// updateResult rewrites selected flags of the current result in place,
// leaving the others as they were.
func updateResult(overrides ...resultOverride) *aast.Assign {
	record := aast.Expression(getEnv(aast.EnvResult))
	for _, ov := range overrides {
		record = &aast.WithField{
			Record:     record,
			FieldName:  string(ov.field),
			FieldValue: ov.value,
			RecordTy:   aast.TypeResult,
			FieldTy:    aast.TypeBool,
		}
	}
	return setEnv(aast.EnvResult, record)
}
