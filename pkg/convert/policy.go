package convert

import (
	"github.com/NetworkVerification/angler-sub000/pkg/aast"
	"github.com/NetworkVerification/angler-sub000/pkg/bast"
)

// unreachable is the guard of the linearization conditionals: evaluation
// has already produced a result, by returning or by exiting.
func unreachable() aast.Expression {
	return &aast.Disjunction{Disjuncts: []aast.Expression{
		resultFlag(aast.ResultReturned),
		resultFlag(aast.ResultExit),
	}}
}

// linearize makes early returns explicit: after each statement, the rest
// of the block runs only under the negation of unreachable. Nested
// conditionals are linearized branch by branch; the last statement of a
// block needs no trailing guard.
func linearize(ss []aast.Statement) []aast.Statement {
	if len(ss) == 0 {
		return ss
	}
	hd := linearizeBranches(ss[0])
	if len(ss) == 1 {
		return []aast.Statement{hd}
	}
	return []aast.Statement{hd, &aast.If{
		Comment:  "early_return",
		Guard:    unreachable(),
		ThenCase: []aast.Statement{},
		ElseCase: linearize(ss[1:]),
		Ty:       aast.TypeUnknown,
	}}
}

func linearizeBranches(s aast.Statement) aast.Statement {
	ifs, ok := s.(*aast.If)
	if !ok {
		return s
	}
	return &aast.If{
		Comment:  ifs.Comment,
		Guard:    ifs.Guard,
		ThenCase: linearize(ifs.ThenCase),
		ElseCase: linearize(ifs.ElseCase),
		Ty:       ifs.Ty,
	}
}

// closing resolves the block's outcome for the caller: a returned or
// exited result has its Returned flag cleared so an enclosing policy does
// not mistake it for its own return, while a block that ran off the end
// falls through to the local default action.
func closing() aast.Statement {
	return &aast.If{
		Comment: "reset_return",
		Guard:   unreachable(),
		ThenCase: []aast.Statement{
			updateResult(override(aast.ResultReturned, boolLit(false))),
		},
		ElseCase: []aast.Statement{
			updateResult(
				override(aast.ResultFallthrough, boolLit(true)),
				override(aast.ResultValue, getEnv(aast.EnvLocalDefaultAction)),
			),
		},
		Ty: aast.TypeUnknown,
	}
}

// Policy recompiles a routing policy into a single-argument function over
// the route environment, with all control flow explicit.
func (c *Converter) Policy(p *bast.RoutingPolicy) (*aast.Func, error) {
	body, err := c.Stmts(p.Statements)
	if err != nil {
		return nil, err
	}
	body = linearize(body)
	body = append(body, closing())
	return &aast.Func{Arg: Arg, Body: body}, nil
}
