package convert

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/NetworkVerification/angler-sub000/pkg/aast"
	"github.com/NetworkVerification/angler-sub000/pkg/bast"
)

func newConverter(t *testing.T, opts Options) *Converter {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(opts, logger, nil)
}

func TestStaticStatements(t *testing.T) {
	c := newConverter(t, Options{})
	tests := []struct {
		ty   bast.StaticStatementType
		want []aast.Statement
	}{
		{
			bast.StaticExitAccept,
			single(freshResult(
				override(aast.ResultValue, boolLit(true)),
				override(aast.ResultExit, boolLit(true)),
			)),
		},
		{
			bast.StaticExitReject,
			single(freshResult(override(aast.ResultExit, boolLit(true)))),
		},
		{
			bast.StaticReturnTrue,
			single(freshResult(
				override(aast.ResultValue, boolLit(true)),
				override(aast.ResultReturned, boolLit(true)),
			)),
		},
		{
			bast.StaticReturnFalse,
			single(freshResult(override(aast.ResultReturned, boolLit(true)))),
		},
		{
			bast.StaticReturn,
			single(freshResult(override(aast.ResultReturned, boolLit(true)))),
		},
		{
			bast.StaticFallThrough,
			single(freshResult(
				override(aast.ResultFallthrough, boolLit(true)),
				override(aast.ResultReturned, boolLit(true)),
			)),
		},
		{
			bast.StaticReturnLocalDefault,
			single(updateResult(
				override(aast.ResultValue, getEnv(aast.EnvLocalDefaultAction)),
			)),
		},
		{
			bast.StaticSetAccept,
			single(setEnv(aast.EnvLocalDefaultAction, boolLit(true))),
		},
		{
			bast.StaticSetLocalAccept,
			single(setEnv(aast.EnvLocalDefaultAction, boolLit(true))),
		},
		{
			bast.StaticSetReject,
			single(setEnv(aast.EnvLocalDefaultAction, boolLit(false))),
		},
		{
			bast.StaticSetLocalReject,
			single(setEnv(aast.EnvLocalDefaultAction, boolLit(false))),
		},
	}
	for _, tt := range tests {
		t.Run(string(tt.ty), func(t *testing.T) {
			got, err := c.Stmt(&bast.StaticStatement{Type: tt.ty})
			if err != nil {
				t.Fatalf("Stmt: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got  %#v\nwant %#v", got, tt.want)
			}
		})
	}
}

func TestStaticStatementUnknown(t *testing.T) {
	c := newConverter(t, Options{})
	_, err := c.Stmt(&bast.StaticStatement{Type: "Levitate"})
	var uc *UnsupportedConstructError
	if !errors.As(err, &uc) {
		t.Fatalf("expected *UnsupportedConstructError, got %v", err)
	}
}

func TestSetStatements(t *testing.T) {
	c := newConverter(t, Options{})
	got, err := c.Stmt(&bast.SetLocalPreference{LP: &bast.LiteralLong{Value: 200}})
	if err != nil {
		t.Fatalf("Stmt: %v", err)
	}
	want := single(setEnv(aast.EnvLp, &aast.LiteralUInt{Value: 200, Width: 32}))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SetLocalPreference:\n got  %#v\nwant %#v", got, want)
	}

	got, err = c.Stmt(&bast.SetOrigin{Origin: &bast.LiteralOrigin{Origin: bast.OriginIGP}})
	if err != nil {
		t.Fatalf("Stmt: %v", err)
	}
	want = single(setEnv(aast.EnvOriginType, &aast.LiteralUInt{Value: 2, Width: 2}))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SetOrigin:\n got  %#v\nwant %#v", got, want)
	}
}

func TestDroppedUpdates(t *testing.T) {
	c := newConverter(t, Options{})
	for _, s := range []bast.Statement{
		&bast.SetNextHop{Expr: &bast.SelfNextHop{}},
		&bast.PrependAsPath{Expr: &bast.LiteralAsList{Ases: []bast.AsExpr{}}},
	} {
		got, err := c.Stmt(s)
		if err != nil {
			t.Fatalf("Stmt(%T): %v", s, err)
		}
		if len(got) != 0 {
			t.Errorf("%T should convert to nothing, got %#v", s, got)
		}
	}
}

func TestTraceableFlattens(t *testing.T) {
	c := newConverter(t, Options{})
	got, err := c.Stmt(&bast.TraceableStatement{
		Inner: []bast.Statement{
			&bast.StaticStatement{Type: bast.StaticReturnTrue},
			&bast.SetMetric{Metric: &bast.LiteralLong{Value: 80}},
		},
	})
	if err != nil {
		t.Fatalf("Stmt: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d statements, want 2", len(got))
	}
	want := setEnv(aast.EnvMetric, &aast.LiteralUInt{Value: 80, Width: 32})
	if !reflect.DeepEqual(got[1], want) {
		t.Errorf("second statement = %#v", got[1])
	}
}

func TestIfIdenticalBranchesMerge(t *testing.T) {
	// branch merging needs no Simplify: identical outcomes make the guard
	// irrelevant
	c := newConverter(t, Options{})
	got, err := c.Stmt(&bast.IfStatement{
		Guard:      &bast.LegacyMatchAsPath{},
		TrueStmts:  []bast.Statement{&bast.StaticStatement{Type: bast.StaticExitAccept}},
		FalseStmts: []bast.Statement{&bast.StaticStatement{Type: bast.StaticExitAccept}},
	})
	if err != nil {
		t.Fatalf("Stmt: %v", err)
	}
	want := single(freshResult(
		override(aast.ResultValue, boolLit(true)),
		override(aast.ResultExit, boolLit(true)),
	))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got  %#v\nwant %#v", got, want)
	}
}

func TestIfDeadBranchElimination(t *testing.T) {
	ifStmt := &bast.IfStatement{
		Guard:      &bast.StaticBooleanExpr{Type: bast.StaticTrue},
		TrueStmts:  []bast.Statement{&bast.StaticStatement{Type: bast.StaticExitAccept}},
		FalseStmts: []bast.Statement{&bast.StaticStatement{Type: bast.StaticExitReject}},
	}

	got, err := newConverter(t, Options{Simplify: true}).Stmt(ifStmt)
	if err != nil {
		t.Fatalf("Stmt: %v", err)
	}
	want := single(freshResult(
		override(aast.ResultValue, boolLit(true)),
		override(aast.ResultExit, boolLit(true)),
	))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("simplified:\n got  %#v\nwant %#v", got, want)
	}

	// without Simplify the conditional survives
	got, err = newConverter(t, Options{}).Stmt(ifStmt)
	if err != nil {
		t.Fatalf("Stmt: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d statements", len(got))
	}
	if _, ok := got[0].(*aast.If); !ok {
		t.Errorf("unsimplified conversion should keep the If, got %T", got[0])
	}
}

func TestBooleanFolding(t *testing.T) {
	c := newConverter(t, Options{Simplify: true})
	tests := []struct {
		name string
		in   bast.BooleanExpr
		want aast.Expression
	}{
		{
			"conjunction with false",
			&bast.Conjunction{Conjuncts: []bast.BooleanExpr{
				&bast.StaticBooleanExpr{Type: bast.StaticFalse},
				&bast.LegacyMatchAsPath{},
			}},
			boolLit(false),
		},
		{
			"conjunction drops true",
			&bast.Conjunction{Conjuncts: []bast.BooleanExpr{
				&bast.StaticBooleanExpr{Type: bast.StaticTrue},
				&bast.LegacyMatchAsPath{},
			}},
			&aast.Havoc{},
		},
		{
			"empty conjunction",
			&bast.Conjunction{Conjuncts: []bast.BooleanExpr{}},
			boolLit(true),
		},
		{
			"disjunction with true",
			&bast.Disjunction{Disjuncts: []bast.BooleanExpr{
				&bast.LegacyMatchAsPath{},
				&bast.StaticBooleanExpr{Type: bast.StaticTrue},
			}},
			boolLit(true),
		},
		{
			"disjunction drops false",
			&bast.Disjunction{Disjuncts: []bast.BooleanExpr{
				&bast.StaticBooleanExpr{Type: bast.StaticFalse},
				&bast.LegacyMatchAsPath{},
			}},
			&aast.Havoc{},
		},
		{
			"empty disjunction",
			&bast.Disjunction{Disjuncts: []bast.BooleanExpr{}},
			boolLit(false),
		},
		{
			"negated literal",
			&bast.Not{Expr: &bast.MatchIpv6{}},
			boolLit(true),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Expr(tt.in)
			if err != nil {
				t.Fatalf("Expr: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got  %#v\nwant %#v", got, tt.want)
			}
		})
	}
}

func TestNoFoldingWithoutSimplify(t *testing.T) {
	c := newConverter(t, Options{})
	got, err := c.Expr(&bast.Conjunction{Conjuncts: []bast.BooleanExpr{
		&bast.StaticBooleanExpr{Type: bast.StaticTrue},
		&bast.MatchIpv6{},
	}})
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want := &aast.Conjunction{Conjuncts: []aast.Expression{boolLit(true), boolLit(false)}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got  %#v\nwant %#v", got, want)
	}
}

func TestCommunityExprs(t *testing.T) {
	c := newConverter(t, Options{})

	got, err := c.Expr(&bast.CommunitySetDifference{
		Initial: &bast.InputCommunities{},
		Remove:  &bast.AllStandardCommunities{},
	})
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want := aast.Expression(&aast.LiteralSet{Elements: []aast.Expression{}})
	if !reflect.DeepEqual(got, want) {
		t.Errorf("difference from all-standard:\n got  %#v\nwant %#v", got, want)
	}

	got, err = c.Expr(&bast.CommunitySetDifference{
		Initial: &bast.InputCommunities{},
		Remove:  &bast.CommunityIs{Community: "65000:1"},
	})
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want = aast.SetRemove(&aast.LiteralString{Value: "65000:1"}, getEnv(aast.EnvCommunities))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("difference:\n got  %#v\nwant %#v", got, want)
	}

	got, err = c.Expr(&bast.MatchCommunities{
		CommunitySet:      &bast.InputCommunities{},
		CommunitySetMatch: &bast.HasCommunity{Expr: &bast.CommunityIs{Community: "65000:1"}},
	})
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want = aast.SetContains(&aast.LiteralString{Value: "65000:1"}, getEnv(aast.EnvCommunities))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("has-community:\n got  %#v\nwant %#v", got, want)
	}

	got, err = c.Expr(&bast.MatchCommunities{
		CommunitySet:      &bast.InputCommunities{},
		CommunitySetMatch: &bast.CommunitySetMatchExprReference{Name: "cm"},
	})
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want = aast.SetContains(
		&aast.Var{Name: "community-match-cm", Ty: aast.TypeUnknown},
		getEnv(aast.EnvCommunities),
	)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("match reference:\n got  %#v\nwant %#v", got, want)
	}
}

func TestMatchTagComparators(t *testing.T) {
	c := newConverter(t, Options{})
	tests := []struct {
		cmp bast.Comparator
		op  string
	}{
		{bast.CmpEQ, "Equals"},
		{bast.CmpGE, "GreaterThanEqual"},
		{bast.CmpGT, "GreaterThan"},
		{bast.CmpLE, "LessThanEqual"},
		{bast.CmpLT, "LessThan"},
	}
	for _, tt := range tests {
		got, err := c.Expr(&bast.MatchTag{Cmp: tt.cmp, Tag: &bast.LiteralInt{Value: 7}})
		if err != nil {
			t.Fatalf("Expr(%s): %v", tt.cmp, err)
		}
		cmp, ok := got.(*aast.Comparison)
		if !ok {
			t.Fatalf("Expr(%s) = %T, want *aast.Comparison", tt.cmp, got)
		}
		if cmp.Op != tt.op || cmp.Width != 32 {
			t.Errorf("Expr(%s) op = %s/%d, want %s/32", tt.cmp, cmp.Op, cmp.Width, tt.op)
		}
	}
}

func TestLocalPrefArithmetic(t *testing.T) {
	c := newConverter(t, Options{})
	got, err := c.Expr(&bast.IncrementLocalPref{Addend: 10})
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want := aast.Expression(aast.Add(getEnv(aast.EnvLp), &aast.LiteralUInt{Value: 10, Width: 32}))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("increment:\n got  %#v\nwant %#v", got, want)
	}
	got, err = c.Expr(&bast.DecrementLocalPref{Subtrahend: 5})
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want = aast.Sub(getEnv(aast.EnvLp), &aast.LiteralUInt{Value: 5, Width: 32})
	if !reflect.DeepEqual(got, want) {
		t.Errorf("decrement:\n got  %#v\nwant %#v", got, want)
	}
}

func TestPolicyEmptyBody(t *testing.T) {
	c := newConverter(t, Options{})
	f, err := c.Policy(&bast.RoutingPolicy{Name: "empty"})
	if err != nil {
		t.Fatalf("Policy: %v", err)
	}
	if f.Arg != Arg {
		t.Errorf("arg = %q, want %q", f.Arg, Arg)
	}
	want := []aast.Statement{closing()}
	if !reflect.DeepEqual(f.Body, want) {
		t.Errorf("body:\n got  %#v\nwant %#v", f.Body, want)
	}
}

func TestPolicyEarlyReturn(t *testing.T) {
	c := newConverter(t, Options{})
	f, err := c.Policy(&bast.RoutingPolicy{
		Name: "two",
		Statements: []bast.Statement{
			&bast.StaticStatement{Type: bast.StaticReturnTrue},
			&bast.SetLocalPreference{LP: &bast.LiteralLong{Value: 200}},
		},
	})
	if err != nil {
		t.Fatalf("Policy: %v", err)
	}
	want := []aast.Statement{
		freshResult(
			override(aast.ResultValue, boolLit(true)),
			override(aast.ResultReturned, boolLit(true)),
		),
		&aast.If{
			Comment:  "early_return",
			Guard:    unreachable(),
			ThenCase: []aast.Statement{},
			ElseCase: []aast.Statement{
				setEnv(aast.EnvLp, &aast.LiteralUInt{Value: 200, Width: 32}),
			},
			Ty: aast.TypeUnknown,
		},
		closing(),
	}
	if !reflect.DeepEqual(f.Body, want) {
		t.Errorf("body:\n got  %#v\nwant %#v", f.Body, want)
	}
}

func TestPolicyLinearizationNests(t *testing.T) {
	c := newConverter(t, Options{})
	f, err := c.Policy(&bast.RoutingPolicy{
		Name: "three",
		Statements: []bast.Statement{
			&bast.SetMetric{Metric: &bast.LiteralLong{Value: 1}},
			&bast.SetMetric{Metric: &bast.LiteralLong{Value: 2}},
			&bast.SetMetric{Metric: &bast.LiteralLong{Value: 3}},
		},
	})
	if err != nil {
		t.Fatalf("Policy: %v", err)
	}
	// [m1, If(early_return, [], [m2, If(early_return, [], [m3])]), closing]
	if len(f.Body) != 3 {
		t.Fatalf("body has %d statements, want 3", len(f.Body))
	}
	outer, ok := f.Body[1].(*aast.If)
	if !ok || outer.Comment != "early_return" {
		t.Fatalf("second statement = %#v", f.Body[1])
	}
	if len(outer.ElseCase) != 2 {
		t.Fatalf("outer else has %d statements, want 2", len(outer.ElseCase))
	}
	inner, ok := outer.ElseCase[1].(*aast.If)
	if !ok || inner.Comment != "early_return" {
		t.Fatalf("nested statement = %#v", outer.ElseCase[1])
	}
	if len(inner.ElseCase) != 1 {
		t.Errorf("inner else has %d statements, want 1", len(inner.ElseCase))
	}
}

// Conversion reads the source tree without mutating it, so converting the
// same policy twice must give identical results.
func TestPolicyIsPure(t *testing.T) {
	c := newConverter(t, Options{Simplify: true})
	p := &bast.RoutingPolicy{
		Name: "pure",
		Statements: []bast.Statement{
			&bast.IfStatement{
				Guard:     &bast.Conjunction{Conjuncts: []bast.BooleanExpr{&bast.MatchIpv4{}, &bast.LegacyMatchAsPath{}}},
				TrueStmts: []bast.Statement{&bast.StaticStatement{Type: bast.StaticExitAccept}},
			},
			&bast.SetLocalPreference{LP: &bast.IncrementLocalPref{Addend: 10}},
		},
	}
	first, err := c.Policy(p)
	if err != nil {
		t.Fatalf("Policy: %v", err)
	}
	second, err := c.Policy(p)
	if err != nil {
		t.Fatalf("Policy: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated conversion of one policy diverged")
	}
}

// A branch's conditionals get linearized bodies too.
func TestPolicyLinearizesBranches(t *testing.T) {
	c := newConverter(t, Options{})
	f, err := c.Policy(&bast.RoutingPolicy{
		Name: "branchy",
		Statements: []bast.Statement{
			&bast.IfStatement{
				Guard: &bast.LegacyMatchAsPath{},
				TrueStmts: []bast.Statement{
					&bast.StaticStatement{Type: bast.StaticReturnTrue},
					&bast.SetMetric{Metric: &bast.LiteralLong{Value: 1}},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Policy: %v", err)
	}
	top, ok := f.Body[0].(*aast.If)
	if !ok {
		t.Fatalf("first statement = %#v", f.Body[0])
	}
	if len(top.ThenCase) != 2 {
		t.Fatalf("then case has %d statements, want 2", len(top.ThenCase))
	}
	if guarded, ok := top.ThenCase[1].(*aast.If); !ok || guarded.Comment != "early_return" {
		t.Errorf("branch tail not linearized: %#v", top.ThenCase[1])
	}
}
