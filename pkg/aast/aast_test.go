package aast

import (
	"encoding/json"
	"errors"
	"net/netip"
	"reflect"
	"testing"

	"github.com/NetworkVerification/angler-sub000/pkg/serialize"
)

func TestAnnotate(t *testing.T) {
	tests := []struct {
		name string
		args []TypeAnnotation
		want string
	}{
		{"Havoc", nil, "Havoc"},
		{"Var", []TypeAnnotation{TypeUnknown}, "Var(_)"},
		{"GetField", []TypeAnnotation{TypeEnvironment, TypeBool}, "GetField(Environment;Bool)"},
	}
	for _, tt := range tests {
		if got := Annotate(tt.name, tt.args...); got != tt.want {
			t.Errorf("Annotate(%q, %v) = %q, want %q", tt.name, tt.args, got, tt.want)
		}
	}
}

func TestExpressionRoundTrip(t *testing.T) {
	env := &Var{Name: "env", Ty: TypeUnknown}
	exprs := []Expression{
		&CallExpr{Policy: "peer-in"},
		env,
		&LiteralBool{Value: true},
		&Havoc{},
		&Conjunction{Conjuncts: []Expression{&LiteralBool{Value: true}, &Havoc{}}},
		&Disjunction{Disjuncts: []Expression{&LiteralBool{Value: false}}},
		&Not{Expr: &Havoc{}},
		&LiteralUInt{Value: 100, Width: 32},
		&LiteralUInt{Value: 2, Width: 2},
		&LiteralInt{Value: -1, Width: 32},
		&LiteralBigInt{Value: 7},
		Add(&LiteralUInt{Value: 1, Width: 32}, &LiteralUInt{Value: 2, Width: 32}),
		Sub(&LiteralUInt{Value: 3, Width: 32}, &LiteralUInt{Value: 1, Width: 32}),
		Compare("LessThanEqual", &LiteralUInt{Value: 1, Width: 32}, &LiteralUInt{Value: 2, Width: 32}),
		&LiteralString{Value: "65000:1"},
		&Regex{Regex: "^65000:"},
		&LiteralSet{Elements: []Expression{&LiteralString{Value: "65000:1"}}},
		SetContains(&LiteralString{Value: "65000:1"}, &LiteralSet{Elements: []Expression{}}),
		&SetUnion{Sets: []Expression{&LiteralSet{Elements: []Expression{}}}},
		&GetField{
			Record:    env,
			FieldName: string(EnvLp),
			RecordTy:  TypeEnvironment,
			FieldTy:   TypeUInt32,
		},
		&WithField{
			Record:     env,
			FieldName:  string(EnvCommunities),
			FieldValue: &LiteralSet{Elements: []Expression{}},
			RecordTy:   TypeEnvironment,
			FieldTy:    TypeSet,
		},
		&Pair{
			First:    &LiteralBool{Value: true},
			Second:   &LiteralUInt{Value: 1, Width: 32},
			FirstTy:  TypeBool,
			SecondTy: TypeUInt32,
		},
		&IpAddress{IP: netip.MustParseAddr("10.0.0.1")},
		&IpPrefix{Prefix: netip.MustParsePrefix("10.0.0.0/24")},
		&PrefixContains{
			Addr:   &IpAddress{IP: netip.MustParseAddr("10.0.0.1")},
			Prefix: &IpPrefix{Prefix: netip.MustParsePrefix("10.0.0.0/24")},
		},
		&PrefixSet{PrefixSpace: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}},
		&PrefixMatches{
			Wildcard:  netip.MustParsePrefix("10.0.0.0/8"),
			MinLength: 24,
			MaxLength: 32,
		},
		&MatchSet{Permit: &LiteralBool{Value: false}, Deny: &LiteralBool{Value: false}},
	}
	for _, e := range exprs {
		got, err := DecodeExpression(e.Encode())
		if err != nil {
			t.Fatalf("round-trip decode of %T: %v", e, err)
		}
		if !reflect.DeepEqual(got, e) {
			t.Errorf("round-trip of %T:\n got %#v\nwant %#v", e, got, e)
		}
	}
}

// Tags survive a real JSON print/parse, including the annotated forms that
// carry type arguments in the discriminator.
func TestExpressionJSONRoundTrip(t *testing.T) {
	e := &WithField{
		Record:     &Var{Name: "env", Ty: TypeUnknown},
		FieldName:  string(EnvResult),
		FieldValue: &CreateRecord{Fields: map[string]Expression{}, RecordTy: TypeResult},
		RecordTy:   TypeEnvironment,
		FieldTy:    TypeResult,
	}
	data, err := json.Marshal(e.Encode())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got, err := DecodeExpression(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, e) {
		t.Errorf("json round-trip:\n got %#v\nwant %#v", got, e)
	}
}

func TestExpressionTagSpelling(t *testing.T) {
	tests := []struct {
		e    Expression
		want string
	}{
		{&Var{Name: "env"}, "Var(_)"},
		{&LiteralUInt{Value: 1, Width: 2}, "UInt2"},
		{Add(&LiteralUInt{Value: 1, Width: 32}, &LiteralUInt{Value: 1, Width: 32}), "Plus32"},
		{Compare("Equals", &Havoc{}, &Havoc{}), "Equals32"},
		{&GetField{Record: &Var{Name: "env"}, FieldName: "Lp", RecordTy: TypeEnvironment, FieldTy: TypeUInt32}, "GetField(Environment;UInt32)"},
	}
	for _, tt := range tests {
		if got := tt.e.Encode()[TypeField]; got != tt.want {
			t.Errorf("%T tag = %v, want %q", tt.e, got, tt.want)
		}
	}
}

func TestStatementRoundTrip(t *testing.T) {
	stmts := []Statement{
		&Skip{},
		&Assign{Var: "env", Expr: &LiteralBool{Value: true}, Ty: TypeUnknown},
		&Return{Expr: &LiteralBool{Value: false}, Ty: TypeUnknown},
		&SetDefaultPolicy{PolicyName: "default-out"},
		&If{
			Comment:  "early_return",
			Guard:    &Havoc{},
			ThenCase: []Statement{},
			ElseCase: []Statement{&Skip{}},
			Ty:       TypeUnknown,
		},
		&Seq{
			First:  &Skip{},
			Second: &Assign{Var: "env", Expr: &Havoc{}, Ty: TypeUnknown},
			Ty:     TypeUnknown,
		},
	}
	for _, s := range stmts {
		got, err := DecodeStatement(s.Encode())
		if err != nil {
			t.Fatalf("round-trip decode of %T: %v", s, err)
		}
		if !reflect.DeepEqual(got, s) {
			t.Errorf("round-trip of %T:\n got %#v\nwant %#v", s, got, s)
		}
	}
}

func TestDecodeExpressionUnknownTag(t *testing.T) {
	_, err := DecodeExpression(map[string]any{TypeField: "Teleport(_)"})
	var uv *serialize.UnknownVariantError
	if !errors.As(err, &uv) {
		t.Fatalf("expected *UnknownVariantError, got %v", err)
	}
	if uv.Name != "Teleport" {
		t.Errorf("variant = %q", uv.Name)
	}
}

func TestRouteLayout(t *testing.T) {
	layout := RouteLayout()
	if len(layout) != len(EnvironmentFields()) {
		t.Fatalf("layout has %d fields, want %d", len(layout), len(EnvironmentFields()))
	}
	if layout["Lp"] != TypeUInt32 || layout["Result"] != TypeResult || layout["Prefix"] != TypeIPPrefix {
		t.Errorf("unexpected layout: %v", layout)
	}
}

func TestWalkExpr(t *testing.T) {
	e := &Conjunction{Conjuncts: []Expression{
		&Not{Expr: &LiteralBool{Value: true}},
		&Disjunction{Disjuncts: []Expression{&Havoc{}, &Havoc{}}},
	}}
	var count, havocs int
	WalkExpr(e, func(x Expression) bool {
		count++
		if _, ok := x.(*Havoc); ok {
			havocs++
		}
		return true
	})
	if count != 6 {
		t.Errorf("visited %d nodes, want 6", count)
	}
	if havocs != 2 {
		t.Errorf("saw %d havocs, want 2", havocs)
	}

	// returning false prunes the subtree
	count = 0
	WalkExpr(e, func(x Expression) bool {
		count++
		_, isDisj := x.(*Disjunction)
		return !isDisj
	})
	if count != 4 {
		t.Errorf("pruned walk visited %d nodes, want 4", count)
	}
}

func TestSubstExpr(t *testing.T) {
	env := map[string]Expression{
		"route-filter-list-pl": &MatchSet{
			Permit: &LiteralBool{Value: true},
			Deny:   &LiteralBool{Value: false},
		},
	}
	e := &Conjunction{Conjuncts: []Expression{
		&Var{Name: "route-filter-list-pl", Ty: TypeUnknown},
		&Var{Name: "unrelated", Ty: TypeUnknown},
	}}
	got := SubstExpr(e, env)
	conj, ok := got.(*Conjunction)
	if !ok {
		t.Fatalf("subst result is %T", got)
	}
	if !reflect.DeepEqual(conj.Conjuncts[0], env["route-filter-list-pl"]) {
		t.Errorf("bound variable not replaced: %#v", conj.Conjuncts[0])
	}
	if v, ok := conj.Conjuncts[1].(*Var); !ok || v.Name != "unrelated" {
		t.Errorf("free variable should stay: %#v", conj.Conjuncts[1])
	}
	// the original tree is untouched
	if _, ok := e.Conjuncts[0].(*Var); !ok {
		t.Error("substitution mutated its input")
	}
}

func TestSubstStmts(t *testing.T) {
	env := map[string]Expression{"community-set-cs": &LiteralSet{Elements: []Expression{}}}
	body := []Statement{
		&If{
			Guard:    &Var{Name: "community-set-cs", Ty: TypeUnknown},
			ThenCase: []Statement{&Assign{Var: "env", Expr: &Var{Name: "community-set-cs", Ty: TypeUnknown}, Ty: TypeUnknown}},
			ElseCase: []Statement{},
			Ty:       TypeUnknown,
		},
	}
	got := SubstStmts(body, env)
	ifs := got[0].(*If)
	if _, ok := ifs.Guard.(*LiteralSet); !ok {
		t.Errorf("guard not substituted: %#v", ifs.Guard)
	}
	assign := ifs.ThenCase[0].(*Assign)
	if _, ok := assign.Expr.(*LiteralSet); !ok {
		t.Errorf("assigned expression not substituted: %#v", assign.Expr)
	}
}

func TestNetworkRoundTrip(t *testing.T) {
	asn := 65000
	remote := 65001
	importName := "peer-in"
	props := NewProperties()
	props.ASNumber = &asn
	props.AddPrefixFromIP(netip.MustParseAddr("10.0.0.1"))
	props.Policies["r2"] = &Policies{Asn: &remote, Import: &importName}
	props.Declarations["peer-in"] = &Func{Arg: "env", Body: []Statement{&Skip{}}}

	n := &Network{
		Route: RouteLayout(),
		Nodes: map[string]*Properties{"r1": props},
		Externals: []ExternalPeer{
			{IP: netip.MustParseAddr("172.16.0.1"), ASNumber: &remote, Peering: []string{"r1"}},
		},
	}
	data, err := json.Marshal(n.Encode())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got, err := DecodeNetwork(raw)
	if err != nil {
		t.Fatalf("DecodeNetwork: %v", err)
	}
	if !reflect.DeepEqual(got, n) {
		t.Errorf("network round-trip:\n got %#v\nwant %#v", got, n)
	}
}

func TestPropertiesAddPrefixFromIP(t *testing.T) {
	p := NewProperties()
	p.AddPrefixFromIP(netip.MustParseAddr("192.168.3.7"))
	want := netip.MustParsePrefix("192.168.3.0/24")
	if _, ok := p.Prefixes[want]; !ok {
		t.Errorf("prefixes = %v, want %v", p.Prefixes, want)
	}
}
