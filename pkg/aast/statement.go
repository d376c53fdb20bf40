package aast

import "github.com/NetworkVerification/angler-sub000/pkg/serialize"

// Statement is implemented by every IR statement variant.
type Statement interface {
	// Encode returns the wire object for this node, including its
	// "$type" discriminator.
	Encode() serialize.Object
	aastStmt()
}

type astmt struct{}

func (astmt) aastStmt() {}

var stmts = serialize.NewRegistry[Statement]("statement", TypeField)

func init() {
	stmts.Register("Skip", decodeSkip)
	stmts.Register("Seq", decodeSeq)
	stmts.Register("If", decodeIf)
	stmts.Register("Assign", decodeAssign)
	stmts.Register("Return", decodeReturn)
	stmts.Register("SetDefaultPolicy", decodeSetDefaultPolicy)
}

// DecodeStatement decodes a wire value into an IR statement.
func DecodeStatement(v any) (Statement, error) {
	return stmts.Decode(v)
}

// DecodeStatements decodes a sequence field of statements, yielding an
// empty slice when the field is absent.
func DecodeStatements(o serialize.Object, key string) ([]Statement, error) {
	return serialize.ListOr(o, key, DecodeStatement)
}

// EncodeStatements encodes a statement sequence.
func EncodeStatements(ss []Statement) []any {
	return serialize.EncodeList(ss, func(s Statement) any { return s.Encode() })
}

// typeArg reads the single type argument off a node's discriminator tag.
func typeArg(o serialize.Object) TypeAnnotation {
	tag, err := serialize.String(o, TypeField)
	if err != nil {
		return TypeUnknown
	}
	if args := serialize.TypeArgs(tag); len(args) == 1 {
		return TypeAnnotation(args[0])
	}
	return TypeUnknown
}

// Skip is a no-op.
type Skip struct{ astmt }

func decodeSkip(serialize.Object) (Statement, error) { return &Skip{}, nil }

func (s *Skip) Encode() serialize.Object {
	return serialize.Object{TypeField: "Skip"}
}

// Seq runs two statements in sequence.
type Seq struct {
	astmt
	First  Statement
	Second Statement
	Ty     TypeAnnotation
}

func decodeSeq(o serialize.Object) (Statement, error) {
	fv, err := serialize.Raw(o, "S1")
	if err != nil {
		return nil, err
	}
	first, err := DecodeStatement(fv)
	if err != nil {
		return nil, err
	}
	sv, err := serialize.Raw(o, "S2")
	if err != nil {
		return nil, err
	}
	second, err := DecodeStatement(sv)
	if err != nil {
		return nil, err
	}
	return &Seq{First: first, Second: second, Ty: typeArg(o)}, nil
}

func (s *Seq) Encode() serialize.Object {
	return serialize.Object{
		TypeField: Annotate("Seq", orUnknown(s.Ty)),
		"S1":      s.First.Encode(),
		"S2":      s.Second.Encode(),
	}
}

// If branches on a boolean guard. Either branch can be empty. The comment
// records why the conditional exists (e.g. "early_return").
type If struct {
	astmt
	Comment  string
	Guard    Expression
	ThenCase []Statement
	ElseCase []Statement
	Ty       TypeAnnotation
}

func decodeIf(o serialize.Object) (Statement, error) {
	comment, err := serialize.StringOr(o, "Comment", "")
	if err != nil {
		return nil, err
	}
	gv, err := serialize.Raw(o, "Guard")
	if err != nil {
		return nil, err
	}
	guard, err := DecodeExpression(gv)
	if err != nil {
		return nil, err
	}
	thenCase, err := DecodeStatements(o, "ThenCase")
	if err != nil {
		return nil, err
	}
	elseCase, err := DecodeStatements(o, "ElseCase")
	if err != nil {
		return nil, err
	}
	return &If{
		Comment:  comment,
		Guard:    guard,
		ThenCase: thenCase,
		ElseCase: elseCase,
		Ty:       typeArg(o),
	}, nil
}

func (s *If) Encode() serialize.Object {
	return serialize.Object{
		TypeField:  Annotate("If", orUnknown(s.Ty)),
		"Comment":  s.Comment,
		"Guard":    s.Guard.Encode(),
		"ThenCase": EncodeStatements(s.ThenCase),
		"ElseCase": EncodeStatements(s.ElseCase),
	}
}

// Assign binds an expression to a variable.
type Assign struct {
	astmt
	Var  string
	Expr Expression
	Ty   TypeAnnotation
}

func decodeAssign(o serialize.Object) (Statement, error) {
	name, err := serialize.String(o, "Var")
	if err != nil {
		return nil, err
	}
	ev, err := serialize.Raw(o, "Expr")
	if err != nil {
		return nil, err
	}
	expr, err := DecodeExpression(ev)
	if err != nil {
		return nil, err
	}
	return &Assign{Var: name, Expr: expr, Ty: typeArg(o)}, nil
}

func (s *Assign) Encode() serialize.Object {
	return serialize.Object{
		TypeField: Annotate("Assign", orUnknown(s.Ty)),
		"Var":     s.Var,
		"Expr":    s.Expr.Encode(),
	}
}

// Return yields an expression as the statement block's value.
type Return struct {
	astmt
	Expr Expression
	Ty   TypeAnnotation
}

func decodeReturn(o serialize.Object) (Statement, error) {
	ev, err := serialize.Raw(o, "Expr")
	if err != nil {
		return nil, err
	}
	expr, err := DecodeExpression(ev)
	if err != nil {
		return nil, err
	}
	return &Return{Expr: expr, Ty: typeArg(o)}, nil
}

func (s *Return) Encode() serialize.Object {
	return serialize.Object{
		TypeField: Annotate("Return", orUnknown(s.Ty)),
		"Expr":    s.Expr.Encode(),
	}
}

// SetDefaultPolicy names the policy to apply when evaluation falls
// through. It changes the evaluation context, not the route itself.
type SetDefaultPolicy struct {
	astmt
	PolicyName string
}

func decodeSetDefaultPolicy(o serialize.Object) (Statement, error) {
	name, err := serialize.String(o, "PolicyName")
	if err != nil {
		return nil, err
	}
	return &SetDefaultPolicy{PolicyName: name}, nil
}

func (s *SetDefaultPolicy) Encode() serialize.Object {
	return serialize.Object{TypeField: "SetDefaultPolicy", "PolicyName": s.PolicyName}
}

func orUnknown(ty TypeAnnotation) TypeAnnotation {
	if ty == "" {
		return TypeUnknown
	}
	return ty
}
