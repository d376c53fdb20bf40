package aast

import (
	"fmt"
	"net/netip"

	"github.com/NetworkVerification/angler-sub000/pkg/serialize"
)

// Expression is implemented by every IR expression variant.
type Expression interface {
	// Encode returns the wire object for this node, including its
	// "$type" discriminator.
	Encode() serialize.Object
	aastExpr()
}

type aexpr struct{}

func (aexpr) aastExpr() {}

var exprs = serialize.NewRegistry[Expression]("expression", TypeField)

func init() {
	exprs.Register("Call", decodeCallExpr)
	exprs.Register("CallExprContext", decodeCallExprContext)
	exprs.Register("Var", decodeVar)
	exprs.Register("Bool", decodeLiteralBool)
	exprs.Register("Havoc", decodeHavoc)
	exprs.Register("And", decodeConjunction)
	exprs.Register("Or", decodeDisjunction)
	exprs.Register("ConjunctionChain", decodeConjunctionChain)
	exprs.Register("FirstMatchChain", decodeFirstMatchChain)
	exprs.Register("Not", decodeNot)
	exprs.Register("Int2", decodeLiteralInt(2))
	exprs.Register("Int32", decodeLiteralInt(32))
	exprs.Register("UInt2", decodeLiteralUInt(2))
	exprs.Register("UInt32", decodeLiteralUInt(32))
	exprs.Register("BigInt", decodeLiteralBigInt)
	exprs.Register("Plus32", decodeBinaryArith("Plus", 32))
	exprs.Register("Sub32", decodeBinaryArith("Sub", 32))
	exprs.Register("Equals32", decodeComparison("Equals", 32))
	exprs.Register("NotEqual32", decodeComparison("NotEqual", 32))
	exprs.Register("LessThan32", decodeComparison("LessThan", 32))
	exprs.Register("LessThanEqual32", decodeComparison("LessThanEqual", 32))
	exprs.Register("GreaterThan32", decodeComparison("GreaterThan", 32))
	exprs.Register("GreaterThanEqual32", decodeComparison("GreaterThanEqual", 32))
	exprs.Register("String", decodeLiteralString)
	exprs.Register("Regex", decodeRegex)
	exprs.Register("LiteralSet", decodeLiteralSet)
	exprs.Register("SetAdd", decodeSetBinary("SetAdd"))
	exprs.Register("SetUnion", decodeSetUnion)
	exprs.Register("SetRemove", decodeSetBinary("SetRemove"))
	exprs.Register("SetDifference", decodeSetBinary("SetDifference"))
	exprs.Register("SetContains", decodeSetBinary("SetContains"))
	exprs.Register("Subset", decodeSetBinary("Subset"))
	exprs.Register("CreateRecord", decodeCreateRecord)
	exprs.Register("GetField", decodeGetField)
	exprs.Register("WithField", decodeWithField)
	exprs.Register("Pair", decodePair)
	exprs.Register("First", decodeFirst)
	exprs.Register("Second", decodeSecond)
	exprs.Register("IpAddress", decodeIpAddress)
	exprs.Register("IpPrefix", decodeIpPrefix)
	exprs.Register("PrefixContains", decodePrefixContains)
	exprs.Register("PrefixSet", decodePrefixSet)
	exprs.Register("PrefixMatches", decodePrefixMatches)
	exprs.Register("MatchSet", decodeMatchSet)
}

// DecodeExpression decodes a wire value into an IR expression.
func DecodeExpression(v any) (Expression, error) {
	return exprs.Decode(v)
}

func encodeExprs(es []Expression) []any {
	return serialize.EncodeList(es, func(e Expression) any { return e.Encode() })
}

func exprField(o serialize.Object, key string) (Expression, error) {
	v, err := serialize.Raw(o, key)
	if err != nil {
		return nil, err
	}
	return DecodeExpression(v)
}

// typeArgPair reads the two type arguments off a node's discriminator tag,
// defaulting to unknown when the suffix is absent.
func typeArgPair(o serialize.Object) (TypeAnnotation, TypeAnnotation) {
	tag, err := serialize.String(o, TypeField)
	if err != nil {
		return TypeUnknown, TypeUnknown
	}
	args := serialize.TypeArgs(tag)
	if len(args) != 2 {
		return TypeUnknown, TypeUnknown
	}
	return TypeAnnotation(args[0]), TypeAnnotation(args[1])
}

// CallExpr invokes another policy function on the current environment. How
// the call threads the environment is left to the consumer.
type CallExpr struct {
	aexpr
	Policy string
}

func decodeCallExpr(o serialize.Object) (Expression, error) {
	name, err := serialize.String(o, "Name")
	if err != nil {
		return nil, err
	}
	return &CallExpr{Policy: name}, nil
}

func (e *CallExpr) Encode() serialize.Object {
	return serialize.Object{TypeField: "Call", "Name": e.Policy}
}

// CallExprContext is a boolean sentinel: whether the current context was
// reached through a CallExpr.
type CallExprContext struct{ aexpr }

func decodeCallExprContext(serialize.Object) (Expression, error) {
	return &CallExprContext{}, nil
}

func (e *CallExprContext) Encode() serialize.Object {
	return serialize.Object{TypeField: "CallExprContext"}
}

// Var is a variable reference, optionally annotated with its type.
type Var struct {
	aexpr
	Name string
	Ty   TypeAnnotation
}

func decodeVar(o serialize.Object) (Expression, error) {
	name, err := serialize.String(o, "Name")
	if err != nil {
		return nil, err
	}
	v := &Var{Name: name, Ty: TypeUnknown}
	tag, err := serialize.String(o, TypeField)
	if err == nil {
		if args := serialize.TypeArgs(tag); len(args) == 1 {
			v.Ty = TypeAnnotation(args[0])
		}
	}
	return v, nil
}

func (e *Var) Encode() serialize.Object {
	ty := e.Ty
	if ty == "" {
		ty = TypeUnknown
	}
	return serialize.Object{TypeField: Annotate("Var", ty), "Name": e.Name}
}

// LiteralBool is a boolean literal.
type LiteralBool struct {
	aexpr
	Value bool
}

func decodeLiteralBool(o serialize.Object) (Expression, error) {
	v, err := serialize.Bool(o, "Value")
	if err != nil {
		return nil, err
	}
	return &LiteralBool{Value: v}, nil
}

func (e *LiteralBool) Encode() serialize.Object {
	return serialize.Object{TypeField: "Bool", "Value": e.Value}
}

// Havoc is a nondeterministic boolean: the explicit stand-in for tests the
// conversion cannot model.
type Havoc struct{ aexpr }

func decodeHavoc(serialize.Object) (Expression, error) { return &Havoc{}, nil }

func (e *Havoc) Encode() serialize.Object {
	return serialize.Object{TypeField: "Havoc"}
}

// Conjunction is the n-ary AND of its conjuncts.
type Conjunction struct {
	aexpr
	Conjuncts []Expression
}

func decodeConjunction(o serialize.Object) (Expression, error) {
	es, err := serialize.List(o, "Exprs", DecodeExpression)
	if err != nil {
		return nil, err
	}
	return &Conjunction{Conjuncts: es}, nil
}

func (e *Conjunction) Encode() serialize.Object {
	return serialize.Object{TypeField: "And", "Exprs": encodeExprs(e.Conjuncts)}
}

// Disjunction is the n-ary OR of its disjuncts.
type Disjunction struct {
	aexpr
	Disjuncts []Expression
}

func decodeDisjunction(o serialize.Object) (Expression, error) {
	es, err := serialize.List(o, "Exprs", DecodeExpression)
	if err != nil {
		return nil, err
	}
	return &Disjunction{Disjuncts: es}, nil
}

func (e *Disjunction) Encode() serialize.Object {
	return serialize.Object{TypeField: "Or", "Exprs": encodeExprs(e.Disjuncts)}
}

// ConjunctionChain evaluates policy subroutines in order, all of which
// must accept.
type ConjunctionChain struct {
	aexpr
	Subroutines []Expression
}

func decodeConjunctionChain(o serialize.Object) (Expression, error) {
	es, err := serialize.List(o, "Subroutines", DecodeExpression)
	if err != nil {
		return nil, err
	}
	return &ConjunctionChain{Subroutines: es}, nil
}

func (e *ConjunctionChain) Encode() serialize.Object {
	return serialize.Object{TypeField: "ConjunctionChain", "Subroutines": encodeExprs(e.Subroutines)}
}

// FirstMatchChain evaluates policy subroutines in order, returning with
// the first that produces a definite result.
type FirstMatchChain struct {
	aexpr
	Subroutines []Expression
}

func decodeFirstMatchChain(o serialize.Object) (Expression, error) {
	es, err := serialize.List(o, "Subroutines", DecodeExpression)
	if err != nil {
		return nil, err
	}
	return &FirstMatchChain{Subroutines: es}, nil
}

func (e *FirstMatchChain) Encode() serialize.Object {
	return serialize.Object{TypeField: "FirstMatchChain", "Subroutines": encodeExprs(e.Subroutines)}
}

// Not negates its operand.
type Not struct {
	aexpr
	Expr Expression
}

func decodeNot(o serialize.Object) (Expression, error) {
	inner, err := exprField(o, "Expr")
	if err != nil {
		return nil, err
	}
	return &Not{Expr: inner}, nil
}

func (e *Not) Encode() serialize.Object {
	return serialize.Object{TypeField: "Not", "Expr": e.Expr.Encode()}
}

// LiteralInt is a signed integer literal of the given bit width.
type LiteralInt struct {
	aexpr
	Value int
	Width int
}

func decodeLiteralInt(width int) serialize.Constructor[Expression] {
	return func(o serialize.Object) (Expression, error) {
		v, err := serialize.Int(o, "Value")
		if err != nil {
			return nil, err
		}
		return &LiteralInt{Value: v, Width: width}, nil
	}
}

func (e *LiteralInt) Encode() serialize.Object {
	return serialize.Object{TypeField: fmt.Sprintf("Int%d", e.Width), "Value": e.Value}
}

// LiteralUInt is an unsigned integer literal of the given bit width.
type LiteralUInt struct {
	aexpr
	Value int
	Width int
}

func decodeLiteralUInt(width int) serialize.Constructor[Expression] {
	return func(o serialize.Object) (Expression, error) {
		v, err := serialize.Int(o, "Value")
		if err != nil {
			return nil, err
		}
		return &LiteralUInt{Value: v, Width: width}, nil
	}
}

func (e *LiteralUInt) Encode() serialize.Object {
	return serialize.Object{TypeField: fmt.Sprintf("UInt%d", e.Width), "Value": e.Value}
}

// LiteralBigInt is an arbitrary-precision integer literal.
type LiteralBigInt struct {
	aexpr
	Value int
}

func decodeLiteralBigInt(o serialize.Object) (Expression, error) {
	v, err := serialize.Int(o, "Value")
	if err != nil {
		return nil, err
	}
	return &LiteralBigInt{Value: v}, nil
}

func (e *LiteralBigInt) Encode() serialize.Object {
	return serialize.Object{TypeField: "BigInt", "Value": e.Value}
}

// BinaryArith is integer addition or subtraction at a fixed width. Op is
// "Plus" or "Sub".
type BinaryArith struct {
	aexpr
	Op       string
	Width    int
	Operand1 Expression
	Operand2 Expression
}

// Add builds a width-32 addition.
func Add(a, b Expression) *BinaryArith {
	return &BinaryArith{Op: "Plus", Width: 32, Operand1: a, Operand2: b}
}

// Sub builds a width-32 subtraction.
func Sub(a, b Expression) *BinaryArith {
	return &BinaryArith{Op: "Sub", Width: 32, Operand1: a, Operand2: b}
}

func decodeBinaryArith(op string, width int) serialize.Constructor[Expression] {
	return func(o serialize.Object) (Expression, error) {
		a, err := exprField(o, "Operand1")
		if err != nil {
			return nil, err
		}
		b, err := exprField(o, "Operand2")
		if err != nil {
			return nil, err
		}
		return &BinaryArith{Op: op, Width: width, Operand1: a, Operand2: b}, nil
	}
}

func (e *BinaryArith) Encode() serialize.Object {
	return serialize.Object{
		TypeField:  fmt.Sprintf("%s%d", e.Op, e.Width),
		"Operand1": e.Operand1.Encode(),
		"Operand2": e.Operand2.Encode(),
	}
}

// Comparison is an integer relation at a fixed width. Op is one of
// "Equals", "NotEqual", "LessThan", "LessThanEqual", "GreaterThan",
// "GreaterThanEqual".
type Comparison struct {
	aexpr
	Op       string
	Width    int
	Operand1 Expression
	Operand2 Expression
}

// Compare builds a width-32 comparison with the given operator.
func Compare(op string, a, b Expression) *Comparison {
	return &Comparison{Op: op, Width: 32, Operand1: a, Operand2: b}
}

func decodeComparison(op string, width int) serialize.Constructor[Expression] {
	return func(o serialize.Object) (Expression, error) {
		a, err := exprField(o, "Operand1")
		if err != nil {
			return nil, err
		}
		b, err := exprField(o, "Operand2")
		if err != nil {
			return nil, err
		}
		return &Comparison{Op: op, Width: width, Operand1: a, Operand2: b}, nil
	}
}

func (e *Comparison) Encode() serialize.Object {
	return serialize.Object{
		TypeField:  fmt.Sprintf("%s%d", e.Op, e.Width),
		"Operand1": e.Operand1.Encode(),
		"Operand2": e.Operand2.Encode(),
	}
}

// LiteralString is a string literal.
type LiteralString struct {
	aexpr
	Value string
}

func decodeLiteralString(o serialize.Object) (Expression, error) {
	v, err := serialize.String(o, "Value")
	if err != nil {
		return nil, err
	}
	return &LiteralString{Value: v}, nil
}

func (e *LiteralString) Encode() serialize.Object {
	return serialize.Object{TypeField: "String", "Value": e.Value}
}

// Regex is a regular expression literal.
type Regex struct {
	aexpr
	Regex string
}

func decodeRegex(o serialize.Object) (Expression, error) {
	v, err := serialize.String(o, "Regex")
	if err != nil {
		return nil, err
	}
	return &Regex{Regex: v}, nil
}

func (e *Regex) Encode() serialize.Object {
	return serialize.Object{TypeField: "Regex", "Regex": e.Regex}
}

// LiteralSet is an explicit set of element expressions.
type LiteralSet struct {
	aexpr
	Elements []Expression
}

func decodeLiteralSet(o serialize.Object) (Expression, error) {
	es, err := serialize.ListOr(o, "elements", DecodeExpression)
	if err != nil {
		return nil, err
	}
	return &LiteralSet{Elements: es}, nil
}

func (e *LiteralSet) Encode() serialize.Object {
	return serialize.Object{TypeField: "LiteralSet", "elements": encodeExprs(e.Elements)}
}

// SetBinary is a two-operand set expression. Op is one of "SetAdd",
// "SetRemove", "SetDifference", "SetContains", "Subset". For element-set
// forms, Operand1 is the element and Operand2 the set.
type SetBinary struct {
	aexpr
	Op       string
	Operand1 Expression
	Operand2 Expression
}

// SetContains tests membership of an element in a set.
func SetContains(element, set Expression) *SetBinary {
	return &SetBinary{Op: "SetContains", Operand1: element, Operand2: set}
}

// SetRemove removes an element from a set.
func SetRemove(element, set Expression) *SetBinary {
	return &SetBinary{Op: "SetRemove", Operand1: element, Operand2: set}
}

// Subset tests set inclusion.
func Subset(a, b Expression) *SetBinary {
	return &SetBinary{Op: "Subset", Operand1: a, Operand2: b}
}

func decodeSetBinary(op string) serialize.Constructor[Expression] {
	return func(o serialize.Object) (Expression, error) {
		a, err := exprField(o, "Operand1")
		if err != nil {
			return nil, err
		}
		b, err := exprField(o, "Operand2")
		if err != nil {
			return nil, err
		}
		return &SetBinary{Op: op, Operand1: a, Operand2: b}, nil
	}
}

func (e *SetBinary) Encode() serialize.Object {
	return serialize.Object{
		TypeField:  e.Op,
		"Operand1": e.Operand1.Encode(),
		"Operand2": e.Operand2.Encode(),
	}
}

// SetUnion is the n-ary union of its operand sets.
type SetUnion struct {
	aexpr
	Sets []Expression
}

func decodeSetUnion(o serialize.Object) (Expression, error) {
	es, err := serialize.List(o, "Exprs", DecodeExpression)
	if err != nil {
		return nil, err
	}
	return &SetUnion{Sets: es}, nil
}

func (e *SetUnion) Encode() serialize.Object {
	return serialize.Object{TypeField: "SetUnion", "Exprs": encodeExprs(e.Sets)}
}

// CreateRecord builds a record value field by field.
type CreateRecord struct {
	aexpr
	Fields   map[string]Expression
	RecordTy TypeAnnotation
}

func decodeCreateRecord(o serialize.Object) (Expression, error) {
	fields, err := serialize.MapOf(o, "Fields", DecodeExpression)
	if err != nil {
		return nil, err
	}
	recordTy, err := serialize.String(o, "RecordType")
	if err != nil {
		return nil, err
	}
	return &CreateRecord{Fields: fields, RecordTy: TypeAnnotation(recordTy)}, nil
}

func (e *CreateRecord) Encode() serialize.Object {
	fields := make(serialize.Object, len(e.Fields))
	for name, f := range e.Fields {
		fields[name] = f.Encode()
	}
	return serialize.Object{
		TypeField:    "CreateRecord",
		"Fields":     fields,
		"RecordType": string(e.RecordTy),
	}
}

// GetField reads one field of a record expression.
type GetField struct {
	aexpr
	Record    Expression
	FieldName string
	RecordTy  TypeAnnotation
	FieldTy   TypeAnnotation
}

func decodeGetField(o serialize.Object) (Expression, error) {
	rec, err := exprField(o, "Record")
	if err != nil {
		return nil, err
	}
	name, err := serialize.String(o, "FieldName")
	if err != nil {
		return nil, err
	}
	recordTy, fieldTy := typeArgPair(o)
	return &GetField{Record: rec, FieldName: name, RecordTy: recordTy, FieldTy: fieldTy}, nil
}

func (e *GetField) Encode() serialize.Object {
	return serialize.Object{
		TypeField:    Annotate("GetField", e.RecordTy, e.FieldTy),
		"Record":     e.Record.Encode(),
		"FieldName":  e.FieldName,
		"RecordType": string(e.RecordTy),
		"FieldType":  string(e.FieldTy),
	}
}

// WithField is a functional update: the record with one field replaced.
type WithField struct {
	aexpr
	Record     Expression
	FieldName  string
	FieldValue Expression
	RecordTy   TypeAnnotation
	FieldTy    TypeAnnotation
}

func decodeWithField(o serialize.Object) (Expression, error) {
	rec, err := exprField(o, "Record")
	if err != nil {
		return nil, err
	}
	name, err := serialize.String(o, "FieldName")
	if err != nil {
		return nil, err
	}
	value, err := exprField(o, "FieldValue")
	if err != nil {
		return nil, err
	}
	recordTy, fieldTy := typeArgPair(o)
	return &WithField{
		Record:     rec,
		FieldName:  name,
		FieldValue: value,
		RecordTy:   recordTy,
		FieldTy:    fieldTy,
	}, nil
}

func (e *WithField) Encode() serialize.Object {
	return serialize.Object{
		TypeField:    Annotate("WithField", e.RecordTy, e.FieldTy),
		"Record":     e.Record.Encode(),
		"FieldName":  e.FieldName,
		"FieldValue": e.FieldValue.Encode(),
		"RecordType": string(e.RecordTy),
		"FieldType":  string(e.FieldTy),
	}
}

// Pair builds a pair value.
type Pair struct {
	aexpr
	First    Expression
	Second   Expression
	FirstTy  TypeAnnotation
	SecondTy TypeAnnotation
}

func decodePair(o serialize.Object) (Expression, error) {
	first, err := exprField(o, "First")
	if err != nil {
		return nil, err
	}
	second, err := exprField(o, "Second")
	if err != nil {
		return nil, err
	}
	firstTy, secondTy := typeArgPair(o)
	return &Pair{First: first, Second: second, FirstTy: firstTy, SecondTy: secondTy}, nil
}

func (e *Pair) Encode() serialize.Object {
	return serialize.Object{
		TypeField:    Annotate("Pair", e.FirstTy, e.SecondTy),
		"First":      e.First.Encode(),
		"Second":     e.Second.Encode(),
		"FirstType":  string(e.FirstTy),
		"SecondType": string(e.SecondTy),
	}
}

// First projects the first component of a pair.
type First struct {
	aexpr
	Pair     Expression
	FirstTy  TypeAnnotation
	SecondTy TypeAnnotation
}

func decodeFirst(o serialize.Object) (Expression, error) {
	pair, err := exprField(o, "Pair")
	if err != nil {
		return nil, err
	}
	firstTy, secondTy := typeArgPair(o)
	return &First{Pair: pair, FirstTy: firstTy, SecondTy: secondTy}, nil
}

func (e *First) Encode() serialize.Object {
	return serialize.Object{
		TypeField:    Annotate("First", e.FirstTy, e.SecondTy),
		"Pair":       e.Pair.Encode(),
		"FirstType":  string(e.FirstTy),
		"SecondType": string(e.SecondTy),
	}
}

// Second projects the second component of a pair.
type Second struct {
	aexpr
	Pair     Expression
	FirstTy  TypeAnnotation
	SecondTy TypeAnnotation
}

func decodeSecond(o serialize.Object) (Expression, error) {
	pair, err := exprField(o, "Pair")
	if err != nil {
		return nil, err
	}
	firstTy, secondTy := typeArgPair(o)
	return &Second{Pair: pair, FirstTy: firstTy, SecondTy: secondTy}, nil
}

func (e *Second) Encode() serialize.Object {
	return serialize.Object{
		TypeField:    Annotate("Second", e.FirstTy, e.SecondTy),
		"Pair":       e.Pair.Encode(),
		"FirstType":  string(e.FirstTy),
		"SecondType": string(e.SecondTy),
	}
}

// IpAddress is an IP address literal.
type IpAddress struct {
	aexpr
	IP netip.Addr
}

func decodeIpAddress(o serialize.Object) (Expression, error) {
	ip, err := serialize.Addr(o, "Ip")
	if err != nil {
		return nil, err
	}
	return &IpAddress{IP: ip}, nil
}

func (e *IpAddress) Encode() serialize.Object {
	return serialize.Object{TypeField: "IpAddress", "Ip": e.IP.String()}
}

// IpPrefix is an IP prefix literal.
type IpPrefix struct {
	aexpr
	Prefix netip.Prefix
}

func decodeIpPrefix(o serialize.Object) (Expression, error) {
	p, err := serialize.Prefix(o, "Prefix")
	if err != nil {
		return nil, err
	}
	return &IpPrefix{Prefix: p}, nil
}

func (e *IpPrefix) Encode() serialize.Object {
	return serialize.Object{TypeField: "IpPrefix", "Prefix": e.Prefix.String()}
}

// PrefixContains tests whether a prefix contains an address.
type PrefixContains struct {
	aexpr
	Addr   Expression
	Prefix Expression
}

func decodePrefixContains(o serialize.Object) (Expression, error) {
	addr, err := exprField(o, "Addr")
	if err != nil {
		return nil, err
	}
	prefix, err := exprField(o, "Prefix")
	if err != nil {
		return nil, err
	}
	return &PrefixContains{Addr: addr, Prefix: prefix}, nil
}

func (e *PrefixContains) Encode() serialize.Object {
	return serialize.Object{
		TypeField: "PrefixContains",
		"Addr":    e.Addr.Encode(),
		"Prefix":  e.Prefix.Encode(),
	}
}

// PrefixSet is a literal set of prefixes.
type PrefixSet struct {
	aexpr
	PrefixSpace []netip.Prefix
}

func decodePrefixSet(o serialize.Object) (Expression, error) {
	ps, err := serialize.List(o, "PrefixSpace", serialize.AsPrefix)
	if err != nil {
		return nil, err
	}
	return &PrefixSet{PrefixSpace: ps}, nil
}

func (e *PrefixSet) Encode() serialize.Object {
	return serialize.Object{
		TypeField:     "PrefixSet",
		"PrefixSpace": serialize.EncodeList(e.PrefixSpace, func(p netip.Prefix) any { return p.String() }),
	}
}

// PrefixMatches tests a prefix against a wildcard and an allowed prefix
// length range, as one line of a route filter list does.
type PrefixMatches struct {
	aexpr
	Wildcard  netip.Prefix
	MinLength int
	MaxLength int
}

func decodePrefixMatches(o serialize.Object) (Expression, error) {
	wildcard, err := serialize.Prefix(o, "Wildcard")
	if err != nil {
		return nil, err
	}
	minLen, err := serialize.Int(o, "MinLength")
	if err != nil {
		return nil, err
	}
	maxLen, err := serialize.Int(o, "MaxLength")
	if err != nil {
		return nil, err
	}
	return &PrefixMatches{Wildcard: wildcard, MinLength: minLen, MaxLength: maxLen}, nil
}

func (e *PrefixMatches) Encode() serialize.Object {
	return serialize.Object{
		TypeField:   "PrefixMatches",
		"Wildcard":  e.Wildcard.String(),
		"MinLength": e.MinLength,
		"MaxLength": e.MaxLength,
	}
}

// MatchSet is a compiled route filter list: a permit condition and a deny
// condition, each a first-match-wins disjunction over the list's lines.
type MatchSet struct {
	aexpr
	Permit Expression
	Deny   Expression
}

func decodeMatchSet(o serialize.Object) (Expression, error) {
	permit, err := exprField(o, "Permit")
	if err != nil {
		return nil, err
	}
	deny, err := exprField(o, "Deny")
	if err != nil {
		return nil, err
	}
	return &MatchSet{Permit: permit, Deny: deny}, nil
}

func (e *MatchSet) Encode() serialize.Object {
	return serialize.Object{
		TypeField: "MatchSet",
		"Permit":  e.Permit.Encode(),
		"Deny":    e.Deny.Encode(),
	}
}
