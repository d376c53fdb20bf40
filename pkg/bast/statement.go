package bast

import "github.com/NetworkVerification/angler-sub000/pkg/serialize"

// Statement is implemented by every source statement variant.
type Statement interface {
	// Encode returns the wire object for this node, including its
	// "class" discriminator.
	Encode() serialize.Object
	bastStmt()
}

type bastStatement struct{}

func (bastStatement) bastStmt() {}

// StaticStatementType is the sub-tag of a StaticStatement.
type StaticStatementType string

const (
	StaticReturnTrue         StaticStatementType = "ReturnTrue"
	StaticReturnFalse        StaticStatementType = "ReturnFalse"
	StaticReturnLocalDefault StaticStatementType = "ReturnLocalDefaultAction"
	StaticSetAccept          StaticStatementType = "SetDefaultActionAccept"
	StaticSetReject          StaticStatementType = "SetDefaultActionReject"
	StaticSetLocalAccept     StaticStatementType = "SetLocalDefaultActionAccept"
	StaticSetLocalReject     StaticStatementType = "SetLocalDefaultActionReject"
	StaticExitAccept         StaticStatementType = "ExitAccept"
	StaticExitReject         StaticStatementType = "ExitReject"
	StaticReturn             StaticStatementType = "Return"
	StaticFallThrough        StaticStatementType = "FallThrough"
)

var statements = serialize.NewRegistry[Statement]("statement", ClassKey)

func init() {
	statements.Register("If", decodeIfStatement)
	statements.Register("PrependAsPath", decodePrependAsPath)
	statements.Register("SetCommunities", decodeSetCommunities)
	statements.Register("SetLocalPreference", decodeSetLocalPreference)
	statements.Register("SetMetric", decodeSetMetric)
	statements.Register("SetNextHop", decodeSetNextHop)
	statements.Register("SetDefaultPolicy", decodeSetDefaultPolicy)
	statements.Register("SetOrigin", decodeSetOrigin)
	statements.Register("SetWeight", decodeSetWeight)
	statements.Register("StaticStatement", decodeStaticStatement)
	statements.Register("TraceableStatement", decodeTraceableStatement)
}

// DecodeStatement decodes a wire value into a statement.
func DecodeStatement(v any) (Statement, error) {
	return statements.Decode(v)
}

// DecodeStatements decodes a sequence field of statements, yielding an
// empty slice when the field is absent.
func DecodeStatements(o serialize.Object, key string) ([]Statement, error) {
	return serialize.ListOr(o, key, DecodeStatement)
}

// StaticStatement is a fixed-effect statement identified by its sub-tag.
type StaticStatement struct {
	bastStatement
	Type StaticStatementType
}

func decodeStaticStatement(o serialize.Object) (Statement, error) {
	ty, err := serialize.String(o, "type")
	if err != nil {
		return nil, err
	}
	return &StaticStatement{Type: StaticStatementType(ty)}, nil
}

func (s *StaticStatement) Encode() serialize.Object {
	return serialize.Object{ClassKey: "StaticStatement", "type": string(s.Type)}
}

// TraceableStatement wraps inner statements with a trace annotation. The
// trace element is retained uninterpreted.
type TraceableStatement struct {
	bastStatement
	Inner        []Statement
	TraceElement serialize.Object
}

func decodeTraceableStatement(o serialize.Object) (Statement, error) {
	inner, err := DecodeStatements(o, "innerStatements")
	if err != nil {
		return nil, err
	}
	var trace serialize.Object
	if v := serialize.RawOr(o, "traceElement", nil); v != nil {
		trace, err = serialize.AsObject(v)
		if err != nil {
			return nil, err
		}
	}
	return &TraceableStatement{Inner: inner, TraceElement: trace}, nil
}

func (s *TraceableStatement) Encode() serialize.Object {
	o := serialize.Object{
		ClassKey:          "TraceableStatement",
		"innerStatements": EncodeStatements(s.Inner),
	}
	if s.TraceElement != nil {
		o["traceElement"] = s.TraceElement
	}
	return o
}

// IfStatement branches on a boolean guard. Either branch can be empty.
type IfStatement struct {
	bastStatement
	Comment    string
	Guard      BooleanExpr
	TrueStmts  []Statement
	FalseStmts []Statement
}

func decodeIfStatement(o serialize.Object) (Statement, error) {
	gv, err := serialize.Raw(o, "guard")
	if err != nil {
		return nil, err
	}
	guard, err := DecodeBooleanExpr(gv)
	if err != nil {
		return nil, err
	}
	trueStmts, err := DecodeStatements(o, "trueStatements")
	if err != nil {
		return nil, err
	}
	falseStmts, err := DecodeStatements(o, "falseStatements")
	if err != nil {
		return nil, err
	}
	comment, err := serialize.StringOr(o, "comment", "")
	if err != nil {
		return nil, err
	}
	return &IfStatement{
		Comment:    comment,
		Guard:      guard,
		TrueStmts:  trueStmts,
		FalseStmts: falseStmts,
	}, nil
}

func (s *IfStatement) Encode() serialize.Object {
	o := serialize.Object{
		ClassKey:          "If",
		"guard":           s.Guard.Encode(),
		"trueStatements":  EncodeStatements(s.TrueStmts),
		"falseStatements": EncodeStatements(s.FalseStmts),
	}
	if s.Comment != "" {
		o["comment"] = s.Comment
	}
	return o
}

// SetLocalPreference sets the route's local preference.
type SetLocalPreference struct {
	bastStatement
	LP LongExpr
}

func decodeSetLocalPreference(o serialize.Object) (Statement, error) {
	v, err := serialize.Raw(o, "localPreference")
	if err != nil {
		return nil, err
	}
	lp, err := DecodeLongExpr(v)
	if err != nil {
		return nil, err
	}
	return &SetLocalPreference{LP: lp}, nil
}

func (s *SetLocalPreference) Encode() serialize.Object {
	return serialize.Object{ClassKey: "SetLocalPreference", "localPreference": s.LP.Encode()}
}

// SetCommunities replaces the route's communities.
type SetCommunities struct {
	bastStatement
	CommunitySet CommunitySetExpr
}

func decodeSetCommunities(o serialize.Object) (Statement, error) {
	v, err := serialize.Raw(o, "communitySetExpr")
	if err != nil {
		return nil, err
	}
	cs, err := DecodeCommunitySetExpr(v)
	if err != nil {
		return nil, err
	}
	return &SetCommunities{CommunitySet: cs}, nil
}

func (s *SetCommunities) Encode() serialize.Object {
	return serialize.Object{ClassKey: "SetCommunities", "communitySetExpr": s.CommunitySet.Encode()}
}

// PrependAsPath prepends AS numbers to the route's AS path.
type PrependAsPath struct {
	bastStatement
	Expr AsPathListExpr
}

func decodePrependAsPath(o serialize.Object) (Statement, error) {
	v, err := serialize.Raw(o, "expr")
	if err != nil {
		return nil, err
	}
	e, err := DecodeAsPathListExpr(v)
	if err != nil {
		return nil, err
	}
	return &PrependAsPath{Expr: e}, nil
}

func (s *PrependAsPath) Encode() serialize.Object {
	return serialize.Object{ClassKey: "PrependAsPath", "expr": s.Expr.Encode()}
}

// SetMetric sets the route's metric (MED).
type SetMetric struct {
	bastStatement
	Metric LongExpr
}

func decodeSetMetric(o serialize.Object) (Statement, error) {
	v, err := serialize.Raw(o, "metric")
	if err != nil {
		return nil, err
	}
	m, err := DecodeLongExpr(v)
	if err != nil {
		return nil, err
	}
	return &SetMetric{Metric: m}, nil
}

func (s *SetMetric) Encode() serialize.Object {
	return serialize.Object{ClassKey: "SetMetric", "metric": s.Metric.Encode()}
}

// SetNextHop sets the route's next hop.
type SetNextHop struct {
	bastStatement
	Expr NextHopExpr
}

func decodeSetNextHop(o serialize.Object) (Statement, error) {
	v, err := serialize.Raw(o, "expr")
	if err != nil {
		return nil, err
	}
	e, err := DecodeNextHopExpr(v)
	if err != nil {
		return nil, err
	}
	return &SetNextHop{Expr: e}, nil
}

func (s *SetNextHop) Encode() serialize.Object {
	return serialize.Object{ClassKey: "SetNextHop", "expr": s.Expr.Encode()}
}

// SetOrigin sets the route's BGP origin type.
type SetOrigin struct {
	bastStatement
	Origin OriginExpr
}

func decodeSetOrigin(o serialize.Object) (Statement, error) {
	v, err := serialize.Raw(o, "originType")
	if err != nil {
		return nil, err
	}
	e, err := DecodeOriginExpr(v)
	if err != nil {
		return nil, err
	}
	return &SetOrigin{Origin: e}, nil
}

func (s *SetOrigin) Encode() serialize.Object {
	return serialize.Object{ClassKey: "SetOrigin", "originType": s.Origin.Encode()}
}

// SetWeight sets the route's administrative weight.
type SetWeight struct {
	bastStatement
	Weight IntExpr
}

func decodeSetWeight(o serialize.Object) (Statement, error) {
	v, err := serialize.Raw(o, "weight")
	if err != nil {
		return nil, err
	}
	e, err := DecodeIntExpr(v)
	if err != nil {
		return nil, err
	}
	return &SetWeight{Weight: e}, nil
}

func (s *SetWeight) Encode() serialize.Object {
	return serialize.Object{ClassKey: "SetWeight", "weight": s.Weight.Encode()}
}

// SetDefaultPolicy names the policy to fall back to when evaluation falls
// through.
type SetDefaultPolicy struct {
	bastStatement
	Policy string
}

func decodeSetDefaultPolicy(o serialize.Object) (Statement, error) {
	p, err := serialize.String(o, "defaultPolicy")
	if err != nil {
		return nil, err
	}
	return &SetDefaultPolicy{Policy: p}, nil
}

func (s *SetDefaultPolicy) Encode() serialize.Object {
	return serialize.Object{ClassKey: "SetDefaultPolicy", "defaultPolicy": s.Policy}
}

// EncodeStatements encodes a statement sequence.
func EncodeStatements(ss []Statement) []any {
	return serialize.EncodeList(ss, func(s Statement) any { return s.Encode() })
}
