package bast

import "github.com/NetworkVerification/angler-sub000/pkg/serialize"

// StaticBoolType is the sub-tag of a StaticBooleanExpr. The set is open on
// the wire; the converter rejects anything outside the recognized values.
type StaticBoolType string

const (
	StaticTrue        StaticBoolType = "True"
	StaticFalse       StaticBoolType = "False"
	StaticCallContext StaticBoolType = "CallExprContext"
)

var booleanExprs = serialize.NewRegistry[BooleanExpr]("boolean expression", ClassKey)

func init() {
	booleanExprs.Register("CallExpr", decodeCallExpr)
	booleanExprs.Register("StaticBooleanExpr", decodeStaticBooleanExpr)
	booleanExprs.Register("Conjunction", decodeConjunction)
	booleanExprs.Register("ConjunctionChain", decodeConjunctionChain)
	booleanExprs.Register("Disjunction", decodeDisjunction)
	booleanExprs.Register("FirstMatchChain", decodeFirstMatchChain)
	booleanExprs.Register("Not", decodeNot)
	booleanExprs.Register("MatchProtocol", decodeMatchProtocol)
	booleanExprs.Register("MatchIpv4", decodeMatchIpv4)
	booleanExprs.Register("MatchIpv6", decodeMatchIpv6)
	booleanExprs.Register("MatchPrefixSet", decodeMatchPrefixSet)
	booleanExprs.Register("MatchPrefix6Set", decodeMatchPrefix6Set)
	booleanExprs.Register("MatchCommunities", decodeMatchCommunities)
	booleanExprs.Register("MatchTag", decodeMatchTag)
	booleanExprs.Register("LegacyMatchAsPath", decodeLegacyMatchAsPath)
}

// DecodeBooleanExpr decodes a wire value into a boolean expression.
func DecodeBooleanExpr(v any) (BooleanExpr, error) {
	return booleanExprs.Decode(v)
}

// CallExpr invokes another named routing policy.
type CallExpr struct {
	booleanExpr
	Policy string
}

func decodeCallExpr(o serialize.Object) (BooleanExpr, error) {
	policy, err := serialize.String(o, "calledPolicyName")
	if err != nil {
		return nil, err
	}
	return &CallExpr{Policy: policy}, nil
}

func (e *CallExpr) Encode() serialize.Object {
	return serialize.Object{ClassKey: "CallExpr", "calledPolicyName": e.Policy}
}

// StaticBooleanExpr is a constant boolean condition.
type StaticBooleanExpr struct {
	booleanExpr
	Type StaticBoolType
}

func decodeStaticBooleanExpr(o serialize.Object) (BooleanExpr, error) {
	ty, err := serialize.String(o, "type")
	if err != nil {
		return nil, err
	}
	return &StaticBooleanExpr{Type: StaticBoolType(ty)}, nil
}

func (e *StaticBooleanExpr) Encode() serialize.Object {
	return serialize.Object{ClassKey: "StaticBooleanExpr", "type": string(e.Type)}
}

// Conjunction is the n-ary AND of its conjuncts.
type Conjunction struct {
	booleanExpr
	Conjuncts []BooleanExpr
}

func decodeConjunction(o serialize.Object) (BooleanExpr, error) {
	cs, err := serialize.List(o, "conjuncts", DecodeBooleanExpr)
	if err != nil {
		return nil, err
	}
	return &Conjunction{Conjuncts: cs}, nil
}

func (e *Conjunction) Encode() serialize.Object {
	return serialize.Object{
		ClassKey:    "Conjunction",
		"conjuncts": serialize.EncodeList(e.Conjuncts, encodeExpr[BooleanExpr]),
	}
}

// ConjunctionChain chains policy subroutines, each of which must accept.
type ConjunctionChain struct {
	booleanExpr
	Subroutines []BooleanExpr
}

func decodeConjunctionChain(o serialize.Object) (BooleanExpr, error) {
	subs, err := serialize.List(o, "subroutines", DecodeBooleanExpr)
	if err != nil {
		return nil, err
	}
	return &ConjunctionChain{Subroutines: subs}, nil
}

func (e *ConjunctionChain) Encode() serialize.Object {
	return serialize.Object{
		ClassKey:      "ConjunctionChain",
		"subroutines": serialize.EncodeList(e.Subroutines, encodeExpr[BooleanExpr]),
	}
}

// Disjunction is the n-ary OR of its disjuncts.
type Disjunction struct {
	booleanExpr
	Disjuncts []BooleanExpr
}

func decodeDisjunction(o serialize.Object) (BooleanExpr, error) {
	ds, err := serialize.List(o, "disjuncts", DecodeBooleanExpr)
	if err != nil {
		return nil, err
	}
	return &Disjunction{Disjuncts: ds}, nil
}

func (e *Disjunction) Encode() serialize.Object {
	return serialize.Object{
		ClassKey:    "Disjunction",
		"disjuncts": serialize.EncodeList(e.Disjuncts, encodeExpr[BooleanExpr]),
	}
}

// FirstMatchChain chains policy subroutines, applying the first that
// produces a definite result.
type FirstMatchChain struct {
	booleanExpr
	Subroutines []BooleanExpr
}

func decodeFirstMatchChain(o serialize.Object) (BooleanExpr, error) {
	subs, err := serialize.List(o, "subroutines", DecodeBooleanExpr)
	if err != nil {
		return nil, err
	}
	return &FirstMatchChain{Subroutines: subs}, nil
}

func (e *FirstMatchChain) Encode() serialize.Object {
	return serialize.Object{
		ClassKey:      "FirstMatchChain",
		"subroutines": serialize.EncodeList(e.Subroutines, encodeExpr[BooleanExpr]),
	}
}

// Not negates its operand.
type Not struct {
	booleanExpr
	Expr BooleanExpr
}

func decodeNot(o serialize.Object) (BooleanExpr, error) {
	v, err := serialize.Raw(o, "expr")
	if err != nil {
		return nil, err
	}
	inner, err := DecodeBooleanExpr(v)
	if err != nil {
		return nil, err
	}
	return &Not{Expr: inner}, nil
}

func (e *Not) Encode() serialize.Object {
	return serialize.Object{ClassKey: "Not", "expr": e.Expr.Encode()}
}

// MatchProtocol tests the protocol that produced the route.
type MatchProtocol struct {
	booleanExpr
	Protocols []Protocol
}

func decodeMatchProtocol(o serialize.Object) (BooleanExpr, error) {
	ps, err := serialize.List(o, "protocols", decodeProtocol)
	if err != nil {
		return nil, err
	}
	return &MatchProtocol{Protocols: ps}, nil
}

func (e *MatchProtocol) Encode() serialize.Object {
	return serialize.Object{
		ClassKey:    "MatchProtocol",
		"protocols": serialize.EncodeList(e.Protocols, func(p Protocol) any { return string(p) }),
	}
}

// HasBGP reports whether the matched protocols include eBGP.
func (e *MatchProtocol) HasBGP() bool {
	for _, p := range e.Protocols {
		if p == ProtocolBGP {
			return true
		}
	}
	return false
}

// MatchIpv4 tests whether the route is IPv4.
type MatchIpv4 struct{ booleanExpr }

func decodeMatchIpv4(serialize.Object) (BooleanExpr, error) { return &MatchIpv4{}, nil }

func (e *MatchIpv4) Encode() serialize.Object {
	return serialize.Object{ClassKey: "MatchIpv4"}
}

// MatchIpv6 tests whether the route is IPv6.
type MatchIpv6 struct{ booleanExpr }

func decodeMatchIpv6(serialize.Object) (BooleanExpr, error) { return &MatchIpv6{}, nil }

func (e *MatchIpv6) Encode() serialize.Object {
	return serialize.Object{ClassKey: "MatchIpv6"}
}

// MatchPrefixSet tests a prefix expression against a prefix set.
type MatchPrefixSet struct {
	booleanExpr
	Prefix    PrefixExpr
	PrefixSet PrefixSetExpr
}

func decodeMatchPrefixSet(o serialize.Object) (BooleanExpr, error) {
	pv, err := serialize.Raw(o, "prefix")
	if err != nil {
		return nil, err
	}
	prefix, err := DecodePrefixExpr(pv)
	if err != nil {
		return nil, err
	}
	sv, err := serialize.Raw(o, "prefixSet")
	if err != nil {
		return nil, err
	}
	set, err := DecodePrefixSetExpr(sv)
	if err != nil {
		return nil, err
	}
	return &MatchPrefixSet{Prefix: prefix, PrefixSet: set}, nil
}

func (e *MatchPrefixSet) Encode() serialize.Object {
	return serialize.Object{
		ClassKey:    "MatchPrefixSet",
		"prefix":    e.Prefix.Encode(),
		"prefixSet": e.PrefixSet.Encode(),
	}
}

// MatchPrefix6Set is the IPv6 counterpart of MatchPrefixSet. The operands
// are retained uninterpreted; conversion treats the whole test as false
// under the IPv4-only assumption.
type MatchPrefix6Set struct {
	booleanExpr
	Prefix    any
	PrefixSet any
}

func decodeMatchPrefix6Set(o serialize.Object) (BooleanExpr, error) {
	return &MatchPrefix6Set{
		Prefix:    serialize.RawOr(o, "prefix", nil),
		PrefixSet: serialize.RawOr(o, "prefixSet", nil),
	}, nil
}

func (e *MatchPrefix6Set) Encode() serialize.Object {
	o := serialize.Object{ClassKey: "MatchPrefix6Set"}
	if e.Prefix != nil {
		o["prefix"] = e.Prefix
	}
	if e.PrefixSet != nil {
		o["prefixSet"] = e.PrefixSet
	}
	return o
}

// MatchCommunities tests a community set against a set-match condition.
type MatchCommunities struct {
	booleanExpr
	CommunitySet      CommunitySetExpr
	CommunitySetMatch CommunitySetMatchExpr
}

func decodeMatchCommunities(o serialize.Object) (BooleanExpr, error) {
	sv, err := serialize.Raw(o, "communitySetExpr")
	if err != nil {
		return nil, err
	}
	set, err := DecodeCommunitySetExpr(sv)
	if err != nil {
		return nil, err
	}
	mv, err := serialize.Raw(o, "communitySetMatchExpr")
	if err != nil {
		return nil, err
	}
	match, err := DecodeCommunitySetMatchExpr(mv)
	if err != nil {
		return nil, err
	}
	return &MatchCommunities{CommunitySet: set, CommunitySetMatch: match}, nil
}

func (e *MatchCommunities) Encode() serialize.Object {
	return serialize.Object{
		ClassKey:                "MatchCommunities",
		"communitySetExpr":      e.CommunitySet.Encode(),
		"communitySetMatchExpr": e.CommunitySetMatch.Encode(),
	}
}

// MatchTag compares the route's tag against an integer expression.
type MatchTag struct {
	booleanExpr
	Cmp Comparator
	Tag IntExpr
}

func decodeMatchTag(o serialize.Object) (BooleanExpr, error) {
	cv, err := serialize.Raw(o, "cmp")
	if err != nil {
		return nil, err
	}
	cmp, err := decodeComparator(cv)
	if err != nil {
		return nil, err
	}
	tv, err := serialize.Raw(o, "tag")
	if err != nil {
		return nil, err
	}
	tag, err := DecodeIntExpr(tv)
	if err != nil {
		return nil, err
	}
	return &MatchTag{Cmp: cmp, Tag: tag}, nil
}

func (e *MatchTag) Encode() serialize.Object {
	return serialize.Object{ClassKey: "MatchTag", "cmp": string(e.Cmp), "tag": e.Tag.Encode()}
}

// LegacyMatchAsPath matches the route's AS path against a named or
// inline AS-path access list. The operand is retained uninterpreted;
// conversion degrades the test to an explicit nondeterministic choice.
type LegacyMatchAsPath struct {
	booleanExpr
	Expr any
}

func decodeLegacyMatchAsPath(o serialize.Object) (BooleanExpr, error) {
	return &LegacyMatchAsPath{Expr: serialize.RawOr(o, "expr", nil)}, nil
}

func (e *LegacyMatchAsPath) Encode() serialize.Object {
	o := serialize.Object{ClassKey: "LegacyMatchAsPath"}
	if e.Expr != nil {
		o["expr"] = e.Expr
	}
	return o
}

// encodeExpr adapts a node's Encode method to the shape EncodeList wants.
func encodeExpr[T Expression](e T) any { return e.Encode() }
