package bast

import "github.com/NetworkVerification/angler-sub000/pkg/serialize"

// A community is a 32-bit field split into a 16-bit originating AS number
// and a 16-bit value assigned by that AS. The engine keeps communities as
// strings ("as:value" or a well-known name) throughout; three expression
// families are distinguished: set-valued expressions, predicates over a
// single community, and predicates over a whole set.

var commSetExprs = serialize.NewRegistry[CommunitySetExpr]("community set expression", ClassKey)
var commMatchExprs = serialize.NewRegistry[CommunityMatchExpr]("community match expression", ClassKey)
var commSetMatchExprs = serialize.NewRegistry[CommunitySetMatchExpr]("community set match expression", ClassKey)

func init() {
	commSetExprs.Register("InputCommunities", decodeInputCommunities)
	commSetExprs.Register("LiteralCommunitySet", decodeLiteralCommunitySet)
	commSetExprs.Register("CommunitySetUnion", decodeCommunitySetUnion)
	commSetExprs.Register("CommunitySetDifference", decodeCommunitySetDifference)
	commSetExprs.Register("CommunitySetReference", decodeCommunitySetReference)

	commMatchExprs.Register("CommunityMatchExprReference", decodeCommunityMatchExprReference)
	commMatchExprs.Register("CommunityIs", decodeCommunityIs)
	commMatchExprs.Register("CommunityMatchRegex", decodeCommunityMatchRegex)
	commMatchExprs.Register("AllStandardCommunities", decodeAllStandardCommunities)

	commSetMatchExprs.Register("CommunitySetMatchExprReference", decodeCommunitySetMatchExprReference)
	commSetMatchExprs.Register("CommunitySetMatchAll", decodeCommunitySetMatchAll)
	commSetMatchExprs.Register("HasCommunity", decodeHasCommunity)
}

// DecodeCommunitySetExpr decodes a wire value into a community set expression.
func DecodeCommunitySetExpr(v any) (CommunitySetExpr, error) {
	return commSetExprs.Decode(v)
}

// DecodeCommunityMatchExpr decodes a wire value into a community match expression.
func DecodeCommunityMatchExpr(v any) (CommunityMatchExpr, error) {
	return commMatchExprs.Decode(v)
}

// DecodeCommunitySetMatchExpr decodes a wire value into a community set
// match expression.
func DecodeCommunitySetMatchExpr(v any) (CommunitySetMatchExpr, error) {
	return commSetMatchExprs.Decode(v)
}

// InputCommunities refers to the communities of the route under evaluation.
type InputCommunities struct{ commSetExpr }

func decodeInputCommunities(serialize.Object) (CommunitySetExpr, error) {
	return &InputCommunities{}, nil
}

func (e *InputCommunities) Encode() serialize.Object {
	return serialize.Object{ClassKey: "InputCommunities"}
}

// LiteralCommunitySet is an explicit set of communities.
type LiteralCommunitySet struct {
	commSetExpr
	Communities []string
}

func decodeLiteralCommunitySet(o serialize.Object) (CommunitySetExpr, error) {
	cs, err := serialize.Strings(o, "communitySet")
	if err != nil {
		return nil, err
	}
	return &LiteralCommunitySet{Communities: cs}, nil
}

func (e *LiteralCommunitySet) Encode() serialize.Object {
	return serialize.Object{
		ClassKey:       "LiteralCommunitySet",
		"communitySet": serialize.EncodeList(e.Communities, func(s string) any { return s }),
	}
}

// CommunitySetUnion is the union of its operand sets.
type CommunitySetUnion struct {
	commSetExpr
	Exprs []CommunitySetExpr
}

func decodeCommunitySetUnion(o serialize.Object) (CommunitySetExpr, error) {
	es, err := serialize.List(o, "exprs", DecodeCommunitySetExpr)
	if err != nil {
		return nil, err
	}
	return &CommunitySetUnion{Exprs: es}, nil
}

func (e *CommunitySetUnion) Encode() serialize.Object {
	return serialize.Object{
		ClassKey: "CommunitySetUnion",
		"exprs":  serialize.EncodeList(e.Exprs, encodeExpr[CommunitySetExpr]),
	}
}

// CommunitySetDifference removes from Initial every community matched by
// Remove.
type CommunitySetDifference struct {
	commSetExpr
	Initial CommunitySetExpr
	Remove  CommunityMatchExpr
}

func decodeCommunitySetDifference(o serialize.Object) (CommunitySetExpr, error) {
	iv, err := serialize.Raw(o, "initial")
	if err != nil {
		return nil, err
	}
	initial, err := DecodeCommunitySetExpr(iv)
	if err != nil {
		return nil, err
	}
	rv, err := serialize.Raw(o, "removalCriterion")
	if err != nil {
		return nil, err
	}
	remove, err := DecodeCommunityMatchExpr(rv)
	if err != nil {
		return nil, err
	}
	return &CommunitySetDifference{Initial: initial, Remove: remove}, nil
}

func (e *CommunitySetDifference) Encode() serialize.Object {
	return serialize.Object{
		ClassKey:           "CommunitySetDifference",
		"initial":          e.Initial.Encode(),
		"removalCriterion": e.Remove.Encode(),
	}
}

// CommunitySetReference refers to a declared community set by name.
type CommunitySetReference struct {
	commSetExpr
	Name string
}

func decodeCommunitySetReference(o serialize.Object) (CommunitySetExpr, error) {
	name, err := serialize.String(o, "name")
	if err != nil {
		return nil, err
	}
	return &CommunitySetReference{Name: name}, nil
}

func (e *CommunitySetReference) Encode() serialize.Object {
	return serialize.Object{ClassKey: "CommunitySetReference", "name": e.Name}
}

// CommunityMatchExprReference refers to a declared community match
// expression by name.
type CommunityMatchExprReference struct {
	commMatchExpr
	Name string
}

func decodeCommunityMatchExprReference(o serialize.Object) (CommunityMatchExpr, error) {
	name, err := serialize.String(o, "name")
	if err != nil {
		return nil, err
	}
	return &CommunityMatchExprReference{Name: name}, nil
}

func (e *CommunityMatchExprReference) Encode() serialize.Object {
	return serialize.Object{ClassKey: "CommunityMatchExprReference", "name": e.Name}
}

// CommunityIs matches exactly one literal community.
type CommunityIs struct {
	commMatchExpr
	Community string
}

func decodeCommunityIs(o serialize.Object) (CommunityMatchExpr, error) {
	c, err := serialize.String(o, "community")
	if err != nil {
		return nil, err
	}
	return &CommunityIs{Community: c}, nil
}

func (e *CommunityIs) Encode() serialize.Object {
	return serialize.Object{ClassKey: "CommunityIs", "community": e.Community}
}

// CommunityMatchRegex matches communities whose rendering satisfies a
// regular expression. The rendering object is retained uninterpreted.
type CommunityMatchRegex struct {
	commMatchExpr
	Rendering serialize.Object
	Regex     string
}

func decodeCommunityMatchRegex(o serialize.Object) (CommunityMatchExpr, error) {
	rendering, err := serialize.Obj(o, "communityRendering")
	if err != nil {
		return nil, err
	}
	regex, err := serialize.String(o, "regex")
	if err != nil {
		return nil, err
	}
	return &CommunityMatchRegex{Rendering: rendering, Regex: regex}, nil
}

func (e *CommunityMatchRegex) Encode() serialize.Object {
	return serialize.Object{
		ClassKey:             "CommunityMatchRegex",
		"communityRendering": e.Rendering,
		"regex":              e.Regex,
	}
}

// AllStandardCommunities matches every standard (non-extended) community.
type AllStandardCommunities struct{ commMatchExpr }

func decodeAllStandardCommunities(serialize.Object) (CommunityMatchExpr, error) {
	return &AllStandardCommunities{}, nil
}

func (e *AllStandardCommunities) Encode() serialize.Object {
	return serialize.Object{ClassKey: "AllStandardCommunities"}
}

// CommunitySetMatchExprReference refers to a declared set-match expression
// by name.
type CommunitySetMatchExprReference struct {
	commSetMatchExpr
	Name string
}

func decodeCommunitySetMatchExprReference(o serialize.Object) (CommunitySetMatchExpr, error) {
	name, err := serialize.String(o, "name")
	if err != nil {
		return nil, err
	}
	return &CommunitySetMatchExprReference{Name: name}, nil
}

func (e *CommunitySetMatchExprReference) Encode() serialize.Object {
	return serialize.Object{ClassKey: "CommunitySetMatchExprReference", "name": e.Name}
}

// CommunitySetMatchAll is the conjunction of its set-match operands.
type CommunitySetMatchAll struct {
	commSetMatchExpr
	Exprs []CommunitySetMatchExpr
}

func decodeCommunitySetMatchAll(o serialize.Object) (CommunitySetMatchExpr, error) {
	es, err := serialize.List(o, "exprs", DecodeCommunitySetMatchExpr)
	if err != nil {
		return nil, err
	}
	return &CommunitySetMatchAll{Exprs: es}, nil
}

func (e *CommunitySetMatchAll) Encode() serialize.Object {
	return serialize.Object{
		ClassKey: "CommunitySetMatchAll",
		"exprs":  serialize.EncodeList(e.Exprs, encodeExpr[CommunitySetMatchExpr]),
	}
}

// HasCommunity matches a set iff some member satisfies the inner predicate.
type HasCommunity struct {
	commSetMatchExpr
	Expr CommunityMatchExpr
}

func decodeHasCommunity(o serialize.Object) (CommunitySetMatchExpr, error) {
	v, err := serialize.Raw(o, "expr")
	if err != nil {
		return nil, err
	}
	inner, err := DecodeCommunityMatchExpr(v)
	if err != nil {
		return nil, err
	}
	return &HasCommunity{Expr: inner}, nil
}

func (e *HasCommunity) Encode() serialize.Object {
	return serialize.Object{ClassKey: "HasCommunity", "expr": e.Expr.Encode()}
}
