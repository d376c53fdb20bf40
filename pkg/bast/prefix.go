package bast

import (
	"net/netip"

	"github.com/NetworkVerification/angler-sub000/pkg/serialize"
)

var prefixExprs = serialize.NewRegistry[PrefixExpr]("prefix expression", ClassKey)
var prefixSetExprs = serialize.NewRegistry[PrefixSetExpr]("prefix set expression", ClassKey)

func init() {
	prefixExprs.Register("DestinationNetwork", decodeDestinationNetwork)
	prefixExprs.Register("DestinationNetwork6", decodeDestinationNetwork6)

	prefixSetExprs.Register("NamedPrefixSet", decodeNamedPrefixSet)
	prefixSetExprs.Register("NamedPrefix6Set", decodeNamedPrefix6Set)
	prefixSetExprs.Register("ExplicitPrefixSet", decodeExplicitPrefixSet)
}

// DecodePrefixExpr decodes a wire value into a prefix expression.
func DecodePrefixExpr(v any) (PrefixExpr, error) {
	return prefixExprs.Decode(v)
}

// DecodePrefixSetExpr decodes a wire value into a prefix set expression.
func DecodePrefixSetExpr(v any) (PrefixSetExpr, error) {
	return prefixSetExprs.Decode(v)
}

// DestinationNetwork refers to the destination prefix of the route under
// evaluation.
type DestinationNetwork struct{ prefixExpr }

func decodeDestinationNetwork(serialize.Object) (PrefixExpr, error) {
	return &DestinationNetwork{}, nil
}

func (e *DestinationNetwork) Encode() serialize.Object {
	return serialize.Object{ClassKey: "DestinationNetwork"}
}

// DestinationNetwork6 is the IPv6 destination of the route under
// evaluation.
type DestinationNetwork6 struct{ prefixExpr }

func decodeDestinationNetwork6(serialize.Object) (PrefixExpr, error) {
	return &DestinationNetwork6{}, nil
}

func (e *DestinationNetwork6) Encode() serialize.Object {
	return serialize.Object{ClassKey: "DestinationNetwork6"}
}

// NamedPrefixSet refers to a declared route filter list by name.
type NamedPrefixSet struct {
	prefixSetExpr
	Name string
}

func decodeNamedPrefixSet(o serialize.Object) (PrefixSetExpr, error) {
	name, err := serialize.String(o, "name")
	if err != nil {
		return nil, err
	}
	return &NamedPrefixSet{Name: name}, nil
}

func (e *NamedPrefixSet) Encode() serialize.Object {
	return serialize.Object{ClassKey: "NamedPrefixSet", "name": e.Name}
}

// NamedPrefix6Set refers to a declared IPv6 route filter list by name.
type NamedPrefix6Set struct {
	prefixSetExpr
	Name string
}

func decodeNamedPrefix6Set(o serialize.Object) (PrefixSetExpr, error) {
	name, err := serialize.String(o, "name")
	if err != nil {
		return nil, err
	}
	return &NamedPrefix6Set{Name: name}, nil
}

func (e *NamedPrefix6Set) Encode() serialize.Object {
	return serialize.Object{ClassKey: "NamedPrefix6Set", "name": e.Name}
}

// ExplicitPrefixSet is an inline set of prefixes.
type ExplicitPrefixSet struct {
	prefixSetExpr
	PrefixSpace []netip.Prefix
}

func decodeExplicitPrefixSet(o serialize.Object) (PrefixSetExpr, error) {
	ps, err := serialize.List(o, "prefixSpace", serialize.AsPrefix)
	if err != nil {
		return nil, err
	}
	return &ExplicitPrefixSet{PrefixSpace: ps}, nil
}

func (e *ExplicitPrefixSet) Encode() serialize.Object {
	return serialize.Object{
		ClassKey:      "ExplicitPrefixSet",
		"prefixSpace": serialize.EncodeList(e.PrefixSpace, func(p netip.Prefix) any { return p.String() }),
	}
}
