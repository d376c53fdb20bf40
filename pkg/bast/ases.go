package bast

import "github.com/NetworkVerification/angler-sub000/pkg/serialize"

var asExprs = serialize.NewRegistry[AsExpr]("AS expression", ClassKey)
var asPathListExprs = serialize.NewRegistry[AsPathListExpr]("AS path list expression", ClassKey)

func init() {
	asExprs.Register("ExplicitAs", decodeExplicitAs)
	asExprs.Register("LastAs", decodeLastAs)

	asPathListExprs.Register("LiteralAsList", decodeLiteralAsList)
	asPathListExprs.Register("MultipliedAs", decodeMultipliedAs)
}

// DecodeAsExpr decodes a wire value into an AS expression.
func DecodeAsExpr(v any) (AsExpr, error) {
	return asExprs.Decode(v)
}

// DecodeAsPathListExpr decodes a wire value into an AS path list expression.
func DecodeAsPathListExpr(v any) (AsPathListExpr, error) {
	return asPathListExprs.Decode(v)
}

// ExplicitAs is a literal AS number.
type ExplicitAs struct {
	asExpr
	As int
}

func decodeExplicitAs(o serialize.Object) (AsExpr, error) {
	n, err := serialize.Int(o, "as")
	if err != nil {
		return nil, err
	}
	return &ExplicitAs{As: n}, nil
}

func (e *ExplicitAs) Encode() serialize.Object {
	return serialize.Object{ClassKey: "ExplicitAs", "as": e.As}
}

// LastAs refers to the most recently prepended AS on the route's path.
type LastAs struct{ asExpr }

func decodeLastAs(serialize.Object) (AsExpr, error) { return &LastAs{}, nil }

func (e *LastAs) Encode() serialize.Object {
	return serialize.Object{ClassKey: "LastAs"}
}

// LiteralAsList is an explicit list of AS numbers to prepend.
type LiteralAsList struct {
	asPathListExpr
	Ases []AsExpr
}

func decodeLiteralAsList(o serialize.Object) (AsPathListExpr, error) {
	as, err := serialize.List(o, "list", DecodeAsExpr)
	if err != nil {
		return nil, err
	}
	return &LiteralAsList{Ases: as}, nil
}

func (e *LiteralAsList) Encode() serialize.Object {
	return serialize.Object{
		ClassKey: "LiteralAsList",
		"list":   serialize.EncodeList(e.Ases, encodeExpr[AsExpr]),
	}
}

// MultipliedAs prepends a single AS a given number of times.
type MultipliedAs struct {
	asPathListExpr
	Expr AsExpr
	N    IntExpr
}

func decodeMultipliedAs(o serialize.Object) (AsPathListExpr, error) {
	ev, err := serialize.Raw(o, "expr")
	if err != nil {
		return nil, err
	}
	as, err := DecodeAsExpr(ev)
	if err != nil {
		return nil, err
	}
	nv, err := serialize.Raw(o, "number")
	if err != nil {
		return nil, err
	}
	n, err := DecodeIntExpr(nv)
	if err != nil {
		return nil, err
	}
	return &MultipliedAs{Expr: as, N: n}, nil
}

func (e *MultipliedAs) Encode() serialize.Object {
	return serialize.Object{
		ClassKey: "MultipliedAs",
		"expr":   e.Expr.Encode(),
		"number": e.N.Encode(),
	}
}
