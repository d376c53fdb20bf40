package bast

import "github.com/NetworkVerification/angler-sub000/pkg/serialize"

var originExprs = serialize.NewRegistry[OriginExpr]("origin expression", ClassKey)

func init() {
	originExprs.Register("LiteralOrigin", decodeLiteralOrigin)
}

// DecodeOriginExpr decodes a wire value into an origin expression.
func DecodeOriginExpr(v any) (OriginExpr, error) {
	return originExprs.Decode(v)
}

// LiteralOrigin is a constant origin type.
type LiteralOrigin struct {
	originExpr
	Origin OriginType
}

func decodeLiteralOrigin(o serialize.Object) (OriginExpr, error) {
	v, err := serialize.Raw(o, "originType")
	if err != nil {
		return nil, err
	}
	origin, err := decodeOriginType(v)
	if err != nil {
		return nil, err
	}
	return &LiteralOrigin{Origin: origin}, nil
}

func (e *LiteralOrigin) Encode() serialize.Object {
	return serialize.Object{ClassKey: "LiteralOrigin", "originType": string(e.Origin)}
}
