package bast

import "github.com/NetworkVerification/angler-sub000/pkg/serialize"

var longExprs = serialize.NewRegistry[LongExpr]("long expression", ClassKey)
var intExprs = serialize.NewRegistry[IntExpr]("int expression", ClassKey)

func init() {
	longExprs.Register("LiteralLong", decodeLiteralLong)
	longExprs.Register("IncrementLocalPreference", decodeIncrementLocalPref)
	longExprs.Register("DecrementLocalPreference", decodeDecrementLocalPref)

	intExprs.Register("LiteralInt", decodeLiteralInt)
}

// DecodeLongExpr decodes a wire value into a long expression.
func DecodeLongExpr(v any) (LongExpr, error) {
	return longExprs.Decode(v)
}

// DecodeIntExpr decodes a wire value into an int expression.
func DecodeIntExpr(v any) (IntExpr, error) {
	return intExprs.Decode(v)
}

// LiteralLong is a 64-bit integer constant.
type LiteralLong struct {
	longExpr
	Value int
}

func decodeLiteralLong(o serialize.Object) (LongExpr, error) {
	n, err := serialize.Int(o, "value")
	if err != nil {
		return nil, err
	}
	return &LiteralLong{Value: n}, nil
}

func (e *LiteralLong) Encode() serialize.Object {
	return serialize.Object{ClassKey: "LiteralLong", "value": e.Value}
}

// IncrementLocalPref adds to the route's current local preference.
type IncrementLocalPref struct {
	longExpr
	Addend int
}

func decodeIncrementLocalPref(o serialize.Object) (LongExpr, error) {
	n, err := serialize.Int(o, "addend")
	if err != nil {
		return nil, err
	}
	return &IncrementLocalPref{Addend: n}, nil
}

func (e *IncrementLocalPref) Encode() serialize.Object {
	return serialize.Object{ClassKey: "IncrementLocalPreference", "addend": e.Addend}
}

// DecrementLocalPref subtracts from the route's current local preference.
type DecrementLocalPref struct {
	longExpr
	Subtrahend int
}

func decodeDecrementLocalPref(o serialize.Object) (LongExpr, error) {
	n, err := serialize.Int(o, "subtrahend")
	if err != nil {
		return nil, err
	}
	return &DecrementLocalPref{Subtrahend: n}, nil
}

func (e *DecrementLocalPref) Encode() serialize.Object {
	return serialize.Object{ClassKey: "DecrementLocalPreference", "subtrahend": e.Subtrahend}
}

// LiteralInt is a 32-bit integer constant.
type LiteralInt struct {
	intExpr
	Value int
}

func decodeLiteralInt(o serialize.Object) (IntExpr, error) {
	n, err := serialize.Int(o, "value")
	if err != nil {
		return nil, err
	}
	return &LiteralInt{Value: n}, nil
}

func (e *LiteralInt) Encode() serialize.Object {
	return serialize.Object{ClassKey: "LiteralInt", "value": e.Value}
}
