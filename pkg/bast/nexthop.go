package bast

import (
	"net/netip"

	"github.com/NetworkVerification/angler-sub000/pkg/serialize"
)

var nextHopExprs = serialize.NewRegistry[NextHopExpr]("next hop expression", ClassKey)

func init() {
	nextHopExprs.Register("SelfNextHop", decodeSelfNextHop)
	nextHopExprs.Register("DiscardNextHop", decodeDiscardNextHop)
	nextHopExprs.Register("IpNextHop", decodeIpNextHop)
}

// DecodeNextHopExpr decodes a wire value into a next hop expression.
func DecodeNextHopExpr(v any) (NextHopExpr, error) {
	return nextHopExprs.Decode(v)
}

// SelfNextHop sets the next hop to the advertising router itself.
type SelfNextHop struct{ nextHopExpr }

func decodeSelfNextHop(serialize.Object) (NextHopExpr, error) { return &SelfNextHop{}, nil }

func (e *SelfNextHop) Encode() serialize.Object {
	return serialize.Object{ClassKey: "SelfNextHop"}
}

// DiscardNextHop sets the next hop to a null route.
type DiscardNextHop struct{ nextHopExpr }

func decodeDiscardNextHop(serialize.Object) (NextHopExpr, error) { return &DiscardNextHop{}, nil }

func (e *DiscardNextHop) Encode() serialize.Object {
	return serialize.Object{ClassKey: "DiscardNextHop"}
}

// IpNextHop sets the next hop to an explicit address. The wire format
// allows a list but only ever carries a single element.
type IpNextHop struct {
	nextHopExpr
	IPs []netip.Addr
}

func decodeIpNextHop(o serialize.Object) (NextHopExpr, error) {
	ips, err := serialize.List(o, "ips", serialize.AsAddr)
	if err != nil {
		return nil, err
	}
	return &IpNextHop{IPs: ips}, nil
}

func (e *IpNextHop) Encode() serialize.Object {
	return serialize.Object{
		ClassKey: "IpNextHop",
		"ips":    serialize.EncodeList(e.IPs, func(a netip.Addr) any { return a.String() }),
	}
}
