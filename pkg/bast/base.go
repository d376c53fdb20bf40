package bast

import (
	"net/netip"

	"github.com/NetworkVerification/angler-sub000/pkg/serialize"
)

// RemoteIpAddress is a schema-tagged IP address as returned by peer
// configuration queries.
type RemoteIpAddress struct {
	Schema string
	Value  netip.Addr
}

// DecodeRemoteIpAddress decodes a wire value into a RemoteIpAddress.
func DecodeRemoteIpAddress(v any) (RemoteIpAddress, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return RemoteIpAddress{}, err
	}
	schema, err := serialize.String(o, "schema")
	if err != nil {
		return RemoteIpAddress{}, err
	}
	addr, err := serialize.Addr(o, "value")
	if err != nil {
		return RemoteIpAddress{}, err
	}
	return RemoteIpAddress{Schema: schema, Value: addr}, nil
}

// Encode returns the wire object for the address.
func (r RemoteIpAddress) Encode() serialize.Object {
	return serialize.Object{"schema": r.Schema, "value": r.Value.String()}
}

// BgpPeerConfig is one row of the BGP peer configuration query.
type BgpPeerConfig struct {
	Description  string
	Node         Node
	LocalAs      int
	LocalIP      netip.Addr
	RemoteAs     int
	RemoteIP     RemoteIpAddress
	ImportPolicy []string
	ExportPolicy []string
}

// DecodeBgpPeerConfig decodes a wire value into a BgpPeerConfig.
func DecodeBgpPeerConfig(v any) (BgpPeerConfig, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return BgpPeerConfig{}, err
	}
	desc, err := serialize.StringOr(o, "Description", "")
	if err != nil {
		return BgpPeerConfig{}, err
	}
	nv, err := serialize.Raw(o, "Node")
	if err != nil {
		return BgpPeerConfig{}, err
	}
	node, err := DecodeNode(nv)
	if err != nil {
		return BgpPeerConfig{}, err
	}
	localAs, err := serialize.Int(o, "Local_AS")
	if err != nil {
		return BgpPeerConfig{}, err
	}
	localIP, err := serialize.Addr(o, "Local_IP")
	if err != nil {
		return BgpPeerConfig{}, err
	}
	remoteAs, err := serialize.Int(o, "Remote_AS")
	if err != nil {
		return BgpPeerConfig{}, err
	}
	rv, err := serialize.Raw(o, "Remote_IP")
	if err != nil {
		return BgpPeerConfig{}, err
	}
	remoteIP, err := DecodeRemoteIpAddress(rv)
	if err != nil {
		return BgpPeerConfig{}, err
	}
	imp, err := serialize.StringsOr(o, "Import_Policy")
	if err != nil {
		return BgpPeerConfig{}, err
	}
	exp, err := serialize.StringsOr(o, "Export_Policy")
	if err != nil {
		return BgpPeerConfig{}, err
	}
	return BgpPeerConfig{
		Description:  desc,
		Node:         node,
		LocalAs:      localAs,
		LocalIP:      localIP,
		RemoteAs:     remoteAs,
		RemoteIP:     remoteIP,
		ImportPolicy: imp,
		ExportPolicy: exp,
	}, nil
}

// Encode returns the wire object for the peer configuration row.
func (c BgpPeerConfig) Encode() serialize.Object {
	return serialize.Object{
		"Description":   c.Description,
		"Node":          c.Node.Encode(),
		"Local_AS":      c.LocalAs,
		"Local_IP":      c.LocalIP.String(),
		"Remote_AS":     c.RemoteAs,
		"Remote_IP":     c.RemoteIP.Encode(),
		"Import_Policy": serialize.EncodeList(c.ImportPolicy, func(s string) any { return s }),
		"Export_Policy": serialize.EncodeList(c.ExportPolicy, func(s string) any { return s }),
	}
}

// OwnedIP is one row of the IP owners query: which node and interface an
// address belongs to.
type OwnedIP struct {
	Active    bool
	IP        netip.Addr
	Interface string
	Mask      int
	Node      Node
}

// DecodeOwnedIP decodes a wire value into an OwnedIP.
func DecodeOwnedIP(v any) (OwnedIP, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return OwnedIP{}, err
	}
	active, err := serialize.Bool(o, "Active")
	if err != nil {
		return OwnedIP{}, err
	}
	ip, err := serialize.Addr(o, "IP")
	if err != nil {
		return OwnedIP{}, err
	}
	iface, err := serialize.String(o, "Interface")
	if err != nil {
		return OwnedIP{}, err
	}
	mask, err := serialize.Int(o, "Mask")
	if err != nil {
		return OwnedIP{}, err
	}
	nv, err := serialize.Raw(o, "Node")
	if err != nil {
		return OwnedIP{}, err
	}
	node, err := DecodeNode(nv)
	if err != nil {
		return OwnedIP{}, err
	}
	return OwnedIP{Active: active, IP: ip, Interface: iface, Mask: mask, Node: node}, nil
}

// Encode returns the wire object for the ownership row.
func (o OwnedIP) Encode() serialize.Object {
	return serialize.Object{
		"Active":    o.Active,
		"IP":        o.IP.String(),
		"Interface": o.Interface,
		"Mask":      o.Mask,
		"Node":      o.Node.Encode(),
	}
}
