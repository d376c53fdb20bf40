package aast

import (
	"net/netip"
	"sort"

	"github.com/NetworkVerification/angler-sub000/pkg/serialize"
)

// Func is a single-argument function: the statements of Body transform the
// environment bound to Arg.
type Func struct {
	Arg  string
	Body []Statement
}

// DecodeFunc decodes a wire value into a Func.
func DecodeFunc(v any) (*Func, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return nil, err
	}
	arg, err := serialize.String(o, "arg")
	if err != nil {
		return nil, err
	}
	body, err := DecodeStatements(o, "body")
	if err != nil {
		return nil, err
	}
	return &Func{Arg: arg, Body: body}, nil
}

// Encode returns the wire object for the function.
func (f *Func) Encode() serialize.Object {
	return serialize.Object{"arg": f.Arg, "body": EncodeStatements(f.Body)}
}

// Policies binds one peer session: the peer's AS number and the names of
// the import and export policies applied to it. Any field may be absent.
type Policies struct {
	Asn    *int
	Import *string
	Export *string
}

// DecodePolicies decodes a wire value into a Policies binding.
func DecodePolicies(v any) (*Policies, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return nil, err
	}
	asn, err := serialize.OptInt(o, "Asn")
	if err != nil {
		return nil, err
	}
	p := &Policies{Asn: asn}
	if iv := serialize.RawOr(o, "Import", nil); iv != nil {
		s, err := serialize.AsString(iv)
		if err != nil {
			return nil, err
		}
		p.Import = &s
	}
	if ev := serialize.RawOr(o, "Export", nil); ev != nil {
		s, err := serialize.AsString(ev)
		if err != nil {
			return nil, err
		}
		p.Export = &s
	}
	return p, nil
}

// Encode returns the wire object for the binding.
func (p *Policies) Encode() serialize.Object {
	o := serialize.Object{"Asn": nil, "Import": nil, "Export": nil}
	if p.Asn != nil {
		o["Asn"] = *p.Asn
	}
	if p.Import != nil {
		o["Import"] = *p.Import
	}
	if p.Export != nil {
		o["Export"] = *p.Export
	}
	return o
}

// ExternalPeer records a peer outside the modeled network: its address,
// its AS number when known, and the internal nodes it connects to.
type ExternalPeer struct {
	IP       netip.Addr
	ASNumber *int
	Peering  []string
}

// DecodeExternalPeer decodes a wire value into an ExternalPeer.
func DecodeExternalPeer(v any) (ExternalPeer, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return ExternalPeer{}, err
	}
	ip, err := serialize.Addr(o, "Ip")
	if err != nil {
		return ExternalPeer{}, err
	}
	asn, err := serialize.OptInt(o, "ASNumber")
	if err != nil {
		return ExternalPeer{}, err
	}
	peering, err := serialize.StringsOr(o, "Peering")
	if err != nil {
		return ExternalPeer{}, err
	}
	return ExternalPeer{IP: ip, ASNumber: asn, Peering: peering}, nil
}

// Encode returns the wire object for the peer.
func (p ExternalPeer) Encode() serialize.Object {
	o := serialize.Object{
		"Ip":      p.IP.String(),
		"Peering": serialize.EncodeList(p.Peering, func(s string) any { return s }),
	}
	if p.ASNumber != nil {
		o["ASNumber"] = *p.ASNumber
	} else {
		o["ASNumber"] = nil
	}
	return o
}

// Properties collects everything known about one node: its AS number, the
// prefixes it originates, the policies of its peer sessions keyed by peer
// name, and its converted function declarations keyed by policy name.
type Properties struct {
	ASNumber     *int
	Prefixes     map[netip.Prefix]struct{}
	Policies     map[string]*Policies
	Declarations map[string]*Func
}

// NewProperties returns an empty Properties value.
func NewProperties() *Properties {
	return &Properties{
		Prefixes:     make(map[netip.Prefix]struct{}),
		Policies:     make(map[string]*Policies),
		Declarations: make(map[string]*Func),
	}
}

// AddPrefixFromIP records the /24 containing the given address as one of
// the node's originated prefixes.
func (p *Properties) AddPrefixFromIP(ip netip.Addr) {
	prefix, err := ip.Prefix(24)
	if err != nil {
		return
	}
	p.Prefixes[prefix] = struct{}{}
}

// DecodeProperties decodes a wire value into a Properties record.
func DecodeProperties(v any) (*Properties, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return nil, err
	}
	asn, err := serialize.OptInt(o, "ASNumber")
	if err != nil {
		return nil, err
	}
	p := NewProperties()
	p.ASNumber = asn
	prefixes, err := serialize.ListOr(o, "Prefixes", serialize.AsPrefix)
	if err != nil {
		return nil, err
	}
	for _, prefix := range prefixes {
		p.Prefixes[prefix] = struct{}{}
	}
	if pv := serialize.RawOr(o, "Policies", nil); pv != nil {
		if p.Policies, err = serialize.MapOf(o, "Policies", DecodePolicies); err != nil {
			return nil, err
		}
	}
	if dv := serialize.RawOr(o, "Declarations", nil); dv != nil {
		if p.Declarations, err = serialize.MapOf(o, "Declarations", DecodeFunc); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Encode returns the wire object for the node properties. Prefixes are
// emitted in sorted order so encoding is deterministic.
func (p *Properties) Encode() serialize.Object {
	prefixes := make([]netip.Prefix, 0, len(p.Prefixes))
	for prefix := range p.Prefixes {
		prefixes = append(prefixes, prefix)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		return prefixes[i].String() < prefixes[j].String()
	})
	policies := make(serialize.Object, len(p.Policies))
	for name, pol := range p.Policies {
		policies[name] = pol.Encode()
	}
	declarations := make(serialize.Object, len(p.Declarations))
	for name, f := range p.Declarations {
		declarations[name] = f.Encode()
	}
	o := serialize.Object{
		"Prefixes":     serialize.EncodeList(prefixes, func(p netip.Prefix) any { return p.String() }),
		"Policies":     policies,
		"Declarations": declarations,
	}
	if p.ASNumber != nil {
		o["ASNumber"] = *p.ASNumber
	} else {
		o["ASNumber"] = nil
	}
	return o
}

// Network is the assembled output document: the route record layout, the
// per-node properties, and the external peers.
type Network struct {
	Route     map[string]TypeAnnotation
	Nodes     map[string]*Properties
	Externals []ExternalPeer
}

// DecodeNetwork decodes a wire value into a Network.
func DecodeNetwork(v any) (*Network, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return nil, err
	}
	route, err := serialize.MapOf(o, "Route", func(v any) (TypeAnnotation, error) {
		s, err := serialize.AsString(v)
		if err != nil {
			return "", err
		}
		return TypeAnnotation(s), nil
	})
	if err != nil {
		return nil, err
	}
	nodes, err := serialize.MapOf(o, "Nodes", DecodeProperties)
	if err != nil {
		return nil, err
	}
	externals, err := serialize.ListOr(o, "Externals", DecodeExternalPeer)
	if err != nil {
		return nil, err
	}
	return &Network{Route: route, Nodes: nodes, Externals: externals}, nil
}

// Encode returns the wire object for the network.
func (n *Network) Encode() serialize.Object {
	route := make(serialize.Object, len(n.Route))
	for name, ty := range n.Route {
		route[name] = string(ty)
	}
	nodes := make(serialize.Object, len(n.Nodes))
	for name, p := range n.Nodes {
		nodes[name] = p.Encode()
	}
	return serialize.Object{
		"Route":     route,
		"Nodes":     nodes,
		"Externals": serialize.EncodeList(n.Externals, func(p ExternalPeer) any { return p.Encode() }),
	}
}
