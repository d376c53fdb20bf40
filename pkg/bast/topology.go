package bast

import (
	"net/netip"

	"github.com/NetworkVerification/angler-sub000/pkg/serialize"
)

// Node identifies a device in the network.
type Node struct {
	ID   string
	Name string
}

// DecodeNode decodes a wire value into a Node.
func DecodeNode(v any) (Node, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return Node{}, err
	}
	id, err := serialize.String(o, "id")
	if err != nil {
		return Node{}, err
	}
	name, err := serialize.String(o, "name")
	if err != nil {
		return Node{}, err
	}
	return Node{ID: id, Name: name}, nil
}

// Encode returns the wire object for the node.
func (n Node) Encode() serialize.Object {
	return serialize.Object{"id": n.ID, "name": n.Name}
}

// Interface names one interface of a device.
type Interface struct {
	Hostname  string
	Interface string
}

// DecodeInterface decodes a wire value into an Interface.
func DecodeInterface(v any) (Interface, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return Interface{}, err
	}
	host, err := serialize.String(o, "hostname")
	if err != nil {
		return Interface{}, err
	}
	iface, err := serialize.String(o, "interface")
	if err != nil {
		return Interface{}, err
	}
	return Interface{Hostname: host, Interface: iface}, nil
}

// Encode returns the wire object for the interface.
func (i Interface) Encode() serialize.Object {
	return serialize.Object{"hostname": i.Hostname, "interface": i.Interface}
}

// Edge is a directed link between two interfaces: the non-remote interface
// is the source, the remote one the target.
type Edge struct {
	Interface       Interface
	IPs             []netip.Addr
	RemoteInterface Interface
	RemoteIPs       []netip.Addr
}

// DecodeEdge decodes a wire value into an Edge.
func DecodeEdge(v any) (Edge, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return Edge{}, err
	}
	iv, err := serialize.Raw(o, "Interface")
	if err != nil {
		return Edge{}, err
	}
	iface, err := DecodeInterface(iv)
	if err != nil {
		return Edge{}, err
	}
	ips, err := serialize.ListOr(o, "IPs", serialize.AsAddr)
	if err != nil {
		return Edge{}, err
	}
	rv, err := serialize.Raw(o, "Remote_Interface")
	if err != nil {
		return Edge{}, err
	}
	remote, err := DecodeInterface(rv)
	if err != nil {
		return Edge{}, err
	}
	remoteIPs, err := serialize.ListOr(o, "Remote_IPs", serialize.AsAddr)
	if err != nil {
		return Edge{}, err
	}
	return Edge{Interface: iface, IPs: ips, RemoteInterface: remote, RemoteIPs: remoteIPs}, nil
}

// Encode returns the wire object for the edge.
func (e Edge) Encode() serialize.Object {
	return serialize.Object{
		"Interface":        e.Interface.Encode(),
		"IPs":              serialize.EncodeList(e.IPs, func(a netip.Addr) any { return a.String() }),
		"Remote_Interface": e.RemoteInterface.Encode(),
		"Remote_IPs":       serialize.EncodeList(e.RemoteIPs, func(a netip.Addr) any { return a.String() }),
	}
}
