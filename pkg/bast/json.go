package bast

import "github.com/NetworkVerification/angler-sub000/pkg/serialize"

// BatfishJson is the top-level document exported from a Batfish session:
// the layer-3 topology, IP ownership, node properties, named structure
// declarations, and any initialization issues. Node property and issue
// rows are retained uninterpreted.
type BatfishJson struct {
	Topology     []Edge
	IPs          []OwnedIP
	Policy       []serialize.Object
	Declarations []Structure
	Issues       []serialize.Object
}

// DecodeBatfishJson decodes a wire value into a BatfishJson document.
func DecodeBatfishJson(v any) (*BatfishJson, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return nil, err
	}
	topology, err := serialize.ListOr(o, "topology", DecodeEdge)
	if err != nil {
		return nil, err
	}
	ips, err := serialize.ListOr(o, "ips", DecodeOwnedIP)
	if err != nil {
		return nil, err
	}
	policy, err := serialize.ListOr(o, "policy", serialize.AsObject)
	if err != nil {
		return nil, err
	}
	declarations, err := serialize.ListOr(o, "declarations", DecodeStructure)
	if err != nil {
		return nil, err
	}
	issues, err := serialize.ListOr(o, "issues", serialize.AsObject)
	if err != nil {
		return nil, err
	}
	return &BatfishJson{
		Topology:     topology,
		IPs:          ips,
		Policy:       policy,
		Declarations: declarations,
		Issues:       issues,
	}, nil
}

// Encode returns the wire object for the document.
func (b *BatfishJson) Encode() serialize.Object {
	return serialize.Object{
		"topology":     serialize.EncodeList(b.Topology, func(e Edge) any { return e.Encode() }),
		"ips":          serialize.EncodeList(b.IPs, func(ip OwnedIP) any { return ip.Encode() }),
		"policy":       serialize.EncodeList(b.Policy, func(o serialize.Object) any { return o }),
		"declarations": serialize.EncodeList(b.Declarations, func(s Structure) any { return s.Encode() }),
		"issues":       serialize.EncodeList(b.Issues, func(o serialize.Object) any { return o }),
	}
}

// IPNodeMapping returns which node owns each active IP address.
func (b *BatfishJson) IPNodeMapping() map[string]string {
	owners := make(map[string]string)
	for _, ip := range b.IPs {
		if ip.Active {
			owners[ip.IP.String()] = ip.Node.Name
		}
	}
	return owners
}
