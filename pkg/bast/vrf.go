package bast

import (
	"net/netip"

	"github.com/NetworkVerification/angler-sub000/pkg/serialize"
)

// Ipv4UnicastAddressFamily holds the per-neighbor import and export
// policies. Either may be absent.
type Ipv4UnicastAddressFamily struct {
	ExportPolicy string
	ImportPolicy string
}

// DecodeIpv4UnicastAddressFamily decodes a wire value into an address family.
func DecodeIpv4UnicastAddressFamily(v any) (Ipv4UnicastAddressFamily, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return Ipv4UnicastAddressFamily{}, err
	}
	exp, err := serialize.StringOr(o, "exportPolicy", "")
	if err != nil {
		return Ipv4UnicastAddressFamily{}, err
	}
	imp, err := serialize.StringOr(o, "importPolicy", "")
	if err != nil {
		return Ipv4UnicastAddressFamily{}, err
	}
	return Ipv4UnicastAddressFamily{ExportPolicy: exp, ImportPolicy: imp}, nil
}

// Encode returns the wire object for the address family.
func (f Ipv4UnicastAddressFamily) Encode() serialize.Object {
	return serialize.Object{"exportPolicy": f.ExportPolicy, "importPolicy": f.ImportPolicy}
}

// BgpActivePeerConfig configures peering with a single remote neighbor.
type BgpActivePeerConfig struct {
	DefaultMetric *int
	AddressFamily Ipv4UnicastAddressFamily
	LocalAs       *int
	LocalIP       netip.Addr
	RemoteAs      *int
	PeerIP        netip.Addr
}

// DecodeBgpActivePeerConfig decodes a wire value into a peer configuration.
// The AS fields occasionally arrive empty, hence the pointers.
func DecodeBgpActivePeerConfig(v any) (BgpActivePeerConfig, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return BgpActivePeerConfig{}, err
	}
	metric, err := serialize.OptInt(o, "defaultMetric")
	if err != nil {
		return BgpActivePeerConfig{}, err
	}
	fv, err := serialize.Raw(o, "ipv4UnicastAddressFamily")
	if err != nil {
		return BgpActivePeerConfig{}, err
	}
	family, err := DecodeIpv4UnicastAddressFamily(fv)
	if err != nil {
		return BgpActivePeerConfig{}, err
	}
	localAs, err := serialize.OptInt(o, "localAs")
	if err != nil {
		return BgpActivePeerConfig{}, err
	}
	localIP, err := serialize.Addr(o, "localIp")
	if err != nil {
		return BgpActivePeerConfig{}, err
	}
	remoteAs, err := serialize.OptInt(o, "remoteAsns")
	if err != nil {
		return BgpActivePeerConfig{}, err
	}
	peerIP, err := serialize.Addr(o, "peerAddress")
	if err != nil {
		return BgpActivePeerConfig{}, err
	}
	return BgpActivePeerConfig{
		DefaultMetric: metric,
		AddressFamily: family,
		LocalAs:       localAs,
		LocalIP:       localIP,
		RemoteAs:      remoteAs,
		PeerIP:        peerIP,
	}, nil
}

// Encode returns the wire object for the peer configuration.
func (c BgpActivePeerConfig) Encode() serialize.Object {
	o := serialize.Object{
		"ipv4UnicastAddressFamily": c.AddressFamily.Encode(),
		"localIp":                  c.LocalIP.String(),
		"peerAddress":              c.PeerIP.String(),
	}
	if c.DefaultMetric != nil {
		o["defaultMetric"] = *c.DefaultMetric
	}
	if c.LocalAs != nil {
		o["localAs"] = *c.LocalAs
	}
	if c.RemoteAs != nil {
		o["remoteAsns"] = *c.RemoteAs
	}
	return o
}

// BgpProcess is a node's BGP process: its router id and neighbors keyed by
// peer address.
type BgpProcess struct {
	Neighbors map[netip.Addr]BgpActivePeerConfig
	Router    netip.Addr
}

// DecodeBgpProcess decodes a wire value into a BgpProcess.
func DecodeBgpProcess(v any) (*BgpProcess, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return nil, err
	}
	neighbors, err := serialize.AddrMapOf(o, "neighbors", DecodeBgpActivePeerConfig)
	if err != nil {
		return nil, err
	}
	router, err := serialize.Addr(o, "routerId")
	if err != nil {
		return nil, err
	}
	return &BgpProcess{Neighbors: neighbors, Router: router}, nil
}

// Encode returns the wire object for the process.
func (p *BgpProcess) Encode() serialize.Object {
	neighbors := make(serialize.Object, len(p.Neighbors))
	for addr, cfg := range p.Neighbors {
		neighbors[addr.String()] = cfg.Encode()
	}
	return serialize.Object{"neighbors": neighbors, "routerId": p.Router.String()}
}

// OspfProcess is retained uninterpreted; conversion only models BGP.
type OspfProcess struct {
	AdminCosts serialize.Object
	Areas      serialize.Object
}

// DecodeOspfProcess decodes a wire value into an OspfProcess.
func DecodeOspfProcess(v any) (OspfProcess, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return OspfProcess{}, err
	}
	var p OspfProcess
	if av := serialize.RawOr(o, "adminCosts", nil); av != nil {
		if p.AdminCosts, err = serialize.AsObject(av); err != nil {
			return OspfProcess{}, err
		}
	}
	if av := serialize.RawOr(o, "areas", nil); av != nil {
		if p.Areas, err = serialize.AsObject(av); err != nil {
			return OspfProcess{}, err
		}
	}
	return p, nil
}

// Encode returns the wire object for the process.
func (p OspfProcess) Encode() serialize.Object {
	o := serialize.Object{}
	if p.AdminCosts != nil {
		o["adminCosts"] = p.AdminCosts
	}
	if p.Areas != nil {
		o["areas"] = p.Areas
	}
	return o
}

// Vrf is a virtual routing and forwarding table declaration. Only the
// default VRF's BGP process participates in conversion.
type Vrf struct {
	Name             string
	ResolutionPolicy string
	Bgp              *BgpProcess
	Ospf             map[string]OspfProcess
}

// DefaultVrfName is the VRF whose BGP process defines a node's peerings.
const DefaultVrfName = "default"

// DecodeVrf decodes a wire value into a Vrf.
func DecodeVrf(v any) (*Vrf, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return nil, err
	}
	name, err := serialize.String(o, "name")
	if err != nil {
		return nil, err
	}
	resolution, err := serialize.StringOr(o, "resolutionPolicy", "")
	if err != nil {
		return nil, err
	}
	vrf := &Vrf{Name: name, ResolutionPolicy: resolution}
	if bv := serialize.RawOr(o, "bgpProcess", nil); bv != nil {
		if vrf.Bgp, err = DecodeBgpProcess(bv); err != nil {
			return nil, err
		}
	}
	if ov := serialize.RawOr(o, "ospfProcesses", nil); ov != nil {
		obj, err := serialize.AsObject(ov)
		if err != nil {
			return nil, err
		}
		vrf.Ospf = make(map[string]OspfProcess, len(obj))
		for k, pv := range obj {
			p, err := DecodeOspfProcess(pv)
			if err != nil {
				return nil, err
			}
			vrf.Ospf[k] = p
		}
	}
	return vrf, nil
}

// Encode returns the wire object for the VRF.
func (v *Vrf) Encode() serialize.Object {
	o := serialize.Object{"name": v.Name, "resolutionPolicy": v.ResolutionPolicy}
	if v.Bgp != nil {
		o["bgpProcess"] = v.Bgp.Encode()
	}
	if v.Ospf != nil {
		procs := make(serialize.Object, len(v.Ospf))
		for k, p := range v.Ospf {
			procs[k] = p.Encode()
		}
		o["ospfProcesses"] = procs
	}
	return o
}
