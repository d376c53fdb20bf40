package convert

import (
	"fmt"
	"net/netip"
	"sort"

	"github.com/NetworkVerification/angler-sub000/pkg/aast"
	"github.com/NetworkVerification/angler-sub000/pkg/bast"
)

type externalKey struct {
	ip  netip.Addr
	asn int // -1 when the source omits the remote AS
}

// Network assembles the output document from an exported session: every
// declaration is converted and aggregated per node, node-local constants
// are inlined into the policy bodies that reference them, and each BGP
// session is classified as an internal peering or an external peer.
func (c *Converter) Network(doc *bast.BatfishJson) (*aast.Network, error) {
	owners := doc.IPNodeMapping()
	nodes := make(map[string]*aast.Properties)
	constants := make(map[string]map[string]aast.Expression)
	externals := make(map[externalKey]*aast.ExternalPeer)

	node := func(name string) *aast.Properties {
		p, ok := nodes[name]
		if !ok {
			p = aast.NewProperties()
			nodes[name] = p
		}
		return p
	}

	for _, s := range doc.Declarations {
		res, err := c.Structure(s)
		if err != nil {
			c.metrics.failure()
			return nil, fmt.Errorf("convert %s %q of node %s: %w", s.Type, s.Name, s.Node.Name, err)
		}
		switch {
		case res.Func != nil:
			node(res.Node).Declarations[res.Name] = res.Func
			c.metrics.policyConverted()
		case res.Const != nil:
			m, ok := constants[res.Node]
			if !ok {
				m = make(map[string]aast.Expression)
				constants[res.Node] = m
			}
			m[res.Name] = res.Const
		case res.Vrf != nil:
			c.addPeerings(node, res.Node, res.Vrf, owners, externals)
		}
	}

	for name, props := range nodes {
		env := constants[name]
		if len(env) == 0 {
			continue
		}
		for pname, f := range props.Declarations {
			props.Declarations[pname] = &aast.Func{
				Arg:  f.Arg,
				Body: aast.SubstStmts(f.Body, env),
			}
		}
	}

	ext := make([]aast.ExternalPeer, 0, len(externals))
	for _, p := range externals {
		sort.Strings(p.Peering)
		ext = append(ext, *p)
	}
	sort.Slice(ext, func(i, j int) bool {
		if ext[i].IP != ext[j].IP {
			return ext[i].IP.Less(ext[j].IP)
		}
		return asnOrder(ext[i].ASNumber) < asnOrder(ext[j].ASNumber)
	})

	c.logger.Info("assembled network",
		"nodes", len(nodes),
		"externals", len(ext))
	return &aast.Network{Route: aast.RouteLayout(), Nodes: nodes, Externals: ext}, nil
}

// addPeerings classifies a node's sessions. A session whose remote address
// is owned by a known node and whose two AS numbers agree is an internal
// peering, keyed by the owner's name; the owner gets a node entry even
// when it declares nothing itself, so every internal neighbor named in a
// policy table is present in the output. Everything else is an external
// peer, keyed by the remote address so several sessions to the same peer
// share one entry.
func (c *Converter) addPeerings(
	node func(string) *aast.Properties,
	name string,
	vrf *VrfPeers,
	owners map[string]string,
	externals map[externalKey]*aast.ExternalPeer,
) {
	props := node(name)
	props.AddPrefixFromIP(vrf.Router)
	for _, block := range vrf.Peers {
		peer := block.Peer
		if peer.LocalAsn != nil {
			if props.ASNumber == nil {
				props.ASNumber = peer.LocalAsn
			} else if *peer.LocalAsn != *props.ASNumber {
				c.logger.Warn("node uses multiple local AS numbers",
					"node", name,
					"asn", *props.ASNumber,
					"other", *peer.LocalAsn)
			}
		}
		owner, owned := owners[peer.RemoteIP.String()]
		sameAsn := peer.LocalAsn != nil && peer.RemoteAsn != nil &&
			*peer.LocalAsn == *peer.RemoteAsn
		if owned && sameAsn {
			node(owner)
			props.Policies[owner] = block.Policies
			continue
		}
		key := externalKey{ip: peer.RemoteIP, asn: -1}
		if peer.RemoteAsn != nil {
			key.asn = *peer.RemoteAsn
		}
		ep, ok := externals[key]
		if !ok {
			ep = &aast.ExternalPeer{IP: peer.RemoteIP, ASNumber: peer.RemoteAsn}
			externals[key] = ep
			c.metrics.externalPeer()
		}
		ep.Peering = append(ep.Peering, name)
		props.Policies[peer.RemoteIP.String()] = block.Policies
	}
}

func asnOrder(asn *int) int {
	if asn == nil {
		return -1
	}
	return *asn
}
