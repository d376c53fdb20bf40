package convert

import (
	"fmt"
	"net/netip"
	"sort"
	"strconv"
	"strings"

	"github.com/NetworkVerification/angler-sub000/pkg/aast"
	"github.com/NetworkVerification/angler-sub000/pkg/bast"
)

// StructureResult is the conversion of one declaration row. At most one of
// Func, Const and Vrf is set; all nil means the declaration does not
// participate in conversion (access lists, IPv6 filter lists, non-default
// VRFs). Name is already mangled for constants.
type StructureResult struct {
	Node string
	Name string

	Func  *aast.Func
	Const aast.Expression
	Vrf   *VrfPeers
}

// AsnPeer identifies one BGP session by its endpoints. The AS fields may
// be nil when the source omits them.
type AsnPeer struct {
	LocalAsn  *int
	LocalIP   netip.Addr
	RemoteAsn *int
	RemoteIP  netip.Addr
}

// PeerBlock pairs a session with the policies applied to it.
type PeerBlock struct {
	Peer     AsnPeer
	Policies *aast.Policies
}

// VrfPeers is the conversion of a default-VRF BGP process: the router id
// and the node's sessions, ordered by remote address.
type VrfPeers struct {
	Router netip.Addr
	Peers  []PeerBlock
}

// Structure converts one declaration row.
func (c *Converter) Structure(s bast.Structure) (StructureResult, error) {
	res := StructureResult{Node: s.Node.Name, Name: s.Name}
	switch d := s.Definition.(type) {
	case *bast.RoutingPolicy:
		f, err := c.Policy(d)
		if err != nil {
			return StructureResult{}, err
		}
		res.Func = f
	case *bast.RouteFilterList:
		ms, err := c.routeFilterList(d)
		if err != nil {
			return StructureResult{}, err
		}
		res.Name = routeFilterListName(s.Name)
		res.Const = ms
	case *bast.Route6FilterList:
		// IPv6 is out of scope
	case *bast.Acl:
		// packet filters do not touch routing policy
	case *bast.Vrf:
		if d.Name == bast.DefaultVrfName && d.Bgp != nil {
			res.Vrf = vrfPeers(d.Bgp)
		}
	case bast.CommunitySetMatchExpr:
		e, err := c.Expr(d)
		if err != nil {
			return StructureResult{}, err
		}
		res.Name = communityMatchName(s.Name)
		res.Const = e
	default:
		return StructureResult{}, &UnsupportedConstructError{Kind: "structure", Node: s.Definition}
	}
	c.metrics.structureConverted(string(s.Type))
	return res, nil
}

// routeFilterList compiles a filter list into a permit condition and a
// deny condition. Filter lists are first-match-wins, so each line fires
// only in conjunction with the negation of every earlier line's test; a
// side with no lines is the literal false.
func (c *Converter) routeFilterList(l *bast.RouteFilterList) (*aast.MatchSet, error) {
	var permits, denies, prior []aast.Expression
	for _, line := range l.Lines {
		minLen, maxLen, err := parseLengthRange(line.LengthRange, line.IPWildcard)
		if err != nil {
			return nil, fmt.Errorf("filter list %q: %w", l.Name, err)
		}
		cond := &aast.PrefixMatches{
			Wildcard:  line.IPWildcard,
			MinLength: minLen,
			MaxLength: maxLen,
		}
		fires := aast.Expression(cond)
		if len(prior) > 0 {
			guards := make([]aast.Expression, 0, len(prior)+1)
			for _, p := range prior {
				guards = append(guards, &aast.Not{Expr: p})
			}
			guards = append(guards, cond)
			fires = &aast.Conjunction{Conjuncts: guards}
		}
		if line.Action == bast.ActionPermit {
			permits = append(permits, fires)
		} else {
			denies = append(denies, fires)
		}
		prior = append(prior, cond)
	}
	return &aast.MatchSet{Permit: disjoin(permits), Deny: disjoin(denies)}, nil
}

func disjoin(es []aast.Expression) aast.Expression {
	if len(es) == 0 {
		return boolLit(false)
	}
	return &aast.Disjunction{Disjuncts: es}
}

// parseLengthRange reads a "lo-hi" prefix length range. A bare "n" means
// exactly n; an empty range means exactly the wildcard's own length.
func parseLengthRange(s string, wildcard netip.Prefix) (int, int, error) {
	if s == "" {
		return wildcard.Bits(), wildcard.Bits(), nil
	}
	lo, hi, ranged := strings.Cut(s, "-")
	minLen, err := strconv.Atoi(lo)
	if err != nil {
		return 0, 0, fmt.Errorf("length range %q: %w", s, err)
	}
	if !ranged {
		return minLen, minLen, nil
	}
	maxLen, err := strconv.Atoi(hi)
	if err != nil {
		return 0, 0, fmt.Errorf("length range %q: %w", s, err)
	}
	return minLen, maxLen, nil
}

func vrfPeers(bgp *bast.BgpProcess) *VrfPeers {
	peers := make([]PeerBlock, 0, len(bgp.Neighbors))
	for _, cfg := range bgp.Neighbors {
		peers = append(peers, PeerBlock{
			Peer: AsnPeer{
				LocalAsn:  cfg.LocalAs,
				LocalIP:   cfg.LocalIP,
				RemoteAsn: cfg.RemoteAs,
				RemoteIP:  cfg.PeerIP,
			},
			Policies: peerPolicies(cfg),
		})
	}
	sort.Slice(peers, func(i, j int) bool {
		return peers[i].Peer.RemoteIP.Less(peers[j].Peer.RemoteIP)
	})
	return &VrfPeers{Router: bgp.Router, Peers: peers}
}

func peerPolicies(cfg bast.BgpActivePeerConfig) *aast.Policies {
	p := &aast.Policies{Asn: cfg.RemoteAs}
	if name := cfg.AddressFamily.ImportPolicy; name != "" {
		p.Import = &name
	}
	if name := cfg.AddressFamily.ExportPolicy; name != "" {
		p.Export = &name
	}
	return p
}
