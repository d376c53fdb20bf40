package convert

import (
	"errors"
	"net/netip"
	"reflect"
	"testing"

	"github.com/NetworkVerification/angler-sub000/pkg/aast"
	"github.com/NetworkVerification/angler-sub000/pkg/bast"
)

func mustPrefix(t *testing.T, s string) netip.Prefix {
	t.Helper()
	return netip.MustParsePrefix(s)
}

func TestRouteFilterListFirstMatchWins(t *testing.T) {
	c := newConverter(t, Options{})
	got, err := c.routeFilterList(&bast.RouteFilterList{
		Name: "pl",
		Lines: []bast.RouteFilterLine{
			{Action: bast.ActionPermit, IPWildcard: mustPrefix(t, "10.0.0.0/8"), LengthRange: "24-32"},
			{Action: bast.ActionDeny, IPWildcard: mustPrefix(t, "0.0.0.0/0"), LengthRange: "0-32"},
		},
	})
	if err != nil {
		t.Fatalf("routeFilterList: %v", err)
	}
	first := &aast.PrefixMatches{Wildcard: mustPrefix(t, "10.0.0.0/8"), MinLength: 24, MaxLength: 32}
	second := &aast.PrefixMatches{Wildcard: mustPrefix(t, "0.0.0.0/0"), MinLength: 0, MaxLength: 32}
	want := &aast.MatchSet{
		Permit: &aast.Disjunction{Disjuncts: []aast.Expression{first}},
		Deny: &aast.Disjunction{Disjuncts: []aast.Expression{
			&aast.Conjunction{Conjuncts: []aast.Expression{
				&aast.Not{Expr: first},
				second,
			}},
		}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got  %#v\nwant %#v", got, want)
	}
}

func TestRouteFilterListEmpty(t *testing.T) {
	c := newConverter(t, Options{})
	got, err := c.routeFilterList(&bast.RouteFilterList{Name: "empty"})
	if err != nil {
		t.Fatalf("routeFilterList: %v", err)
	}
	want := &aast.MatchSet{Permit: boolLit(false), Deny: boolLit(false)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got  %#v\nwant %#v", got, want)
	}
}

func TestParseLengthRange(t *testing.T) {
	wildcard := netip.MustParsePrefix("10.0.0.0/8")
	tests := []struct {
		in       string
		min, max int
		ok       bool
	}{
		{"", 8, 8, true},
		{"16", 16, 16, true},
		{"24-32", 24, 32, true},
		{"eight", 0, 0, false},
	}
	for _, tt := range tests {
		minLen, maxLen, err := parseLengthRange(tt.in, wildcard)
		if (err == nil) != tt.ok {
			t.Fatalf("parseLengthRange(%q) error = %v", tt.in, err)
		}
		if err == nil && (minLen != tt.min || maxLen != tt.max) {
			t.Errorf("parseLengthRange(%q) = (%d, %d), want (%d, %d)",
				tt.in, minLen, maxLen, tt.min, tt.max)
		}
	}
}

func intp(n int) *int { return &n }

func neighbor(localAs, remoteAs int, local, remote string, importPolicy string) bast.BgpActivePeerConfig {
	return bast.BgpActivePeerConfig{
		AddressFamily: bast.Ipv4UnicastAddressFamily{ImportPolicy: importPolicy},
		LocalAs:       intp(localAs),
		LocalIP:       netip.MustParseAddr(local),
		RemoteAs:      intp(remoteAs),
		PeerIP:        netip.MustParseAddr(remote),
	}
}

func TestStructureVrf(t *testing.T) {
	c := newConverter(t, Options{})
	res, err := c.Structure(bast.Structure{
		Node: bast.Node{ID: "n1", Name: "r1"},
		Type: bast.StructVrf,
		Name: "default",
		Definition: &bast.Vrf{
			Name: bast.DefaultVrfName,
			Bgp: &bast.BgpProcess{
				Router: netip.MustParseAddr("10.0.0.1"),
				Neighbors: map[netip.Addr]bast.BgpActivePeerConfig{
					netip.MustParseAddr("10.0.2.2"): neighbor(65000, 65001, "10.0.2.1", "10.0.2.2", ""),
					netip.MustParseAddr("10.0.1.2"): neighbor(65000, 65000, "10.0.1.1", "10.0.1.2", "peer-in"),
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Structure: %v", err)
	}
	if res.Vrf == nil {
		t.Fatal("default VRF should produce peers")
	}
	if res.Vrf.Router != netip.MustParseAddr("10.0.0.1") {
		t.Errorf("router = %v", res.Vrf.Router)
	}
	if len(res.Vrf.Peers) != 2 {
		t.Fatalf("got %d peers", len(res.Vrf.Peers))
	}
	// ordered by remote address
	if res.Vrf.Peers[0].Peer.RemoteIP != netip.MustParseAddr("10.0.1.2") {
		t.Errorf("first peer = %v", res.Vrf.Peers[0].Peer.RemoteIP)
	}
	pol := res.Vrf.Peers[0].Policies
	if pol.Import == nil || *pol.Import != "peer-in" {
		t.Errorf("import policy = %v", pol.Import)
	}
	if pol.Export != nil {
		t.Errorf("absent export policy should stay nil, got %v", pol.Export)
	}

	res, err = c.Structure(bast.Structure{
		Node:       bast.Node{ID: "n1", Name: "r1"},
		Type:       bast.StructVrf,
		Name:       "mgmt",
		Definition: &bast.Vrf{Name: "mgmt"},
	})
	if err != nil {
		t.Fatalf("Structure: %v", err)
	}
	if res.Vrf != nil || res.Func != nil || res.Const != nil {
		t.Errorf("non-default VRF should convert to nothing: %+v", res)
	}
}

func TestStructureCommunityMatch(t *testing.T) {
	c := newConverter(t, Options{})
	res, err := c.Structure(bast.Structure{
		Node:       bast.Node{ID: "n1", Name: "r1"},
		Type:       bast.StructCommunityMatch,
		Name:       "cm",
		Definition: &bast.HasCommunity{Expr: &bast.CommunityIs{Community: "65000:1"}},
	})
	if err != nil {
		t.Fatalf("Structure: %v", err)
	}
	if res.Name != "community-match-cm" {
		t.Errorf("name = %q", res.Name)
	}
	want := aast.Expression(&aast.LiteralString{Value: "65000:1"})
	if !reflect.DeepEqual(res.Const, want) {
		t.Errorf("const = %#v", res.Const)
	}
}

func TestStructureUnsupported(t *testing.T) {
	c := newConverter(t, Options{})
	_, err := c.Structure(bast.Structure{
		Node:       bast.Node{ID: "n1", Name: "r1"},
		Type:       "Quantum_Tunnel",
		Name:       "x",
		Definition: "not a structure",
	})
	var uc *UnsupportedConstructError
	if !errors.As(err, &uc) {
		t.Fatalf("expected *UnsupportedConstructError, got %v", err)
	}
}

func vrfDecl(node, router string, neighbors map[netip.Addr]bast.BgpActivePeerConfig) bast.Structure {
	return bast.Structure{
		Node: bast.Node{ID: node, Name: node},
		Type: bast.StructVrf,
		Name: "default",
		Definition: &bast.Vrf{
			Name: bast.DefaultVrfName,
			Bgp:  &bast.BgpProcess{Router: netip.MustParseAddr(router), Neighbors: neighbors},
		},
	}
}

func TestNetworkAssembly(t *testing.T) {
	c := newConverter(t, Options{})
	doc := &bast.BatfishJson{
		IPs: []bast.OwnedIP{
			{Active: true, IP: netip.MustParseAddr("10.0.1.1"), Interface: "Ethernet1", Mask: 24, Node: bast.Node{ID: "r1", Name: "r1"}},
			{Active: true, IP: netip.MustParseAddr("10.0.1.2"), Interface: "Ethernet1", Mask: 24, Node: bast.Node{ID: "r2", Name: "r2"}},
		},
		Declarations: []bast.Structure{
			{
				Node: bast.Node{ID: "r1", Name: "r1"},
				Type: bast.StructRoutingPolicy,
				Name: "peer-in",
				Definition: &bast.RoutingPolicy{
					Name: "peer-in",
					Statements: []bast.Statement{
						&bast.IfStatement{
							Guard: &bast.MatchPrefixSet{
								Prefix:    &bast.DestinationNetwork{},
								PrefixSet: &bast.NamedPrefixSet{Name: "pl"},
							},
							TrueStmts: []bast.Statement{
								&bast.StaticStatement{Type: bast.StaticExitAccept},
							},
						},
					},
				},
			},
			{
				Node: bast.Node{ID: "r1", Name: "r1"},
				Type: bast.StructRouteFilterList,
				Name: "pl",
				Definition: &bast.RouteFilterList{
					Name: "pl",
					Lines: []bast.RouteFilterLine{
						{Action: bast.ActionPermit, IPWildcard: netip.MustParsePrefix("10.0.0.0/8"), LengthRange: "8-32"},
					},
				},
			},
			vrfDecl("r1", "10.0.0.1", map[netip.Addr]bast.BgpActivePeerConfig{
				netip.MustParseAddr("10.0.1.2"):  neighbor(65000, 65000, "10.0.1.1", "10.0.1.2", "peer-in"),
				netip.MustParseAddr("172.16.0.1"): neighbor(65000, 65001, "10.0.3.1", "172.16.0.1", ""),
			}),
			vrfDecl("r2", "10.0.0.2", map[netip.Addr]bast.BgpActivePeerConfig{
				netip.MustParseAddr("10.0.1.1"): neighbor(65000, 65000, "10.0.1.2", "10.0.1.1", ""),
			}),
		},
	}

	net, err := c.Network(doc)
	if err != nil {
		t.Fatalf("Network: %v", err)
	}
	if len(net.Nodes) != 2 {
		t.Fatalf("got %d nodes: %v", len(net.Nodes), net.Nodes)
	}

	r1 := net.Nodes["r1"]
	if r1 == nil {
		t.Fatal("r1 missing")
	}
	if r1.ASNumber == nil || *r1.ASNumber != 65000 {
		t.Errorf("r1 AS = %v", r1.ASNumber)
	}
	if _, ok := r1.Prefixes[netip.MustParsePrefix("10.0.0.0/24")]; !ok {
		t.Errorf("r1 prefixes = %v", r1.Prefixes)
	}

	// same-AS session to an address owned by r2 is an internal peering
	pol, ok := r1.Policies["r2"]
	if !ok {
		t.Fatalf("r1 policies = %v", r1.Policies)
	}
	if pol.Import == nil || *pol.Import != "peer-in" {
		t.Errorf("r2 import = %v", pol.Import)
	}
	if _, ok := net.Nodes["r2"].Policies["r1"]; !ok {
		t.Errorf("r2 policies = %v", net.Nodes["r2"].Policies)
	}

	// the cross-AS session is an external peer, also visible in the
	// node's policy table under the raw address
	if len(net.Externals) != 1 {
		t.Fatalf("externals = %v", net.Externals)
	}
	ext := net.Externals[0]
	if ext.IP != netip.MustParseAddr("172.16.0.1") {
		t.Errorf("external ip = %v", ext.IP)
	}
	if ext.ASNumber == nil || *ext.ASNumber != 65001 {
		t.Errorf("external AS = %v", ext.ASNumber)
	}
	if !reflect.DeepEqual(ext.Peering, []string{"r1"}) {
		t.Errorf("external peering = %v", ext.Peering)
	}
	if _, ok := r1.Policies["172.16.0.1"]; !ok {
		t.Errorf("r1 policies = %v", r1.Policies)
	}

	// the filter list constant is inlined: no reference to its mangled
	// name survives in the policy body
	f := r1.Declarations["peer-in"]
	if f == nil {
		t.Fatal("peer-in missing from r1 declarations")
	}
	sawMatchSet := false
	for _, s := range f.Body {
		aast.WalkStmt(s, func(aast.Statement) bool { return true }, func(e aast.Expression) bool {
			if v, ok := e.(*aast.Var); ok && v.Name == "route-filter-list-pl" {
				t.Errorf("filter list reference not inlined: %#v", v)
			}
			if _, ok := e.(*aast.MatchSet); ok {
				sawMatchSet = true
			}
			return true
		})
	}
	if !sawMatchSet {
		t.Error("inlined filter list not found in policy body")
	}
}

// An internal neighbor that declares nothing itself must still appear in
// the output, so the policy tables never name an absent node.
func TestNetworkCreatesSilentInternalNeighbor(t *testing.T) {
	c := newConverter(t, Options{})
	doc := &bast.BatfishJson{
		IPs: []bast.OwnedIP{
			{Active: true, IP: netip.MustParseAddr("10.0.1.2"), Interface: "Ethernet1", Mask: 24, Node: bast.Node{ID: "r2", Name: "r2"}},
		},
		Declarations: []bast.Structure{
			vrfDecl("r1", "10.0.0.1", map[netip.Addr]bast.BgpActivePeerConfig{
				netip.MustParseAddr("10.0.1.2"): neighbor(65000, 65000, "10.0.1.1", "10.0.1.2", ""),
			}),
		},
	}
	net, err := c.Network(doc)
	if err != nil {
		t.Fatalf("Network: %v", err)
	}
	if _, ok := net.Nodes["r1"].Policies["r2"]; !ok {
		t.Fatalf("r1 policies = %v", net.Nodes["r1"].Policies)
	}
	r2, ok := net.Nodes["r2"]
	if !ok {
		t.Fatalf("silent internal neighbor missing: nodes = %v", net.Nodes)
	}
	if len(r2.Policies) != 0 || len(r2.Declarations) != 0 {
		t.Errorf("r2 should be empty, got %+v", r2)
	}
	if len(net.Externals) != 0 {
		t.Errorf("externals = %v", net.Externals)
	}
}

func TestNetworkPropagatesConversionErrors(t *testing.T) {
	c := newConverter(t, Options{})
	doc := &bast.BatfishJson{
		Declarations: []bast.Structure{
			{
				Node: bast.Node{ID: "r1", Name: "r1"},
				Type: bast.StructRoutingPolicy,
				Name: "bad",
				Definition: &bast.RoutingPolicy{
					Name: "bad",
					Statements: []bast.Statement{
						&bast.StaticStatement{Type: "Levitate"},
					},
				},
			},
		},
	}
	_, err := c.Network(doc)
	var uc *UnsupportedConstructError
	if !errors.As(err, &uc) {
		t.Fatalf("expected *UnsupportedConstructError, got %v", err)
	}
}
