package bast

import (
	"fmt"

	"github.com/NetworkVerification/angler-sub000/pkg/serialize"
)

// RoutingPolicy is a named policy: an ordered statement block.
type RoutingPolicy struct {
	Name       string
	Statements []Statement
}

// DecodeRoutingPolicy decodes a wire value into a RoutingPolicy.
func DecodeRoutingPolicy(v any) (*RoutingPolicy, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return nil, err
	}
	name, err := serialize.String(o, "name")
	if err != nil {
		return nil, err
	}
	stmts, err := DecodeStatements(o, "statements")
	if err != nil {
		return nil, err
	}
	return &RoutingPolicy{Name: name, Statements: stmts}, nil
}

// Encode returns the wire object for the policy.
func (p *RoutingPolicy) Encode() serialize.Object {
	return serialize.Object{"name": p.Name, "statements": EncodeStatements(p.Statements)}
}

// StructureType discriminates the payload of a named structure row.
type StructureType string

const (
	StructCommunityMatch   StructureType = "Community_Set_Match_Expr"
	StructIPAccessList     StructureType = "IP_Access_List"
	StructRouteFilterList  StructureType = "Route_Filter_List"
	StructRoute6FilterList StructureType = "Route6_Filter_List"
	StructRoutingPolicy    StructureType = "Routing_Policy"
	StructVrf              StructureType = "VRF"
)

// Structure is one row of the named structures query: a declaration owned
// by a node. Definition holds the typed payload according to Type: one of
// *RoutingPolicy, *RouteFilterList, *Route6FilterList, *Acl, *Vrf, or a
// CommunitySetMatchExpr.
type Structure struct {
	Node       Node
	Type       StructureType
	Name       string
	Definition any
}

// DecodeStructure decodes a wire value into a Structure, resolving the
// definition payload by structure type.
func DecodeStructure(v any) (Structure, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return Structure{}, err
	}
	nv, err := serialize.Raw(o, "Node")
	if err != nil {
		return Structure{}, err
	}
	node, err := DecodeNode(nv)
	if err != nil {
		return Structure{}, err
	}
	ty, err := serialize.String(o, "Structure_Type")
	if err != nil {
		return Structure{}, err
	}
	name, err := serialize.String(o, "Structure_Name")
	if err != nil {
		return Structure{}, err
	}
	def, err := serialize.Obj(o, "Structure_Definition")
	if err != nil {
		return Structure{}, err
	}
	value, err := serialize.Obj(def, "value")
	if err != nil {
		return Structure{}, err
	}
	s := Structure{Node: node, Type: StructureType(ty), Name: name}
	switch s.Type {
	case StructRoutingPolicy:
		s.Definition, err = DecodeRoutingPolicy(value)
	case StructRouteFilterList:
		s.Definition, err = DecodeRouteFilterList(value)
	case StructRoute6FilterList:
		s.Definition, err = DecodeRoute6FilterList(value)
	case StructIPAccessList:
		s.Definition, err = DecodeAcl(value)
	case StructVrf:
		s.Definition, err = DecodeVrf(value)
	case StructCommunityMatch:
		s.Definition, err = decodeCommunityMatchStructure(value)
	default:
		return Structure{}, &serialize.DecodeError{
			Key:     "Structure_Type",
			Message: fmt.Sprintf("unknown structure type %q", ty),
		}
	}
	if err != nil {
		return Structure{}, err
	}
	return s, nil
}

// decodeCommunityMatchStructure resolves the concrete set-match variant of
// a community match declaration. These rows omit the discriminator, so the
// variant is inferred from the payload's shape: a single "expr" field is a
// HasCommunity, an "exprs" field a CommunitySetMatchAll.
func decodeCommunityMatchStructure(value serialize.Object) (CommunitySetMatchExpr, error) {
	if _, ok := value[ClassKey]; ok {
		return DecodeCommunitySetMatchExpr(value)
	}
	if _, ok := value["expr"]; ok {
		e, err := decodeHasCommunity(value)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	if _, ok := value["exprs"]; ok {
		e, err := decodeCommunitySetMatchAll(value)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, &serialize.DecodeError{
		Key:     "Structure_Definition",
		Message: "cannot infer community set match variant",
	}
}

// Encode returns the wire object for the structure row.
func (s Structure) Encode() serialize.Object {
	var value any
	switch d := s.Definition.(type) {
	case *RoutingPolicy:
		value = d.Encode()
	case *RouteFilterList:
		value = d.Encode()
	case *Route6FilterList:
		value = d.Encode()
	case *Acl:
		value = d.Encode()
	case *Vrf:
		value = d.Encode()
	case CommunitySetMatchExpr:
		value = d.Encode()
	}
	return serialize.Object{
		"Node":                 s.Node.Encode(),
		"Structure_Type":       string(s.Type),
		"Structure_Name":       s.Name,
		"Structure_Definition": serialize.Object{"value": value},
	}
}
