package bast

import (
	"net/netip"

	"github.com/NetworkVerification/angler-sub000/pkg/serialize"
)

// RouteFilterLine is one permit/deny line of a route filter list. The
// wildcard gives the base prefix and the length range the prefix lengths
// the line covers, as "lo-hi".
type RouteFilterLine struct {
	Action      Action
	IPWildcard  netip.Prefix
	LengthRange string
}

// DecodeRouteFilterLine decodes a wire value into a RouteFilterLine.
func DecodeRouteFilterLine(v any) (RouteFilterLine, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return RouteFilterLine{}, err
	}
	av, err := serialize.Raw(o, "action")
	if err != nil {
		return RouteFilterLine{}, err
	}
	action, err := decodeAction(av)
	if err != nil {
		return RouteFilterLine{}, err
	}
	wildcard, err := serialize.Prefix(o, "ipWildcard")
	if err != nil {
		return RouteFilterLine{}, err
	}
	lengthRange, err := serialize.StringOr(o, "lengthRange", "")
	if err != nil {
		return RouteFilterLine{}, err
	}
	return RouteFilterLine{Action: action, IPWildcard: wildcard, LengthRange: lengthRange}, nil
}

// Encode returns the wire object for the line.
func (l RouteFilterLine) Encode() serialize.Object {
	return serialize.Object{
		"action":      string(l.Action),
		"ipWildcard":  l.IPWildcard.String(),
		"lengthRange": l.LengthRange,
	}
}

// RouteFilterList is a named ordered list of route filter lines.
type RouteFilterList struct {
	Name  string
	Lines []RouteFilterLine
}

// DecodeRouteFilterList decodes a wire value into a RouteFilterList.
func DecodeRouteFilterList(v any) (*RouteFilterList, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return nil, err
	}
	name, err := serialize.String(o, "name")
	if err != nil {
		return nil, err
	}
	lines, err := serialize.ListOr(o, "lines", DecodeRouteFilterLine)
	if err != nil {
		return nil, err
	}
	return &RouteFilterList{Name: name, Lines: lines}, nil
}

// Encode returns the wire object for the list.
func (l *RouteFilterList) Encode() serialize.Object {
	return serialize.Object{
		"name":  l.Name,
		"lines": serialize.EncodeList(l.Lines, func(ln RouteFilterLine) any { return ln.Encode() }),
	}
}

// Route6FilterList is the IPv6 counterpart of RouteFilterList. Its lines
// are retained uninterpreted; conversion skips these declarations.
type Route6FilterList struct {
	Name  string
	Lines []any
}

// DecodeRoute6FilterList decodes a wire value into a Route6FilterList.
func DecodeRoute6FilterList(v any) (*Route6FilterList, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return nil, err
	}
	name, err := serialize.String(o, "name")
	if err != nil {
		return nil, err
	}
	lines, err := serialize.ListOr(o, "lines", func(v any) (any, error) { return v, nil })
	if err != nil {
		return nil, err
	}
	return &Route6FilterList{Name: name, Lines: lines}, nil
}

// Encode returns the wire object for the list.
func (l *Route6FilterList) Encode() serialize.Object {
	return serialize.Object{
		"name":  l.Name,
		"lines": append([]any{}, l.Lines...),
	}
}

// AclLine is one line of an IP access list. The match condition, trace
// element and vendor id are retained uninterpreted.
type AclLine struct {
	Action         Action
	MatchCondition serialize.Object
	Name           string
	TraceElement   serialize.Object
	VendorID       serialize.Object
}

// DecodeAclLine decodes a wire value into an AclLine.
func DecodeAclLine(v any) (AclLine, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return AclLine{}, err
	}
	av, err := serialize.Raw(o, "action")
	if err != nil {
		return AclLine{}, err
	}
	action, err := decodeAction(av)
	if err != nil {
		return AclLine{}, err
	}
	name, err := serialize.StringOr(o, "name", "")
	if err != nil {
		return AclLine{}, err
	}
	line := AclLine{Action: action, Name: name}
	if mv := serialize.RawOr(o, "matchCondition", nil); mv != nil {
		if line.MatchCondition, err = serialize.AsObject(mv); err != nil {
			return AclLine{}, err
		}
	}
	if tv := serialize.RawOr(o, "traceElement", nil); tv != nil {
		if line.TraceElement, err = serialize.AsObject(tv); err != nil {
			return AclLine{}, err
		}
	}
	if vv := serialize.RawOr(o, "vendorStructureId", nil); vv != nil {
		if line.VendorID, err = serialize.AsObject(vv); err != nil {
			return AclLine{}, err
		}
	}
	return line, nil
}

// Encode returns the wire object for the line.
func (l AclLine) Encode() serialize.Object {
	o := serialize.Object{"action": string(l.Action), "name": l.Name}
	if l.MatchCondition != nil {
		o["matchCondition"] = l.MatchCondition
	}
	if l.TraceElement != nil {
		o["traceElement"] = l.TraceElement
	}
	if l.VendorID != nil {
		o["vendorStructureId"] = l.VendorID
	}
	return o
}

// Acl is a named IP access list.
type Acl struct {
	Name       string
	SourceName string
	SourceType string
	Lines      []AclLine
}

// DecodeAcl decodes a wire value into an Acl.
func DecodeAcl(v any) (*Acl, error) {
	o, err := serialize.AsObject(v)
	if err != nil {
		return nil, err
	}
	name, err := serialize.String(o, "name")
	if err != nil {
		return nil, err
	}
	srcName, err := serialize.StringOr(o, "sourceName", "")
	if err != nil {
		return nil, err
	}
	srcType, err := serialize.StringOr(o, "sourceType", "")
	if err != nil {
		return nil, err
	}
	lines, err := serialize.ListOr(o, "lines", DecodeAclLine)
	if err != nil {
		return nil, err
	}
	return &Acl{Name: name, SourceName: srcName, SourceType: srcType, Lines: lines}, nil
}

// Encode returns the wire object for the access list.
func (a *Acl) Encode() serialize.Object {
	return serialize.Object{
		"name":       a.Name,
		"sourceName": a.SourceName,
		"sourceType": a.SourceType,
		"lines":      serialize.EncodeList(a.Lines, func(l AclLine) any { return l.Encode() }),
	}
}
