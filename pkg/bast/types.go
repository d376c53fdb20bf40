package bast

import (
	"fmt"

	"github.com/NetworkVerification/angler-sub000/pkg/serialize"
)

// ClassKey is the wire key carrying the discriminator of every
// polymorphic source node.
const ClassKey = "class"

// Action is the disposition of a filter line.
type Action string

const (
	ActionPermit Action = "PERMIT"
	ActionDeny   Action = "DENY"
)

func decodeAction(v any) (Action, error) {
	s, err := serialize.AsString(v)
	if err != nil {
		return "", err
	}
	switch a := Action(s); a {
	case ActionPermit, ActionDeny:
		return a, nil
	}
	return "", &serialize.DecodeError{Message: fmt.Sprintf("unknown action %q", s)}
}

// Protocol is a routing protocol named by a MatchProtocol expression.
type Protocol string

const (
	ProtocolBGP       Protocol = "bgp"
	ProtocolIBGP      Protocol = "ibgp"
	ProtocolOSPF      Protocol = "ospf"
	ProtocolStatic    Protocol = "static"
	ProtocolConnected Protocol = "connected"
	ProtocolAggregate Protocol = "aggregate"
	ProtocolLocal     Protocol = "local"
	ProtocolIsisEL1   Protocol = "isisEL1"
	ProtocolIsisEL2   Protocol = "isisEL2"
	ProtocolIsisL1    Protocol = "isisL1"
	ProtocolIsisL2    Protocol = "isisL2"
)

func decodeProtocol(v any) (Protocol, error) {
	s, err := serialize.AsString(v)
	if err != nil {
		return "", err
	}
	switch p := Protocol(s); p {
	case ProtocolBGP, ProtocolIBGP, ProtocolOSPF, ProtocolStatic,
		ProtocolConnected, ProtocolAggregate, ProtocolLocal,
		ProtocolIsisEL1, ProtocolIsisEL2, ProtocolIsisL1, ProtocolIsisL2:
		return p, nil
	}
	return "", &serialize.DecodeError{Message: fmt.Sprintf("unknown protocol %q", s)}
}

// OriginType describes how a route entered BGP.
type OriginType string

const (
	OriginIncomplete OriginType = "incomplete"
	OriginEGP        OriginType = "egp"
	OriginIGP        OriginType = "igp"
)

// Int returns the integer encoding of the origin type used by the target
// representation (incomplete=0, egp=1, igp=2).
func (o OriginType) Int() int {
	switch o {
	case OriginIncomplete:
		return 0
	case OriginEGP:
		return 1
	case OriginIGP:
		return 2
	}
	return 0
}

func decodeOriginType(v any) (OriginType, error) {
	s, err := serialize.AsString(v)
	if err != nil {
		return "", err
	}
	switch o := OriginType(s); o {
	case OriginIncomplete, OriginEGP, OriginIGP:
		return o, nil
	}
	return "", &serialize.DecodeError{Message: fmt.Sprintf("unknown origin type %q", s)}
}

// Comparator is the relation applied by a MatchTag expression.
type Comparator string

const (
	CmpEQ Comparator = "EQ"
	CmpGE Comparator = "GE"
	CmpGT Comparator = "GT"
	CmpLE Comparator = "LE"
	CmpLT Comparator = "LT"
)

func decodeComparator(v any) (Comparator, error) {
	s, err := serialize.AsString(v)
	if err != nil {
		return "", err
	}
	switch c := Comparator(s); c {
	case CmpEQ, CmpGE, CmpGT, CmpLE, CmpLT:
		return c, nil
	}
	return "", &serialize.DecodeError{Message: fmt.Sprintf("unknown comparator %q", s)}
}
