package bast

import "github.com/NetworkVerification/angler-sub000/pkg/serialize"

// Expression is implemented by every source expression variant.
type Expression interface {
	// Encode returns the wire object for this node, including its
	// "class" discriminator.
	Encode() serialize.Object
	bastExpr()
}

// Family markers. Each expression family gets an interface so that node
// fields carry the narrowest type the engine's schema allows; the markers
// are satisfied by embedding the matching zero-size struct. The marker
// method names differ from the marker type names so the promoted methods
// are not shadowed by the embedded field.

// BooleanExpr is a boolean-valued expression (policy guards).
type BooleanExpr interface {
	Expression
	boolExpr()
}

// CommunitySetExpr evaluates to a set of BGP communities.
type CommunitySetExpr interface {
	Expression
	isCommSetExpr()
}

// CommunityMatchExpr is a predicate over a single community.
type CommunityMatchExpr interface {
	Expression
	isCommMatchExpr()
}

// CommunitySetMatchExpr is a predicate over a community set.
type CommunitySetMatchExpr interface {
	Expression
	isCommSetMatchExpr()
}

// LongExpr is a 64-bit integer expression.
type LongExpr interface {
	Expression
	isLongExpr()
}

// IntExpr is a 32-bit integer expression.
type IntExpr interface {
	Expression
	isIntExpr()
}

// PrefixExpr evaluates to an IP prefix.
type PrefixExpr interface {
	Expression
	isPrefixExpr()
}

// PrefixSetExpr evaluates to a set of IP prefixes.
type PrefixSetExpr interface {
	Expression
	isPrefixSetExpr()
}

// NextHopExpr names a next hop for a route.
type NextHopExpr interface {
	Expression
	isNextHopExpr()
}

// OriginExpr evaluates to a BGP origin type.
type OriginExpr interface {
	Expression
	isOriginExpr()
}

// AsExpr evaluates to a single AS number.
type AsExpr interface {
	Expression
	isAsExpr()
}

// AsPathListExpr evaluates to a list of AS numbers to prepend.
type AsPathListExpr interface {
	Expression
	isAsPathListExpr()
}

type booleanExpr struct{}

func (booleanExpr) bastExpr() {}
func (booleanExpr) boolExpr() {}

type commSetExpr struct{}

func (commSetExpr) bastExpr()      {}
func (commSetExpr) isCommSetExpr() {}

type commMatchExpr struct{}

func (commMatchExpr) bastExpr()        {}
func (commMatchExpr) isCommMatchExpr() {}

type commSetMatchExpr struct{}

func (commSetMatchExpr) bastExpr()           {}
func (commSetMatchExpr) isCommSetMatchExpr() {}

type longExpr struct{}

func (longExpr) bastExpr()   {}
func (longExpr) isLongExpr() {}

type intExpr struct{}

func (intExpr) bastExpr()  {}
func (intExpr) isIntExpr() {}

type prefixExpr struct{}

func (prefixExpr) bastExpr()     {}
func (prefixExpr) isPrefixExpr() {}

type prefixSetExpr struct{}

func (prefixSetExpr) bastExpr()        {}
func (prefixSetExpr) isPrefixSetExpr() {}

type nextHopExpr struct{}

func (nextHopExpr) bastExpr()      {}
func (nextHopExpr) isNextHopExpr() {}

type originExpr struct{}

func (originExpr) bastExpr()     {}
func (originExpr) isOriginExpr() {}

type asExpr struct{}

func (asExpr) bastExpr() {}
func (asExpr) isAsExpr() {}

type asPathListExpr struct{}

func (asPathListExpr) bastExpr()         {}
func (asPathListExpr) isAsPathListExpr() {}
