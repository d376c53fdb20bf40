// Package convert recompiles decoded routing policy into the verifier IR:
// expressions translate over a closed variant vocabulary, statement blocks
// are normalized into explicit guarded control flow with functional
// environment updates, and per-node declarations and BGP peerings are
// assembled into a network document.
//
// Conversion fails fast: any source construct without a sound mapping is
// an UnsupportedConstructError, never a silently wrong approximation. The
// two deliberate approximations (AS-path tests become nondeterministic
// choices, next-hop and path-prepend updates are dropped) are explicit in
// the output or documented here.
package convert
