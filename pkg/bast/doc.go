// Package bast models the analysis engine's representation of routing
// policy: the typed form of the JSON document exported from a Batfish
// session. Every polymorphic node carries a "class" discriminator naming
// its concrete variant; the package registers the closed vocabulary of
// variants per family (statements, boolean expressions, community
// expressions, and so on) and decodes documents through
// serialize.Registry lookups.
//
// Decoded trees are immutable: the converter reads them and produces an
// independent target tree, never mutating or aliasing source nodes.
package bast
