// Package serialize implements the schema-directed codec between typed AST
// nodes and the loosely-typed wire documents exchanged with the analysis
// engine and the downstream verifier.
//
// A wire document is a JSON-compatible tree of maps, slices and scalars
// (the shape produced by encoding/json when unmarshalling into any). The
// package provides:
//
//   - Typed field accessors (String, Int, Bool, Addr, Prefix, ...) that
//     coerce a wire value to its declared scalar type, with optional
//     defaults for absent keys.
//   - Shape combinators (List, Set, MapOf, AddrMapOf) that decode
//     containers element-wise, recursively applying the same rules.
//   - Discriminator handling: ClassName strips a dotted namespace prefix,
//     a $-separated subclass marker and a trailing parenthesized
//     type-argument suffix, and Registry maps the remaining bare name to a
//     concrete node constructor for one variant family.
//
// Decoding fails with a *DecodeError when a required key is absent or a
// value cannot be coerced, and with an *UnknownVariantError when a
// discriminator names an unregistered variant. Encoding is total for any
// value the codec itself produced.
package serialize
