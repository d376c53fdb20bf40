// Package aast models the verifier-facing IR: a small expression language
// with records, sets, and prefix tests, plus guarded statement blocks. All
// route and result state is threaded through a single environment argument
// with functional field updates; nothing is mutated in place.
//
// Every polymorphic node carries a "$type" discriminator. Some node tags
// embed type arguments ("GetField(Environment;Bool)") or a bit width
// ("UInt32", "Plus32"); decoding strips the parenthesized arguments before
// registry lookup and recovers them from the suffix.
package aast
