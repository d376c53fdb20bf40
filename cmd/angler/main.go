// Angler converts network snapshots exported from a Batfish session into
// a verifier-ready network model.
//
// It decodes the exported JSON document, recompiles every routing policy
// into a function with explicit control flow, and assembles the per-node
// declarations and BGP peerings into a single output document.
//
// Usage:
//
//	# Convert a snapshot
//	angler convert snapshot.json
//
//	# Convert with simplification and an explicit output path
//	angler convert snapshot.json --simplify -o network.json
//
//	# Keep converting whenever the snapshot changes
//	angler convert snapshot.json --watch
//
//	# Show version information
//	angler version
package main

func main() {
	Execute()
}
