// Package numeric provides the small array toolkit the topology engine
// consumes for its derived per-molecule arrays.
//
// The package defines:
//
//   - [Array]: 1-D float vector (masses, flattened coordinates)
//   - [Vec3]: a single 3-component vector (one atom's position or momentum)
//   - [Matrix]: row-major N×C matrix built with [Stack] or [Broadcast]
//
// Every constructor preserves input ordering exactly; row i of a matrix
// built from a slice always corresponds to element i of that slice.
//
// # Example
//
//	masses := numeric.Array{12.0, 1.008, 1.008}
//	dim := numeric.Broadcast(masses, 3) // 3×3, each row repeats one mass
//	pos := numeric.Stack([]numeric.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
package numeric
