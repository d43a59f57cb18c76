// Package viz provides the terminal views of a molecule.
//
// The main entry point is the interactive [Inspector], a Bubble Tea program
// that lists chains, residues and atoms as a tree and can pop the selected
// element out of the molecule:
//
//   - [Inspector]: tree browser with detail pane and event log
//   - [EventLog]: a topology.Observer that keeps recent membership events
//   - [Canvas]: Braille-based pixel canvas
//   - [Camera]: rotates and projects atom positions onto a canvas
//
// # Key Bindings
//
//	j/k, ↑/↓ - Move the cursor
//	x        - Pop the selected atom, residue or chain
//	v        - Toggle the structure view
//	h/l      - Rotate the structure view
//	t        - Cycle color themes
//	q        - Quit
package viz
