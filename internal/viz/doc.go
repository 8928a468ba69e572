// Package viz is the terminal host for the simulator.
//
// [Surface] implements render.Surface on a braille [Canvas]: every dot keeps a
// color, translucent fills blend into it, and a dot is drawn only while it stands
// out from the background. That is enough for the afterimage trail to fade the way
// it does on a real canvas.
//
// [Model] is a Bubble Tea program with a scenario menu and a live screen. The loop
// runs on its own goroutine and hands finished frames to the program.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	n/p   - Next/previous scenario
//	s     - Toggle left to right sync
//	1/2   - Number of loci
//	g     - Toggle grid
//	+/-   - Afterimage
//	[/]   - Speed
//	Up/Dn - Left hand radius
//	r     - Reset parameters
//	t     - Cycle themes
//	?     - Show help overlay
package viz
