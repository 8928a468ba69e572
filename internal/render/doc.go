// Package render paints simulator frames onto a drawing surface.
//
// A [Surface] is the minimal 2D target the compositor needs: a global alpha,
// filled rectangles, stroked lines and filled circles, all in logical canvas
// units. Hosts provide their own implementation (software raster, terminal
// braille, raylib window).
//
// [Compositor.Compose] paints one frame: the afterimage fill, the grid, then the
// chain, arm and markers of every active side in a fixed order.
package render
