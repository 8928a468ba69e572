// Package analysis inspects the closed curves a side traces.
//
// For integer angular velocities the poi path closes after [Period] simulated time
// units and shows [Petals] lobes around the origin. [SampleSide] records positions
// at a fixed step without touching a surface, for plots, stored runs and SVG export.
//
//	period, ok := analysis.Period(side.Rotation)
//	if ok {
//	    samples := analysis.SampleSide(side, 1, period, 0.01)
//	}
package analysis
