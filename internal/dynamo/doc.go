// Package dynamo implements the kinematics of the hand/poi chain.
//
// Each side of the simulator is a compound rotation: the hand orbits a fixed
// origin and the poi orbits the hand. The package provides:
//
//   - [SimDelta]: converts elapsed wall time into simulated time
//   - [Advance]: moves a side's phase accumulators forward
//   - [Derive]: computes the Cartesian positions of origin, hand and poi
//
// # Example
//
//	dt := dynamo.SimDelta(16*time.Millisecond, common.SpeedRate)
//	dynamo.Advance(&side.Rotation, dt)
//	pos := dynamo.Derive(side.Rotation, common.Scale)
//
// Angles are never reduced modulo 2π. Inputs are assumed finite; validation
// happens in package config before values get here.
package dynamo
