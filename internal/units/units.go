// Package units defines the canonical length and time units used throughout
// the event record. Lengths are millimetres, times are nanoseconds.
package units

const (
	Millimeter = 1.0
	Centimeter = 10 * Millimeter
	Meter      = 1000 * Millimeter

	Nanosecond = 1.0
	Second     = 1e9 * Nanosecond

	// CLight is the speed of light in mm/ns.
	CLight = 299792458 * Meter / Second
)

// TimeToLength converts a time in ns to the c*t length equivalent in mm.
func TimeToLength(t float64) float64 {
	return t * Nanosecond * CLight
}
