package analyzer

import "math"

// LogExposureReference converts an exposure value and exposure time into
// Log E (log10 lux-seconds) for the unattenuated light hitting the step
// wedge. An EV of 0 corresponds to 2.5 lux; illuminance doubles per EV.
// The 1000 factor converts to the meter-candela-second scale densitometry
// charts are conventionally drawn in.
func LogExposureReference(ev, exposureTime float64) float64 {
	lux := 2.5 * math.Pow(2, ev)
	return math.Log10(lux * 1000 * exposureTime)
}
