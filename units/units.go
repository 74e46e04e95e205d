// Package units converts raw observation values into display units.
//
// The National Weather Service reports SI values: temperature in
// Celsius, wind speed in meters per second, wind direction in compass
// degrees, humidity in percent. Every function here is pure; the
// pointer-taking ones are nil-safe because each observation field is
// independently nullable upstream.
package units

import (
	"math"
	"strconv"
)

var cardinals = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// ToFahrenheit converts a Celsius temperature to Fahrenheit, formatted
// with exactly one decimal digit.
func ToFahrenheit(celsius float64) string {
	return strconv.FormatFloat(celsius*9/5+32, 'f', 1, 64)
}

// MetersPerSecondToMph converts a wind speed to whole miles per hour.
func MetersPerSecondToMph(mps *float64) *int {
	if mps == nil {
		return nil
	}
	v := int(math.Round(*mps * 2.237))
	return &v
}

// DegreesToCardinal maps a compass bearing onto one of the 8 cardinal
// labels. 360 wraps back to N; the index is normalized into [0,8) so
// negative bearings cannot escape the table.
func DegreesToCardinal(deg *float64) *string {
	if deg == nil {
		return nil
	}
	idx := int(math.Round(*deg/45)) % 8
	if idx < 0 {
		idx += 8
	}
	label := cardinals[idx]
	return &label
}

// RoundPercent rounds a relative humidity to the nearest whole percent.
func RoundPercent(pct *float64) *int {
	if pct == nil {
		return nil
	}
	v := int(math.Round(*pct))
	return &v
}
