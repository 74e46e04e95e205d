// Package geo projects geographic coordinates into viewport screen
// space using the Web Mercator projection, matching what the map widget
// on the client renders.
package geo

import "math"

// Latitudes beyond this are not representable in Web Mercator.
const maxLatitude = 85.05112878

// Coordinate is a geographic position.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Point is a screen-space position in pixels, origin top-left.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Span is the visible region extent in degrees.
type Span struct {
	LatDelta float64 `json:"latDelta"`
	LonDelta float64 `json:"lonDelta"`
}

// Viewport describes the visible map region and its on-screen size.
// A Viewport is immutable; selecting a station captures the viewport in
// effect at selection time.
type Viewport struct {
	Center Coordinate
	Span   Span
	Width  float64
	Height float64
}

// mercator maps a coordinate into the unit square, x growing east and
// y growing south.
func mercator(c Coordinate) (x, y float64) {
	lat := math.Max(-maxLatitude, math.Min(maxLatitude, c.Latitude))
	x = (c.Longitude + 180) / 360
	latRad := lat * math.Pi / 180
	y = (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2
	return x, y
}

// Project converts a geographic coordinate into pixel space relative to
// the viewport. Coordinates outside the visible region project to
// points outside [0,Width]x[0,Height]; callers decide whether to clip.
func (v Viewport) Project(c Coordinate) Point {
	cx, cy := mercator(v.Center)
	px, py := mercator(c)

	spanX := v.Span.LonDelta / 360
	_, topY := mercator(Coordinate{Latitude: v.Center.Latitude + v.Span.LatDelta/2, Longitude: v.Center.Longitude})
	_, bottomY := mercator(Coordinate{Latitude: v.Center.Latitude - v.Span.LatDelta/2, Longitude: v.Center.Longitude})
	spanY := bottomY - topY

	if spanX == 0 || spanY == 0 || v.Width == 0 || v.Height == 0 {
		return Point{X: v.Width / 2, Y: v.Height / 2}
	}

	return Point{
		X: (px-cx)/spanX*v.Width + v.Width/2,
		Y: (py-cy)/spanY*v.Height + v.Height/2,
	}
}
