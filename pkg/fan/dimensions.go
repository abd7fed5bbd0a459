package fan

import (
	"fmt"
	"math"
)

// pixelsPerMM converts millimetres to CSS pixels at 96 dpi.
const pixelsPerMM = 3.78

// Dimensions are the printed sizes of a fan and its frame, in millimetres.
type Dimensions struct {
	FanWidthMM    int `json:"fan_width_mm"`
	FrameWidthMM  int `json:"frame_width_mm"`
	FrameHeightMM int `json:"frame_height_mm"`
}

// Frame formats the frame size as "WxH".
func (d Dimensions) Frame() string {
	return fmt.Sprintf("%dx%d", d.FrameWidthMM, d.FrameHeightMM)
}

type dimensionKey struct {
	angle       int
	generations int
	marriages   bool
}

var (
	large  = Dimensions{FanWidthMM: 301, FrameWidthMM: 331, FrameHeightMM: 287}
	circle = Dimensions{FanWidthMM: 297, FrameWidthMM: 331, FrameHeightMM: 331}
	medium = Dimensions{FanWidthMM: 245, FrameWidthMM: 260, FrameHeightMM: 260}
)

var dimensionTable = map[dimensionKey]Dimensions{
	{270, 8, true}:  large,
	{270, 8, false}: large,
	{270, 7, true}:  large,
	{270, 7, false}: medium,
	{360, 8, true}:  circle,
	{360, 8, false}: circle,
	{360, 7, true}:  circle,
	{360, 7, false}: medium,
}

// LookupDimensions returns the predefined print dimensions for a fan angle
// in degrees, a generation count and the marriage setting. ok is false for
// combinations without a predefined frame.
func LookupDimensions(angleDeg, generations int, marriages bool) (Dimensions, bool) {
	d, ok := dimensionTable[dimensionKey{angleDeg, generations, marriages}]
	return d, ok
}

// Fitting maps weight units to pixels for a drawing.
type Fitting struct {
	Radius float64 `json:"radius"`
	Scale  float64 `json:"scale"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Fit sizes a fan of the given total weight to the fan width of dims. angle
// is the fan angle in radians and firstWeight the configured weight of the
// first band. The height covers the lower part of the circle that the fan
// actually reaches, and at least the root disc.
func Fit(dims Dimensions, totalWeight, firstWeight, angle float64) Fitting {
	radius := mmToPixels(math.Round(float64(dims.FanWidthMM) / 2))
	f := Fitting{
		Radius: radius,
		Width:  2 * radius,
	}
	if totalWeight > 0 {
		f.Scale = radius / totalWeight
		f.Height = radius + math.Max(radius*math.Cos(math.Pi-angle/2), radius*firstWeight/totalWeight)
	}
	return f
}

func mmToPixels(mm float64) float64 {
	return mm * pixelsPerMM
}
