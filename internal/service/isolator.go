package service

import (
	"image"
	"image/color"
	"math"
)

// HueRange is an inclusive HSV window in 8-bit OpenCV units:
// hue 0-180 (degrees halved), saturation and value 0-255.
type HueRange struct {
	HueMin, HueMax uint8
	SatMin, SatMax uint8
	ValMin, ValMax uint8
}

func (r HueRange) contains(h, s, v uint8) bool {
	return h >= r.HueMin && h <= r.HueMax &&
		s >= r.SatMin && s <= r.SatMax &&
		v >= r.ValMin && v <= r.ValMax
}

// Red wraps around the hue axis, so it needs a window at each end.
var DefaultRedRanges = []HueRange{
	{HueMin: 0, HueMax: 10, SatMin: 100, SatMax: 255, ValMin: 100, ValMax: 255},
	{HueMin: 170, HueMax: 180, SatMin: 100, SatMax: 255, ValMin: 100, ValMax: 255},
}

// RedInkIsolator keeps only red pixels of a page and binarizes them with a
// per-page Otsu threshold so black body text never reaches the recognizer.
type RedInkIsolator struct {
	ranges []HueRange
}

// NewRedInkIsolator creates an isolator for the given hue windows.
// No ranges means DefaultRedRanges.
func NewRedInkIsolator(ranges ...HueRange) *RedInkIsolator {
	if len(ranges) == 0 {
		ranges = DefaultRedRanges
	}
	return &RedInkIsolator{ranges: ranges}
}

// Isolate returns a 0/255 mask with the same bounds as img.
func (iso *RedInkIsolator) Isolate(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	var hist [256]int

	rgba, fast := img.(*image.RGBA)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var r, g, b uint8
			if fast {
				i := rgba.PixOffset(x, y)
				r, g, b = rgba.Pix[i], rgba.Pix[i+1], rgba.Pix[i+2]
			} else {
				c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
				r, g, b = c.R, c.G, c.B
			}

			var lum uint8
			if iso.selected(rgbToHSV(r, g, b)) {
				lum = luma(r, g, b)
			}
			gray.Pix[gray.PixOffset(x, y)] = lum
			hist[lum]++
		}
	}

	threshold := otsuThreshold(hist, bounds.Dx()*bounds.Dy())
	for i, p := range gray.Pix {
		if p > threshold {
			gray.Pix[i] = 255
		} else {
			gray.Pix[i] = 0
		}
	}
	return gray
}

func (iso *RedInkIsolator) selected(h, s, v uint8) bool {
	for _, r := range iso.ranges {
		if r.contains(h, s, v) {
			return true
		}
	}
	return false
}

// rgbToHSV follows OpenCV's 8-bit conversion: H is degrees/2, S and V are
// scaled to 0-255.
func rgbToHSV(r, g, b uint8) (h, s, v uint8) {
	rf, gf, bf := float64(r), float64(g), float64(b)
	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	diff := maxC - minC

	v = uint8(maxC)
	if maxC > 0 {
		s = uint8(math.Round(diff * 255 / maxC))
	}
	if diff == 0 {
		return 0, s, v
	}

	var deg float64
	switch maxC {
	case rf:
		deg = 60 * (gf - bf) / diff
	case gf:
		deg = 120 + 60*(bf-rf)/diff
	default:
		deg = 240 + 60*(rf-gf)/diff
	}
	if deg < 0 {
		deg += 360
	}
	return uint8(math.Round(deg / 2)), s, v
}

// luma uses the Rec.601 weights OpenCV applies for RGB to gray.
func luma(r, g, b uint8) uint8 {
	return uint8((299*uint32(r) + 587*uint32(g) + 114*uint32(b) + 500) / 1000)
}

// otsuThreshold picks the cutoff maximizing between-class variance of the
// histogram. Pixels strictly above the result are foreground.
func otsuThreshold(hist [256]int, total int) uint8 {
	if total == 0 {
		return 0
	}
	var sum float64
	for i, c := range hist {
		sum += float64(i * c)
	}

	var (
		sumB, weightB float64
		best          float64
		threshold     int
	)
	for t := 0; t < 256; t++ {
		weightB += float64(hist[t])
		if weightB == 0 {
			continue
		}
		weightF := float64(total) - weightB
		if weightF == 0 {
			break
		}
		sumB += float64(t * hist[t])
		meanB := sumB / weightB
		meanF := (sum - sumB) / weightF
		between := weightB * weightF * (meanB - meanF) * (meanB - meanF)
		if between > best {
			best = between
			threshold = t
		}
	}
	return uint8(threshold)
}
