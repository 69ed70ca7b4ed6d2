package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalSamples   int     // Total number of samples kept
	Rejected       int     // Samples thrown away by the sampler
	AverageSamples float64 // Average samples per pixel
	MinSamples     int     // Minimum samples taken per pixel
	MaxSamplesUsed int     // Maximum samples actually used by any pixel
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	LuminanceAccum   float64   // Luminance accumulator for convergence
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of samples taken
	Rejected         int       // Samples the sampler asked to discard
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// Film accumulates samples into per-pixel statistics. Workers may write to
// the film concurrently as long as they own disjoint pixels, which holds for
// tiles handed out by a BlockQueue.
type Film struct {
	Width, Height int
	pixels        []PixelStats
}

// NewFilm creates an empty film
func NewFilm(width, height int) *Film {
	return &Film{
		Width:  width,
		Height: height,
		pixels: make([]PixelStats, width*height),
	}
}

// Pixel returns the statistics of pixel (x, y)
func (f *Film) Pixel(x, y int) *PixelStats {
	return &f.pixels[y*f.Width+x]
}

// AddSample accumulates color into the sample's pixel. Samples outside the
// film are ignored.
func (f *Film) AddSample(x, y int, c core.Vec3) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	f.Pixel(x, y).AddSample(c)
}

// reject records n discarded samples for pixel (x, y)
func (f *Film) reject(x, y, n int) {
	if x >= 0 && y >= 0 && x < f.Width && y < f.Height {
		f.Pixel(x, y).Rejected += n
	}
}

// Stats summarizes the samples accumulated so far
func (f *Film) Stats() RenderStats {
	stats := RenderStats{TotalPixels: len(f.pixels)}
	if len(f.pixels) == 0 {
		return stats
	}
	stats.MinSamples = f.pixels[0].SampleCount
	for i := range f.pixels {
		n := f.pixels[i].SampleCount
		stats.TotalSamples += n
		stats.MinSamples = min(stats.MinSamples, n)
		stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, n)
		stats.Rejected += f.pixels[i].Rejected
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	return stats
}

// Image converts the film to an 8-bit image with gamma 2
func (f *Film) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(f.Pixel(x, y).GetColor()))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Apply gamma correction (gamma = 2.0)
	colorVec = colorVec.GammaCorrect(2.0)

	// Clamp to valid color range
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// CalculateAverageLuminance returns the mean luminance of an image in [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	n := bounds.Dx() * bounds.Dy()
	if n == 0 {
		return 0
	}
	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c := core.NewVec3(float64(r), float64(g), float64(b)).Multiply(1.0 / 0xffff)
			total += c.Luminance()
		}
	}
	return total / float64(n)
}
