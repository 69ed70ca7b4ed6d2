package lights

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
)

func TestQuadLight_SampleEmission(t *testing.T) {
	const tolerance = 1e-9

	// Unit square in the XY plane facing +z
	emission := core.NewVec3(5.0, 5.0, 5.0)
	light := NewQuadLight(core.NewVec3(-0.5, -0.5, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), emission)
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		sample := light.SampleEmission(
			core.NewVec2(random.Float64(), random.Float64()),
			core.NewVec2(random.Float64(), random.Float64()),
		)

		if math.Abs(sample.Point.Z) > tolerance {
			t.Fatalf("Sample point not on quad surface: Z = %f", sample.Point.Z)
		}
		if sample.Point.X < -0.5 || sample.Point.X > 0.5 || sample.Point.Y < -0.5 || sample.Point.Y > 0.5 {
			t.Fatalf("Sample point outside quad bounds: %v", sample.Point)
		}
		if sample.Direction.Z < 0 {
			t.Fatalf("Emission direction below the light: %v", sample.Direction)
		}
		if math.Abs(sample.AreaPDF-1.0) > tolerance {
			t.Errorf("AreaPDF = %f, expected 1", sample.AreaPDF)
		}
		expectedDirPDF := sample.Direction.Z / math.Pi
		if math.Abs(sample.DirectionPDF-expectedDirPDF) > tolerance {
			t.Errorf("DirectionPDF = %f, expected %f", sample.DirectionPDF, expectedDirPDF)
		}
		if math.Abs(sample.PDF()-sample.AreaPDF*sample.DirectionPDF) > tolerance {
			t.Errorf("PDF() = %f, expected product of area and direction pdfs", sample.PDF())
		}
		if sample.Emission != emission {
			t.Errorf("Emission = %v, expected %v", sample.Emission, emission)
		}
	}
}

func TestQuadLight_Power(t *testing.T) {
	light := NewQuadLight(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 3, 0), core.NewVec3(1, 2, 3))
	expected := core.NewVec3(1, 2, 3).Multiply(6 * math.Pi)
	if light.Power().Subtract(expected).Length() > 1e-9 {
		t.Errorf("Power = %v, expected %v", light.Power(), expected)
	}
	if light.Type() != LightTypeArea {
		t.Errorf("Type = %s, expected area", light.Type())
	}
}

func TestSphereLight_SampleEmission(t *testing.T) {
	center := core.NewVec3(1, 2, 3)
	light := NewSphereLight(center, 0.5, core.Gray(4))
	random := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		sample := light.SampleEmission(
			core.NewVec2(random.Float64(), random.Float64()),
			core.NewVec2(random.Float64(), random.Float64()),
		)
		if d := sample.Point.Subtract(center).Length(); math.Abs(d-0.5) > 1e-9 {
			t.Fatalf("Sample point at distance %f from center, expected 0.5", d)
		}
		if sample.Direction.Dot(sample.Normal) < 0 {
			t.Fatalf("Emission direction points into the sphere")
		}
		expectedAreaPDF := 1 / (4 * math.Pi * 0.25)
		if math.Abs(sample.AreaPDF-expectedAreaPDF) > 1e-9 {
			t.Errorf("AreaPDF = %f, expected %f", sample.AreaPDF, expectedAreaPDF)
		}
	}

	expectedPower := 4 * math.Pi * 0.25 * math.Pi * 4
	if math.Abs(light.Power().X-expectedPower) > 1e-9 {
		t.Errorf("Power = %f, expected %f", light.Power().X, expectedPower)
	}
}

func TestDiscLight_SampleEmission(t *testing.T) {
	center := core.NewVec3(0, 3, 0)
	light := NewDiscLight(center, core.NewVec3(0, -1, 0), 0.5, core.Gray(2))
	random := rand.New(rand.NewSource(3))

	for i := 0; i < 100; i++ {
		sample := light.SampleEmission(
			core.NewVec2(random.Float64(), random.Float64()),
			core.NewVec2(random.Float64(), random.Float64()),
		)
		if math.Abs(sample.Point.Y-3) > 1e-9 || sample.Point.Subtract(center).Length() > 0.5+1e-9 {
			t.Fatalf("Sample point %v not on the disc", sample.Point)
		}
		if sample.Direction.Y > 0 {
			t.Fatalf("Emission direction %v points away from the lit side", sample.Direction)
		}
		if math.Abs(sample.AreaPDF-1/(math.Pi*0.25)) > 1e-9 {
			t.Errorf("AreaPDF = %f, expected 1/(π·0.25)", sample.AreaPDF)
		}
	}

	expectedPower := math.Pi * 0.25 * math.Pi * 2
	if math.Abs(light.Power().X-expectedPower) > 1e-9 {
		t.Errorf("Power = %f, expected %f", light.Power().X, expectedPower)
	}
	if light.Shape() != geometry.Shape(light.Disc) {
		t.Error("Shape should be the embedded disc")
	}
}

func TestEmissionSample_Ray(t *testing.T) {
	s := EmissionSample{Point: core.NewVec3(0, 1, 0), Direction: core.NewVec3(0, -1, 0)}
	ray := s.Ray(0.001)
	if ray.TMin != 0.001 || !math.IsInf(ray.TMax, 1) {
		t.Errorf("Ray interval = (%f, %f), expected (0.001, +inf)", ray.TMin, ray.TMax)
	}
	if ray.Origin != s.Point || ray.Direction != s.Direction {
		t.Errorf("Ray = %+v, expected origin %v direction %v", ray, s.Point, s.Direction)
	}
}

func TestPowerLightSampler(t *testing.T) {
	bright := NewQuadLight(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.Gray(3))
	dim := NewQuadLight(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.Gray(1))
	sampler := NewPowerLightSampler([]Light{bright, dim})

	if sampler.GetLightCount() != 2 {
		t.Fatalf("GetLightCount = %d, expected 2", sampler.GetLightCount())
	}
	if p := sampler.GetLightProbability(0); math.Abs(p-0.75) > 1e-9 {
		t.Errorf("Probability of bright light = %f, expected 0.75", p)
	}

	light, pdf, index := sampler.SampleLightEmission(0.5)
	if light != Light(bright) || index != 0 || math.Abs(pdf-0.75) > 1e-9 {
		t.Errorf("SampleLightEmission(0.5) = (%v, %f, %d), expected bright light with pdf 0.75", light, pdf, index)
	}
	light, pdf, index = sampler.SampleLightEmission(0.9)
	if light != Light(dim) || index != 1 || math.Abs(pdf-0.25) > 1e-9 {
		t.Errorf("SampleLightEmission(0.9) = (%v, %f, %d), expected dim light with pdf 0.25", light, pdf, index)
	}
}

func TestSampleLightEmission_NoLights(t *testing.T) {
	_, pdf, ok := SampleLightEmission(NewPowerLightSampler(nil), 0.5, core.Vec2{}, core.Vec2{})
	if ok || pdf != 0 {
		t.Errorf("Expected no emission without lights, got ok=%v pdf=%f", ok, pdf)
	}

	light := NewSphereLight(core.NewVec3(0, 0, 0), 1, core.Gray(1))
	sample, pdf, ok := SampleLightEmission(NewPowerLightSampler([]Light{light}), 0.5, core.NewVec2(0.3, 0.3), core.NewVec2(0.6, 0.6))
	if !ok || pdf != 1 {
		t.Fatalf("Expected single light to be selected with pdf 1, got ok=%v pdf=%f", ok, pdf)
	}
	if sample.PDF() <= 0 {
		t.Errorf("Expected positive emission pdf, got %f", sample.PDF())
	}
}
