package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-photon-mapper/pkg/core"
)

func randomSamples(random *rand.Rand, n int) []core.Vec2 {
	out := make([]core.Vec2, n)
	for i := range out {
		out[i] = core.NewVec2(random.Float64(), random.Float64())
	}
	return out
}

func TestBxDFType_Matches(t *testing.T) {
	tests := []struct {
		name  string
		typ   BxDFType
		flags BxDFType
		want  bool
	}{
		{"diffuse reflection in all", BxDFReflection | BxDFDiffuse, BxDFAll, true},
		{"diffuse reflection in all reflection", BxDFReflection | BxDFDiffuse, BxDFAllReflection, true},
		{"diffuse reflection in all transmission", BxDFReflection | BxDFDiffuse, BxDFAllTransmission, false},
		{"specular excluded", BxDFReflection | BxDFSpecular, BxDFAll &^ BxDFSpecular, false},
		{"glossy in reflection|glossy", BxDFReflection | BxDFGlossy, BxDFReflection | BxDFGlossy, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.Matches(tt.flags))
		})
	}
	assert.Equal(t, "reflection|specular", (BxDFReflection | BxDFSpecular).String())
	assert.Equal(t, "none", BxDFType(0).String())
}

func TestFresnelDielectric(t *testing.T) {
	f := NewFresnelDielectric(1, 1.5)

	// Normal incidence: ((n1-n2)/(n1+n2))²
	assert.InDelta(t, 0.04, f.Evaluate(1).X, 1e-12)
	// Grazing incidence reflects everything
	assert.InDelta(t, 1, f.Evaluate(0).X, 1e-9)
	// From inside past the critical angle
	assert.Equal(t, 1.0, f.Evaluate(-0.1).X)
	// From inside at normal incidence is symmetric
	assert.InDelta(t, 0.04, f.Evaluate(-1).X, 1e-12)

	for c := 0.05; c <= 1; c += 0.05 {
		r := f.Evaluate(c).X
		assert.True(t, r >= 0 && r <= 1, "reflectance %f out of range at cos %f", r, c)
	}
}

func TestFresnelConductor(t *testing.T) {
	f := NewFresnelConductor(core.NewVec3(0.2, 0.9, 1.1), core.NewVec3(3.9, 2.4, 2.1))
	for c := 0.0; c <= 1; c += 0.1 {
		r := f.Evaluate(c)
		for _, v := range []float64{r.X, r.Y, r.Z} {
			assert.True(t, v > 0 && v <= 1, "reflectance %f out of range at cos %f", v, c)
		}
	}
	// Symmetric in the sign of the cosine
	assert.Equal(t, f.Evaluate(0.3), f.Evaluate(-0.3))
}

func TestLambertian_SampleAndPDF(t *testing.T) {
	l := &Lambertian{R: core.NewVec3(0.5, 0.7, 0.9)}
	random := rand.New(rand.NewSource(42))

	for _, wo := range []core.Vec3{core.NewVec3(0, 0, 1), core.NewVec3(0.3, 0, -0.9).Normalize()} {
		for i := 0; i < 100; i++ {
			wi, f, pdf := l.Sample(wo, core.NewVec2(random.Float64(), random.Float64()))
			require.True(t, sameHemisphere(wo, wi), "sample left the hemisphere of wo")
			assert.InDelta(t, absCosTheta(wi)/math.Pi, pdf, 1e-12)
			assert.InDelta(t, l.PDF(wo, wi), pdf, 1e-12)
			assert.Equal(t, l.R.Multiply(1/math.Pi), f)
		}
	}
	assert.Equal(t, 0.0, l.PDF(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)))
}

func TestOrenNayar_ZeroRoughnessIsLambertian(t *testing.T) {
	o := NewOrenNayar(core.Gray(0.8), 0)
	wo := core.NewVec3(0.5, 0.1, 0.7).Normalize()
	wi := core.NewVec3(-0.2, 0.6, 0.4).Normalize()
	assert.InDelta(t, 0.8/math.Pi, o.Evaluate(wo, wi).X, 1e-12)
}

func TestOrenNayar_RoughnessDarkensRetroreflection(t *testing.T) {
	o := NewOrenNayar(core.Gray(0.8), 30)
	wo := core.NewVec3(0.6, 0, 0.8)
	retro := o.Evaluate(wo, wo).X
	forward := o.Evaluate(wo, core.NewVec3(-0.6, 0, 0.8)).X
	assert.Greater(t, retro, forward)
}

func TestRhoEstimators_Lambertian(t *testing.T) {
	// The generic estimators must converge to the closed form
	o := NewOrenNayar(core.Gray(0.6), 0)
	random := rand.New(rand.NewSource(11))

	rhoHD := estimateRhoHD(&o, core.NewVec3(0.2, 0.1, 0.9).Normalize(), randomSamples(random, 64))
	assert.InDelta(t, 0.6, rhoHD.X, 1e-9, "cosine sampling is exact for a constant lobe")

	rhoHH := estimateRhoHH(&o, randomSamples(random, 4096), randomSamples(random, 4096))
	assert.InDelta(t, 0.6, rhoHH.X, 0.03)

	assert.True(t, estimateRhoHD(&o, core.NewVec3(0, 0, 1), nil).IsBlack())
}

func TestSpecularReflection_Sample(t *testing.T) {
	s := &SpecularReflection{R: core.Gray(0.9), Fresnel: FresnelNoOp{}}
	wo := core.NewVec3(0.6, 0, 0.8)

	wi, f, pdf := s.Sample(wo, core.NewVec2(0.1, 0.9))
	assert.Equal(t, core.NewVec3(-0.6, 0, 0.8), wi)
	assert.Equal(t, 1.0, pdf)
	assert.InDelta(t, 0.9/0.8, f.X, 1e-12)
	assert.Equal(t, 0.0, s.PDF(wo, wi))
	assert.True(t, s.Evaluate(wo, wi).IsBlack())

	rho := s.RhoHD(wo, randomSamples(rand.New(rand.NewSource(1)), 4))
	assert.InDelta(t, 0.9, rho.X, 1e-12)
}

func TestSpecularTransmission_Snell(t *testing.T) {
	s := NewSpecularTransmission(core.Gray(1), 1, 1.5)

	wo := core.NewVec3(math.Sin(math.Pi/4), 0, math.Cos(math.Pi/4))
	wi, f, pdf := s.Sample(wo, core.Vec2{})
	require.Equal(t, 1.0, pdf)
	assert.Less(t, wi.Z, 0.0, "entering ray continues below the surface")
	assert.InDelta(t, math.Sin(math.Pi/4)/1.5, sinTheta(wi), 1e-12)
	assert.Less(t, wi.X, 0.0, "refracted ray keeps travelling away from wo")
	assert.InDelta(t, 1, wi.Length(), 1e-12)

	fr := dielectricReflectance(wo.Z, 1, 1.5)
	assert.InDelta(t, (1-fr)/absCosTheta(wi), f.X, 1e-12)

	// Leaving the dense medium at a steep angle is totally internally reflected
	steep := core.NewVec3(0.9, 0, -math.Sqrt(1-0.81))
	_, _, pdf = s.Sample(steep, core.Vec2{})
	assert.Equal(t, 0.0, pdf)
}

func TestTorranceSparrow_SampleConsistency(t *testing.T) {
	ts := &TorranceSparrow{
		R:            core.Gray(1),
		Fresnel:      NewFresnelConductor(core.NewVec3(0.2, 0.9, 1.1), core.NewVec3(3.9, 2.4, 2.1)),
		Distribution: NewBlinn(0.05),
	}
	random := rand.New(rand.NewSource(5))
	wo := core.NewVec3(0.3, 0.2, 0.9).Normalize()

	valid := 0
	for i := 0; i < 300; i++ {
		wi, f, pdf := ts.Sample(wo, core.NewVec2(random.Float64(), random.Float64()))
		if pdf == 0 {
			continue
		}
		valid++
		assert.True(t, sameHemisphere(wo, wi))
		assert.InDelta(t, 1, wi.Length(), 1e-9)
		assert.InDelta(t, ts.PDF(wo, wi), pdf, 1e-6*pdf)
		assert.Equal(t, ts.Evaluate(wo, wi), f)
	}
	assert.Greater(t, valid, 250)

	rho := ts.RhoHD(wo, randomSamples(random, 2048))
	assert.Greater(t, rho.X, 0.0)
	assert.Less(t, rho.X, 1.05, "microfacet lobe must not create energy")
}

func TestScaledBxDF(t *testing.T) {
	l := &Lambertian{R: core.Gray(0.5)}
	s := &ScaledBxDF{BxDF: l, Scale: core.NewVec3(1, 0.5, 0)}
	wo := core.NewVec3(0, 0, 1)

	assert.Equal(t, l.Type(), s.Type())
	assert.Equal(t, core.NewVec3(0.5/math.Pi, 0.25/math.Pi, 0), s.Evaluate(wo, wo))
	assert.Equal(t, core.NewVec3(0.5, 0.25, 0), s.RhoHH(nil, nil))

	wi, f, pdf := s.Sample(wo, core.NewVec2(0.3, 0.3))
	assert.Equal(t, l.PDF(wo, wi), pdf)
	assert.Equal(t, s.Evaluate(wo, wi), f)
}
