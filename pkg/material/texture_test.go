package material

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestSolidColor(t *testing.T) {
	color := core.NewVec3(0.2, 0.4, 0.6)
	texture := NewSolidColor(color)

	points := []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(-10, 5, 3), core.NewVec3(1e6, -1e6, 0)}
	for _, p := range points {
		if got := texture.Evaluate(core.NewVec2(0.7, 0.1), p); !got.Equals(color) {
			t.Errorf("SolidColor at %v: expected %v, got %v", p, color, got)
		}
	}
}

func TestCheckerTexture(t *testing.T) {
	even := core.NewVec3(1, 1, 1)
	odd := core.NewVec3(0, 0, 0)
	checker := mustChecker(NewCheckerTextureFromColors(0.5, even, odd))

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		{"origin cell", core.NewVec3(0.1, 0.1, 0.1), even},
		{"next cell in x", core.NewVec3(0.6, 0.1, 0.1), odd},
		{"next cell in y", core.NewVec3(0.1, 0.6, 0.1), odd},
		{"diagonal cell", core.NewVec3(0.6, 0.6, 0.1), even},
		{"three steps", core.NewVec3(0.6, 0.6, 0.6), odd},
		{"negative cell", core.NewVec3(-0.1, 0.1, 0.1), odd},
		{"two negative cells", core.NewVec3(-0.1, -0.1, 0.1), even},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.Evaluate(core.Vec2{}, tt.point)
			if !got.Equals(tt.expected) {
				t.Errorf("Checker at %v: expected %v, got %v", tt.point, tt.expected, got)
			}
		})
	}
}

// mustChecker unwraps a checker constructor; test scales are always valid
func mustChecker(c *CheckerTexture, err error) *CheckerTexture {
	if err != nil {
		panic(err)
	}
	return c
}

func TestNewCheckerTexture_InvalidScale(t *testing.T) {
	red := NewSolidColor(core.NewVec3(1, 0, 0))
	blue := NewSolidColor(core.NewVec3(0, 0, 1))

	tests := []struct {
		name    string
		scale   float64
		wantErr bool
	}{
		{"positive", 0.32, false},
		{"tiny", 1e-9, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"NaN", math.NaN(), true},
		{"+Inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker, err := NewCheckerTexture(tt.scale, red, blue)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCheckerScale) {
					t.Errorf("Expected ErrInvalidCheckerScale, got %v", err)
				}
				if checker != nil {
					t.Errorf("Expected no texture on error, got %v", checker)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got := checker.Evaluate(core.Vec2{}, core.Vec3{}); !got.Equals(red.Color) {
				t.Errorf("Origin cell should be even, got %v", got)
			}
		})
	}

	if _, err := NewCheckerTextureFromColors(0, core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1)); !errors.Is(err, ErrInvalidCheckerScale) {
		t.Errorf("Color constructor should reject zero scale, got %v", err)
	}
}

func TestCheckerTextureNested(t *testing.T) {
	inner := mustChecker(NewCheckerTextureFromColors(0.1, core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)))
	outer := mustChecker(NewCheckerTexture(1.0, inner, NewSolidColor(core.NewVec3(0, 0, 1))))

	// Even outer cell delegates to the inner checker
	if got := outer.Evaluate(core.Vec2{}, core.NewVec3(0.05, 0.05, 0.05)); !got.Equals(core.NewVec3(1, 0, 0)) {
		t.Errorf("Expected inner even color, got %v", got)
	}
	if got := outer.Evaluate(core.Vec2{}, core.NewVec3(1.05, 0.05, 0.05)); !got.Equals(core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected outer odd color, got %v", got)
	}
}

func TestDiffuseLight(t *testing.T) {
	light := NewDiffuseLight(core.NewVec3(4, 4, 4))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), Material: light}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	if _, scattered := light.Scatter(ray, hit, core.NewSeededSampler(1)); scattered {
		t.Error("DiffuseLight should never scatter")
	}

	if got := EmittedLight(hit); !got.Equals(core.NewVec3(4, 4, 4)) {
		t.Errorf("Expected emission (4,4,4), got %v", got)
	}

	// Back face emits the same radiance
	hit.FrontFace = false
	hit.Normal = core.NewVec3(0, -1, 0)
	if got := EmittedLight(hit); !got.Equals(core.NewVec3(4, 4, 4)) {
		t.Errorf("Expected back face emission (4,4,4), got %v", got)
	}
}

func TestEmittedLight_NonEmitterIsBlack(t *testing.T) {
	hit := HitRecord{Material: NewLambertian(core.NewVec3(0.5, 0.5, 0.5))}
	if got := EmittedLight(hit); !got.Equals(core.Vec3{}) {
		t.Errorf("Non-emissive material should emit black, got %v", got)
	}
}

func TestIsotropic(t *testing.T) {
	albedo := core.NewVec3(0.3, 0.6, 0.9)
	iso := NewIsotropic(NewSolidColor(albedo))
	hit := HitRecord{Point: core.NewVec3(1, 2, 3), Normal: core.NewVec3(1, 0, 0), FrontFace: true}
	ray := core.NewRayAtTime(core.NewVec3(0, 0, 0), core.NewVec3(1, 2, 3), 0.4)
	sampler := core.NewSeededSampler(7)

	var sum core.Vec3
	const n = 2000
	for i := 0; i < n; i++ {
		scatter, scattered := iso.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatal("Isotropic should always scatter")
		}
		dir := scatter.Scattered.Direction
		if length := dir.Length(); length < 1-1e-9 || length > 1+1e-9 {
			t.Fatalf("Expected unit direction, got length %f", length)
		}
		if !scatter.Attenuation.Equals(albedo) {
			t.Fatalf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
		if scatter.Scattered.Time != 0.4 {
			t.Fatalf("Expected time 0.4, got %f", scatter.Scattered.Time)
		}
		sum = sum.Add(dir)
	}

	// Uniform directions average out near zero
	if mean := sum.Multiply(1.0 / n); mean.Length() > 0.1 {
		t.Errorf("Isotropic directions look biased, mean %v", mean)
	}
}

func TestHitRecordSetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 0, 1)

	var rec HitRecord
	rec.SetFaceNormal(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), outward)
	if !rec.FrontFace || !rec.Normal.Equals(outward) {
		t.Errorf("Ray from outside: expected front face with normal %v, got %t %v", outward, rec.FrontFace, rec.Normal)
	}

	rec.SetFaceNormal(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)), outward)
	if rec.FrontFace || !rec.Normal.Equals(outward.Negate()) {
		t.Errorf("Ray from inside: expected back face with normal %v, got %t %v", outward.Negate(), rec.FrontFace, rec.Normal)
	}
}
