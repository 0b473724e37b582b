package game

import (
	"math"
	"testing"

	"fireworks/internal/firework"
)

func TestShakeDecays(t *testing.T) {
	var s Shake
	r := firework.NewRand(1)
	s.Add(ShakeIntensity, ShakeDuration)
	s.Add(ShakeIntensity/2, ShakeDuration/2)
	if s.Intensity != ShakeIntensity || s.Timer != ShakeDuration {
		t.Fatalf("Add kept the weaker jolt: %+v", s)
	}

	s.Update(1.0/60, r)
	if math.Abs(s.X) > ShakeIntensity || math.Abs(s.Y) > ShakeIntensity {
		t.Fatalf("offset exceeds intensity: %+v", s)
	}
	for range 30 {
		s.Update(1.0/60, r)
	}
	if s.X != 0 || s.Y != 0 || s.Timer != 0 {
		t.Fatalf("shake did not settle: %+v", s)
	}
}

func TestShakeApplyKeepsDirection(t *testing.T) {
	cam := firework.NewCamera(1)
	s := Shake{X: 0.5, Y: -0.25}
	moved := s.Apply(*cam)
	if moved.Eye.Sub(moved.Target) != cam.Eye.Sub(cam.Target) {
		t.Fatalf("view direction changed")
	}
	if moved.Eye[0] != 0.5 || moved.Eye[1] != -0.25 {
		t.Fatalf("Eye\nhave %v", moved.Eye)
	}
	if cam.Eye[0] != 0 {
		t.Fatalf("Apply mutated the source camera")
	}
}
