package game

import (
	"math"
	"testing"
)

func TestGenBoom(t *testing.T) {
	short := genBoom(0, 1)
	long := genBoom(1, 1)
	if n := len(short) / 8; n < 0.7*SampleRate-1 || n > 0.7*SampleRate {
		t.Fatalf("frames\nhave %d\nwant about %d", n, int(0.7*SampleRate))
	}
	if len(long) <= len(short) {
		t.Fatalf("a bigger burst should ring longer: %d <= %d", len(long), len(short))
	}
	checkSamples(t, long)
}

func TestGenCrackle(t *testing.T) {
	buf := genCrackle(7)
	if len(buf) != int(0.35*SampleRate)*8 {
		t.Fatalf("len\nhave %d", len(buf))
	}
	checkSamples(t, buf)
}

func TestNilAudio(t *testing.T) {
	var a *Audio
	a.PlayLaunch(100)
	a.PlayCrackle()
}

func checkSamples(t *testing.T, buf []byte) {
	t.Helper()
	for i := 0; i < len(buf); i += 4 {
		bits := uint32(buf[i]) | uint32(buf[i+1])<<8 | uint32(buf[i+2])<<16 | uint32(buf[i+3])<<24
		v := math.Float32frombits(bits)
		if math.IsNaN(float64(v)) || v < -1 || v > 1 {
			t.Fatalf("sample %d out of range: %v", i/4, v)
		}
	}
}
