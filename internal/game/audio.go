package game

import (
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// Voice limits. More simultaneous booms clip the speakers.
const (
	maxLaunchVoices  = 3
	maxCrackleVoices = 4
)

// Audio plays procedurally generated firework sounds.
type Audio struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64

	launches atomic.Int32
	crackles atomic.Int32
	variant  atomic.Uint64
}

// NewAudio opens the output device. The returned Audio is usable
// immediately; sounds are dropped until the device reports ready.
func NewAudio(volume float64) (*Audio, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	return &Audio{ctx: ctx, ready: ready, volume: clampF(volume, 0, 1)}, nil
}

func (a *Audio) isReady() bool {
	if a == nil {
		return false
	}
	select {
	case <-a.ready:
		return true
	default:
		return false
	}
}

// PlayLaunch plays a boom whose depth scales with particle count.
func (a *Audio) PlayLaunch(count int) {
	if !a.isReady() {
		return
	}
	if a.launches.Add(1) > maxLaunchVoices {
		a.launches.Add(-1)
		return
	}
	norm := clampF(float64(count-60)/240.0, 0, 1)
	seed := a.variant.Add(1) ^ uint64(time.Now().UnixNano())
	a.play(genBoom(norm, seed), 0.55+0.35*norm, &a.launches)
}

// PlayCrackle plays the short sizzle of a fizzle sub-burst.
func (a *Audio) PlayCrackle() {
	if !a.isReady() {
		return
	}
	if a.crackles.Add(1) > maxCrackleVoices {
		a.crackles.Add(-1)
		return
	}
	seed := a.variant.Add(1) ^ uint64(time.Now().UnixNano())
	a.play(genCrackle(seed), 0.25, &a.crackles)
}

func (a *Audio) play(samples []byte, gain float64, voices *atomic.Int32) {
	go func() {
		defer voices.Add(-1)
		player := a.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(a.volume * clampF(gain, 0, 1))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// lcg returns white noise in [-1, 1).
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// genBoom is a distant shell burst: sub thump, noisy body and a long
// rumble. norm in [0,1] makes it deeper and longer.
func genBoom(norm float64, seed uint64) []byte {
	dur := 0.7 + 0.8*norm
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	lp1, lp2, rumLP := 0.0, 0.0, 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)

		subFreq := (120.0 - 50.0*norm) * math.Pow(0.3, p*2.0)
		subPhase += 2 * math.Pi * subFreq / SampleRate
		sub := math.Sin(subPhase) * math.Exp(-p*(6.0-3.0*norm)) * (0.5 + 0.3*norm)

		crack := 0.0
		if p < 0.02 {
			crack = lcg(&seed) * (1 - p/0.02) * 0.7
		}

		raw := lcg(&seed)
		lp1 = lp1*0.8 + raw*0.2
		lp2 = lp2*0.98 + raw*0.02
		body := (lp1 - lp2) * math.Exp(-p*5.5) * 0.35

		rumLP = rumLP*0.96 + lcg(&seed)*0.04
		rumble := rumLP * math.Exp(-p*2.2) * (0.12 + 0.2*norm)

		putStereoF32(buf, i, softSat((sub+crack+body+rumble)*0.85))
	}
	return buf
}

// genCrackle is a burst of sparse clicks.
func genCrackle(seed uint64) []byte {
	n := int(0.35 * SampleRate)
	buf := makeBuf(n)
	hp := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		raw := lcg(&seed)
		s := 0.0
		// Roughly 400 clicks per second, thinning out over the tail.
		if raw > 1-0.018*(1-p) {
			s = lcg(&seed)
		}
		hp = 0.6*hp + s
		putStereoF32(buf, i, softSat((s-0.4*hp)*(1-p)*0.9))
	}
	return buf
}
