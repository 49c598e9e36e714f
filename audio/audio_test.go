package audio

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gopxl/beep"

	"github.com/lixenwraith/tether/event"
)

func drain(s beep.Streamer) (samples int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		samples += n
		if !ok {
			return samples, peak
		}
	}
}

// TestCueIntensityScale verifies the log mapping and clamping
func TestCueIntensityScale(t *testing.T) {
	tests := []struct {
		impulse, want float64
	}{
		{1, 0},
		{2, 0},
		{20, 1},
		{2000, 1},
	}
	for _, tt := range tests {
		if got := CueIntensity(tt.impulse, 2); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Expected intensity %v for impulse %v, got %v", tt.want, tt.impulse, got)
		}
	}
	if CuePitch(0) != minPitch || CuePitch(1) != maxPitch {
		t.Errorf("Expected pitch range [%v, %v]", minPitch, maxPitch)
	}
}

// TestImpactCueLength verifies the cue ends after its duration and stays within gain
func TestImpactCueLength(t *testing.T) {
	samples, peak := drain(ImpactCue(50, 2, 1))
	if want := sampleRate.N(cueDuration); samples != want {
		t.Errorf("Expected %d samples, got %d", want, samples)
	}
	if peak <= 0 || peak > 1+1e-9 {
		t.Errorf("Expected peak in (0, 1], got %v", peak)
	}

	_, silent := drain(ImpactCue(50, 2, 0))
	if silent != 0 {
		t.Errorf("Expected silence at zero volume, got peak %v", silent)
	}
}

// TestEnvelopeShape verifies attack starts at zero and release ends near zero
func TestEnvelopeShape(t *testing.T) {
	constant := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 1}
		}
		return len(samples), true
	})
	env := NewEnvelope(constant, cueDuration, cueAttack, cueRelease, sampleRate)

	total := sampleRate.N(cueDuration)
	buf := make([][2]float64, total)
	n, _ := env.Stream(buf)
	if n != total {
		t.Fatalf("Expected %d samples, got %d", total, n)
	}
	if buf[0][0] != 0 {
		t.Errorf("Expected attack to start silent, got %v", buf[0][0])
	}
	mid := sampleRate.N(cueAttack) + 1
	if buf[mid][0] != 1 {
		t.Errorf("Expected full level after attack, got %v", buf[mid][0])
	}
	if last := buf[total-1][0]; last > 0.01 {
		t.Errorf("Expected release to approach zero, got %v", last)
	}
}

// TestPlayerHandlesImpacts verifies event routing, mute and saturation accounting
func TestPlayerHandlesImpacts(t *testing.T) {
	p := NewPlayer(true, 0.5, 2)
	var queued []beep.Streamer
	p.sink = func(s beep.Streamer) bool {
		if len(queued) >= 2 {
			return false
		}
		queued = append(queued, s)
		return true
	}

	impact := event.GameEvent{
		Type:    event.EventContactImpact,
		Payload: &event.ContactImpactPayload{A: 1, B: 2, Impulse: 10, Point: mgl64.Vec3{}},
	}
	for i := 0; i < 3; i++ {
		p.HandleEvent(nil, impact)
	}
	if p.Played() != 2 || p.Dropped() != 1 {
		t.Errorf("Expected 2 played 1 dropped, got %d/%d", p.Played(), p.Dropped())
	}

	if !p.ToggleMute() {
		t.Fatal("Expected muted after toggle")
	}
	if p.Play(10) {
		t.Error("Expected muted player to refuse")
	}

	if types := p.EventTypes(); len(types) != 1 || types[0] != event.EventContactImpact {
		t.Errorf("Unexpected event types %v", types)
	}
}

// TestPlayerUninitializedIsSilent verifies the default sink refuses before Initialize
func TestPlayerUninitializedIsSilent(t *testing.T) {
	p := NewPlayer(true, 1, 2)
	if p.Play(100) {
		t.Error("Expected uninitialized player to refuse")
	}
	p.Cleanup()
}
