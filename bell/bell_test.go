package bell

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestOscillatorBounds(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare} {
		osc := NewOscillator(440, 10*time.Millisecond, wave, rate)
		samples := make([][2]float64, 100)
		n, ok := osc.Stream(samples)
		if !ok || n != 100 {
			t.Fatalf("wave %d: got n=%d ok=%v", wave, n, ok)
		}
		for i := 0; i < n; i++ {
			if samples[i][0] < -1 || samples[i][0] > 1 {
				t.Errorf("wave %d sample %d out of range: %f", wave, i, samples[i][0])
			}
		}
	}
}

func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(100, 50*time.Millisecond, WaveSine, rate)

	total := 0
	buf := make([][2]float64, 16)
	for {
		n, ok := osc.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if total != 50 {
		t.Errorf("expected 50 samples, got %d", total)
	}
}

func TestToneDecaysToSilence(t *testing.T) {
	rate := beep.SampleRate(1000)
	cfg := DefaultConfig()
	cfg.Volume = 1
	cfg.Duration = 20 * time.Millisecond
	tone := Tone(cfg, rate)

	buf := make([][2]float64, 64)
	n, _ := tone.Stream(buf)
	if n != 20 {
		t.Fatalf("expected 20 samples, got %d", n)
	}
	for i := 0; i < n; i++ {
		if buf[i][0] < -1 || buf[i][0] > 1 {
			t.Errorf("sample %d out of range: %f", i, buf[i][0])
		}
	}
	if buf[n-1][0] > 0.1 || buf[n-1][0] < -0.1 {
		t.Errorf("tail not decayed: %f", buf[n-1][0])
	}
}

func TestRingWithoutInit(t *testing.T) {
	b := New(DefaultConfig())
	if err := b.Init(); err != nil {
		t.Fatalf("disabled Init: %v", err)
	}
	b.Ring()
	b.Ring()
	b.Close()
	if b.Rings() != 2 {
		t.Errorf("expected 2 rings, got %d", b.Rings())
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TERMGRAPH_BELL", "true")
	t.Setenv("TERMGRAPH_BELL_VOLUME", "150")

	cfg := ApplyEnv(DefaultConfig())
	if !cfg.Enabled {
		t.Error("expected enabled")
	}
	if cfg.Volume != 1 {
		t.Errorf("expected volume clamped to 1, got %f", cfg.Volume)
	}

	t.Setenv("TERMGRAPH_BELL", "maybe")
	t.Setenv("TERMGRAPH_BELL_VOLUME", "25")
	cfg = ApplyEnv(DefaultConfig())
	if cfg.Enabled {
		t.Error("unparsable value should keep default")
	}
	if cfg.Volume != 0.25 {
		t.Errorf("expected 0.25, got %f", cfg.Volume)
	}
}
