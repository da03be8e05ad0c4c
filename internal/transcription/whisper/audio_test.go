package whisper

import (
	"testing"

	"github.com/go-audio/audio"
)

func TestToMonoAveragesChannels(t *testing.T) {
	stereo := []int16{100, 200, -100, -200, 0, 50}
	mono := toMono(stereo, 2)
	if len(mono) != 3 {
		t.Fatalf("expected 3 mono samples, got %d", len(mono))
	}
	want := []int16{150, -150, 25}
	for i, w := range want {
		if mono[i] != w {
			t.Errorf("sample %d: expected %d, got %d", i, w, mono[i])
		}
	}
}

func TestToMonoSingleChannelPassthrough(t *testing.T) {
	samples := []int16{1, 2, 3}
	mono := toMono(samples, 1)
	if len(mono) != 3 || mono[0] != 1 {
		t.Errorf("expected passthrough for mono input, got %v", mono)
	}
}

func TestInt16ToFloat32Normalization(t *testing.T) {
	samples := []int16{0, 16384, -32768}
	out := int16ToFloat32(samples)
	if out[0] != 0 {
		t.Errorf("expected 0, got %f", out[0])
	}
	if out[1] != 0.5 {
		t.Errorf("expected 0.5, got %f", out[1])
	}
	if out[2] != -1.0 {
		t.Errorf("expected -1.0, got %f", out[2])
	}
}

func TestBufferToInt16BitDepthScaling(t *testing.T) {
	buf24 := &audio.IntBuffer{Data: []int{1000 << 8, -(1000 << 8)}}
	s24 := bufferToInt16(buf24, 24)
	if s24[0] != 1000 || s24[1] != -1000 {
		t.Errorf("24-bit samples should be scaled down, got %v", s24)
	}

	buf16 := &audio.IntBuffer{Data: []int{1000, -1000}}
	s16 := bufferToInt16(buf16, 16)
	if s16[0] != 1000 || s16[1] != -1000 {
		t.Errorf("16-bit samples must pass through unchanged, got %v", s16)
	}

	buf8 := &audio.IntBuffer{Data: []int{64}}
	s8 := bufferToInt16(buf8, 8)
	if s8[0] != 64<<8 {
		t.Errorf("8-bit sample should be scaled up, expected %d got %d", 64<<8, s8[0])
	}
}

func TestResampleSameRatePassthrough(t *testing.T) {
	samples := []int16{1, 2, 3, 4}
	out := resampleInt16(samples, 16000, 16000)
	if len(out) != 4 {
		t.Errorf("expected passthrough length 4, got %d", len(out))
	}
}
