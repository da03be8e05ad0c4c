package whisper

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/zeozeozeo/gomplerate"
)

// whisper.cpp requires 16kHz mono float32 input.
const targetSampleRate = 16000

// decodeSamples converts an audio file to 16kHz mono float32 samples.
// WAV files are decoded in pure Go; other formats fall back to ffmpeg.
func decodeSamples(path string) ([]float32, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".wav" {
		return decodeWAV(path)
	}
	if ffmpegAvailable() {
		return decodeWithFFmpeg(path)
	}
	return nil, fmt.Errorf("unsupported audio format %s (install ffmpeg for non-WAV files)", ext)
}

// decodeWAV decodes a WAV file to 16kHz mono float32.
func decodeWAV(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode WAV: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("no audio samples decoded from %s", path)
	}

	samples := bufferToInt16(buf, int(dec.BitDepth))
	if buf.Format.NumChannels > 1 {
		samples = toMono(samples, buf.Format.NumChannels)
	}
	if buf.Format.SampleRate != targetSampleRate {
		samples = resampleInt16(samples, buf.Format.SampleRate, targetSampleRate)
	}

	return int16ToFloat32(samples), nil
}

// bufferToInt16 scales decoded PCM samples to the int16 range.
func bufferToInt16(buf *audio.IntBuffer, bitDepth int) []int16 {
	shift := bitDepth - 16
	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		switch {
		case shift > 0:
			samples[i] = int16(v >> shift)
		case shift < 0:
			samples[i] = int16(v << -shift)
		default:
			samples[i] = int16(v)
		}
	}
	return samples
}

// toMono converts interleaved multi-channel audio to mono by averaging.
func toMono(samples []int16, channels int) []int16 {
	if channels <= 1 {
		return samples
	}
	mono := make([]int16, len(samples)/channels)
	for i := 0; i < len(mono); i++ {
		var sum int32
		for ch := 0; ch < channels; ch++ {
			sum += int32(samples[i*channels+ch])
		}
		mono[i] = int16(sum / int32(channels))
	}
	return mono
}

// resampleInt16 converts audio from one sample rate to another.
func resampleInt16(samples []int16, fromRate, toRate int) []int16 {
	if fromRate == toRate {
		return samples
	}
	resampler, err := gomplerate.NewResampler(1, fromRate, toRate)
	if err != nil {
		return samples
	}
	return resampler.ResampleInt16(samples)
}

// int16ToFloat32 converts int16 samples to float32 normalized to [-1, 1].
func int16ToFloat32(samples []int16) []float32 {
	result := make([]float32, len(samples))
	for i, s := range samples {
		result[i] = float32(s) / 32768.0
	}
	return result
}

// ffmpegAvailable checks if ffmpeg is installed.
func ffmpegAvailable() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// decodeWithFFmpeg uses ffmpeg to convert audio to 16kHz mono PCM.
func decodeWithFFmpeg(inputPath string) ([]float32, error) {
	tmpFile, err := os.CreateTemp("", "stt-*.raw")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	cmd := exec.Command("ffmpeg",
		"-i", inputPath,
		"-ar", fmt.Sprintf("%d", targetSampleRate),
		"-ac", "1",
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-y",
		tmpPath,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg conversion failed: %w: %s", err, string(output))
	}

	rawData, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read converted audio: %w", err)
	}

	samples := make([]int16, len(rawData)/2)
	for i := 0; i < len(samples); i++ {
		samples[i] = int16(rawData[i*2]) | int16(rawData[i*2+1])<<8
	}
	return int16ToFloat32(samples), nil
}
