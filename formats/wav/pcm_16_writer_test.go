package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

func TestWriteWAV16_Header(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	samples := []int16{100, -100, 200, -200}
	if err := WriteWAV16(&buf, 8000, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	data := buf.Bytes()
	if len(data) != 44+len(samples)*2 {
		t.Fatalf("output length = %d, want %d", len(data), 44+len(samples)*2)
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if string(data[12:16]) != "fmt " || string(data[36:40]) != "data" {
		t.Error("missing fmt/data chunk markers")
	}
	if got := binary.LittleEndian.Uint16(data[22:24]); got != 1 {
		t.Errorf("channel count = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != 8000 {
		t.Errorf("sample rate = %d, want 8000", got)
	}
	if got := binary.LittleEndian.Uint16(data[34:36]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != uint32(len(samples)*2) {
		t.Errorf("data chunk size = %d, want %d", got, len(samples)*2)
	}
}

func TestWriteWAV16Interleaved_StereoHeader(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	samples := []int16{100, -100, 200, -200, 300, -300}
	if err := WriteWAV16Interleaved(&buf, 44100, 2, samples); err != nil {
		t.Fatalf("WriteWAV16Interleaved() error = %v", err)
	}

	data := buf.Bytes()
	if got := binary.LittleEndian.Uint16(data[22:24]); got != 2 {
		t.Errorf("channel count = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint32(data[28:32]); got != 44100*2*2 {
		t.Errorf("byte rate = %d, want %d", got, 44100*2*2)
	}
	if got := binary.LittleEndian.Uint16(data[32:34]); got != 4 {
		t.Errorf("block align = %d, want 4", got)
	}
}

func TestWriteWAV16Interleaved_RejectsBadLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		samples  []int16
	}{
		{"zero channels", 0, []int16{1, 2}},
		{"negative channels", -1, []int16{1, 2}},
		{"ragged interleave", 2, []int16{1, 2, 3}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			err := WriteWAV16Interleaved(&buf, 8000, tt.channels, tt.samples)
			if !errors.Is(err, ErrUnsupportedWavLayout) {
				t.Errorf("error = %v, want ErrUnsupportedWavLayout", err)
			}
		})
	}
}

func TestWriteWAV16_EmptySamples(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 8000, nil); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}
	if buf.Len() != 44 {
		t.Errorf("output length = %d, want header-only 44", buf.Len())
	}
}

func TestWriteWAV16_RoundTrip(t *testing.T) {
	t.Parallel()

	original := []int16{0, 1000, -1000, 16384, -16384, 32767, -32768}
	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 8000, original); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	src, err := Decoder{}.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}

	got := make([]float32, len(original))
	n, err := src.ReadSamples(got)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(original) {
		t.Fatalf("ReadSamples() = %d, want %d", n, len(original))
	}
	for i, s := range original {
		want := float32(s) / 32768
		if diff := got[i] - want; diff > 1e-4 || diff < -1e-4 {
			t.Errorf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestWriteWAV16_LargeFileChunking(t *testing.T) {
	t.Parallel()

	// Longer than one write chunk so the chunked path is exercised.
	samples := make([]int16, 20000)
	for i := range samples {
		samples[i] = int16(i % 4096)
	}

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 44100, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}
	if buf.Len() != 44+len(samples)*2 {
		t.Errorf("output length = %d, want %d", buf.Len(), 44+len(samples)*2)
	}

	// Spot-check a sample beyond the first chunk boundary.
	idx := 44 + 10000*2
	got := int16(binary.LittleEndian.Uint16(buf.Bytes()[idx : idx+2]))
	if got != samples[10000] {
		t.Errorf("sample 10000 = %d, want %d", got, samples[10000])
	}
}

func BenchmarkWriteWAV16(b *testing.B) {
	samples := make([]int16, 44100)
	for i := range samples {
		samples[i] = int16(i % 32768)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		if err := WriteWAV16(&buf, 44100, samples); err != nil {
			b.Fatal(err)
		}
	}
}
