package wav

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrNotWavFile", ErrNotWavFile, "not a WAV file"},
		{"ErrUnsupportedWavLayout", ErrUnsupportedWavLayout, "unsupported WAV layout"},
		{"ErrOnlyPCM16bitSupported", ErrOnlyPCM16bitSupported, "only PCM 16-bit supported"},
		{"ErrUnsupportedWavChunks", ErrUnsupportedWavChunks, "unsupported WAV chunks"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.err == nil {
				t.Fatal("sentinel is nil")
			}
			if tt.err.Error() != tt.msg {
				t.Errorf("%s.Error() = %q, want %q", tt.name, tt.err.Error(), tt.msg)
			}
			if !errors.Is(tt.err, tt.err) {
				t.Errorf("errors.Is(%s, %s) = false, want true", tt.name, tt.name)
			}
			wrapped := fmt.Errorf("decoding: %w", tt.err)
			if !errors.Is(wrapped, tt.err) {
				t.Errorf("errors.Is(wrapped, %s) = false, want true", tt.name)
			}
		})
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	t.Parallel()

	all := []error{
		ErrNotWavFile,
		ErrUnsupportedWavLayout,
		ErrOnlyPCM16bitSupported,
		ErrUnsupportedWavChunks,
	}

	seen := make(map[string]bool)
	for i, err := range all {
		for j := range all {
			if i != j && errors.Is(all[i], all[j]) {
				t.Errorf("errors %d and %d match each other", i, j)
			}
		}
		if seen[err.Error()] {
			t.Errorf("duplicate message %q", err.Error())
		}
		seen[err.Error()] = true
	}
}
