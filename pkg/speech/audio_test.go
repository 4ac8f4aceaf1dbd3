package speech

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pcm(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

func TestDecodePCM16Mono(t *testing.T) {
	got, err := DecodePCM16(pcm(0, 16384, -32768, 32767), 1)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, []float32{0, 0.5, -1, float32(32767) / 32768}, got[0])
}

func TestDecodePCM16Stereo(t *testing.T) {
	got, err := DecodePCM16(append(pcm(1, -1, 2, -2), 0x7f), 2)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Len(t, got[0], 2)
	assert.Greater(t, got[0][1], float32(0))
	assert.Less(t, got[1][1], float32(0))
}

func TestDecodePCM16InvalidChannels(t *testing.T) {
	_, err := DecodePCM16(pcm(1), 0)
	assert.Error(t, err)
}

func TestPeak(t *testing.T) {
	tests := []struct {
		name     string
		audio    *Audio
		expected float64
	}{
		{"silence", &Audio{PCM: pcm(0, 0), Channels: 1}, 0},
		{"negative full scale", &Audio{PCM: pcm(100, -32768, 16384), Channels: 1}, 1},
		{"loudest channel wins", &Audio{PCM: pcm(8192, -16384, 0, 1), Channels: 2}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.audio.Peak()
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}

	_, err := (&Audio{PCM: pcm(1), Channels: 0}).Peak()
	assert.Error(t, err)
}

func TestEncodeWAV(t *testing.T) {
	a := &Audio{PCM: pcm(1, 2, 3, 4), SampleRate: DefaultSampleRate, Channels: DefaultChannels}
	wav := EncodeWAV(a)

	require.Len(t, wav, 44+8)
	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, uint32(36+8), binary.LittleEndian.Uint32(wav[4:8]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[20:22]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]))
	assert.Equal(t, uint32(24000), binary.LittleEndian.Uint32(wav[24:28]))
	assert.Equal(t, uint32(48000), binary.LittleEndian.Uint32(wav[28:32]))
	assert.Equal(t, "data", string(wav[36:40]))
	assert.Equal(t, a.PCM, wav[44:])
}

func TestDuration(t *testing.T) {
	a := &Audio{PCM: make([]byte, 48000), SampleRate: 24000, Channels: 1}
	assert.InDelta(t, 1.0, a.Duration(), 1e-9)

	var none *Audio
	assert.Zero(t, none.Duration())
}
