package speech

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
)

const (
	DefaultSampleRate = 24000
	DefaultChannels   = 1
	bitsPerSample     = 16
)

// Audio is raw little-endian 16-bit PCM.
type Audio struct {
	PCM        []byte
	SampleRate int
	Channels   int
}

// Duration in seconds.
func (a *Audio) Duration() float64 {
	if a == nil || a.SampleRate == 0 || a.Channels == 0 {
		return 0
	}
	frames := len(a.PCM) / 2 / a.Channels
	return float64(frames) / float64(a.SampleRate)
}

func (a *Audio) Base64() string {
	return base64.StdEncoding.EncodeToString(a.PCM)
}

// Peak is the largest absolute sample across all channels, in [0, 1].
func (a *Audio) Peak() (float64, error) {
	chans, err := DecodePCM16(a.PCM, a.Channels)
	if err != nil {
		return 0, err
	}
	var peak float64
	for _, ch := range chans {
		for _, v := range ch {
			peak = math.Max(peak, math.Abs(float64(v)))
		}
	}
	return peak, nil
}

// DecodePCM16 splits interleaved PCM into one float slice per channel with
// samples scaled to [-1, 1). A trailing partial frame is ignored.
func DecodePCM16(data []byte, channels int) ([][]float32, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}

	samples := len(data) / 2
	frames := samples / channels
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, frames)
	}

	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			off := (i*channels + ch) * 2
			v := int16(binary.LittleEndian.Uint16(data[off : off+2]))
			out[ch][i] = float32(v) / 32768.0
		}
	}

	return out, nil
}

// EncodeWAV wraps the PCM in a canonical RIFF/WAVE container.
func EncodeWAV(a *Audio) []byte {
	dataLen := len(a.PCM)
	byteRate := a.SampleRate * a.Channels * bitsPerSample / 8
	blockAlign := a.Channels * bitsPerSample / 8

	var buf bytes.Buffer
	buf.Grow(44 + dataLen)

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(a.Channels))
	binary.Write(&buf, binary.LittleEndian, uint32(a.SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(a.PCM)

	return buf.Bytes()
}
