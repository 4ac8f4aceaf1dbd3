package speech

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSynth struct {
	calls atomic.Int32
	fail  atomic.Bool
	gate  chan struct{}
}

func (f *fakeSynth) Synthesize(ctx context.Context, text string) (*Audio, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.fail.Load() {
		return nil, errors.New("tts down")
	}
	return &Audio{PCM: []byte(text), SampleRate: DefaultSampleRate, Channels: 1}, nil
}

const longText = "Nội dung tham mưu đủ dài"

func TestPrefetchOnce(t *testing.T) {
	synth := &fakeSynth{}
	p := NewPrefetcher(synth, time.Hour)
	ctx := context.Background()

	assert.True(t, p.Prefetch(ctx, "m1", longText))
	assert.False(t, p.Prefetch(ctx, "m1", longText))
	assert.Equal(t, Done, p.State("m1"))

	audio, err := p.Play(ctx, "m1", longText)
	require.NoError(t, err)
	assert.Equal(t, []byte(longText), audio.PCM)
	assert.Equal(t, int32(1), synth.calls.Load())
}

func TestPrefetchSkipsShortText(t *testing.T) {
	synth := &fakeSynth{}
	p := NewPrefetcher(synth, time.Hour)

	assert.False(t, p.Prefetch(context.Background(), "m1", "ngắn"))
	assert.False(t, p.Prefetch(context.Background(), "m1", "0123456789"))
	assert.Equal(t, NotAttempted, p.State("m1"))
	assert.Zero(t, synth.calls.Load())
}

func TestPlayRetriesAfterFailedPrefetch(t *testing.T) {
	synth := &fakeSynth{}
	synth.fail.Store(true)
	p := NewPrefetcher(synth, time.Hour)
	ctx := context.Background()

	assert.True(t, p.Prefetch(ctx, "m1", longText))
	assert.Equal(t, Failed, p.State("m1"))

	// a failed prefetch is not repeated opportunistically
	assert.False(t, p.Prefetch(ctx, "m1", longText))

	synth.fail.Store(false)
	audio, err := p.Play(ctx, "m1", longText)
	require.NoError(t, err)
	assert.NotNil(t, audio)
	assert.Equal(t, Done, p.State("m1"))
	assert.Equal(t, int32(2), synth.calls.Load())
}

func TestPlayFailureReportsNoAudio(t *testing.T) {
	synth := &fakeSynth{}
	synth.fail.Store(true)
	p := NewPrefetcher(synth, time.Hour)

	_, err := p.Play(context.Background(), "m1", longText)
	assert.ErrorIs(t, err, ErrNoAudio)
	assert.Equal(t, Failed, p.State("m1"))
	assert.Equal(t, int32(1), synth.calls.Load())
}

func TestPlayWaitsForInFlightPrefetch(t *testing.T) {
	synth := &fakeSynth{gate: make(chan struct{})}
	p := NewPrefetcher(synth, time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.Prefetch(ctx, "m1", longText)
	}()

	require.Eventually(t, func() bool { return p.State("m1") == InFlight }, time.Second, time.Millisecond)

	result := make(chan *Audio, 1)
	go func() {
		audio, _ := p.Play(ctx, "m1", longText)
		result <- audio
	}()

	close(synth.gate)
	wg.Wait()

	select {
	case audio := <-result:
		assert.NotNil(t, audio)
	case <-time.After(time.Second):
		t.Fatal("play did not return")
	}
	assert.Equal(t, int32(1), synth.calls.Load())
}

func TestPlayHonoursContextWhileWaiting(t *testing.T) {
	synth := &fakeSynth{gate: make(chan struct{})}
	p := NewPrefetcher(synth, time.Hour)

	go p.Prefetch(context.Background(), "m1", longText)
	require.Eventually(t, func() bool { return p.State("m1") == InFlight }, time.Second, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Play(ctx, "m1", longText)
	assert.ErrorIs(t, err, context.Canceled)

	close(synth.gate)
}

func TestForget(t *testing.T) {
	p := NewPrefetcher(&fakeSynth{}, time.Hour)
	p.Prefetch(context.Background(), "m1", longText)
	p.Forget("m1")

	assert.Equal(t, NotAttempted, p.State("m1"))
}
