package speech

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/patrickmn/go-cache"
)

// PrefetchState tracks speech synthesis for a single message.
type PrefetchState int

const (
	NotAttempted PrefetchState = iota
	InFlight
	Done
	Failed
)

func (s PrefetchState) String() string {
	switch s {
	case InFlight:
		return "in_flight"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "not_attempted"
	}
}

// MinPrefetchRunes is the shortest text worth prefetching.
const MinPrefetchRunes = 10

type entry struct {
	mu    sync.Mutex
	state PrefetchState
	audio *Audio
	done  chan struct{}
}

// Prefetcher synthesizes audio ahead of playback, once per message.
// A failed prefetch leaves the message retryable through Play.
type Prefetcher struct {
	synth   Synthesizer
	entries *cache.Cache
	mu      sync.Mutex
}

func NewPrefetcher(synth Synthesizer, ttl time.Duration) *Prefetcher {
	return &Prefetcher{
		synth:   synth,
		entries: cache.New(ttl, ttl/2+time.Minute),
	}
}

func (p *Prefetcher) entry(messageID string) *entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	if x, ok := p.entries.Get(messageID); ok {
		return x.(*entry)
	}
	e := &entry{}
	p.entries.SetDefault(messageID, e)
	return e
}

// State reports the prefetch state of a message.
func (p *Prefetcher) State(messageID string) PrefetchState {
	x, ok := p.entries.Get(messageID)
	if !ok {
		return NotAttempted
	}
	e := x.(*entry)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Prefetch synthesizes text for a message that has never been attempted.
// It returns false without doing anything for short text or when an attempt
// already exists.
func (p *Prefetcher) Prefetch(ctx context.Context, messageID, text string) bool {
	if utf8.RuneCountInString(text) <= MinPrefetchRunes {
		return false
	}

	e := p.entry(messageID)
	e.mu.Lock()
	if e.state != NotAttempted {
		e.mu.Unlock()
		return false
	}
	done := e.begin()
	e.mu.Unlock()

	p.run(ctx, e, done, text)
	return true
}

// Play returns audio for a message. Cached audio is returned as is, an
// in-flight prefetch is awaited, otherwise one synthesis attempt is made.
func (p *Prefetcher) Play(ctx context.Context, messageID, text string) (*Audio, error) {
	e := p.entry(messageID)

	e.mu.Lock()
	switch e.state {
	case Done:
		audio := e.audio
		e.mu.Unlock()
		return audio, nil
	case InFlight:
		done := e.done
		e.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.state == Done {
			return e.audio, nil
		}
		return nil, ErrNoAudio
	}
	done := e.begin()
	e.mu.Unlock()

	if !p.run(ctx, e, done, text) {
		return nil, ErrNoAudio
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.audio, nil
}

// Forget drops any state kept for a message.
func (p *Prefetcher) Forget(messageID string) {
	p.entries.Delete(messageID)
}

// begin must be called with e.mu held.
func (e *entry) begin() chan struct{} {
	e.state = InFlight
	e.done = make(chan struct{})
	return e.done
}

func (p *Prefetcher) run(ctx context.Context, e *entry, done chan struct{}, text string) bool {
	audio, err := p.synth.Synthesize(ctx, text)

	e.mu.Lock()
	defer e.mu.Unlock()
	defer close(done)

	if err != nil || audio == nil || len(audio.PCM) == 0 {
		e.state = Failed
		e.audio = nil
		return false
	}
	e.state = Done
	e.audio = audio
	return true
}
