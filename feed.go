package lettersea

import (
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"
)

// FeedConfig tunes a [WordFeed]. The zero value is not usable; start from
// [DefaultFeedConfig].
type FeedConfig struct {
	// MinWordLen drops tokens at or below this length before they are
	// grouped into bursts. Short function words clutter the ocean.
	MinWordLen int
	// MaxSentenceLen force-closes the accumulating sentence once it holds
	// this many words, so a stream with no sentence punctuation still forms
	// bursts and still hits the high-water mark.
	MaxSentenceLen int
	// HighWater is the pending-word count at which the feed stops accepting
	// offers. Producers should poll Accepting and retry.
	HighWater int
	// LowWater is the pending-word count the queue must drain below before
	// a saturated feed accepts offers again.
	LowWater int
	// WordDelay is the number of drain opportunities skipped between
	// consecutive words of one burst.
	WordDelay int
	// BurstCooldown is the number of drain opportunities skipped after a
	// burst finishes before the next burst starts.
	BurstCooldown int
}

// DefaultFeedConfig returns pacing that keeps two or three words in flight
// at the default drain cadence.
func DefaultFeedConfig() FeedConfig {
	return FeedConfig{
		MinWordLen:     3,
		MaxSentenceLen: 12,
		HighWater:      48,
		LowWater:       16,
		WordDelay:      6,
		BurstCooldown:  24,
	}
}

// WordFeed decouples a streaming text producer from the simulation tick:
// producers push whitespace-delimited tokens from any goroutine; the ocean
// drains one word at a time at a throttled cadence and never waits on the
// producer.
//
// Tokens accumulate into the current sentence until one ends with sentence
// punctuation, at which point the sentence is enqueued as a burst. Words
// within a burst are released WordDelay apart, with BurstCooldown between
// bursts.
//
// Backpressure is a high/low-water pair: once the pending word count reaches
// HighWater the feed refuses offers until it drains below LowWater. A
// refused producer is expected to poll and retry, not to block the tick.
type WordFeed struct {
	cfg FeedConfig

	mu        sync.Mutex
	bursts    [][]string // completed sentences waiting to play
	current   []string   // sentence being accumulated from tokens
	pending   int        // words across all queued bursts
	saturated bool

	// Pacing state, touched only from the drain side.
	playing  []string // words of the burst currently playing
	wait     int
	cooldown bool
}

// NewWordFeed creates a feed with the given pacing.
func NewWordFeed(cfg FeedConfig) *WordFeed {
	if cfg.HighWater <= 0 {
		cfg.HighWater = DefaultFeedConfig().HighWater
	}
	if cfg.LowWater <= 0 || cfg.LowWater > cfg.HighWater {
		cfg.LowWater = cfg.HighWater / 2
	}
	if cfg.MaxSentenceLen <= 0 {
		cfg.MaxSentenceLen = DefaultFeedConfig().MaxSentenceLen
	}
	return &WordFeed{cfg: cfg}
}

// Accepting reports whether the feed is currently taking offers. False once
// the queue reaches HighWater, true again only after it drains below
// LowWater.
func (f *WordFeed) Accepting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.saturated
}

// Pending returns the number of words queued across all bursts.
func (f *WordFeed) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// Offer pushes one token into the feed. Returns false without consuming the
// token when the feed is saturated; the producer should back off and retry.
// Tokens at or below MinWordLen are consumed and dropped. A token ending in
// sentence punctuation closes the current burst, as does the sentence
// reaching MaxSentenceLen, so a punctuation-free stream cannot grow the
// queue past the high-water mark.
func (f *WordFeed) Offer(token string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saturated {
		return false
	}

	word, terminal := cleanToken(token)
	if len(word) > f.cfg.MinWordLen {
		f.current = append(f.current, word)
	}
	if (terminal || len(f.current) >= f.cfg.MaxSentenceLen) && len(f.current) > 0 {
		f.closeCurrent()
	}
	return true
}

// OfferText splits text on whitespace and offers each token in order. It
// returns the number of tokens consumed; fewer than the total means the feed
// saturated partway and the caller should retry from there.
func (f *WordFeed) OfferText(text string) int {
	tokens := strings.Fields(text)
	for i, tok := range tokens {
		if !f.Offer(tok) {
			return i
		}
	}
	return len(tokens)
}

// Flush closes the sentence being accumulated and queues it as a burst even
// without terminal punctuation. Producers call it at end of stream.
func (f *WordFeed) Flush() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.current) > 0 {
		f.closeCurrent()
	}
}

// closeCurrent queues the accumulating sentence as a burst and re-checks the
// high-water mark. Callers hold f.mu.
func (f *WordFeed) closeCurrent() {
	f.bursts = append(f.bursts, f.current)
	f.pending += len(f.current)
	f.current = nil
	if f.pending >= f.cfg.HighWater {
		f.saturated = true
		slog.Debug("word feed saturated", "pending", f.pending)
	}
}

// next returns the next word due for display, honoring the word delay and
// burst cooldown. Called by the ocean once per drain interval; each call is
// one drain opportunity whether or not a word is released.
func (f *WordFeed) next() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.wait > 0 {
		f.wait--
		return "", false
	}

	if len(f.playing) == 0 {
		if f.cooldown {
			f.cooldown = false
			f.wait = f.cfg.BurstCooldown
			return "", false
		}
		if len(f.bursts) == 0 {
			return "", false
		}
		f.playing = f.bursts[0]
		f.bursts = f.bursts[1:]
	}

	word := f.playing[0]
	f.playing = f.playing[1:]
	f.pending--
	if f.saturated && f.pending < f.cfg.LowWater {
		f.saturated = false
		slog.Debug("word feed drained", "pending", f.pending)
	}

	if len(f.playing) == 0 {
		f.cooldown = true
	}
	f.wait = f.cfg.WordDelay
	return word, true
}

// sentenceEnd reports whether a rune closes a sentence.
func sentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '…'
}

// trailingPunct matches punctuation stripped from the end of a token.
func trailingPunct(r rune) bool {
	switch r {
	case ',', ';', ':', '"', '\'', ')', '”', '’', '—', '–':
		return true
	}
	return false
}

// leadingPunct matches punctuation stripped from the start of a token.
func leadingPunct(r rune) bool {
	switch r {
	case '"', '\'', '(', '“', '‘', '—', '–':
		return true
	}
	return false
}

// cleanToken strips surrounding punctuation from a token and reports whether
// the token ended a sentence. Decodes runes so curly quotes, ellipses, and
// dashes from generated text are stripped too.
func cleanToken(token string) (word string, terminal bool) {
	word = token
	for len(word) > 0 {
		r, size := utf8.DecodeLastRuneInString(word)
		if sentenceEnd(r) {
			terminal = true
			word = word[:len(word)-size]
			continue
		}
		if !trailingPunct(r) {
			break
		}
		word = word[:len(word)-size]
	}
	for len(word) > 0 {
		r, size := utf8.DecodeRuneInString(word)
		if !leadingPunct(r) {
			break
		}
		word = word[size:]
	}
	return word, terminal
}
