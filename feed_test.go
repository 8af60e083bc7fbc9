package lettersea

import (
	"testing"
)

// drainAll pulls words from the feed until an empty drain opportunity
// follows the last word, collecting at most limit words.
func drainAll(f *WordFeed, limit int) []string {
	var out []string
	for i := 0; i < limit; i++ {
		if w, ok := f.next(); ok {
			out = append(out, w)
		}
	}
	return out
}

func TestFeedFiltersShortTokens(t *testing.T) {
	f := NewWordFeed(FeedConfig{MinWordLen: 3, HighWater: 100, LowWater: 50})
	f.OfferText("it is an ocean of letters.")

	words := drainAll(f, 50)
	want := []string{"ocean", "letters"}
	if len(words) != len(want) {
		t.Fatalf("drained %v, want %v", words, want)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word %d = %q, want %q", i, words[i], want[i])
		}
	}
}

func TestFeedStripsPunctuation(t *testing.T) {
	f := NewWordFeed(FeedConfig{MinWordLen: 1, HighWater: 100, LowWater: 50})
	f.OfferText(`waves, tides; "currents."`)

	words := drainAll(f, 50)
	want := []string{"waves", "tides", "currents"}
	if len(words) != len(want) {
		t.Fatalf("drained %v, want %v", words, want)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word %d = %q, want %q", i, words[i], want[i])
		}
	}
}

func TestFeedStripsMultibytePunctuation(t *testing.T) {
	f := NewWordFeed(FeedConfig{MinWordLen: 1, HighWater: 100, LowWater: 50})
	f.OfferText("“tides” swell— forever…")

	words := drainAll(f, 50)
	want := []string{"tides", "swell", "forever"}
	if len(words) != len(want) {
		t.Fatalf("drained %v, want %v", words, want)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word %d = %q, want %q", i, words[i], want[i])
		}
	}
}

func TestFeedBoundsPunctuationFreeStream(t *testing.T) {
	// A stream with no sentence punctuation must still hit the high-water
	// mark: the sentence force-closes at MaxSentenceLen.
	f := NewWordFeed(FeedConfig{MinWordLen: 1, MaxSentenceLen: 3, HighWater: 4, LowWater: 2})

	refusedAt := -1
	for i := 0; i < 1000; i++ {
		if !f.Offer("unpunctuated") {
			refusedAt = i
			break
		}
	}
	if refusedAt < 0 {
		t.Fatal("feed never saturated on a punctuation-free stream")
	}
	if f.Accepting() {
		t.Error("saturated feed should stop accepting")
	}
	if p := f.Pending(); p < 4 {
		t.Errorf("Pending = %d, want at least the high-water mark 4", p)
	}
	if refusedAt > 6 {
		t.Errorf("first refusal at offer %d, want within two force-closed sentences", refusedAt)
	}
}

func TestFeedHoldsIncompleteSentence(t *testing.T) {
	f := NewWordFeed(FeedConfig{MinWordLen: 1, HighWater: 100, LowWater: 50})
	f.OfferText("still being typed")

	if words := drainAll(f, 10); len(words) != 0 {
		t.Errorf("drained %v before the sentence closed", words)
	}

	// Flush closes the sentence at end of stream.
	f.Flush()
	if words := drainAll(f, 10); len(words) != 3 {
		t.Errorf("drained %d words after Flush, want 3", len(words))
	}
}

func TestFeedWordDelayWithinBurst(t *testing.T) {
	f := NewWordFeed(FeedConfig{MinWordLen: 1, HighWater: 100, LowWater: 50, WordDelay: 2})
	f.OfferText("one two.")

	if w, ok := f.next(); !ok || w != "one" {
		t.Fatalf("first drain = %q, %v; want \"one\"", w, ok)
	}
	// The next two opportunities are the delay.
	if _, ok := f.next(); ok {
		t.Error("delay opportunity 1 should release nothing")
	}
	if _, ok := f.next(); ok {
		t.Error("delay opportunity 2 should release nothing")
	}
	if w, ok := f.next(); !ok || w != "two" {
		t.Errorf("next word = %q, %v; want \"two\"", w, ok)
	}
}

func TestFeedCooldownBetweenBursts(t *testing.T) {
	f := NewWordFeed(FeedConfig{MinWordLen: 1, HighWater: 100, LowWater: 50, BurstCooldown: 3})
	f.OfferText("first. second.")

	if w, _ := f.next(); w != "first" {
		t.Fatalf("got %q, want \"first\"", w)
	}
	// Burst finished: one opportunity arms the cooldown, three more wait it
	// out.
	empties := 0
	for {
		w, ok := f.next()
		if ok {
			if w != "second" {
				t.Fatalf("got %q, want \"second\"", w)
			}
			break
		}
		empties++
		if empties > 10 {
			t.Fatal("cooldown never ended")
		}
	}
	if empties != 4 {
		t.Errorf("cooldown took %d empty opportunities, want 4", empties)
	}
}

func TestFeedBackpressureHysteresis(t *testing.T) {
	f := NewWordFeed(FeedConfig{MinWordLen: 1, HighWater: 4, LowWater: 2})

	// Fill past the high-water mark.
	f.OfferText("aa bb cc dd.")
	if f.Accepting() {
		t.Fatal("feed at high water should stop accepting")
	}
	if f.Offer("extra.") {
		t.Error("saturated feed must refuse offers")
	}
	if f.Pending() != 4 {
		t.Errorf("Pending = %d, want 4", f.Pending())
	}

	// Draining to low water is not enough; it must drop below it.
	f.next() // 3 pending
	f.next() // 2 pending
	if f.Accepting() {
		t.Error("feed should stay saturated at the low-water mark")
	}
	f.next() // 1 pending, below low water
	if !f.Accepting() {
		t.Error("feed should accept again below low water")
	}
	if !f.Offer("again.") {
		t.Error("drained feed must take offers")
	}
}

func TestFeedOfferTextReportsPartialConsumption(t *testing.T) {
	f := NewWordFeed(FeedConfig{MinWordLen: 1, HighWater: 2, LowWater: 1})

	n := f.OfferText("aa bb. cc dd.")
	if n >= 4 {
		t.Fatalf("consumed %d tokens, want fewer once saturated", n)
	}
	// The producer retries from where it stopped once the feed drains.
	f.next()
	f.next()
	if !f.Accepting() {
		t.Fatal("feed should have drained")
	}
}

func TestFeedConfigDefaultsApplied(t *testing.T) {
	f := NewWordFeed(FeedConfig{})
	if f.cfg.HighWater <= 0 {
		t.Error("zero HighWater should fall back to a usable default")
	}
	if f.cfg.LowWater <= 0 || f.cfg.LowWater > f.cfg.HighWater {
		t.Error("LowWater should default to half of HighWater")
	}
	if f.cfg.MaxSentenceLen <= 0 {
		t.Error("zero MaxSentenceLen should fall back to a usable default")
	}
}
