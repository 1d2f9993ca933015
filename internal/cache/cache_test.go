package cache

import (
	"testing"
	"time"

	"github.com/ParthGupta1304/CLARIX/internal/model"
)

func TestKey_StableAndDistinct(t *testing.T) {
	a := Key("content", "https://x.com", "title", "news")
	b := Key("content", "https://x.com", "title", "news")
	if a != b {
		t.Error("identical inputs must produce identical keys")
	}

	variants := []string{
		Key("content2", "https://x.com", "title", "news"),
		Key("content", "https://y.com", "title", "news"),
		Key("content", "https://x.com", "title2", "news"),
		Key("content", "https://x.com", "title", "satire"),
	}
	for i, v := range variants {
		if v == a {
			t.Errorf("variant %d collided with the base key", i)
		}
	}
}

func TestKey_FieldBoundaries(t *testing.T) {
	// Field contents must not bleed across the separator
	if Key("ab", "c", "", "") == Key("a", "bc", "", "") {
		t.Error("shifting bytes between fields must change the key")
	}
}

func TestResultCache_RoundTrip(t *testing.T) {
	c := NewResultCache(time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("empty cache must miss")
	}

	result := &model.PipelineResult{Summary: "s", AuthenticityScore: 72}
	c.Set("k", result)

	got, found := c.Get("k")
	if !found {
		t.Fatal("expected cache hit")
	}
	if got.AuthenticityScore != 72 {
		t.Errorf("Unexpected cached result: %+v", got)
	}

	c.Clear()
	if _, found := c.Get("k"); found {
		t.Error("cleared cache must miss")
	}
}

func TestResultCache_Expiry(t *testing.T) {
	c := NewResultCache(10 * time.Millisecond)
	c.Set("k", &model.PipelineResult{})

	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("expired entry must miss")
	}
}
