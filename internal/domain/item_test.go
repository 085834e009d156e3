package domain

import (
	"sync"
	"testing"
)

func TestItemRegistry_RegisterAndExists(t *testing.T) {
	r := NewItemRegistry()

	if r.Exists("meme-1") {
		t.Error("expected meme-1 to not exist before registration")
	}

	r.Register("meme-1")
	if !r.Exists("meme-1") {
		t.Error("expected meme-1 to exist after registration")
	}
	if r.Exists("meme-2") {
		t.Error("expected meme-2 to not exist")
	}
}

func TestItemRegistry_RegisterIsIdempotent(t *testing.T) {
	r := NewItemRegistry()
	r.Register("meme-1")
	r.Register("meme-1")
	if !r.Exists("meme-1") {
		t.Error("expected meme-1 to exist")
	}
}

func TestItemRegistry_ConcurrentAccess(t *testing.T) {
	r := NewItemRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Register("meme-1")
		}()
		go func() {
			defer wg.Done()
			r.Exists("meme-1")
		}()
	}
	wg.Wait()
	if !r.Exists("meme-1") {
		t.Error("expected meme-1 to exist after concurrent registration")
	}
}
