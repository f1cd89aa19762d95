package cache_test

import (
	"path/filepath"
	"testing"

	"github.com/0x4d5352/regexcore/internal/cache"
)

func TestGenerateKeyIsDeterministicAndDistinguishesParts(t *testing.T) {
	k1 := cache.GenerateKey("seed", "a", "bc")
	k2 := cache.GenerateKey("seed", "a", "bc")
	k3 := cache.GenerateKey("seed", "ab", "c")
	if k1 != k2 {
		t.Fatalf("expected GenerateKey to be deterministic")
	}
	if k1 == k3 {
		t.Fatalf("expected differently-split parts to produce different keys")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := cache.NewMemoryStore(10)
	f := cache.New(store)
	key := f.Key("seed", "/abc/")
	if _, ok := f.Load(key); ok {
		t.Fatalf("expected a miss before any write")
	}
	f.Write(key, []byte("payload"))
	v, ok := f.Load(key)
	if !ok || string(v) != "payload" {
		t.Fatalf("expected a hit with the written payload, got %q ok=%v", v, ok)
	}
}

func TestMemoryStoreEvictsLeastRecentlyUsed(t *testing.T) {
	store := cache.NewMemoryStore(2)
	store.Write("a", []byte("1"))
	store.Write("b", []byte("2"))
	store.Load("a") // touch a, making b the LRU victim
	store.Write("c", []byte("3"))

	if _, ok := store.Load("b"); ok {
		t.Fatalf("expected b to be evicted as the least recently used entry")
	}
	if _, ok := store.Load("a"); !ok {
		t.Fatalf("expected a to survive eviction")
	}
	if _, ok := store.Load("c"); !ok {
		t.Fatalf("expected c to be present")
	}
}

func TestMemoryStoreClearAll(t *testing.T) {
	store := cache.NewMemoryStore(10)
	store.Write("a", []byte("1"))
	store.Clear("")
	if _, ok := store.Load("a"); ok {
		t.Fatalf("expected Clear(\"\") to evict everything")
	}
}

func TestFSStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := cache.NewFSStore(filepath.Join(dir, "regexcore-cache"))
	if _, ok := store.Load("missing"); ok {
		t.Fatalf("expected a miss for an absent key")
	}
	store.Write("key1", []byte("hello"))
	v, ok := store.Load("key1")
	if !ok || string(v) != "hello" {
		t.Fatalf("expected a hit with the written payload, got %q ok=%v", v, ok)
	}
	store.Clear("key1")
	if _, ok := store.Load("key1"); ok {
		t.Fatalf("expected Clear to evict the entry")
	}
}
