package cache

import (
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/sync/singleflight"
	"golang.org/x/sys/unix"
)

// payloadVersion is written into every persisted entry; a mismatch
// invalidates the file instead of attempting to interpret stale bytes.
const payloadVersion = 1

type payload struct {
	Version int    `cbor:"version"`
	Value   []byte `cbor:"value"`
}

// FSStore is a content-addressed filesystem cache: one file per key
// under root, CBOR-encoded with a version header (spec.md §6's
// "Persisted state" layout). Concurrent loads of the same key are
// deduplicated with singleflight; writes take a best-effort advisory
// flock and are otherwise last-writer-wins.
type FSStore struct {
	root  string
	group singleflight.Group
}

// NewFSStore roots the cache at dir, creating it if necessary. A
// creation failure is not fatal here — it simply means every later
// operation also fails and is demoted to a miss/no-op, matching spec.md
// §7's CacheError policy.
func NewFSStore(dir string) *FSStore {
	_ = os.MkdirAll(dir, 0o755)
	return &FSStore{root: dir}
}

func (f *FSStore) path(key string) string {
	return filepath.Join(f.root, key+".cache")
}

func (f *FSStore) Load(key string) ([]byte, bool) {
	v, err, _ := f.group.Do(key, func() (interface{}, error) {
		data, err := os.ReadFile(f.path(key))
		if err != nil {
			return nil, err
		}
		var p payload
		if err := cbor.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		if p.Version != payloadVersion {
			return nil, os.ErrInvalid
		}
		return p.Value, nil
	})
	if err != nil {
		return nil, false
	}
	return v.([]byte), true
}

func (f *FSStore) Write(key string, value []byte) {
	data, err := cbor.Marshal(payload{Version: payloadVersion, Value: value})
	if err != nil {
		return
	}
	path := f.path(key)
	tmp := path + ".tmp"
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return
	}
	defer file.Close()

	// Best-effort advisory lock: write-once-per-key is the common case
	// (content-addressed keys rarely collide), so failure to lock just
	// means we fall back to last-writer-wins instead of aborting.
	_ = unix.Flock(int(file.Fd()), unix.LOCK_EX)
	defer unix.Flock(int(file.Fd()), unix.LOCK_UN)

	if _, err := file.Write(data); err != nil {
		return
	}
	_ = os.Rename(tmp, path)
}

func (f *FSStore) Clear(key string) {
	if key == "" {
		entries, err := os.ReadDir(f.root)
		if err != nil {
			return
		}
		for _, e := range entries {
			_ = os.Remove(filepath.Join(f.root, e.Name()))
		}
		return
	}
	_ = os.Remove(f.path(key))
}
