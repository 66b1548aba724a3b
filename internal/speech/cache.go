package speech

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/hammamikhairi/recipeflow/internal/logger"
)

// AudioCache keeps synthesized clips in memory and, when dir is set, on
// disk across runs. Keys are sha256(voice + ":" + text), so switching voice
// misses cleanly.
type AudioCache struct {
	voice string
	dir   string // "" disables the disk layer
	log   *logger.Logger

	mu      sync.RWMutex
	entries map[string][]byte
}

// NewAudioCache creates a cache for the given voice.
func NewAudioCache(voice, dir string, log *logger.Logger) *AudioCache {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error("cache: creating %s: %v (disk layer off)", dir, err)
			dir = ""
		}
	}
	return &AudioCache{
		voice:   voice,
		dir:     dir,
		log:     log,
		entries: make(map[string][]byte),
	}
}

// Get returns the clip for text from memory, then disk.
func (c *AudioCache) Get(text string) ([]byte, bool) {
	key := c.key(text)

	c.mu.RLock()
	data, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return data, true
	}

	if c.dir == "" {
		return nil, false
	}
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}
	c.mu.Lock()
	c.entries[key] = data
	c.mu.Unlock()
	c.log.Debug("cache hit (disk): %s", key[:12])
	return data, true
}

// Put stores a clip in memory and on disk.
func (c *AudioCache) Put(text string, audio []byte) {
	key := c.key(text)

	c.mu.Lock()
	c.entries[key] = audio
	c.mu.Unlock()

	if c.dir == "" {
		return
	}
	if err := os.WriteFile(c.path(key), audio, 0o644); err != nil {
		c.log.Error("cache: disk write failed for %s: %v", key[:12], err)
	}
}

// Len returns the number of in-memory entries.
func (c *AudioCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *AudioCache) key(text string) string {
	h := sha256.Sum256([]byte(c.voice + ":" + text))
	return hex.EncodeToString(h[:])
}

func (c *AudioCache) path(key string) string {
	return filepath.Join(c.dir, key+".wav")
}
