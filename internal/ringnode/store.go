package ringnode

import (
	"sort"
	"sync"

	"ringquorum/internal/logger"
)

// dictionary is the in-memory word -> definition map a ring node keeps
// for the keys it owns, plus any key it has cached while forwarding a
// put when caching is enabled.
type dictionary struct {
	lgr  logger.Logger
	mu   sync.RWMutex
	data map[string]string
}

func newDictionary(lgr logger.Logger) *dictionary {
	return &dictionary{lgr: lgr, data: make(map[string]string)}
}

// has reports whether word is present locally.
func (d *dictionary) has(word string) bool {
	d.mu.RLock()
	_, ok := d.data[word]
	d.mu.RUnlock()
	return ok
}

// get retrieves word's definition. ok is false if word is absent.
func (d *dictionary) get(word string) (string, bool) {
	d.mu.RLock()
	def, ok := d.data[word]
	d.mu.RUnlock()
	return def, ok
}

// put inserts word unconditionally, overwriting any existing value.
// Callers are responsible for the DuplicateWord check before calling this.
func (d *dictionary) put(word, definition string) {
	d.mu.Lock()
	d.data[word] = definition
	d.mu.Unlock()
	d.lgr.Debug("dictionary: word stored", logger.F("word", word))
}

// debugLog emits a sorted, structured snapshot of every word held.
func (d *dictionary) debugLog() {
	d.mu.RLock()
	words := make([]string, 0, len(d.data))
	for w := range d.data {
		words = append(words, w)
	}
	d.mu.RUnlock()
	sort.Strings(words)
	d.lgr.Debug("dictionary snapshot", logger.F("count", len(words)), logger.F("words", words))
}
