// internal/words/dictionary.go
//
// Provides the word list used by the round engine.
//
// Responsibilities:
//   - Hold the set of valid words, bucketed by length (4–6 letters).
//   - Membership tests (Contains) and per-length lists (Words) for solo mode.
//   - Atomic replacement so a list can be loaded in the background.
//
// Word lists:
//   - One word per line; blank lines and lines starting with '#' are ignored.
//   - Words are normalized to uppercase A–Z; anything else is dropped.
//
// Environment variables (read by config, passed to Load):
//   WORDS_FILE=/path/to/words.txt
//
// If no file is configured the embedded assets/words.txt is used.

package words

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/robalobadob/wordduel/assets"
)

const (
	MinLength = 4
	MaxLength = 6
)

// index is an immutable snapshot of a word list.
type index struct {
	set      map[string]struct{}
	byLength map[int][]string // sorted
}

// Dictionary is a concurrency-safe, replaceable word set.
// The zero value is an empty dictionary.
type Dictionary struct {
	idx atomic.Pointer[index]
}

// New builds a dictionary from list. Invalid entries are dropped.
func New(list []string) *Dictionary {
	d := &Dictionary{}
	d.Replace(list)
	return d
}

// Replace swaps the dictionary contents for list.
func (d *Dictionary) Replace(list []string) {
	words := Normalize(list)
	idx := &index{
		set:      make(map[string]struct{}, len(words)),
		byLength: make(map[int][]string),
	}
	for _, w := range words {
		idx.set[w] = struct{}{}
		idx.byLength[len(w)] = append(idx.byLength[len(w)], w)
	}
	d.idx.Store(idx)
}

// Contains reports whether w is in the dictionary. w must be uppercase.
func (d *Dictionary) Contains(w string) bool {
	idx := d.idx.Load()
	if idx == nil {
		return false
	}
	_, ok := idx.set[w]
	return ok
}

// Words returns the sorted words of length n. The slice must not be modified.
func (d *Dictionary) Words(n int) []string {
	idx := d.idx.Load()
	if idx == nil {
		return nil
	}
	return idx.byLength[n]
}

// Len returns the total number of words.
func (d *Dictionary) Len() int {
	idx := d.idx.Load()
	if idx == nil {
		return 0
	}
	return len(idx.set)
}

// Stats returns word counts keyed by length.
func (d *Dictionary) Stats() map[int]int {
	out := make(map[int]int, MaxLength-MinLength+1)
	for n := MinLength; n <= MaxLength; n++ {
		out[n] = len(d.Words(n))
	}
	return out
}

// Load reads a word list from path, or the embedded default when path is
// empty.
func Load(path string) ([]string, error) {
	if path == "" {
		return assets.WordList()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	list, err := readLines(f)
	if err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}
	return list, nil
}
