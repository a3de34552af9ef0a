// internal/words/prepare.go
//
// Word-list preprocessing.
// Turns a raw word list (any case, any length, duplicates) into the
// canonical form the dictionary expects:
//   • uppercase A–Z only
//   • 4–6 letters
//   • deduplicated and sorted
//
// The same rules apply when a list is loaded at runtime, so a raw list can
// be used directly; cmd/wordlist writes the cleaned list back to disk.

package words

import (
	"bufio"
	"io"
	"sort"
	"strings"
)

// Normalize applies the canonical filtering rules to list.
func Normalize(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.ToUpper(strings.TrimSpace(w))
		if !valid(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Prepare reads a raw newline-delimited list from r and normalizes it.
func Prepare(r io.Reader) ([]string, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return Normalize(lines), nil
}

// Write emits list one word per line.
func Write(w io.Writer, list []string) error {
	bw := bufio.NewWriter(w)
	for i, word := range list {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// readLines returns the non-empty, non-comment lines of r.
func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// valid reports whether w is 4–6 uppercase ASCII letters.
func valid(w string) bool {
	if len(w) < MinLength || len(w) > MaxLength {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return false
		}
	}
	return true
}
