package words

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
)

func TestNormalize(t *testing.T) {
	in := []string{" apple", "APPLE", "tree", "cat", "banana", "bananas", "don't", "Crane", "", "cafés"}
	want := []string{"APPLE", "BANANA", "CRANE", "TREE"}
	if got := Normalize(in); !slices.Equal(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestPrepare(t *testing.T) {
	raw := "# header\nzebra\r\nApple\n\nqi\nplanet\nzebra\nx-ray\n"
	got, err := Prepare(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	want := []string{"APPLE", "PLANET", "ZEBRA"}
	if !slices.Equal(got, want) {
		t.Errorf("Prepare() = %v, want %v", got, want)
	}

	var buf bytes.Buffer
	if err := Write(&buf, got); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if buf.String() != "APPLE\nPLANET\nZEBRA" {
		t.Errorf("Write() = %q", buf.String())
	}
}

func TestDictionary(t *testing.T) {
	d := New([]string{"tree", "apple", "crane", "planet", "word"})

	if !d.Contains("APPLE") || d.Contains("apple") || d.Contains("PAPER") {
		t.Errorf("Contains() results unexpected")
	}
	if got := d.Words(4); !slices.Equal(got, []string{"TREE", "WORD"}) {
		t.Errorf("Words(4) = %v", got)
	}
	if got := d.Words(7); len(got) != 0 {
		t.Errorf("Words(7) = %v, want empty", got)
	}
	if d.Len() != 5 {
		t.Errorf("Len() = %d, want 5", d.Len())
	}
	if got := d.Stats(); got[4] != 2 || got[5] != 2 || got[6] != 1 {
		t.Errorf("Stats() = %v", got)
	}
}

func TestZeroDictionaryIsEmpty(t *testing.T) {
	var d Dictionary
	if d.Contains("APPLE") || d.Len() != 0 || d.Words(5) != nil {
		t.Errorf("zero Dictionary is not empty")
	}
}

func TestDictionaryReplaceConcurrent(t *testing.T) {
	d := New(nil)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		d.Replace([]string{"apple"})
	}()
	for i := 0; i < 100; i++ {
		_ = d.Contains("APPLE")
	}
	wg.Wait()
	if !d.Contains("APPLE") {
		t.Errorf("Contains(APPLE) = false after Replace")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("apple\nTree\n# skip\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	list, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) error = %v", path, err)
	}
	if d := New(list); !d.Contains("APPLE") || !d.Contains("TREE") || d.Len() != 2 {
		t.Errorf("Load() list = %v", list)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Errorf("Load(missing) error = nil, want error")
	}

	embedded, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if d := New(embedded); len(d.Words(5)) == 0 {
		t.Errorf("embedded list has no 5-letter words")
	}
}

func TestRandomPicker(t *testing.T) {
	list := []string{"APPLE", "CRANE", "TREE"}
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		w, err := RandomPicker{}.Pick(list)
		if err != nil {
			t.Fatalf("Pick() error = %v", err)
		}
		if !slices.Contains(list, w) {
			t.Fatalf("Pick() = %q, not a candidate", w)
		}
		seen[w] = true
	}
	if len(seen) != len(list) {
		t.Errorf("Pick() over 200 draws only produced %v", seen)
	}
	if _, err := (RandomPicker{}).Pick(nil); err == nil {
		t.Errorf("Pick(nil) error = nil, want error")
	}
}
