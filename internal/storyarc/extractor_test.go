package storyarc

import (
	"sync"
	"testing"
)

func TestExtractBeforePrimeReturnsEmpty(t *testing.T) {
	e := NewExtractor()
	if got := e.Extract("The God in the Bowl, Part 3"); got != "" {
		t.Errorf("Extract before Prime = %q, want empty", got)
	}
}

func TestPrimeAndExtractPartSuffix(t *testing.T) {
	e := NewExtractor()
	e.Prime([]string{
		"The God in the Bowl, Part 3",
		"The God in the Bowl, Part 4",
	})
	if got := e.Extract("The God in the Bowl, Part 3"); got != "The God in the Bowl" {
		t.Errorf("Extract = %q, want %q", got, "The God in the Bowl")
	}
}

func TestSingleOccurrenceIsNotAnArc(t *testing.T) {
	e := NewExtractor()
	e.Prime([]string{
		"The God in the Bowl, Part 3",
		"Tower of the Elephant",
	})
	if got := e.Extract("The God in the Bowl, Part 3"); got != "" {
		t.Errorf("one occurrence should not register an arc, got %q", got)
	}
}

func TestExtractUnrelatedTitle(t *testing.T) {
	e := NewExtractor()
	e.Prime([]string{
		"The God in the Bowl, Part 3",
		"The God in the Bowl, Part 4",
	})
	if got := e.Extract("Red Nails, Chapter 1"); got != "" {
		t.Errorf("unrelated title should not match, got %q", got)
	}
}

func TestPartMarkerVariants(t *testing.T) {
	cases := []struct {
		name   string
		titles []string
		query  string
		want   string
	}{
		{
			name:   "chapter marker",
			titles: []string{"Red Nails, Chapter 1", "Red Nails, Chapter 2"},
			query:  "Red Nails, Chapter 2",
			want:   "Red Nails",
		},
		{
			name:   "n of m marker",
			titles: []string{"Born Again 1 of 4", "Born Again 2 of 4"},
			query:  "Born Again 3 of 4",
			want:   "Born Again",
		},
		{
			name:   "spelled out part number",
			titles: []string{"Hush, Part One", "Hush, Part Two"},
			query:  "Hush, Part One",
			want:   "Hush",
		},
		{
			name:   "bare trailing number",
			titles: []string{"Weird War 12", "Weird War 13"},
			query:  "Weird War 13",
			want:   "Weird War",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewExtractor()
			e.Prime(tc.titles)
			if got := e.Extract(tc.query); got != tc.want {
				t.Errorf("Extract(%q) = %q, want %q", tc.query, got, tc.want)
			}
		})
	}
}

func TestLongestArcWins(t *testing.T) {
	e := NewExtractor()
	e.Prime([]string{
		"Dark Reign, Part 1",
		"Dark Reign, Part 2",
		"Dark Reign: The List, Part 1",
		"Dark Reign: The List, Part 2",
	})
	if got := e.Extract("Dark Reign: The List, Part 2"); got != "Dark Reign: The List" {
		t.Errorf("Extract = %q, want longest matching arc", got)
	}
	if got := e.Extract("Dark Reign, Part 1"); got != "Dark Reign" {
		t.Errorf("Extract = %q, want %q", got, "Dark Reign")
	}
}

func TestExtractIsCaseInsensitive(t *testing.T) {
	e := NewExtractor()
	e.Prime([]string{
		"The God in the Bowl, Part 3",
		"the god in the bowl, part 4",
	})
	if got := e.Extract("THE GOD IN THE BOWL, PART 4"); got != "The God in the Bowl" {
		t.Errorf("Extract = %q, want first-seen display form", got)
	}
}

func TestPrimeReplacesPreviousIndex(t *testing.T) {
	e := NewExtractor()
	e.Prime([]string{"Hush, Part One", "Hush, Part Two"})
	e.Prime([]string{"Red Nails, Chapter 1", "Red Nails, Chapter 2"})
	if got := e.Extract("Hush, Part One"); got != "" {
		t.Errorf("re-priming should drop earlier arcs, got %q", got)
	}
}

func TestConcurrentPrimeAndExtract(t *testing.T) {
	e := NewExtractor()
	titles := []string{"The God in the Bowl, Part 3", "The God in the Bowl, Part 4"}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Prime(titles)
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = e.Extract("The God in the Bowl, Part 3")
		}()
	}
	wg.Wait()

	if got := e.Extract("The God in the Bowl, Part 4"); got != "The God in the Bowl" {
		t.Errorf("Extract after concurrent use = %q", got)
	}
}
