package analysis

import "testing"

func TestSplitBreaksOnTerminalPunctuation(t *testing.T) {
	segmenter := NewSegmenter()

	sentences := segmenter.Split("The policy covers liability claims. Premiums are due monthly! Is arbitration mandatory?")
	want := []string{
		"The policy covers liability claims",
		"Premiums are due monthly",
		"Is arbitration mandatory",
	}
	if len(sentences) != len(want) {
		t.Fatalf("expected %d sentences, got %d: %v", len(want), len(sentences), sentences)
	}
	for i := range want {
		if sentences[i] != want[i] {
			t.Fatalf("sentence %d: expected %q, got %q", i, want[i], sentences[i])
		}
	}
}

func TestSplitDropsShortFragments(t *testing.T) {
	segmenter := NewSegmenter()

	sentences := segmenter.Split("Sec. 4.1. The insurer shall provide written notice of cancellation.")
	if len(sentences) != 1 {
		t.Fatalf("expected only the long fragment to survive, got %v", sentences)
	}
}

func TestSplitEmptyInput(t *testing.T) {
	segmenter := NewSegmenter()

	if sentences := segmenter.Split(""); len(sentences) != 0 {
		t.Fatalf("expected no sentences for empty input, got %v", sentences)
	}
}
