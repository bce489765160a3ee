package analyzer

import (
	"reflect"
	"testing"
)

func TestTokenizeBasic(t *testing.T) {
	tok := NewTokenizer()

	got := tok.Tokenize("The meeting covered budget planning and Q3 targets.")
	want := []string{"meeting", "covered", "budget", "planning", "q3", "targets"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenizeKeepsUnderscores(t *testing.T) {
	tok := NewTokenizer()

	got := tok.Tokenize("what is self_attention")
	want := []string{"self_attention"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	tok := NewTokenizer()

	if got := tok.Tokenize("   \n\t "); len(got) != 0 {
		t.Errorf("expected no tokens, got %v", got)
	}
}

func TestTokenizeDropsShortAndStopwords(t *testing.T) {
	tok := NewTokenizer()

	got := tok.Tokenize("a I in of transformer")
	want := []string{"transformer"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
