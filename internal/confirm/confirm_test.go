package confirm

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirmAccepts(t *testing.T) {
	for _, answer := range []string{"y", "Y", "yes", "YES", "  yes  "} {
		var out bytes.Buffer
		p := New(strings.NewReader(answer+"\n"), &out)

		ok, err := p.Confirm("Apply plan?")
		if err != nil {
			t.Fatalf("Confirm(%q) failed: %v", answer, err)
		}
		if !ok {
			t.Fatalf("expected %q to accept", answer)
		}
	}
}

func TestConfirmDeclines(t *testing.T) {
	for _, answer := range []string{"n", "N", "no", "No"} {
		var out bytes.Buffer
		p := New(strings.NewReader(answer+"\n"), &out)

		ok, err := p.Confirm("Apply plan?")
		if err != nil {
			t.Fatalf("Confirm(%q) failed: %v", answer, err)
		}
		if ok {
			t.Fatalf("expected %q to decline", answer)
		}
	}
}

func TestConfirmRepromptsOnUnknownAnswer(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("maybe\n\nyes\n"), &out)

	ok, err := p.Confirm("Apply plan?")
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if !ok {
		t.Fatal("expected eventual yes to accept")
	}
	if got := strings.Count(out.String(), "[y/n]"); got != 3 {
		t.Fatalf("expected 3 prompts, got %d in %q", got, out.String())
	}
}

func TestConfirmEOFDeclines(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader(""), &out)

	ok, err := p.Confirm("Apply plan?")
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if ok {
		t.Fatal("expected EOF to decline")
	}
}
