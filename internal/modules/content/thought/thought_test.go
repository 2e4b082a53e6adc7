package thought

import (
	"errors"
	"strings"
	"testing"
)

func TestResolveEmbed(t *testing.T) {
	if got, err := resolveEmbed("<blockquote>hi</blockquote>", "ignored"); err != nil || got != "<blockquote>hi</blockquote>" {
		t.Fatalf("embed should win as-is, got %q err %v", got, err)
	}

	got, err := resolveEmbed("", "**bold** thought")
	if err != nil {
		t.Fatalf("markdown render: %v", err)
	}
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("rendered markdown = %q, want <strong>bold</strong>", got)
	}

	if _, err := resolveEmbed("", ""); !errors.Is(err, errInvalidThought) {
		t.Fatalf("empty input err = %v, want errInvalidThought", err)
	}
}
