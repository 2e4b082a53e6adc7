package feed

import (
	"strings"
	"testing"
	"time"
)

func TestEscapeXML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`Growth & "Outlook" <Q3>`, "Growth &amp; &quot;Outlook&quot; &lt;Q3&gt;"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := escapeXML(tt.in); got != tt.want {
			t.Errorf("escapeXML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Links land inside href attribute values, so quotes in them must not
// terminate the attribute.
func TestBuildAtomEscapesAttributeValues(t *testing.T) {
	items := []feedItem{{
		Title:   "First",
		Link:    `https://example.com/articles/a"b`,
		GUID:    "a1",
		PubDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Content: "<p>body</p>",
	}}

	xml := buildAtom("Site", "Desc", "https://example.com", items)
	if strings.Contains(xml, `href="https://example.com/articles/a"b"`) {
		t.Fatal("raw quote leaked into href attribute")
	}
	if !strings.Contains(xml, "https://example.com/articles/a&quot;b") {
		t.Fatalf("link not quote-escaped:\n%s", xml)
	}
}
