package legacyimport

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func mustMarshal(t *testing.T, docs ...interface{}) []byte {
	t.Helper()
	var payload []byte
	for _, doc := range docs {
		b, err := bson.Marshal(doc)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		payload = append(payload, b...)
	}
	return payload
}

func TestDecodeBSONDocs(t *testing.T) {
	oid := primitive.NewObjectID()
	when := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)

	payload := mustMarshal(t,
		bson.M{"_id": oid, "title": "First", "publishDate": primitive.NewDateTimeFromTime(when)},
		bson.M{"title": "Second", "category": bson.A{"macro", "rates"}},
	)

	docs, err := decodeBSONDocs(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}

	if got := docs[0]["_id"]; got != oid.Hex() {
		t.Errorf("_id = %v, want hex %s", got, oid.Hex())
	}
	ts, ok := docs[0]["publishDate"].(time.Time)
	if !ok || !ts.Equal(when) {
		t.Errorf("publishDate = %v, want %v", docs[0]["publishDate"], when)
	}
	if cats := docStrings(docs[1], "category"); len(cats) != 2 || cats[0] != "macro" {
		t.Errorf("category = %v", cats)
	}
}

func TestDecodeBSONDocsRejectsTruncated(t *testing.T) {
	payload := mustMarshal(t, bson.M{"a": 1})
	if _, err := decodeBSONDocs(payload[:len(payload)-3]); err == nil {
		t.Fatal("expected error for truncated payload")
	}
}

func TestDecodeBSONDocsEmpty(t *testing.T) {
	docs, err := decodeBSONDocs(nil)
	if err != nil || len(docs) != 0 {
		t.Fatalf("decode(nil) = (%v, %v), want empty", docs, err)
	}
}

func TestMapArticleAliases(t *testing.T) {
	when := time.Date(2022, 9, 3, 0, 0, 0, 0, time.UTC)
	doc := map[string]interface{}{
		"_id":         "64abc",
		"title":       "Legacy Title",
		"description": "old excerpt field",
		"image":       "https://cdn/x.jpg",
		"category":    "single-string",
		"date":        when,
		"content":     "<p>body</p>",
	}

	a := mapArticle(doc)
	if a.ID != "64abc" || a.Title != "Legacy Title" {
		t.Fatalf("article = %+v", a)
	}
	if a.Excerpt != "old excerpt field" {
		t.Errorf("excerpt alias not applied: %q", a.Excerpt)
	}
	if a.ImageURL != "https://cdn/x.jpg" {
		t.Errorf("image alias not applied: %q", a.ImageURL)
	}
	// Legacy scalar category becomes a one-element array.
	if len(a.Category) != 1 || a.Category[0] != "single-string" {
		t.Errorf("category = %v", a.Category)
	}
	if !a.PublishDate.Equal(when) {
		t.Errorf("publishDate = %v, want %v", a.PublishDate, when)
	}
	if a.HTMLContent != "<p>body</p>" {
		t.Errorf("content alias not applied: %q", a.HTMLContent)
	}
}

func TestMapSubscriberFlagDefaults(t *testing.T) {
	// Row from the active dump: no flag field, default applies.
	active := mapSubscriber(map[string]interface{}{"email": "UPPER@Example.com"}, true)
	if active.Email != "upper@example.com" {
		t.Errorf("email = %q, want lowercased", active.Email)
	}
	if !active.Subscribed {
		t.Error("active dump rows default to subscribed")
	}

	// Row from the unsubscribed dump.
	gone := mapSubscriber(map[string]interface{}{"email": "x@y.com"}, false)
	if gone.Subscribed {
		t.Error("unsubscribed dump rows default to inactive")
	}

	// Unified rows carry the flag themselves; it wins over the default.
	unified := mapSubscriber(map[string]interface{}{"email": "x@y.com", "subscribed": false}, true)
	if unified.Subscribed {
		t.Error("explicit flag must override the default")
	}
}

func TestMapQuickTakeDefaults(t *testing.T) {
	qt := mapQuickTake(map[string]interface{}{
		"content": "hello",
		"likes":   int32(7),
	})
	if qt.Type != "text" {
		t.Errorf("type = %q, want text fallback", qt.Type)
	}
	if qt.LikeCount != 7 {
		t.Errorf("likes = %d, want 7", qt.LikeCount)
	}
	if !qt.IsPublished {
		t.Error("missing isPublished defaults to published")
	}
}

func TestMapQuickTakeNestedChartData(t *testing.T) {
	qt := mapQuickTake(map[string]interface{}{
		"type": "chart",
		"chartData": map[string]interface{}{
			"title":       "Revenue by quarter",
			"description": "FY2021",
		},
	})
	if qt.ChartTitle != "Revenue by quarter" {
		t.Errorf("chart title = %q, want nested chartData.title", qt.ChartTitle)
	}
	if qt.ChartDesc != "FY2021" {
		t.Errorf("chart description = %q, want nested chartData.description", qt.ChartDesc)
	}

	// Flat keys win when both shapes are present.
	qt = mapQuickTake(map[string]interface{}{
		"type":       "chart",
		"chartTitle": "Flat title",
		"chartData":  map[string]interface{}{"title": "Nested title"},
	})
	if qt.ChartTitle != "Flat title" {
		t.Errorf("chart title = %q, want flat key to win", qt.ChartTitle)
	}
}

func TestDocTimeFormats(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  time.Time
	}{
		{"rfc3339 string", "2021-03-04T05:06:07Z", time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)},
		{"date-only string", "2021-03-04", time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"unix millis", float64(1614834367000), time.UnixMilli(1614834367000)},
		{"unix seconds", float64(1614834367), time.Unix(1614834367, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := docTime(map[string]interface{}{"t": tt.value}, "t")
			if !got.Equal(tt.want) {
				t.Fatalf("docTime = %v, want %v", got, tt.want)
			}
		})
	}

	if !docTime(map[string]interface{}{}, "t").IsZero() {
		t.Error("missing key should yield zero time")
	}
}
