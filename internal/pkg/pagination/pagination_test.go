package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func queryFor(t *testing.T, rawQuery string) Query {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return FromContext(c)
}

func TestFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		rawQuery string
		want     Query
	}{
		{"defaults", "", Query{Page: DefaultPage, Size: DefaultSize}},
		{"explicit", "page=3&size=25", Query{Page: 3, Size: 25}},
		{"limit alias", "page=2&limit=5", Query{Page: 2, Size: 5}},
		{"size wins over limit", "size=20&limit=5", Query{Page: 1, Size: 20}},
		{"clamped below", "page=0&size=-1", Query{Page: 1, Size: DefaultSize}},
		{"clamped above", "size=5000", Query{Page: 1, Size: MaxSize}},
		{"garbage", "page=abc&size=xyz", Query{Page: DefaultPage, Size: DefaultSize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := queryFor(t, tt.rawQuery); got != tt.want {
				t.Errorf("FromContext(%q) = %+v, want %+v", tt.rawQuery, got, tt.want)
			}
		})
	}
}
