package legacyimport

import (
	"math"
	"strings"
	"time"

	"github.com/counterclone/indrita-blog-sub000/internal/models"
)

// The legacy dump stores camelCase keys; a few fields changed name over the
// years, so every accessor takes the aliases in preference order.

func docString(doc map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := doc[key]; ok {
			if s, ok := v.(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func docBool(doc map[string]interface{}, def bool, keys ...string) bool {
	for _, key := range keys {
		if v, ok := doc[key]; ok {
			if b, ok := v.(bool); ok {
				return b
			}
		}
	}
	return def
}

func docInt(doc map[string]interface{}, keys ...string) int {
	for _, key := range keys {
		switch v := doc[key].(type) {
		case int:
			return v
		case int32:
			return int(v)
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return 0
}

func docTime(doc map[string]interface{}, keys ...string) time.Time {
	for _, key := range keys {
		switch v := doc[key].(type) {
		case time.Time:
			return v
		case string:
			if parsed, ok := parseTimeString(v); ok {
				return parsed
			}
		case float64:
			if parsed, ok := unixNumberToTime(v); ok {
				return parsed
			}
		case int64:
			if parsed, ok := unixNumberToTime(float64(v)); ok {
				return parsed
			}
		}
	}
	return time.Time{}
}

func docStrings(doc map[string]interface{}, keys ...string) []string {
	for _, key := range keys {
		switch v := doc[key].(type) {
		case []interface{}:
			out := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					out = append(out, s)
				}
			}
			return out
		case string:
			if v != "" {
				return []string{v}
			}
		}
	}
	return nil
}

func parseTimeString(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	layouts := [...]string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func unixNumberToTime(value float64) (time.Time, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return time.Time{}, false
	}
	abs := math.Abs(value)
	switch {
	case abs >= 1e11:
		return time.UnixMilli(int64(value)), true
	case abs >= 1e8:
		return time.Unix(int64(value), 0), true
	default:
		return time.Time{}, false
	}
}

func mapArticle(doc map[string]interface{}) *models.ArticleModel {
	a := &models.ArticleModel{
		Title:       docString(doc, "title"),
		Slug:        docString(doc, "slug"),
		Excerpt:     docString(doc, "excerpt", "description"),
		ImageURL:    docString(doc, "imageUrl", "image"),
		Author:      docString(doc, "author"),
		Category:    models.StringArray(docStrings(doc, "category", "categories")),
		ReadTime:    docString(doc, "readTime"),
		PublishDate: docTime(doc, "publishDate", "date", "createdAt"),
		HTMLContent: docString(doc, "htmlContent", "content"),
	}
	a.ID = docString(doc, "_id")
	return a
}

func mapArticleContent(doc map[string]interface{}) *models.ArticleContentModel {
	c := &models.ArticleContentModel{
		ArticleID:   docString(doc, "articleId", "article_id"),
		Slug:        docString(doc, "slug"),
		HTMLContent: docString(doc, "htmlContent", "content"),
	}
	c.ID = docString(doc, "_id")
	return c
}

func mapSubscriber(doc map[string]interface{}, subscribed bool) *models.SubscriberModel {
	s := &models.SubscriberModel{
		Email:        strings.ToLower(docString(doc, "email")),
		Subscribed:   docBool(doc, subscribed, "subscribed", "isSubscribed"),
		SubscribedAt: docTime(doc, "subscribedAt", "subscriptionDate", "createdAt"),
	}
	s.ID = docString(doc, "_id")
	return s
}

func mapTestSubscriber(doc map[string]interface{}) *models.TestSubscriberModel {
	t := &models.TestSubscriberModel{
		Email: strings.ToLower(docString(doc, "email")),
	}
	t.ID = docString(doc, "_id")
	return t
}

func mapQuickTake(doc map[string]interface{}) *models.QuickTakeModel {
	qt := &models.QuickTakeModel{
		Type:          models.QuickTakeType(docString(doc, "type")),
		Content:       docString(doc, "content"),
		ChartTitle:    docString(doc, "chartTitle"),
		ChartDesc:     docString(doc, "chartDescription", "chartDesc"),
		ImageURL:      docString(doc, "imageUrl"),
		Author:        docString(doc, "author"),
		Tags:          models.StringArray(docStrings(doc, "tags")),
		LikeCount:     docInt(doc, "likes", "likeCount"),
		CommentsCount: docInt(doc, "comments", "commentsCount"),
		Trending:      docBool(doc, false, "trending"),
		IsPublished:   docBool(doc, true, "isPublished", "published"),
	}
	// Chart fields were stored nested as chartData{title,description}
	// before they were flattened.
	if sub, ok := doc["chartData"].(map[string]interface{}); ok {
		if qt.ChartTitle == "" {
			qt.ChartTitle = docString(sub, "title")
		}
		if qt.ChartDesc == "" {
			qt.ChartDesc = docString(sub, "description")
		}
	}
	if qt.Type == "" {
		qt.Type = models.QuickTakeText
	}
	qt.ID = docString(doc, "_id")
	return qt
}

func mapGallery(doc map[string]interface{}) *models.GalleryModel {
	g := &models.GalleryModel{
		ImageURL: docString(doc, "imageUrl", "image"),
		Title:    docString(doc, "title", "caption"),
		Date:     docTime(doc, "date", "createdAt"),
	}
	g.ID = docString(doc, "_id")
	return g
}

func mapThought(doc map[string]interface{}) *models.ThoughtModel {
	t := &models.ThoughtModel{
		Embed: docString(doc, "embed", "content"),
		Date:  docTime(doc, "date", "createdAt"),
	}
	t.ID = docString(doc, "_id")
	return t
}
