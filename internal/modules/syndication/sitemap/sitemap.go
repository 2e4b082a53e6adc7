package sitemap

import (
	"fmt"
	"time"

	"github.com/counterclone/indrita-blog-sub000/internal/config"
	"github.com/counterclone/indrita-blog-sub000/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.AppConfig) {
	render := func(c *gin.Context) {
		xml, err := buildSitemap(db, cfg.WebBase())
		if err != nil {
			c.String(500, "error generating sitemap")
			return
		}
		c.Header("Content-Type", "application/xml; charset=utf-8")
		c.String(200, xml)
	}
	rg.GET("/sitemap.xml", render)
	rg.GET("/sitemap", render)
}

type sitemapURL struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq string
	Priority   float64
}

func buildSitemap(db *gorm.DB, base string) (string, error) {
	var urls []sitemapURL

	urls = append(urls, sitemapURL{
		Loc: base, LastMod: time.Now(),
		ChangeFreq: "daily", Priority: 1.0,
	})

	var articles []models.ArticleModel
	if err := db.Select("slug, updated_at").Order("publish_date DESC").Find(&articles).Error; err != nil {
		return "", err
	}
	for _, a := range articles {
		urls = append(urls, sitemapURL{
			Loc:        fmt.Sprintf("%s/articles/%s", base, a.Slug),
			LastMod:    a.UpdatedAt,
			ChangeFreq: "weekly",
			Priority:   0.8,
		})
	}

	var takes []models.QuickTakeModel
	if err := db.Select("id, updated_at").Where("is_published = ?", true).Find(&takes).Error; err != nil {
		return "", err
	}
	for _, qt := range takes {
		urls = append(urls, sitemapURL{
			Loc:        fmt.Sprintf("%s/quicktakes/%s", base, qt.ID),
			LastMod:    qt.UpdatedAt,
			ChangeFreq: "monthly",
			Priority:   0.5,
		})
	}

	return renderXML(urls), nil
}

func renderXML(urls []sitemapURL) string {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`
	for _, u := range urls {
		xml += fmt.Sprintf(`  <url>
    <loc>%s</loc>
    <lastmod>%s</lastmod>
    <changefreq>%s</changefreq>
    <priority>%.1f</priority>
  </url>
`, escapeXML(u.Loc), u.LastMod.Format("2006-01-02"), u.ChangeFreq, u.Priority)
	}
	xml += `</urlset>`
	return xml
}

func escapeXML(s string) string {
	out := ""
	for _, r := range s {
		switch r {
		case '&':
			out += "&amp;"
		case '<':
			out += "&lt;"
		case '>':
			out += "&gt;"
		default:
			out += string(r)
		}
	}
	return out
}
