package app

import (
	"net/http"
	"time"

	"github.com/counterclone/indrita-blog-sub000/internal/middleware"
	"github.com/counterclone/indrita-blog-sub000/internal/modules/auth"
	"github.com/counterclone/indrita-blog-sub000/internal/modules/content/article"
	"github.com/counterclone/indrita-blog-sub000/internal/modules/content/gallery"
	"github.com/counterclone/indrita-blog-sub000/internal/modules/content/quicktake"
	"github.com/counterclone/indrita-blog-sub000/internal/modules/content/reconcile"
	"github.com/counterclone/indrita-blog-sub000/internal/modules/content/thought"
	"github.com/counterclone/indrita-blog-sub000/internal/modules/notify"
	"github.com/counterclone/indrita-blog-sub000/internal/modules/ops/legacyimport"
	"github.com/counterclone/indrita-blog-sub000/internal/modules/subscriber"
	"github.com/counterclone/indrita-blog-sub000/internal/modules/syndication/feed"
	"github.com/counterclone/indrita-blog-sub000/internal/modules/syndication/sitemap"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/mail"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api"

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	authMW := middleware.AdminAuth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// Services. The subscriber store doubles as the notifier's recipient
	// source; the notifier loops back as the subscriber welcome hook.
	sender := mail.New(a.cfg.Mail)
	subSvc := subscriber.NewService(subscriber.NewStore(db), a.logger)
	notifySvc := notify.New(sender, subSvc, a.cfg, a.logger)
	subSvc.SetNotifier(notifySvc)

	articleSvc := article.NewService(db)
	reconcileSvc := reconcile.NewService(reconcile.NewStore(db), a.logger)

	// Root-level endpoints
	root := r.Group("")
	sitemap.RegisterRoutes(root, db, a.cfg)
	feed.RegisterRoutes(root, db, a.cfg) // /feed.xml, /atom.xml

	// API
	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth())
	api.Use(middleware.HTTPCache(a.redis.Raw(), middleware.HTTPCacheOptions{
		TTL:       15 * time.Second,
		Disable:   a.cfg.IsDev(),
		SkipPaths: httpCacheSkipPaths(),
	}))

	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/clean_cache", authMW, a.cleanCache)
	api.POST("/clean_cache", authMW, a.cleanCache)

	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api, authMW)
	article.NewHandler(articleSvc, notifySvc).RegisterRoutes(api, authMW)
	quicktake.NewHandler(quicktake.NewService(db)).RegisterRoutes(api, authMW)
	gallery.NewHandler(gallery.NewService(db)).RegisterRoutes(api, authMW)
	thought.NewHandler(thought.NewService(db)).RegisterRoutes(api, authMW)
	subscriber.NewHandler(subSvc, subscriber.NewTestListService(db), notifySvc).RegisterRoutes(api, authMW)
	reconcile.NewHandler(reconcileSvc).RegisterRoutes(api, authMW)
	legacyimport.NewHandler(legacyimport.NewService(db, reconcileSvc, a.logger)).RegisterRoutes(api, authMW)
}

func (a *App) cleanCache(c *gin.Context) {
	deleted, err := middleware.PurgeHTTPCache(c.Request.Context(), a.redis.Raw())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": deleted})
}

// httpCacheSkipPaths lists endpoints whose responses must never be served
// stale, mutation-adjacent reads included.
func httpCacheSkipPaths() []string {
	p := apiPrefix
	return []string{
		p + "/auth/*",
		p + "/clean_cache",
		p + "/subscribers*",
		p + "/import/*",
		p + "/reconcile/*",
	}
}
