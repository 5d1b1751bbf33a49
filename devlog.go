// Package devlog is a personal blog engine built with Go, Echo, and templ.
// It provides post CRUD with Korean-aware slug generation, tag and series
// browsing, search, view/like counters, RSS, and a sitemap out of the box.
//
// Users provide their own templ templates via the ViewFuncs struct, and
// devlog handles all the handler logic, middleware, and database operations.
package devlog

import (
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/devhyun/devlog/engagement"
	"github.com/devhyun/devlog/storage"
)

// ViewFuncs holds user-provided templ components that the engine calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	Home             func(posts []Post, activeTag string, tags []TagInfo, siteURL string) templ.Component
	PostList         func(posts []Post, activeTag string, tags []TagInfo) templ.Component
	Post             func(post Post, seriesPosts []Post, related []Post, siteURL string) templ.Component
	TagIndex         func(tags []TagInfo) templ.Component
	SeriesIndex      func(series []SeriesInfo) templ.Component
	SeriesDetail     func(name string, posts []Post) templ.Component
	SearchPage       func(posts []Post, keyword string) templ.Component
	SearchResults    func(posts []Post, keyword string) templ.Component
	AdminLogin       func(showError bool, csrfToken string) templ.Component
	AdminDashboard   func(posts []Post, daily []engagement.DailyViews, message string, csrfToken string) templ.Component
	AdminFormPartial func(post Post, csrfToken string) templ.Component
	AdminImages      func(images []Image, csrfToken string) templ.Component
	NotFound         func() templ.Component
	ServerError      func() templ.Component
}

// App is the central devlog application. It wires together the store,
// cache, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs

	loginLimiter    *LoginLimiter
	engagementStore *engagement.Store
	storage         storage.Storage
	customRoutes    []func(*App)
	staticDir       string
}

// New creates a new devlog App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, middleware, routes, and starts the server.
func (a *App) Start() error {
	// Validate required config
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("devlog: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("devlog: SessionSecret is required")
	}

	// Initialize store
	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("devlog: init store: %w", err)
	}
	a.Store = store

	// Initialize cache
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)

	// Initialize login limiter
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	// Default to filesystem storage under the static dir
	if a.storage == nil {
		a.storage = storage.NewLocal(a.staticDir+"/uploads", "/public/uploads")
	}

	// Initialize engagement counters if enabled
	if a.Config.EngagementEnabled {
		engagementStore, err := engagement.NewStore(a.Config.EngagementDatabasePath)
		if err != nil {
			return fmt.Errorf("devlog: init engagement: %w", err)
		}
		a.engagementStore = engagementStore
		if err := engagement.InitSalt(engagementStore); err != nil {
			return fmt.Errorf("devlog: init engagement salt: %w", err)
		}
		stopCleanup := engagementStore.StartCleanupScheduler(365, 24*time.Hour)
		defer stopCleanup()
	}

	// Setup middleware
	a.setupMiddleware()

	// Setup routes
	a.setupRoutes()

	// Apply custom routes
	for _, fn := range a.customRoutes {
		fn(a)
	}

	// Start server
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// User's static assets
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/posts/:slug/", a.handlePost)
	e.GET("/tags/", a.handleTagIndex)
	e.GET("/tags/:tag/", a.handleTag)
	e.GET("/series/", a.handleSeriesIndex)
	e.GET("/series/:name/", a.handleSeriesDetail)
	e.GET("/search/", a.handleSearch)

	// Legacy URLs from the previous site layout
	e.GET("/blog", a.handleBlogRedirect)
	e.GET("/blog/:slug/", a.handleBlogRedirect)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/post/:slug/", a.handleAdminPost)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/post/:slug/", a.handleAdminDelete)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:key/", a.handleImageDelete)

	// Engagement routes
	if a.Config.EngagementEnabled && a.engagementStore != nil {
		engagementHandler := engagement.NewHandler(a.engagementStore, a.Store)
		engagementHandler.RegisterRoutes(e)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.engagementStore != nil {
		a.engagementStore.Close()
	}
	return nil
}
