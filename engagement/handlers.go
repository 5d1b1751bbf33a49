package engagement

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Counters is the slice of the content store the engagement handlers need:
// the aggregate view/like counts kept on the post rows.
type Counters interface {
	IncrementViews(slug string) error
	IncrementLikes(slug string) (int64, error)
	DecrementLikes(slug string) (int64, error)
	PostExists(slug string) (bool, error)
}

// Handler handles the engagement HTTP endpoints.
type Handler struct {
	store    *Store
	counters Counters
	limiter  *ipLimiter
}

// NewHandler creates an engagement handler. The endpoints are rate-limited
// to 30 requests per IP per minute.
func NewHandler(store *Store, counters Counters) *Handler {
	return &Handler{
		store:    store,
		counters: counters,
		limiter:  newIPLimiter(30, time.Minute),
	}
}

type viewResponse struct {
	Counted bool `json:"counted"`
}

type likeResponse struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// RecordView counts a view for a post. Each visitor counts once per day,
// and bot traffic never counts.
func (h *Handler) RecordView(c echo.Context) error {
	ip := c.RealIP()
	if !h.limiter.Allow(ip) {
		return c.NoContent(http.StatusTooManyRequests)
	}

	slug := c.Param("slug")
	exists, err := h.counters.PostExists(slug)
	if err != nil {
		c.Logger().Errorf("Failed to check post for view: %v", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	if !exists {
		return c.NoContent(http.StatusNotFound)
	}

	ua := c.Request().UserAgent()
	if IsBot(ua) {
		return c.JSON(http.StatusOK, viewResponse{Counted: false})
	}

	visitor := HashVisitor(ip, ua)
	counted, err := h.store.RecordView(slug, visitor, time.Now())
	if err != nil {
		c.Logger().Errorf("Failed to record view: %v", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	if counted {
		if err := h.counters.IncrementViews(slug); err != nil {
			c.Logger().Errorf("Failed to increment views: %v", err)
		}
	}
	return c.JSON(http.StatusOK, viewResponse{Counted: counted})
}

// ToggleLike flips the like state of a post for the requesting visitor and
// returns the new state and total.
func (h *Handler) ToggleLike(c echo.Context) error {
	ip := c.RealIP()
	if !h.limiter.Allow(ip) {
		return c.NoContent(http.StatusTooManyRequests)
	}

	slug := c.Param("slug")
	exists, err := h.counters.PostExists(slug)
	if err != nil {
		c.Logger().Errorf("Failed to check post for like: %v", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	if !exists {
		return c.NoContent(http.StatusNotFound)
	}

	visitor := HashVisitor(ip, c.Request().UserAgent())
	liked, err := h.store.ToggleLike(slug, visitor, time.Now())
	if err != nil {
		c.Logger().Errorf("Failed to toggle like: %v", err)
		return c.NoContent(http.StatusInternalServerError)
	}

	var likes int64
	if liked {
		likes, err = h.counters.IncrementLikes(slug)
	} else {
		likes, err = h.counters.DecrementLikes(slug)
	}
	if err != nil {
		c.Logger().Errorf("Failed to update like count: %v", err)
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, likeResponse{Liked: liked, Likes: likes})
}

// GetLike reports whether the requesting visitor currently likes a post,
// so the page can render the button state on load.
func (h *Handler) GetLike(c echo.Context) error {
	slug := c.Param("slug")
	visitor := HashVisitor(c.RealIP(), c.Request().UserAgent())
	liked, err := h.store.HasLiked(slug, visitor)
	if err != nil {
		c.Logger().Errorf("Failed to check like: %v", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, map[string]bool{"liked": liked})
}

// RegisterRoutes registers the public engagement routes.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/posts/:slug/view", h.RecordView)
	e.POST("/api/posts/:slug/like", h.ToggleLike)
	e.GET("/api/posts/:slug/like", h.GetLike)
}
