package devlog

import (
	"crypto/subtle"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/devhyun/devlog/engagement"
	"github.com/devhyun/devlog/slug"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminPost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	post, err := a.Store.GetPostAny(c.Param("slug"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, a.Views.AdminFormPartial(post, CsrfToken(c)))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Title+is+required.")
	}

	// A manual slug is taken as given. Only a blank field triggers
	// generation from the title, with Korean romanized.
	postSlug := strings.TrimSpace(c.FormValue("slug"))
	if postSlug == "" {
		postSlug = slug.Generate(title)
		if postSlug == "" {
			postSlug = "post-" + uuid.NewString()[:8]
		}
		var err error
		postSlug, err = a.Store.EnsureUniqueSlug(postSlug)
		if err != nil {
			return err
		}
	}

	var createdAt time.Time
	if date := strings.TrimSpace(c.FormValue("date")); date != "" {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")
		}
		createdAt = t
	}

	tags := strings.Split(c.FormValue("tags"), ",")
	for i := range tags {
		tags[i] = strings.TrimSpace(tags[i])
	}
	tags = FilterEmpty(tags)

	if err := a.Store.SavePost(Post{
		Slug:       postSlug,
		Title:      title,
		Content:    c.FormValue("content"),
		SeriesName: strings.TrimSpace(c.FormValue("series_name")),
		Tags:       tags,
		CreatedAt:  createdAt,
		Published:  c.FormValue("published") != "",
	}); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Store.DeletePost(c.Param("slug")); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListAllPosts()
	if err != nil {
		return err
	}
	var daily []engagement.DailyViews
	if a.engagementStore != nil {
		daily, err = a.engagementStore.ViewsByDay(30)
		if err != nil {
			c.Logger().Errorf("Failed to load view stats: %v", err)
			daily = nil
		}
	}
	return Render(c, a.Views.AdminDashboard(posts, daily, msg, CsrfToken(c)))
}
