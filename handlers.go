package devlog

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	tag := c.QueryParam("tag")
	posts, err := a.Cache.ListPosts(tag)
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	if c.Request().Header.Get("HX-Request") == "true" && c.QueryParam("partial") == "posts" {
		return Render(c, a.Views.PostList(posts, tag, tags))
	}
	return Render(c, a.Views.Home(posts, tag, tags, a.Config.URL))
}

func (a *App) handlePost(c echo.Context) error {
	s := c.Param("slug")
	post, err := a.Cache.GetPost(s)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	var seriesPosts []Post
	if post.SeriesName != "" {
		seriesPosts, err = a.Store.ListSeriesPosts(post.SeriesName)
		if err != nil {
			return err
		}
	}
	all, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	related := FilterRelatedPosts(post, all)
	return Render(c, a.Views.Post(post, seriesPosts, related, a.Config.URL))
}

// handleTag renders the listing filtered to a single tag at a crawlable URL.
func (a *App) handleTag(c echo.Context) error {
	tag := c.Param("tag")
	posts, err := a.Cache.ListPosts(tag)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(posts, tag, tags, a.Config.URL))
}

func (a *App) handleTagIndex(c echo.Context) error {
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	return Render(c, a.Views.TagIndex(tags))
}

func (a *App) handleSeriesIndex(c echo.Context) error {
	series, err := a.Cache.ListSeries()
	if err != nil {
		return err
	}
	return Render(c, a.Views.SeriesIndex(series))
}

func (a *App) handleSeriesDetail(c echo.Context) error {
	name := c.Param("name")
	posts, err := a.Store.ListSeriesPosts(name)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	return Render(c, a.Views.SeriesDetail(name, posts))
}

func (a *App) handleSearch(c echo.Context) error {
	keyword := c.QueryParam("q")
	posts, err := a.Cache.Search(keyword)
	if err != nil {
		return err
	}
	if c.Request().Header.Get("HX-Request") == "true" {
		return Render(c, a.Views.SearchResults(posts, keyword))
	}
	return Render(c, a.Views.SearchPage(posts, keyword))
}

// handleBlogRedirect preserves old /blog/:slug URLs.
func (a *App) handleBlogRedirect(c echo.Context) error {
	s := c.Param("slug")
	if s == "" {
		return c.Redirect(http.StatusMovedPermanently, "/")
	}
	return c.Redirect(http.StatusMovedPermanently, "/posts/"+PathEscape(s)+"/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
