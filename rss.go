package devlog

import (
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"

	"github.com/devhyun/devlog/markdown"
)

const feedLimit = 20

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	if len(posts) > feedLimit {
		posts = posts[:feedLimit]
	}

	feed := &feeds.Feed{
		Title:       a.Config.Name,
		Link:        &feeds.Link{Href: a.Config.URL},
		Description: a.Config.Description,
		Author:      &feeds.Author{Name: a.Config.Author},
		Created:     time.Now(),
	}

	for _, p := range posts {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       p.Title,
			Link:        &feeds.Link{Href: BuildURL(a.Config.URL, "posts", p.Slug)},
			Description: markdown.Excerpt(p.Content, 300),
			Created:     p.CreatedAt,
			Content:     markdown.Render(p.Content),
		})
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return feed.WriteRss(c.Response())
}
