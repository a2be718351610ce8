package post

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/post"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

const rssItemLimit = 20

type RSSUseCase struct {
	postRepo  post.Repository
	publicURL string
	logger    logger.Logger
}

func NewRSSUseCase(pRepo post.Repository, publicURL string, log logger.Logger) *RSSUseCase {
	return &RSSUseCase{
		postRepo:  pRepo,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    log,
	}
}

func (uc *RSSUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	posts, err := uc.postRepo.ListRecent(ctx, rssItemLimit)
	if err != nil {
		uc.logger.Error("Failed to list posts for RSS", err)
		return nil, apperror.NewInternal("list posts for rss failed", err)
	}

	feed := &feeds.Feed{
		Title:       "DevConnector - Posts",
		Link:        &feeds.Link{Href: uc.publicURL + "/posts"},
		Description: "Latest posts from the developer community.",
		Created:     time.Now().UTC(),
	}

	for _, p := range posts {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          p.ID.String(),
			Title:       summary(p.Text),
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/posts/%s", uc.publicURL, p.ID)},
			Author:      &feeds.Author{Name: p.Name},
			Description: p.Text,
			Created:     p.CreatedAt,
		})
	}
	if len(posts) > 0 {
		feed.Updated = posts[0].CreatedAt
	}

	uc.logger.Debug("RSS feed generated", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}

// summary is the first line of the text, cut to 80 runes.
func summary(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	r := []rune(line)
	if len(r) > 80 {
		return string(r[:77]) + "..."
	}
	return line
}
