package feeder

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// FeedItem 은 보도자료 배포 피드의 항목 하나다.
type FeedItem struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Summary     string    `json:"summary,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Feeder 는 RSS/Atom 피드를 읽는다.
type Feeder struct {
	Client *http.Client
}

func New(timeout time.Duration) *Feeder {
	return &Feeder{Client: &http.Client{Timeout: timeout}}
}

// FetchRssFeeds 는 피드 항목을 최신순으로 반환한다. limit 이 0 보다 크면 앞의 limit 개만 반환한다.
func (f *Feeder) FetchRssFeeds(ctx context.Context, rssUrl string, limit int) ([]FeedItem, error) {
	fp := gofeed.NewParser()
	if f.Client != nil {
		fp.Client = f.Client
	}

	feed, err := fp.ParseURLWithContext(rssUrl, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		fi := FeedItem{
			Title:       item.Title,
			Link:        item.Link,
			Summary:     item.Description,
			PublishedAt: published,
		}
		if item.Image != nil {
			fi.ImageURL = item.Image.URL
		} else {
			for _, enc := range item.Enclosures {
				if enc != nil && strings.HasPrefix(enc.Type, "image/") {
					fi.ImageURL = enc.URL
					break
				}
			}
		}
		items = append(items, fi)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	return items, nil
}
