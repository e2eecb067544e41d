package services

import (
	"context"
	"sort"
	"strings"

	"press-lens/config"
	"press-lens/feeder"
	"press-lens/logger"
	"press-lens/models"
)

// FeedReader 는 feeder.Feeder 가 구현한다.
type FeedReader interface {
	FetchRssFeeds(ctx context.Context, rssUrl string, limit int) ([]feeder.FeedItem, error)
}

// FeedService 는 보도자료 배포 사이트의 최신 항목을 보여준다.
type FeedService struct {
	reader  FeedReader
	sources []config.FeedSource
}

func NewFeedService(reader FeedReader, sources []config.FeedSource) *FeedService {
	return &FeedService{reader: reader, sources: sources}
}

// List 는 rssURL 의 항목을, 비어 있으면 설정된 모든 피드를 합쳐 최신순으로 반환한다.
// 설정 피드 일부가 실패해도 나머지 결과를 돌려준다.
func (s *FeedService) List(ctx context.Context, rssURL string, limit int) ([]feeder.FeedItem, error) {
	rssURL = strings.TrimSpace(rssURL)
	if rssURL != "" {
		if !isHTTPURL(rssURL) {
			return nil, models.NewValidationError("rss_url", "rss_url must be an absolute http(s) URL")
		}
		return s.reader.FetchRssFeeds(ctx, rssURL, limit)
	}

	var (
		all     []feeder.FeedItem
		lastErr error
	)
	for _, src := range s.sources {
		items, err := s.reader.FetchRssFeeds(ctx, src.RSSURL, limit)
		if err != nil {
			logger.Log.Warnf("feed %s (%s) fetch failed: %v", src.Name, src.RSSURL, err)
			lastErr = err
			continue
		}
		all = append(all, items...)
	}
	if len(all) == 0 && lastErr != nil {
		return nil, lastErr
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].PublishedAt.After(all[j].PublishedAt)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	if all == nil {
		all = []feeder.FeedItem{}
	}
	return all, nil
}
