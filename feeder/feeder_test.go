package feeder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rss = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>プレスリリース</title>
  <link>https://example.com</link>
  <item>
    <title>古いリリース</title>
    <link>https://example.com/releases/1</link>
    <description>古い</description>
    <pubDate>Mon, 03 Mar 2025 09:00:00 +0900</pubDate>
  </item>
  <item>
    <title>新サービス発表</title>
    <link>https://example.com/releases/2</link>
    <description>新しいクラウド会計サービス</description>
    <enclosure url="https://example.com/img/2.png" length="100" type="image/png"/>
    <pubDate>Tue, 04 Mar 2025 09:00:00 +0900</pubDate>
  </item>
</channel>
</rss>`

func TestFetchRssFeeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rss))
	}))
	defer srv.Close()

	f := New(5 * time.Second)

	items, err := f.FetchRssFeeds(context.Background(), srv.URL, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "新サービス発表", items[0].Title)
	assert.Equal(t, "https://example.com/img/2.png", items[0].ImageURL)
	assert.Equal(t, "古いリリース", items[1].Title)

	items, err = f.FetchRssFeeds(context.Background(), srv.URL, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "https://example.com/releases/2", items[0].Link)
}

func TestFetchRssFeedsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := New(time.Second).FetchRssFeeds(context.Background(), srv.URL, 0)
	assert.Error(t, err)
}
