package dto

import "press-lens/feeder"

// FeedResponseDTO 는 피드 목록 응답이다.
type FeedResponseDTO struct {
	Items []feeder.FeedItem `json:"items"`
}
