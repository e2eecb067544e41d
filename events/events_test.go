package events

import (
	"testing"

	"press-lens/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeAndDeserialize(t *testing.T) {
	evt := AnalysisRequestedEvent{
		BaseEvent: NewBaseEvent("evt-1", AnalysisRequested, "api"),
		JobID:     "job-1",
		RequestID: "req_1",
		Input:     models.AnalyzeRequest{Title: "新サービス発表", Content: "本文"},
	}

	data, eventType, err := SerializeEvent(evt)
	require.NoError(t, err)
	assert.Equal(t, AnalysisRequested, eventType)

	decoded, err := DeserializeEvent(eventType, data)
	require.NoError(t, err)
	got, ok := decoded.(*AnalysisRequestedEvent)
	require.True(t, ok)
	assert.Equal(t, "job-1", got.JobID)
	assert.Equal(t, "新サービス発表", got.Input.Title)
}

func TestSerializeUnknownEvent(t *testing.T) {
	_, _, err := SerializeEvent(struct{}{})
	assert.Error(t, err)

	_, err = DeserializeEvent("unknown", []byte(`{}`))
	assert.Error(t, err)
}
