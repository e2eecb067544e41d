package handlers

import (
	"context"
	"errors"
	"testing"

	"press-lens/eventbus"
	"press-lens/events"

	"github.com/stretchr/testify/assert"
)

type fakeJobs struct {
	processed []string
	err       error
}

func (f *fakeJobs) Process(_ context.Context, e events.AnalysisRequestedEvent) error {
	f.processed = append(f.processed, e.JobID)
	return f.err
}

func TestHandleAnalysisRequested(t *testing.T) {
	jobs := &fakeJobs{}
	h := NewEventHandlers(jobs)

	evt := events.AnalysisRequestedEvent{
		BaseEvent: events.NewBaseEvent("e1", events.AnalysisRequested, "api"),
		JobID:     "job-1",
	}
	assert.NoError(t, h.HandleAnalysisRequested(context.Background(), evt, eventbus.Event{ID: "job-1"}))
	assert.Equal(t, []string{"job-1"}, jobs.processed)

	other := events.AnalysisRequestedEvent{BaseEvent: events.NewBaseEvent("e2", events.AnalysisCompleted, "processor"), JobID: "job-2"}
	assert.NoError(t, h.HandleAnalysisRequested(context.Background(), other, eventbus.Event{ID: "e2"}))
	assert.Equal(t, []string{"job-1"}, jobs.processed)

	jobs.err = errors.New("mongo down")
	assert.Error(t, h.HandleAnalysisRequested(context.Background(), evt, eventbus.Event{ID: "job-1"}))
}
