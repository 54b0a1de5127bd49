package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcher_PublishRunsAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string

	d.Subscribe(EventIdeaSubmitted, func(context.Context, Event) error {
		calls = append(calls, "first")
		return errors.New("first failed")
	})
	d.Subscribe(EventIdeaSubmitted, func(context.Context, Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventIdeaAssigned, func(context.Context, Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventIdeaSubmitted})
	if err == nil || err.Error() != "first failed" {
		t.Errorf("Publish() error = %v, want first failed", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("calls = %v", calls)
	}
}

func TestDispatcher_PublishWithoutListeners(t *testing.T) {
	d := NewInMemoryDispatcher()
	if err := d.Publish(context.Background(), Event{Type: EventDeveloperApproved}); err != nil {
		t.Errorf("Publish() error = %v", err)
	}
}

func TestDispatcher_RecoversPanickingHandler(t *testing.T) {
	d := NewInMemoryDispatcher()
	ran := false

	d.Subscribe(EventIdeaProgressAdded, func(context.Context, Event) error {
		panic("boom")
	})
	d.Subscribe(EventIdeaProgressAdded, func(context.Context, Event) error {
		ran = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventIdeaProgressAdded}); err == nil {
		t.Fatal("Publish() error = nil, want panic reported")
	}
	if !ran {
		t.Error("handler after the panicking one did not run")
	}
}
