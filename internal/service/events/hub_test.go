package events_test

import (
	"testing"
	"time"

	"github.com/zhouzirui/video-catalog/backend/internal/model/video"
	"github.com/zhouzirui/video-catalog/backend/internal/service/events"
)

func TestHubDeliversToAllSubscribers(t *testing.T) {
	hub := events.NewHub(4)
	a := hub.Subscribe()
	b := hub.Subscribe()
	defer a.Cancel()
	defer b.Cancel()

	hub.Publish(events.Event{Type: events.Created, ID: 1, Video: &video.Video{ID: 1, Name: "x"}})

	for _, sub := range []*events.Subscription{a, b} {
		select {
		case e := <-sub.Events:
			if e.Type != events.Created || e.ID != 1 {
				t.Fatalf("unexpected event: %+v", e)
			}
			if e.At.IsZero() {
				t.Fatal("expected timestamp to be set")
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	hub := events.NewHub(1)
	sub := hub.Subscribe()
	defer sub.Cancel()

	hub.Publish(events.Event{Type: events.Created, ID: 1})
	hub.Publish(events.Event{Type: events.Deleted, ID: 1})

	e := <-sub.Events
	if e.Type != events.Created {
		t.Fatalf("expected first event to be kept, got %s", e.Type)
	}
	select {
	case e := <-sub.Events:
		t.Fatalf("expected second event to be dropped, got %+v", e)
	default:
	}
}

func TestSubscriptionCancelClosesChannel(t *testing.T) {
	hub := events.NewHub(1)
	sub := hub.Subscribe()
	if hub.Subscribers() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", hub.Subscribers())
	}

	sub.Cancel()
	sub.Cancel()

	if _, ok := <-sub.Events; ok {
		t.Fatal("expected closed channel")
	}
	if hub.Subscribers() != 0 {
		t.Fatalf("expected 0 subscribers, got %d", hub.Subscribers())
	}
	hub.Publish(events.Event{Type: events.Updated, ID: 2})
}
