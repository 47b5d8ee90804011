// pkg/pubsub/client_test.go
package pubsub

import (
	"context"
	"errors"
	"testing"

	"github.com/ovenlane/bakeops-backend/pkg/config"
)

func TestNewClientRequiresProjectID(t *testing.T) {
	_, err := NewClient(context.Background(), config.GCPConfig{}, config.PubSubConfig{
		SchedulingTopic: "bakeops-scheduling-events",
	}, nil)
	if !errors.Is(err, errProjectIDRequired) {
		t.Fatalf("expected errProjectIDRequired, got %v", err)
	}
}

func TestNewClientRequiresSchedulingTopic(t *testing.T) {
	_, err := NewClient(context.Background(), config.GCPConfig{ProjectID: "bakeops-test"}, config.PubSubConfig{
		SchedulingTopic: "   ",
	}, nil)
	if !errors.Is(err, errTopicRequired) {
		t.Fatalf("expected errTopicRequired, got %v", err)
	}
}

func TestTopicResourceName(t *testing.T) {
	c := &Client{projectID: "bakeops-test", cfg: config.PubSubConfig{SchedulingTopic: "bakeops-scheduling-events"}}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "short id", in: "bakeops-scheduling-events", want: "projects/bakeops-test/topics/bakeops-scheduling-events"},
		{name: "full resource name passes through", in: "projects/other/topics/events", want: "projects/other/topics/events"},
		{name: "blank", in: "  ", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.topicResourceName(tc.in); got != tc.want {
				t.Fatalf("topicResourceName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSubscriptionResourceName(t *testing.T) {
	c := &Client{projectID: "bakeops-test"}

	if got := c.subscriptionResourceName("bakeops-scheduling-worker"); got != "projects/bakeops-test/subscriptions/bakeops-scheduling-worker" {
		t.Fatalf("unexpected resource name %q", got)
	}
	if got := c.subscriptionResourceName("projects/other/subscriptions/worker"); got != "projects/other/subscriptions/worker" {
		t.Fatalf("full resource name should pass through, got %q", got)
	}
	if got := c.subscriptionResourceName(""); got != "" {
		t.Fatalf("blank name should yield empty resource, got %q", got)
	}
}

func TestPublisherHandlesNilClient(t *testing.T) {
	var c *Client
	if p := c.Publisher("bakeops-scheduling-events"); p != nil {
		t.Fatal("nil client should yield nil publisher")
	}
	if s := c.Subscription("bakeops-scheduling-worker"); s != nil {
		t.Fatal("nil client should yield nil subscriber")
	}
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("nil client ping should error")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil client close should be a no-op, got %v", err)
	}
}
