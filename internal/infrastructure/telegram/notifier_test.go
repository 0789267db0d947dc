package telegram

import (
	"context"
	"testing"
)

func TestPublishReportRequiresConfiguration(t *testing.T) {
	t.Parallel()

	n := NewNotifier("", "")
	if err := n.PublishReport(context.Background(), "run finished"); err == nil {
		t.Fatalf("expected misconfiguration error")
	}

	n = NewNotifier("token", "")
	if err := n.PublishReport(context.Background(), "run finished"); err == nil {
		t.Fatalf("expected missing chat id to be rejected")
	}
}
