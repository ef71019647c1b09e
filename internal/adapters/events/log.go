package events

import (
	"context"
	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/platform/obs"
	"log"
	"time"
)

// LogPublisher writes events to the process log when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, e domain.Event) error {
	log.Printf("req_id=%s event=%s donation_id=%d route_id=%d status=%s at=%s",
		obs.RequestID(ctx), e.Type, e.DonationID, e.RouteID, e.Status, e.At.Format(time.RFC3339))
	return nil
}
