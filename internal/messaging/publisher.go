// Package messaging defines the event publishing boundary for the reference
// media service. Catalog mutations are announced on the broker so other
// dealership services (site rendering, search indexing) can react.
package messaging

import (
	"context"

	"github.com/dealerpress/media-library/internal/domain"
)

// Publisher defines the interface for publishing media events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a media event
	PublishEvent(ctx context.Context, event *domain.MediaEvent) error
	// Close closes the connection
	Close()
}
