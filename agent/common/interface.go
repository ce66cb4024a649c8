package common

import "context"

// Service interface describes background running instances.
// Run must not block: it starts the service and returns.
// The service stops when ctx is cancelled.
type Service interface {
	Name() string
	Run(ctx context.Context) error
}
