package srv

import "context"

// cleanupService wraps a close function (database handle, log flush) so it
// participates in the ordered shutdown like a real service.
type cleanupService struct {
	cleanup func() error
}

func NewCleanup(fn func() error) Service {
	return &cleanupService{cleanup: fn}
}

func (c *cleanupService) Start(ctx context.Context) error {
	return nil
}

func (c *cleanupService) Shutdown(ctx context.Context) error {
	if c.cleanup != nil {
		return c.cleanup()
	}
	return nil
}
