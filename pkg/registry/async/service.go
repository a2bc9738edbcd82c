package async

import (
	"context"
	"time"
)

// Service is a long running background process polling at a fixed interval
type Service interface {
	Start(ctx context.Context, interval time.Duration) error
}
