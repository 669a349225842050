// Package feed delivers appointment change notifications from Postgres
// LISTEN/NOTIFY, either directly or relayed through redis pub/sub.
package feed

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/events"
)

// ResyncSuffix names the side channel on which a relay announces that it
// may have missed notifications.
const ResyncSuffix = ":resync"

const bufferSize = 256

func send(ctx context.Context, out chan<- events.Notification, n events.Notification) bool {
	select {
	case out <- n:
		return true
	case <-ctx.Done():
		return false
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
