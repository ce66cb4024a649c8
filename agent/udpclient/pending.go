package udpclient

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/SyntropyNet/udp-probe/internal/logger"
	"github.com/jellydator/ttlcache/v3"
)

// newPendingCache tracks probes waiting for their reply.
// Every probe that expires without a reply increments lost.
func newPendingCache(timeout time.Duration, lost *uint32) *ttlcache.Cache[uint32, time.Time] {
	cache := ttlcache.New[uint32, time.Time](
		ttlcache.WithTTL[uint32, time.Time](timeout),
	)

	cache.OnEviction(func(ctx context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[uint32, time.Time]) {
		if reason != ttlcache.EvictionReasonExpired {
			return
		}
		// called from cache goroutine, session mutex must not be taken here
		atomic.AddUint32(lost, 1)
		logger.Debug().Println(pkgName, "no reply for seq", item.Key(), "sent at", item.Value())
	})

	return cache
}
