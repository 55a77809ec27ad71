package dns

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/juju/ratelimit"
	"github.com/miekg/dns"
)

var errRateLimited = errors.New("upstream rate limit exceeded")

// HandlerOverUDP forwards queries unchanged to an upstream server.
type HandlerOverUDP struct {
	upstream string
	client   *dns.Client
	bucket   *ratelimit.Bucket
}

// NewHandlerOverUDP forwards at most rate queries per second; rate <= 0
// disables the limit.
func NewHandlerOverUDP(upstream string, timeout time.Duration, rate float64) *HandlerOverUDP {
	h := &HandlerOverUDP{
		upstream: upstream,
		client: &dns.Client{
			Net:     "udp",
			Timeout: timeout,
		},
	}
	if rate > 0 {
		h.bucket = ratelimit.NewBucketWithRate(rate, int64(math.Max(1, math.Ceil(rate))))
	}
	return h
}

func (h *HandlerOverUDP) Lookup(r *dns.Msg) (*dns.Msg, error) {
	if h.bucket != nil && h.bucket.TakeAvailable(1) == 0 {
		return nil, errRateLimited
	}

	ctx := context.Background()
	if h.client.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.client.Timeout)
		defer cancel()
	}

	answer, _, err := h.client.ExchangeContext(ctx, r, h.upstream)
	if err != nil {
		return nil, fmt.Errorf("exchange with %s: %w", h.upstream, err)
	}
	return answer, nil
}

func (h *HandlerOverUDP) String() string {
	return fmt.Sprintf("UDP[upstream: %v, timeout: %v]", h.upstream, h.client.Timeout)
}
