package ratelimiter

import (
	"context"
	"sync"
)

type FakeRateLimiter struct {
	DisallowAll bool
	Checked     []string
	lock        sync.Mutex
}

func NewFakeRateLimiter(disallowAll bool) *FakeRateLimiter {
	return &FakeRateLimiter{DisallowAll: disallowAll}
}

func (r *FakeRateLimiter) CheckLimit(ctx context.Context, key string, limit Limit) Result {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Checked = append(r.Checked, key)
	if r.DisallowAll {
		return NotAllowed()
	}
	return Allowed()
}
