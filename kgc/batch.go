package kgc

import (
	"sync"

	"github.com/hashicorp/go-multierror"
)

// IssueBatch issues partial keys for many requests concurrently, bounded by
// a small worker pool, and aggregates any per-member failures into a single
// error — the KGC's onboarding-a-whole-ring-at-once affordance. A failure
// for one member does not stop issuance for the others; the returned
// results slice has one entry per request, in request order.
func (k *KGC) IssueBatch(requests []IssueRequest) ([]IssueResult, error) {
	results := make([]IssueResult, len(requests))

	const maxWorkers = 8
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errAgg *multierror.Error

	for i, req := range requests {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, req IssueRequest) {
			defer wg.Done()
			defer func() { <-sem }()

			y, z, err := k.IssuePartialKey(req.ID, req.X)
			results[i] = IssueResult{ID: req.ID, Y: y, Z: z, Err: err}
			if err != nil {
				mu.Lock()
				errAgg = multierror.Append(errAgg, err)
				mu.Unlock()
			}
		}(i, req)
	}
	wg.Wait()

	if errAgg != nil {
		return results, errAgg.ErrorOrNil()
	}
	return results, nil
}
