package branchsalary

import "context"

// RateWriter persists a complete result set, replacing whatever the
// destination held before. Replace must be atomic.
type RateWriter interface {
	Replace(ctx context.Context, rates []BranchMonthRate) error
}

// RateReader reads persisted rates back.
type RateReader interface {
	List(ctx context.Context, filter RateFilter) ([]BranchMonthRate, error)
}

// RateRepository is a destination that can be written and queried.
type RateRepository interface {
	RateWriter
	RateReader
}
