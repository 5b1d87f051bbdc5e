package branchsalary

import (
	"context"
	"log/slog"
	"sort"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/branchsalary"
	"golang.org/x/sync/errgroup"
)

// monthKey identifies a (year, month, branch, salary) bucket. Salary is held
// in its canonical string form so that equal amounts share a key.
type monthKey struct {
	year     int
	month    int
	branchID string
	salary   string
}

type partial struct {
	buckets   map[monthKey]*branchsalary.MonthlyEmployeeHours
	unmatched int
}

// IntervalAggregator sums worked time per (year, month, branch, salary).
type IntervalAggregator struct {
	workers int
}

func NewIntervalAggregator(workers int) *IntervalAggregator {
	if workers < 1 {
		workers = 1
	}
	return &IntervalAggregator{workers: workers}
}

// Aggregate splits the input across workers, aggregates each part and merges
// the partial sums. Intervals without a roster match are excluded and counted.
func (a *IntervalAggregator) Aggregate(ctx context.Context, intervals []branchsalary.EnrichedInterval) ([]branchsalary.MonthlyEmployeeHours, int, error) {
	chunks := a.workers
	if chunks > len(intervals) {
		chunks = len(intervals)
	}
	if chunks == 0 {
		return nil, 0, nil
	}

	partials := make([]partial, chunks)
	size := (len(intervals) + chunks - 1) / chunks

	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < chunks; i++ {
		lo := i * size
		hi := min(lo+size, len(intervals))
		g.Go(func() error {
			p, err := aggregateChunk(gCtx, intervals[lo:hi])
			if err != nil {
				return err
			}
			partials[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	merged := make(map[monthKey]*branchsalary.MonthlyEmployeeHours)
	unmatched := 0
	for _, p := range partials {
		unmatched += p.unmatched
		for key, b := range p.buckets {
			if m, ok := merged[key]; ok {
				m.TotalSeconds += b.TotalSeconds
				m.Intervals += b.Intervals
				continue
			}
			merged[key] = b
		}
	}

	out := make([]branchsalary.MonthlyEmployeeHours, 0, len(merged))
	for _, m := range merged {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if a.BranchID != b.BranchID {
			return a.BranchID < b.BranchID
		}
		return a.Salary.LessThan(b.Salary)
	})

	slog.Info("Aggregated hours by year, month, branch and salary", "groups", len(out), "excluded_unmatched", unmatched)
	return out, unmatched, nil
}

func aggregateChunk(ctx context.Context, intervals []branchsalary.EnrichedInterval) (partial, error) {
	p := partial{buckets: make(map[monthKey]*branchsalary.MonthlyEmployeeHours)}
	for i, iv := range intervals {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return partial{}, err
			}
		}
		if !iv.Matched() {
			p.unmatched++
			continue
		}

		key := monthKey{
			year:     iv.Date.Year(),
			month:    int(iv.Date.Month()),
			branchID: *iv.BranchID,
			salary:   iv.Salary.String(),
		}
		b, ok := p.buckets[key]
		if !ok {
			b = &branchsalary.MonthlyEmployeeHours{
				Year:     key.year,
				Month:    key.month,
				BranchID: key.branchID,
				Salary:   *iv.Salary,
			}
			p.buckets[key] = b
		}
		b.TotalSeconds += int64(iv.Duration().Seconds())
		b.Intervals++
	}
	return p, nil
}
