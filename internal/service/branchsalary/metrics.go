package branchsalary

import (
	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/branchsalary"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "branch_salary"

// runMetrics are the collectors updated after every pipeline run.
type runMetrics struct {
	runs           *prometheus.CounterVec
	rejected       *prometheus.CounterVec
	duplicates     prometheus.Counter
	lastSuccess    prometheus.Gauge
	lastDuration   prometheus.Gauge
	outputRows     prometheus.Gauge
	undefinedRates prometheus.Gauge
	unmatched      prometheus.Gauge
}

// newRunMetrics registers the collectors on reg. A nil reg leaves them
// unregistered.
func newRunMetrics(reg prometheus.Registerer) *runMetrics {
	factory := promauto.With(reg)
	return &runMetrics{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"status"}),
		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rejected_rows_total",
			Help:      "Rows rejected as data-quality failures, by reason.",
		}, []string{"reason"}),
		duplicates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "duplicate_records_total",
			Help:      "Timesheet rows dropped by deduplication.",
		}),
		lastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
		lastDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall time of the last successful run.",
		}),
		outputRows: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "output_rows",
			Help:      "Branch-month rows written by the last run.",
		}),
		undefinedRates: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "undefined_rates",
			Help:      "Branch-months without worked hours in the last run.",
		}),
		unmatched: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "unmatched_intervals",
			Help:      "Intervals without a roster entry in the last run.",
		}),
	}
}

func (m *runMetrics) failed() {
	m.runs.WithLabelValues("failed").Inc()
}

func (m *runMetrics) succeeded(r branchsalary.Report) {
	c := r.Counts
	m.runs.WithLabelValues("success").Inc()
	m.lastSuccess.Set(float64(r.FinishedAt.Unix()))
	m.lastDuration.Set(r.FinishedAt.Sub(r.StartedAt).Seconds())
	m.outputRows.Set(float64(c.Rates))
	m.undefinedRates.Set(float64(c.UndefinedRates))
	m.unmatched.Set(float64(c.UnmatchedIntervals))

	m.rejected.WithLabelValues("malformed_timesheet").Add(float64(c.MalformedTimesheets))
	m.rejected.WithLabelValues("malformed_employee").Add(float64(c.MalformedEmployees))
	m.rejected.WithLabelValues("unprocessable").Add(float64(c.Unprocessable))
	m.rejected.WithLabelValues("empty_interval").Add(float64(c.EmptyIntervals))
	m.duplicates.Add(float64(c.DuplicateRecords))
}
