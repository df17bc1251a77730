// Package prometheus provides Prometheus metrics for the workflow engine.
// The engine owns no HTTP surface; callers register the collectors into
// their own registry and serve them however they expose metrics.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "siteflow"

var (
	// stepEntriesTotal is a counter of step entry attempts.
	stepEntriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "step_entries_total",
			Help:      "Total number of step entry attempts",
		},
		[]string{"step", "status"}, // status: accepted, blocked
	)

	// stepCompletionsTotal is a counter of committed step completions.
	stepCompletionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "step_completions_total",
			Help:      "Total number of committed step completions",
		},
		[]string{"step", "category", "status"}, // status: success, failure
	)

	// featuresRevealedTotal is a counter of feature reveals.
	featuresRevealedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "features_revealed_total",
			Help:      "Total number of features revealed by disclosure triggers",
		},
		[]string{"feature"},
	)

	// achievementsTotal is a counter of unlocked achievements.
	achievementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "achievements_unlocked_total",
			Help:      "Total number of achievements unlocked",
		},
		[]string{"achievement"},
	)

	// complexityUpgradesTotal is a counter of committed complexity upgrades.
	complexityUpgradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "complexity_upgrades_total",
			Help:      "Total number of committed complexity level upgrades",
		},
		[]string{"level"},
	)

	// sessionsActive is a gauge of live sessions.
	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of currently active analysis sessions",
		},
	)

	// stepTimeMinutes is a histogram of reported time spent per completed step.
	stepTimeMinutes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_time_minutes",
			Help:      "Reported working time per completed step in minutes",
			Buckets:   []float64{1, 2, 5, 10, 15, 20, 30, 45, 60, 120},
		},
		[]string{"category"},
	)

	// allMetrics is a list of all metrics for registration.
	allMetrics = []prometheus.Collector{
		stepEntriesTotal,
		stepCompletionsTotal,
		featuresRevealedTotal,
		achievementsTotal,
		complexityUpgradesTotal,
		sessionsActive,
		stepTimeMinutes,
	}
)

// Register registers all workflow metrics into the given registry.
func Register(reg prometheus.Registerer) {
	for _, collector := range allMetrics {
		reg.MustRegister(collector)
	}
}

// RecordStepEntry records a step entry attempt.
func RecordStepEntry(stepID string, accepted bool) {
	status := "accepted"
	if !accepted {
		status = "blocked"
	}
	stepEntriesTotal.WithLabelValues(stepID, status).Inc()
}

// RecordStepCompletion records a committed step completion.
func RecordStepCompletion(stepID, category string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	stepCompletionsTotal.WithLabelValues(stepID, category, status).Inc()
}

// RecordFeatureRevealed records a feature reveal.
func RecordFeatureRevealed(feature string) {
	featuresRevealedTotal.WithLabelValues(feature).Inc()
}

// RecordAchievement records an unlocked achievement.
func RecordAchievement(achievementID string) {
	achievementsTotal.WithLabelValues(achievementID).Inc()
}

// RecordComplexityUpgrade records a committed complexity upgrade.
func RecordComplexityUpgrade(level string) {
	complexityUpgradesTotal.WithLabelValues(level).Inc()
}

// SessionStarted increments the active session gauge.
func SessionStarted() {
	sessionsActive.Inc()
}

// SessionEnded decrements the active session gauge.
func SessionEnded() {
	sessionsActive.Dec()
}

// RecordStepTime records minutes spent on a completed step.
func RecordStepTime(category string, minutes float64) {
	stepTimeMinutes.WithLabelValues(category).Observe(minutes)
}
