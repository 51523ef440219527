package recognition

import (
	"sort"
	"strings"
)

// Metric identifies the distance metric a model family is matched with.
type Metric string

const (
	MetricEuclideanL2 Metric = "euclidean_l2"
	MetricCosine      Metric = "cosine"
)

// DefaultMinMargin is the minimum required gap between the best and
// second-best candidate, in the units of the active metric.
const DefaultMinMargin = 0.04

// Candidate is one identity/distance pair returned by the face engine.
type Candidate struct {
	Identity string  `json:"identity"`
	Distance float64 `json:"distance"`
}

// Params are the decision parameters applied to a candidate list.
type Params struct {
	MaxDistance float64 `json:"max_distance"`
	MinMargin   float64 `json:"min_margin"`
	Metric      Metric  `json:"metric"`
}

// Reason explains why a probe was not accepted.
type Reason string

const (
	ReasonNoCandidates   Reason = "no_candidates"
	ReasonAboveThreshold Reason = "above_threshold"
	ReasonLowMargin      Reason = "low_margin"
)

// Decision is the outcome of resolving a candidate list. Unknown is a
// first-class outcome, not an error; callers must branch on Accepted.
type Decision struct {
	Accepted bool    `json:"accepted"`
	Identity string  `json:"identity,omitempty"`
	Distance float64 `json:"distance,omitempty"`
	Reason   Reason  `json:"reason,omitempty"`
	Margin   float64 `json:"margin,omitempty"`
}

// DefaultsForModel picks the metric and absolute distance threshold for a
// recognition model family. ArcFace variants are matched with a normalized
// Euclidean metric; Facenet and everything else with cosine.
func DefaultsForModel(model string) (Metric, float64) {
	name := strings.ToLower(model)
	if strings.Contains(name, "arc") {
		return MetricEuclideanL2, 1.20
	}
	if strings.Contains(name, "facenet") {
		return MetricCosine, 0.30
	}
	return MetricCosine, 0.30
}

// ParamsForModel builds decision parameters for a model family. Explicit
// overrides always take precedence over the per-model defaults.
func ParamsForModel(model string, maxDistance, minMargin float64) Params {
	metric, threshold := DefaultsForModel(model)
	if maxDistance > 0 {
		threshold = maxDistance
	}
	if minMargin <= 0 {
		minMargin = DefaultMinMargin
	}
	return Params{MaxDistance: threshold, MinMargin: minMargin, Metric: metric}
}

// Resolve turns a ranked candidate list into an accept/reject decision.
// The input may arrive unsorted; it is ordered ascending by distance first.
// A best candidate within the absolute threshold is still rejected when the
// second-best is closer than MinMargin behind it (ambiguous match).
func Resolve(candidates []Candidate, params Params) Decision {
	if len(candidates) == 0 {
		return Decision{Reason: ReasonNoCandidates}
	}

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Distance < sorted[j].Distance })

	best := sorted[0]
	if best.Distance > params.MaxDistance {
		return Decision{Reason: ReasonAboveThreshold, Distance: best.Distance}
	}
	if len(sorted) > 1 {
		margin := sorted[1].Distance - best.Distance
		if margin < params.MinMargin {
			return Decision{Reason: ReasonLowMargin, Distance: best.Distance, Margin: margin}
		}
	}
	return Decision{Accepted: true, Identity: best.Identity, Distance: best.Distance}
}
