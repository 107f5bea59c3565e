package sleep

import (
	"fmt"
)

type Rating string

const (
	RatingPoor Rating = "poor"
	RatingFair Rating = "fair"
	RatingGood Rating = "good"
)

// Range is an inclusive recommended range.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

var recommended = map[Metric]Range{
	MetricEfficiency: {Low: 85, High: 90},
	MetricDuration:   {Low: 420, High: 480},
	MetricLatency:    {Low: 15, High: 30},
}

// Recommended returns the recommended range of m.
func Recommended(m Metric) (Range, bool) {
	r, ok := recommended[m]
	return r, ok
}

type position int

const (
	below position = iota
	within
	above
)

type Assessment struct {
	Metric  Metric  `json:"metric"`
	Average float64 `json:"average"`
	Rating  Rating  `json:"rating"`
	Range   Range   `json:"range"`
	Message string  `json:"message"`
}

// Assess rates the average of a metric against its recommended range.
// Less latency is better, for the other metrics more is better.
func Assess(m Metric, avg float64) (Assessment, error) {
	r, ok := recommended[m]
	if !ok {
		return Assessment{}, fmt.Errorf("no recommended range for [%s]", m)
	}

	pos := within
	switch {
	case avg < r.Low:
		pos = below
	case avg > r.High:
		pos = above
	}

	a := Assessment{
		Metric:  m,
		Average: avg,
		Range:   r,
	}
	a.Rating = rate(m, pos)
	a.Message = fmt.Sprintf("%s %s: your average of %.1f %s is %s the recommended range of %g to %g %s. %s",
		title(a.Rating), m.Label(), avg, m.Unit(), pos, r.Low, r.High, m.Unit(), tips[m][pos])
	return a, nil
}

func rate(m Metric, pos position) Rating {
	if m == MetricLatency {
		return [...]Rating{RatingGood, RatingFair, RatingPoor}[pos]
	}
	return [...]Rating{RatingPoor, RatingFair, RatingGood}[pos]
}

func (p position) String() string {
	switch p {
	case below:
		return "below"
	case above:
		return "above"
	default:
		return "within"
	}
}

func title(r Rating) string {
	switch r {
	case RatingPoor:
		return "Poor"
	case RatingFair:
		return "Fair"
	default:
		return "Good"
	}
}

var tips = map[Metric][3]string{
	MetricEfficiency: {
		below:  "Keep a regular sleep schedule, make the bedroom comfortable and stay away from caffeine and screens before bed.",
		within: "Your current habits work. Relaxation before bed, like meditation or slow breathing, can push it further.",
		above:  "Well done. Keep the habits that give you consistent, restful sleep.",
	},
	MetricDuration: {
		below:  "Aim for at least 7 hours a night. A fixed bedtime, a quiet room and no caffeine or alcohol late in the day help.",
		within: "You are getting the recommended amount of sleep. Keep your routine and adjust it when needed.",
		above:  "You are sleeping plenty. Watch your energy during the day and talk to a doctor if you still feel tired.",
	},
	MetricLatency: {
		below:  "You fall asleep quickly. Keep your current bedtime habits.",
		within: "Good work. Small changes to your sleep environment or a relaxation routine may shorten it a bit more.",
		above:  "Try relaxation techniques, cut caffeine and keep a consistent bedtime routine to signal it is time to sleep.",
	},
}

// Describe explains what a sleep metric measures.
func Describe(m Metric) string {
	switch m {
	case MetricEfficiency:
		return "Sleep efficiency is the percentage of time in bed you actually spend asleep."
	case MetricDuration:
		return "Sleep duration is the total time you spend asleep."
	case MetricLatency:
		return "Sleep latency is how long it takes to fall asleep after going to bed."
	default:
		return ""
	}
}
