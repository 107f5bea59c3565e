package heart

type METCategory string

const (
	METPoor      METCategory = "poor"
	METFair      METCategory = "fair"
	METGood      METCategory = "good"
	METExcellent METCategory = "excellent"
)

// ClassifyMET bands a normalized MET score: below 5 is poor, 5 to 8 fair,
// 9 to 11 good and 12 or more excellent. Fractional scores fall into the
// band of their integer part.
func ClassifyMET(met float64) METCategory {
	switch {
	case met >= 12:
		return METExcellent
	case met >= 9:
		return METGood
	case met >= 5:
		return METFair
	default:
		return METPoor
	}
}

// Describe returns the explanation shown next to the metric chart.
func Describe(metric Metric) string {
	switch metric {
	case MetricHeartRate:
		return "Your heart beats around 100,000 times a day, speeding up and slowing down " +
			"as you move between rest and exertion. Heart rate is the number of beats per minute " +
			"and is a useful indicator of cardiovascular health."
	case MetricMET:
		return "Metabolic Equivalents (METs) express the energy cost of an activity. One MET is " +
			"the oxygen used while sitting at rest, about 3.5 ml O2/kg/min, so higher scores mean " +
			"more intense activity. Below 5 METs is poor, 5 to 8 is fair, 9 to 11 is good and " +
			"12 or more is excellent."
	default:
		return ""
	}
}
