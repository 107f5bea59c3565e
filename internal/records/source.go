package records

// IDColumn is the user identifier column shared by every export.
const IDColumn = "Id"

// Source describes one flat export file and how its columns are normalized.
type Source struct {
	Name        string
	File        string
	Granularity Granularity
	// Renames maps raw header names to canonical ones. The raw date column
	// is always renamed to the granularity's time column.
	Renames map[string]string
	// Metrics are the canonical numeric columns kept from the file.
	Metrics []string
}

var (
	SourceDailyActivity = Source{
		Name:        "dailyActivity",
		File:        "dailyActivity_merged.csv",
		Granularity: Daily,
		Renames:     map[string]string{"ActivityDate": "ActivityDay"},
		Metrics: []string{
			"TotalSteps", "TotalDistance", "TrackerDistance", "LoggedActivitiesDistance",
			"VeryActiveDistance", "ModeratelyActiveDistance", "LightActiveDistance",
			"SedentaryActiveDistance", "VeryActiveMinutes", "FairlyActiveMinutes",
			"LightlyActiveMinutes", "SedentaryMinutes", "Calories",
		},
	}
	SourceDailySleep = Source{
		Name:        "dailySleep",
		File:        "sleepDay_merged.csv",
		Granularity: Daily,
		Renames:     map[string]string{"SleepDay": "ActivityDay"},
		Metrics:     []string{"TotalSleepRecords", "TotalMinutesAsleep", "TotalTimeInBed"},
	}
	SourceDailyWeight = Source{
		Name:        "dailyWeight",
		File:        "weightLogInfo_merged.csv",
		Granularity: Daily,
		Renames:     map[string]string{"Date": "ActivityDay"},
		Metrics:     []string{"WeightKg", "WeightPounds", "Fat", "BMI"},
	}
	SourceHourlyCalories = Source{
		Name:        "hourlyCalories",
		File:        "hourlyCalories_merged.csv",
		Granularity: Hourly,
		Metrics:     []string{"Calories"},
	}
	SourceHourlyIntensities = Source{
		Name:        "hourlyIntensities",
		File:        "hourlyIntensities_merged.csv",
		Granularity: Hourly,
		Metrics:     []string{"TotalIntensity", "AverageIntensity"},
	}
	SourceHourlySteps = Source{
		Name:        "hourlySteps",
		File:        "hourlySteps_merged.csv",
		Granularity: Hourly,
		Metrics:     []string{"StepTotal"},
	}
	SourceMinuteCalories = Source{
		Name:        "minuteCalories",
		File:        "minuteCaloriesNarrow_merged.csv",
		Granularity: Minute,
		Metrics:     []string{"Calories"},
	}
	SourceMinuteIntensities = Source{
		Name:        "minuteIntensities",
		File:        "minuteIntensitiesNarrow_merged.csv",
		Granularity: Minute,
		Metrics:     []string{"Intensity"},
	}
	SourceMinuteSteps = Source{
		Name:        "minuteSteps",
		File:        "minuteStepsNarrow_merged.csv",
		Granularity: Minute,
		Metrics:     []string{"Steps"},
	}
	SourceMinuteSleep = Source{
		Name:        "minuteSleep",
		File:        "minuteSleep_merged.csv",
		Granularity: Minute,
		Renames: map[string]string{
			"date":  "ActivityMinute",
			"value": "TotalSleepRecords",
		},
		Metrics: []string{"TotalSleepRecords"},
	}
	SourceHeartRate = Source{
		Name:        "heartRate",
		File:        "heartrate_seconds_merged.csv",
		Granularity: Second,
		Renames: map[string]string{
			"Time":  "ActivitySecond",
			"Value": "Heartbeat",
		},
		Metrics: []string{"Heartbeat"},
	}
	// SourceMETs is not part of the metric catalog; it only feeds the heart/MET join.
	// Values are stored as 10x the MET score.
	SourceMETs = Source{
		Name:        "minuteMETs",
		File:        "minuteMETsNarrow_merged.csv",
		Granularity: Minute,
		Renames:     map[string]string{"METs": "MET"},
		Metrics:     []string{"MET"},
	}
)

// AllSources lists every file required at startup.
var AllSources = []Source{
	SourceDailyActivity,
	SourceDailySleep,
	SourceDailyWeight,
	SourceHourlyCalories,
	SourceHourlyIntensities,
	SourceHourlySteps,
	SourceMinuteCalories,
	SourceMinuteIntensities,
	SourceMinuteSteps,
	SourceMinuteSleep,
	SourceHeartRate,
	SourceMETs,
}

// canonical returns the normalized name of a raw header cell.
func (s Source) canonical(raw string) string {
	if renamed, ok := s.Renames[raw]; ok {
		return renamed
	}
	return raw
}
