package records_test

import (
	"testing"

	"github.com/2beens/fitinsights/internal/records"
	"github.com/2beens/fitinsights/internal/records/recordstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Metrics(t *testing.T) {
	catalog := recordstest.Store(t).Catalog()

	assert.Equal(t, records.AllGranularities, catalog.Granularities())
	assert.Equal(t, []string{"Calories", "TotalIntensity", "StepTotal"}, catalog.Metrics(records.Hourly))
	assert.Equal(t, []string{"Steps", "Calories", "Intensity", "TotalSleepRecords"}, catalog.Metrics(records.Minute))
	assert.Equal(t, []string{"Heartbeat"}, catalog.Metrics(records.Second))

	daily := catalog.Metrics(records.Daily)
	require.Len(t, daily, 19)
	assert.Equal(t, "TotalSteps", daily[0])
	assert.Equal(t, "BMI", daily[len(daily)-1])
	assert.NotContains(t, daily, "Fat")

	daily[0] = "changed"
	assert.Equal(t, "TotalSteps", catalog.Metrics(records.Daily)[0])

	assert.True(t, catalog.HasMetric(records.Daily, "TotalMinutesAsleep"))
	assert.False(t, catalog.HasMetric(records.Hourly, "TotalMinutesAsleep"))
	assert.Empty(t, catalog.Metrics("X"))
}

func TestCatalog_Table(t *testing.T) {
	catalog := recordstest.Store(t).Catalog()

	tbl, err := catalog.Table(records.Daily, "TotalMinutesAsleep")
	require.NoError(t, err)
	assert.Equal(t, "dailySleep", tbl.Name())

	tbl, err = catalog.Table(records.Minute, "Calories")
	require.NoError(t, err)
	assert.Equal(t, "minuteCalories", tbl.Name())

	tbl, err = catalog.Table(records.Daily, "Calories")
	require.NoError(t, err)
	assert.Equal(t, "dailyActivity", tbl.Name())

	_, err = catalog.Table(records.Hourly, "TotalMinutesAsleep")
	require.Error(t, err)
	assert.True(t, records.IsInvalidSelection(err))
	assert.Equal(t, "invalid metric [TotalMinutesAsleep]: not recorded at Hourly granularity", err.Error())

	_, err = catalog.Table("W", "Steps")
	require.Error(t, err)
	assert.True(t, records.IsInvalidSelection(err))
}
