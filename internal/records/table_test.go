package records_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/2beens/fitinsights/internal/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable_RenamesColumns(t *testing.T) {
	data := "\ufeffId,Time,Value\n" +
		"7,4/12/2016 7:21:00 AM,97\n" +
		"7,4/12/2016 7:21:05 AM,102\n" +
		"3,4/12/2016 7:21:00 AM,60\n"

	table, err := records.ReadTable(records.SourceHeartRate, strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "heartRate", table.Name())
	assert.Equal(t, records.Second, table.Granularity())
	assert.Equal(t, "ActivitySecond", table.TimeColumn())
	assert.Equal(t, []string{"Id", "ActivitySecond", "Heartbeat"}, table.Columns())
	assert.True(t, table.HasColumn("Heartbeat"))
	assert.False(t, table.HasColumn("Value"))
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []int64{3, 7}, table.UserIDs())
	assert.Equal(t, []int{0, 1}, table.UserRows(7))
	assert.Nil(t, table.UserRows(99))

	assert.Equal(t, int64(7), table.UserID(1))
	assert.Equal(t, time.Date(2016, 4, 12, 7, 21, 5, 0, time.UTC), table.Time(1))
	v, err := table.Value("Heartbeat", 1)
	require.NoError(t, err)
	assert.Equal(t, 102.0, v)

	_, err = table.Value("Steps", 0)
	assert.True(t, errors.Is(err, records.ErrMissingColumn))
}

func TestReadTable_ColumnsIsACopy(t *testing.T) {
	data := "Id,ActivityMinute,Steps\n1,4/12/2016 12:00:00 AM,0\n"
	table, err := records.ReadTable(records.SourceMinuteSteps, strings.NewReader(data))
	require.NoError(t, err)

	cols := table.Columns()
	cols[0] = "changed"
	assert.Equal(t, "Id", table.Columns()[0])
}

func TestReadTable_EmptyCellIsNaN(t *testing.T) {
	data := "Id,Date,WeightKg,WeightPounds,Fat,BMI\n" +
		"1,5/2/2016 11:59:59 PM,52.6,115.96,,22.65\n"
	table, err := records.ReadTable(records.SourceDailyWeight, strings.NewReader(data))
	require.NoError(t, err)

	fat, err := table.Value("Fat", 0)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(fat))
	bmi, err := table.Value("BMI", 0)
	require.NoError(t, err)
	assert.InDelta(t, 22.65, bmi, 1e-9)
}

func TestReadTable_Errors(t *testing.T) {
	for name, tc := range map[string]struct {
		data    string
		wantErr string
	}{
		"empty file": {
			data:    "",
			wantErr: "empty file",
		},
		"missing metric": {
			data:    "Id,ActivityHour\n1,4/12/2016 12:00:00 AM\n",
			wantErr: "StepTotal: missing column",
		},
		"missing time column": {
			data:    "Id,StepTotal\n1,3\n",
			wantErr: "ActivityHour: missing column",
		},
		"bad id": {
			data:    "Id,ActivityHour,StepTotal\nabc,4/12/2016 12:00:00 AM,3\n",
			wantErr: "line 2: parse Id",
		},
		"bad time": {
			data:    "Id,ActivityHour,StepTotal\n1,4/12/2016,3\n",
			wantErr: "line 2: parse ActivityHour",
		},
		"bad number": {
			data:    "Id,ActivityHour,StepTotal\n1,4/12/2016 12:00:00 AM,3\n1,4/12/2016 1:00:00 AM,many\n",
			wantErr: "line 3: parse StepTotal",
		},
		"short row": {
			data:    "Id,ActivityHour,StepTotal\n1,4/12/2016 12:00:00 AM\n",
			wantErr: "line 2",
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := records.ReadTable(records.SourceHourlySteps, strings.NewReader(tc.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			assert.Contains(t, err.Error(), records.SourceHourlySteps.File)
		})
	}
}
