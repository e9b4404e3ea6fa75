package vitals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patient_monitoring/internal/models"
)

func bpm(v float64) *float64 { return &v }

func sampleAt(roomID int, hr *float64) VitalSample {
	return VitalSample{
		RoomID:    roomID,
		PatientID: 7,
		HeartRate: hr,
		Timestamp: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
	}
}

func occupantWith(min, max float64) *Occupant {
	return &Occupant{PatientID: 7, Name: "Maria", Bounds: &Bounds{Min: min, Max: max}}
}

func TestClassify_NumericTiers(t *testing.T) {
	// bounds 55/120: warning band is (108, 120) above and (55, 60.5) below
	occ := occupantWith(55, 120)

	tests := []struct {
		name string
		hr   float64
		tier models.Tier
	}{
		{"well inside range", 80, models.TierNormal},
		{"exactly max is normal", 120, models.TierNormal},
		{"exactly min is normal", 55, models.TierNormal},
		{"just above max", 120.1, models.TierUrgent},
		{"just below min", 54.9, models.TierUrgent},
		{"far above max", 160, models.TierUrgent},
		{"inside upper guard band", 109, models.TierWarning},
		{"at upper guard band edge", 108, models.TierNormal},
		{"inside lower guard band", 60, models.TierWarning},
		{"above lower guard band edge", 61, models.TierNormal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := Classify(sampleAt(3, bpm(tc.hr)), occ)
			require.NoError(t, err)
			assert.Equal(t, tc.tier, rec.Tier)
			assert.Equal(t, 3, rec.RoomID)
			require.NotNil(t, rec.HeartRate)
			assert.Equal(t, tc.hr, *rec.HeartRate)
		})
	}
}

func TestClassify_DefaultBoundsWhenUnset(t *testing.T) {
	occ := &Occupant{PatientID: 7, Name: "Maria"} // no configured bounds

	rec, err := Classify(sampleAt(1, bpm(130)), occ)
	require.NoError(t, err)
	assert.Equal(t, models.TierUrgent, rec.Tier, "130 exceeds the default max of 120")

	rec, err = Classify(sampleAt(1, bpm(80)), occ)
	require.NoError(t, err)
	assert.Equal(t, models.TierNormal, rec.Tier)

	rec, err = Classify(sampleAt(1, bpm(115)), occ)
	require.NoError(t, err)
	assert.Equal(t, models.TierWarning, rec.Tier, "115 sits inside the default upper guard band")
}

func TestClassify_NoSignalBeatsNumerics(t *testing.T) {
	occ := occupantWith(55, 120)

	rec, err := Classify(sampleAt(2, nil), occ)
	require.NoError(t, err)
	assert.Equal(t, models.TierNoSignal, rec.Tier)
	assert.Equal(t, ReasonNoSignal, rec.Reason)
	assert.Nil(t, rec.HeartRate)

	// a literal zero reading means the same thing as a missing one
	rec, err = Classify(sampleAt(2, bpm(0)), occ)
	require.NoError(t, err)
	assert.Equal(t, models.TierNoSignal, rec.Tier)
}

func TestClassify_SensorStatus(t *testing.T) {
	occ := occupantWith(55, 120)

	rec, err := Classify(SensorStatus{RoomID: 4, MacAddress: "aa:bb", Status: StatusTimeout}, occ)
	require.NoError(t, err)
	assert.Equal(t, models.TierDisconnected, rec.Tier)
	assert.Equal(t, ReasonConnectionLost, rec.Reason)

	rec, err = Classify(SensorStatus{RoomID: 4, MacAddress: "aa:bb", Status: "unplugged"}, occ)
	require.NoError(t, err)
	assert.Equal(t, models.TierDisconnected, rec.Tier)
	assert.Equal(t, ReasonSensorDisconnected, rec.Reason)
}

func TestClassify_VacantRoomAlwaysEmpty(t *testing.T) {
	// no occupant wins over everything, including extreme readings
	rec, err := Classify(sampleAt(9, bpm(200)), nil)
	require.NoError(t, err)
	assert.Equal(t, models.TierEmpty, rec.Tier)
	assert.Empty(t, rec.Reason)

	rec, err = Classify(SensorStatus{RoomID: 9, Status: StatusTimeout}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.TierEmpty, rec.Tier)
}

func TestClassify_InvalidEvents(t *testing.T) {
	_, err := Classify(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = Classify(sampleAt(0, bpm(80)), occupantWith(55, 120))
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = Classify(VitalSample{RoomID: -1}, nil)
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestClassify_KeepsEventTimestamp(t *testing.T) {
	ts := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	rec, err := Classify(sampleAt(1, bpm(80)), occupantWith(55, 120))
	require.NoError(t, err)
	assert.Equal(t, ts, rec.UpdatedAt)

	// zero timestamp falls back to the current time
	rec, err = Classify(VitalSample{RoomID: 1, HeartRate: bpm(80)}, occupantWith(55, 120))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), rec.UpdatedAt, time.Minute)
}
