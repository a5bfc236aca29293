package installment

import (
	"testing"
	"time"

	"landdeals-console/internal/domain/installment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedToday() time.Time {
	return time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC)
}

func TestNewPlanFormDefaults(t *testing.T) {
	f := NewPlanForm(fixedToday)
	assert.False(t, f.Enabled)
	assert.Equal(t, 2, f.Count)
	assert.Equal(t, installment.FrequencyMonthly, f.Frequency)
	assert.Equal(t, installment.DateModeAuto, f.Mode)
	assert.True(t, date(2024, time.January, 15).Equal(f.StartDate))
}

func TestCountIsClampedAtEveryMutation(t *testing.T) {
	f := NewPlanForm(fixedToday)

	f.SetCount(1)
	assert.Equal(t, 2, f.Count)
	f.SetCount(13)
	assert.Equal(t, 12, f.Count)

	f.Increment()
	assert.Equal(t, 12, f.Count)

	f.SetCount(2)
	f.Decrement()
	assert.Equal(t, 2, f.Count)

	f.SetCountText("99")
	assert.Equal(t, 12, f.Count)
	f.SetCountText("abc")
	assert.Equal(t, 2, f.Count)
	f.SetCountText(" 5 ")
	assert.Equal(t, 5, f.Count)
}

func TestSwitchingToEqualClearsOverrides(t *testing.T) {
	f := NewPlanForm(fixedToday)
	f.SetTotalAmount(1200)
	f.SetCount(4)

	f.SetMode(installment.DateModeCustom)
	require.Len(t, f.Overrides, 4)
	assert.True(t, f.SetOverride(1, installment.Slot{Date: date(2024, time.March, 3), Amount: 10}))

	f.SetMode(installment.DateMode("equal"))
	assert.Equal(t, installment.DateModeAuto, f.Mode)
	assert.Nil(t, f.Overrides)
	assert.Equal(t, 4, f.Count)

	f.SetMode(installment.DateModeCustom)
	require.Len(t, f.Overrides, 4)
	assert.Equal(t, 300.0, f.Overrides[1].Amount)
	assert.True(t, date(2024, time.February, 15).Equal(f.Overrides[1].Date))
}

func TestCustomSeedsFromGeneratedValues(t *testing.T) {
	f := NewPlanForm(fixedToday)
	f.SetTotalAmount(120000)
	f.SetCount(3)
	f.SetMode(installment.DateModeCustom)

	preview := f.Preview()
	require.Len(t, preview, 3)
	for i, slot := range f.Overrides {
		assert.True(t, slot.Date.Equal(preview[i].DueDate))
		assert.Equal(t, 40000.0, slot.Amount)
	}
}

func TestCountChangeInCustomModeKeepsDates(t *testing.T) {
	f := NewPlanForm(fixedToday)
	f.SetTotalAmount(600)
	f.SetCount(2)
	f.SetMode(installment.DateModeCustom)
	f.SetOverride(0, installment.Slot{Date: date(2024, time.January, 20), Amount: 450})

	f.SetCount(3)
	require.Len(t, f.Overrides, 3)
	assert.True(t, date(2024, time.January, 20).Equal(f.Overrides[0].Date))
	assert.True(t, date(2024, time.March, 15).Equal(f.Overrides[2].Date))
	for _, slot := range f.Overrides {
		assert.Equal(t, 200.0, slot.Amount)
	}

	f.SetCount(2)
	assert.Len(t, f.Overrides, 2)
}

func TestSetOverrideOutsideCustomMode(t *testing.T) {
	f := NewPlanForm(fixedToday)
	assert.False(t, f.SetOverride(0, installment.Slot{Amount: 1}))

	f.SetMode(installment.DateModeCustom)
	assert.False(t, f.SetOverride(5, installment.Slot{Amount: 1}))
	assert.False(t, f.SetOverride(-1, installment.Slot{Amount: 1}))
}

func TestDisableResetsPlan(t *testing.T) {
	f := NewPlanForm(fixedToday)
	f.SetEnabled(true)
	f.SetCount(9)
	f.SetFrequency(installment.FrequencyYearly)
	f.SetMode(installment.DateModeCustom)

	f.SetEnabled(false)
	assert.False(t, f.Enabled)
	assert.Equal(t, 2, f.Count)
	assert.Equal(t, installment.FrequencyMonthly, f.Frequency)
	assert.Equal(t, installment.DateModeAuto, f.Mode)
	assert.Nil(t, f.Overrides)

	f.SetEnabled(true)
	assert.True(t, f.Enabled)
	assert.GreaterOrEqual(t, f.Count, 2)
}

func TestPlanIsACopy(t *testing.T) {
	f := NewPlanForm(fixedToday)
	f.SetMode(installment.DateModeCustom)
	p := f.Plan()
	p.Overrides[0].Amount = 42
	assert.NotEqual(t, 42.0, f.Overrides[0].Amount)
}
