package installment

import (
	"testing"
	"time"

	"landdeals-console/internal/domain/installment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEqualPreviewExample(t *testing.T) {
	entries := BuildPreview(installment.Plan{
		TotalAmount: 120000,
		Count:       3,
		Frequency:   installment.FrequencyMonthly,
		StartDate:   date(2024, time.January, 15),
		Mode:        installment.DateModeAuto,
	})

	require.Len(t, entries, 3)
	want := []time.Time{date(2024, 1, 15), date(2024, 2, 15), date(2024, 3, 15)}
	for i, e := range entries {
		assert.Equal(t, i+1, e.Number)
		assert.True(t, want[i].Equal(e.DueDate), "entry %d: %s", i, e.DueDate)
		assert.Equal(t, 40000.0, e.Amount)
	}
}

func TestEqualPreviewShapeForEveryCount(t *testing.T) {
	freqs := []installment.Frequency{
		installment.FrequencyMonthly,
		installment.FrequencyQuarterly,
		installment.FrequencyHalfYearly,
		installment.FrequencyYearly,
	}
	for _, f := range freqs {
		for n := installment.MinCount; n <= installment.MaxCount; n++ {
			entries := BuildPreview(installment.Plan{
				TotalAmount: 1000,
				Count:       n,
				Frequency:   f,
				StartDate:   date(2024, time.January, 31),
			})

			require.Len(t, entries, n)
			for i, e := range entries {
				assert.Equal(t, i+1, e.Number)
				assert.InDelta(t, 1000.0/float64(n), e.Amount, 1e-9)
				if i > 0 {
					assert.True(t, e.DueDate.After(entries[i-1].DueDate), "%s n=%d i=%d", f, n, i)
				}
			}
		}
	}
}

func TestMonthEndClamping(t *testing.T) {
	dates := GenerateInstallmentDates(date(2024, time.January, 31), installment.FrequencyMonthly, 4)
	want := []time.Time{
		date(2024, time.January, 31),
		date(2024, time.February, 29),
		date(2024, time.March, 31),
		date(2024, time.April, 30),
	}
	for i := range want {
		assert.True(t, want[i].Equal(dates[i]), "got %s want %s", dates[i], want[i])
	}

	assert.True(t, date(2025, time.February, 28).Equal(AddMonthsClamped(date(2024, time.February, 29), 12)))
	assert.True(t, date(2025, time.February, 28).Equal(AddMonthsClamped(date(2024, time.August, 31), 6)))
}

func TestUnknownFrequencyIsMonthly(t *testing.T) {
	dates := GenerateInstallmentDates(date(2024, time.May, 10), installment.Frequency("fortnightly"), 2)
	assert.True(t, date(2024, time.June, 10).Equal(dates[1]))
}

func TestYearRollover(t *testing.T) {
	dates := GenerateInstallmentDates(date(2024, time.November, 30), installment.FrequencyQuarterly, 3)
	assert.True(t, date(2025, time.February, 28).Equal(dates[1]))
	assert.True(t, date(2025, time.May, 30).Equal(dates[2]))
}

func TestGenerateAndComputeWithNoCount(t *testing.T) {
	assert.Empty(t, GenerateInstallmentDates(date(2024, 1, 1), installment.FrequencyMonthly, 0))
	assert.Empty(t, ComputeEqualInstallments(100, 0))
	assert.Empty(t, BuildPreview(installment.Plan{}))
}

func TestEqualSharesAreNotRebalanced(t *testing.T) {
	amounts := ComputeEqualInstallments(100, 3)
	for _, a := range amounts {
		assert.InDelta(t, 33.333333, a, 1e-6)
	}
}

func TestCustomPreviewFallsBackPerSlot(t *testing.T) {
	entries := BuildPreview(installment.Plan{
		TotalAmount: 900,
		Count:       3,
		Frequency:   installment.FrequencyMonthly,
		StartDate:   date(2024, time.January, 1),
		Mode:        installment.DateModeCustom,
		Overrides: []installment.Slot{
			{Date: date(2024, time.January, 20), Amount: 500},
			{Amount: 100},
		},
	})

	require.Len(t, entries, 3)
	assert.True(t, date(2024, time.January, 20).Equal(entries[0].DueDate))
	assert.Equal(t, 500.0, entries[0].Amount)

	assert.True(t, date(2024, time.February, 1).Equal(entries[1].DueDate))
	assert.Equal(t, 100.0, entries[1].Amount)

	assert.True(t, date(2024, time.March, 1).Equal(entries[2].DueDate))
	assert.Equal(t, 300.0, entries[2].Amount)

	assert.Equal(t, 900.0, SumAmounts(entries))
}

func TestClampCount(t *testing.T) {
	n, clamped := ClampCount(1)
	assert.Equal(t, 2, n)
	assert.True(t, clamped)

	n, clamped = ClampCount(13)
	assert.Equal(t, 12, n)
	assert.True(t, clamped)

	n, clamped = ClampCount(7)
	assert.Equal(t, 7, n)
	assert.False(t, clamped)
}
