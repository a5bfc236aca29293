// internal/service/installment/planner.go
package installment

import (
	"time"

	"landdeals-console/internal/domain/installment"
)

// ClampCount forces n into [MinCount, MaxCount] and reports whether it had
// to move.
func ClampCount(n int) (int, bool) {
	switch {
	case n < installment.MinCount:
		return installment.MinCount, true
	case n > installment.MaxCount:
		return installment.MaxCount, true
	default:
		return n, false
	}
}

// AddMonthsClamped moves start forward by months calendar months. When the
// target month is shorter than start's day, the last day of that month is
// used instead of rolling over (Jan 31 + 1 month = Feb 29 in a leap year).
func AddMonthsClamped(start time.Time, months int) time.Time {
	y, m, d := start.Date()

	total := int(m) - 1 + months
	year := y + total/12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	target := time.Month(month + 1)

	if last := daysIn(year, target); d > last {
		d = last
	}
	return time.Date(year, target, d, 0, 0, 0, 0, start.Location())
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// GenerateInstallmentDates returns count dates, entry i being start moved by
// i periods. Every entry is computed from start itself so a clamped day in
// a short month never drifts into later months.
func GenerateInstallmentDates(start time.Time, frequency installment.Frequency, count int) []time.Time {
	if count <= 0 {
		return []time.Time{}
	}

	step := frequency.Months()
	dates := make([]time.Time, count)
	for i := range dates {
		dates[i] = AddMonthsClamped(start, i*step)
	}
	return dates
}

// ComputeEqualInstallments splits total into count equal shares. The
// remainder is not redistributed.
func ComputeEqualInstallments(total float64, count int) []float64 {
	if count <= 0 {
		return []float64{}
	}

	share := total / float64(count)
	amounts := make([]float64, count)
	for i := range amounts {
		amounts[i] = share
	}
	return amounts
}

// BuildPreview derives the installment rows for p. In custom mode each
// override slot wins over the generated date and the equal share; a
// missing slot or a zero field falls back to the generated value.
func BuildPreview(p installment.Plan) []installment.PreviewEntry {
	if p.Count <= 0 {
		return []installment.PreviewEntry{}
	}

	dates := GenerateInstallmentDates(p.StartDate, p.Frequency, p.Count)
	amounts := ComputeEqualInstallments(p.TotalAmount, p.Count)
	custom := p.Mode.Normalize() == installment.DateModeCustom && len(p.Overrides) > 0

	entries := make([]installment.PreviewEntry, p.Count)
	for i := range entries {
		due, amount := dates[i], amounts[i]
		if custom && i < len(p.Overrides) {
			o := p.Overrides[i]
			if !o.Date.IsZero() {
				due = o.Date
			}
			if o.Amount != 0 {
				amount = o.Amount
			}
		}
		entries[i] = installment.PreviewEntry{Number: i + 1, DueDate: due, Amount: amount}
	}
	return entries
}

// SumAmounts totals the preview amounts.
func SumAmounts(entries []installment.PreviewEntry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Amount
	}
	return sum
}
