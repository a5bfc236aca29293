// internal/service/installment/form.go
package installment

import (
	"strconv"
	"strings"
	"time"

	"landdeals-console/internal/domain/installment"
)

// PlanForm is the editable state behind the planner. Every mutation keeps
// the count inside [MinCount, MaxCount].
type PlanForm struct {
	Enabled     bool
	TotalAmount float64
	Count       int
	Frequency   installment.Frequency
	StartDate   time.Time
	Mode        installment.DateMode
	Overrides   []installment.Slot

	today func() time.Time
}

// NewPlanForm returns a disabled form holding the defaults.
func NewPlanForm(today func() time.Time) *PlanForm {
	f := &PlanForm{today: today}
	f.reset()
	return f
}

func (f *PlanForm) reset() {
	now := f.today()
	f.Count = installment.MinCount
	f.Frequency = installment.FrequencyMonthly
	f.StartDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	f.Mode = installment.DateModeAuto
	f.Overrides = nil
}

// SetEnabled turns splitting on or off. Turning it off puts the plan back
// to its defaults.
func (f *PlanForm) SetEnabled(on bool) {
	if !on {
		f.Enabled = false
		f.reset()
		return
	}
	f.Enabled = true
	f.SetCount(f.Count)
}

func (f *PlanForm) SetTotalAmount(total float64) {
	f.TotalAmount = total
}

func (f *PlanForm) SetFrequency(freq installment.Frequency) {
	f.Frequency = freq
}

func (f *PlanForm) SetStartDate(start time.Time) {
	f.StartDate = start
}

// SetCount clamps n. In custom mode the overrides are resized to the new
// count: existing dates are kept, new slots get generated dates and every
// amount becomes the new equal share.
func (f *PlanForm) SetCount(n int) {
	f.Count, _ = ClampCount(n)
	if f.Mode != installment.DateModeCustom {
		return
	}

	dates := GenerateInstallmentDates(f.StartDate, f.Frequency, f.Count)
	share := f.share()
	resized := make([]installment.Slot, f.Count)
	for i := range resized {
		date := dates[i]
		if i < len(f.Overrides) && !f.Overrides[i].Date.IsZero() {
			date = f.Overrides[i].Date
		}
		resized[i] = installment.Slot{Date: date, Amount: share}
	}
	f.Overrides = resized
}

// SetCountText parses typed input; anything unparseable counts as the minimum.
func (f *PlanForm) SetCountText(s string) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		n = installment.MinCount
	}
	f.SetCount(n)
}

func (f *PlanForm) Increment() { f.SetCount(f.Count + 1) }
func (f *PlanForm) Decrement() { f.SetCount(f.Count - 1) }

// SetMode switches between generated and custom dates. Going custom seeds
// one slot per installment from the generated values; going back to auto
// drops the slots.
func (f *PlanForm) SetMode(mode installment.DateMode) {
	mode = mode.Normalize()
	f.Mode = mode

	if mode != installment.DateModeCustom {
		f.Overrides = nil
		return
	}

	dates := GenerateInstallmentDates(f.StartDate, f.Frequency, f.Count)
	share := f.share()
	f.Overrides = make([]installment.Slot, f.Count)
	for i := range f.Overrides {
		f.Overrides[i] = installment.Slot{Date: dates[i], Amount: share}
	}
}

// SetOverride replaces slot i. It returns false when the form is not in
// custom mode or i is out of range.
func (f *PlanForm) SetOverride(i int, slot installment.Slot) bool {
	if f.Mode != installment.DateModeCustom || i < 0 || i >= len(f.Overrides) {
		return false
	}
	f.Overrides[i] = slot
	return true
}

func (f *PlanForm) share() float64 {
	if f.Count <= 0 {
		return 0
	}
	return f.TotalAmount / float64(f.Count)
}

// Plan snapshots the form.
func (f *PlanForm) Plan() installment.Plan {
	var overrides []installment.Slot
	if len(f.Overrides) > 0 {
		overrides = make([]installment.Slot, len(f.Overrides))
		copy(overrides, f.Overrides)
	}
	return installment.Plan{
		TotalAmount: f.TotalAmount,
		Count:       f.Count,
		Frequency:   f.Frequency,
		StartDate:   f.StartDate,
		Mode:        f.Mode,
		Overrides:   overrides,
	}
}

// Preview is BuildPreview over the current form.
func (f *PlanForm) Preview() []installment.PreviewEntry {
	return BuildPreview(f.Plan())
}
