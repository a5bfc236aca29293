// internal/domain/installment/entity.go
package installment

import "time"

// Bounds on how many installments a plan may have.
const (
	MinCount = 2
	MaxCount = 12
)

type Frequency string

const (
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencyHalfYearly Frequency = "half_yearly"
	FrequencyYearly     Frequency = "yearly"
)

// Months is the length of one period. Unknown frequencies count as monthly.
func (f Frequency) Months() int {
	switch f {
	case FrequencyQuarterly:
		return 3
	case FrequencyHalfYearly:
		return 6
	case FrequencyYearly:
		return 12
	default:
		return 1
	}
}

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyHalfYearly, FrequencyYearly:
		return true
	}
	return false
}

// DateMode selects how installment dates and amounts are produced.
type DateMode string

const (
	// DateModeAuto generates dates from the start date and splits equally.
	DateModeAuto DateMode = "auto"
	// DateModeCustom lets each installment carry its own date and amount.
	DateModeCustom DateMode = "custom"
)

// Normalize maps the legacy "equal" spelling onto DateModeAuto.
func (m DateMode) Normalize() DateMode {
	switch m {
	case DateModeCustom:
		return DateModeCustom
	default:
		return DateModeAuto
	}
}

// Slot is one custom installment. A zero Date or Amount means the slot
// falls back to the generated date or the equal share.
type Slot struct {
	Date   time.Time
	Amount float64
}

// Plan is a parsed payment plan ready for preview or submission.
type Plan struct {
	TotalAmount float64
	Count       int
	Frequency   Frequency
	StartDate   time.Time
	Mode        DateMode
	Overrides   []Slot
}

// PreviewEntry is one derived installment row. Never persisted.
type PreviewEntry struct {
	Number  int
	DueDate time.Time
	Amount  float64
}
