package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestINR(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "₹0.00"},
		{999, "₹999.00"},
		{1000, "₹1,000.00"},
		{40000, "₹40,000.00"},
		{120000, "₹1,20,000.00"},
		{12345678.5, "₹1,23,45,678.50"},
		{-2500, "-₹2,500.00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, INR(tc.in), "INR(%v)", tc.in)
	}

	assert.Equal(t, "₹1,20,000", INRWhole(120000))
	assert.Equal(t, "₹33,333", INRWhole(33333.33))
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{
		"2024-01-15",
		"Mon, 15 Jan 2024 00:00:00 GMT",
		"2024-01-15T10:30:00Z",
		"2024-01-15 08:00:00",
	} {
		got, ok := ParseDate(raw)
		assert.True(t, ok, raw)
		assert.True(t, want.Equal(got), "%s parsed as %s", raw, got)
	}

	_, ok := ParseDate("15/01/2024")
	assert.False(t, ok)
	_, ok = ParseDate("")
	assert.False(t, ok)
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "15 Jan 2024", DisplayDateString("2024-01-15"))
	assert.Equal(t, "-", DisplayDateString("not a date"))
	assert.Equal(t, "-", DisplayDate(time.Time{}))
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysUntil(now.Add(2*time.Hour), now))
	assert.Equal(t, 10, DaysUntil(now.AddDate(0, 0, 10), now))
	assert.Equal(t, -2, DaysUntil(now.AddDate(0, 0, -2), now))
}

func TestStatusBadge(t *testing.T) {
	label, tone := StatusBadge("completed")
	assert.Equal(t, "Completed", label)
	assert.Equal(t, ToneGreen, tone)

	_, tone = StatusBadge("overdue")
	assert.Equal(t, ToneRed, tone)

	label, tone = StatusBadge("on_hold")
	assert.Equal(t, "On Hold", label)
	assert.Equal(t, ToneGray, tone)
}

func TestPaymentTypeLabel(t *testing.T) {
	assert.Equal(t, "Documentation/Legal", PaymentTypeLabel("documentation_legal"))
	assert.Equal(t, "Brokerage Fee", PaymentTypeLabel("brokerage_fee"))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Brokerage Fee", Title("brokerage_fee"))
	assert.Equal(t, "Ébauche Fee", Title("ébauche_fee"))
	assert.Equal(t, "Ørsted", Title("ørsted"))
	assert.Equal(t, "भूमि Fee", Title("भूमि_fee"))
	assert.Equal(t, "", Title("__"))
}
