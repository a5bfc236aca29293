// Package format renders amounts, dates and badges the way the console
// shows them: Indian rupees with lakh grouping and day-first dates.
package format

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

const displayDateLayout = "02 Jan 2006"

// backendDateLayouts are the shapes dates arrive in from the backend.
var backendDateLayouts = []string{
	DateLayout,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// INR formats amount as rupees with two decimals: ₹1,20,000.00.
func INR(amount float64) string {
	return inr(amount, 2)
}

// INRWhole formats amount as whole rupees: ₹1,20,000.
func INRWhole(amount float64) string {
	return inr(amount, 0)
}

func inr(amount float64, decimals int) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "₹0"
	}

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	s := strconv.FormatFloat(amount, 'f', decimals, 64)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	return sign + "₹" + groupIndian(intPart) + frac
}

// groupIndian inserts separators after the last three digits and then
// every two digits: 12345678 -> 1,23,45,678.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// ParseDate reads a calendar date in any of the backend's layouts and
// returns it at midnight UTC.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range backendDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ISODate renders t as YYYY-MM-DD.
func ISODate(t time.Time) string {
	return t.Format(DateLayout)
}

// DisplayDate renders t as "15 Jan 2024".
func DisplayDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(displayDateLayout)
}

// DisplayDateString parses raw and renders it for display. Unparseable
// input is shown as "-".
func DisplayDateString(raw string) string {
	t, ok := ParseDate(raw)
	if !ok {
		return "-"
	}
	return DisplayDate(t)
}

// DaysUntil is the whole number of days from now until due, rounded up.
func DaysUntil(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// Badge tones used by the UI.
const (
	ToneGreen  = "green"
	ToneRed    = "red"
	ToneBlue   = "blue"
	ToneYellow = "yellow"
	ToneGray   = "gray"
)

// StatusBadge returns the label and tone for a payment status.
func StatusBadge(status string) (label, tone string) {
	switch strings.ToLower(status) {
	case "completed":
		return "Completed", ToneGreen
	case "overdue":
		return "Overdue", ToneRed
	case "failed":
		return "Failed", ToneRed
	case "pending":
		return "Pending", ToneBlue
	case "cancelled":
		return "Cancelled", ToneGray
	case "":
		return "Unknown", ToneGray
	default:
		return Title(status), ToneGray
	}
}

var paymentTypeLabels = map[string]string{
	"land_purchase":       "Land Purchase",
	"investment_sale":     "Investment Sale",
	"documentation_legal": "Documentation/Legal",
	"maintenance_taxes":   "Maintenance/Taxes",
	"other":               "Other",
	"advance":             "Advance",
	"partial":             "Partial",
	"final":               "Final",
	"registration":        "Registration",
}

// PaymentTypeLabel returns the display label for a payment type.
func PaymentTypeLabel(paymentType string) string {
	if label, ok := paymentTypeLabels[paymentType]; ok {
		return label
	}
	return Title(paymentType)
}

// Title turns snake_case into "Snake Case".
func Title(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
