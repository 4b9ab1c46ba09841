package validator

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Messages returns the bare rule messages in order, without field prefixes.
func (v ValidationErrors) Messages() []string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Message)
	}
	return msgs
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var alphanumericRegex = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// IsAlphanumeric reports whether s is non-empty and made of ASCII letters and digits only.
func IsAlphanumeric(s string) bool {
	return alphanumericRegex.MatchString(s)
}

var nameRegex = regexp.MustCompile(`^[A-Za-z\s]+$`)

// IsValidName accepts letters and whitespace only.
func IsValidName(name string) bool {
	return nameRegex.MatchString(name)
}

var emailRegex = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

var mobileRegex = regexp.MustCompile(`^[0-9]{10}$`)

// IsValidMobileNumber requires exactly 10 digits, no separators.
func IsValidMobileNumber(mobile string) bool {
	return mobileRegex.MatchString(mobile)
}

var panRegex = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

// PAN (Indian Permanent Account Number) validation: AAAAA9999A
func IsValidPAN(pan string) bool {
	return panRegex.MatchString(pan)
}

// Layouts accepted by ParseDate, tried in order. Numeric text dates are
// month-first.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"2006.01.02",
	"1/2/2006",
	"1-2-2006",
	"02-Jan-2006",
	"2 January 2006",
	"Jan 2, 2006",
}

// Serial numbers before 1910-01-01 are rejected. Smaller values are far more
// likely to be a bare year ("2010") or a year.month rendering ("2010.01") than
// a real date.
var minSerialDate = time.Date(1910, 1, 1, 0, 0, 0, 0, time.UTC)

// maxSerial is 9999-12-31.
const maxSerial = 2958465

// ParseDate parses a spreadsheet date cell. Besides textual layouts it accepts
// Excel serial numbers (days since 1899-12-30), which is how raw .xlsx cells
// store dates. Values without an explicit offset are returned in UTC.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	serial, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(serial) || serial <= 0 || serial > maxSerial {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil || t.Before(minSerialDate) {
		return time.Time{}, false
	}
	return t, true
}
