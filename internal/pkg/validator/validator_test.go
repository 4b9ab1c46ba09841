package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsAlphanumeric(t *testing.T) {
	valid := []string{"E001", "abc", "123", "Emp42x"}
	invalid := []string{"", "E-001", "E 001", "E_001", "É001"}
	for _, s := range valid {
		if !IsAlphanumeric(s) {
			t.Errorf("IsAlphanumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsAlphanumeric(s) {
			t.Errorf("IsAlphanumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidName(t *testing.T) {
	valid := []string{"Asha Rao", "John", "Mary  Ann"}
	invalid := []string{"", "O'Brien", "Rao, Asha", "Agent 47", "Dr."}
	for _, s := range valid {
		if !IsValidName(s) {
			t.Errorf("IsValidName(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidName(s) {
			t.Errorf("IsValidName(%q) = true, want false", s)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name@domain.co", "a_b@c-d.io", "a@b.c"}
	invalid := []string{"test@", "@example.com", "test@com", "test@domain", "user+tag@example.com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidMobileNumber(t *testing.T) {
	valid := []string{"9876543210", "0123456789"}
	invalid := []string{"987654321", "98765432100", "98765-43210", "98765 43210", "+919876543", "abcdefghij", ""}
	for _, s := range valid {
		if !IsValidMobileNumber(s) {
			t.Errorf("IsValidMobileNumber(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidMobileNumber(s) {
			t.Errorf("IsValidMobileNumber(%q) = true, want false", s)
		}
	}
}

func TestIsValidPAN(t *testing.T) {
	valid := []string{"ABCDE1234F", "ZZZZZ0000Z"}
	invalid := []string{"abcde1234f", "ABCD1234F", "ABCDE12345", "ABCDE1234FG", "1BCDE1234F", ""}
	for _, s := range valid {
		if !IsValidPAN(s) {
			t.Errorf("IsValidPAN(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidPAN(s) {
			t.Errorf("IsValidPAN(%q) = true, want false", s)
		}
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		input string
		want  time.Time
	}{
		{"2023-01-15", time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"2023-01-15T10:30:00Z", time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2023-01-15 10:30:00", time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"01/15/2023", time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"12/25/1990", time.Date(1990, 12, 25, 0, 0, 0, 0, time.UTC)},
		{"03/04/1990", time.Date(1990, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"3/4/1990", time.Date(1990, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"03-04-1990", time.Date(1990, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"15-Jan-2023", time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"44941", time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"3654", time.Date(1910, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, ok := ParseDate(c.input)
		if !ok {
			t.Errorf("ParseDate(%q) failed, want %v", c.input, c.want)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", c.input, got, c.want)
		}
	}

	invalid := []string{
		"", "not a date", "2023-13-01", "2023-02-30", "-5", "0",
		"15/01/2023", // day-first
		"2010",       // bare year
		"2010.01",    // year.month
		"2015.06",
		"3653",
		"NaN",
		"Inf",
		"1e20",
	}
	for _, s := range invalid {
		if _, ok := ParseDate(s); ok {
			t.Errorf("ParseDate(%q) = ok, want failure", s)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "Email ID", Message: "invalid"},
		{Field: "PAN Number", Message: "required"},
	}
	got := errs.Error()
	want := "Email ID: invalid; PAN Number: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "phone": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestValidationErrors_Messages(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "first"},
		{Field: "phone", Message: "second"},
	}
	got := errs.Messages()
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("ValidationErrors.Messages() = %v, want [first second]", got)
	}
}
