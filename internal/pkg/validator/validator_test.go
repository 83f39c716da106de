package validator

import (
	"testing"
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

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
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

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-01-15"); !ok {
		t.Error(`IsValidDate("2024-01-15") = false, want true`)
	}
	invalid := []string{"2024-13-01", "15-01-2024", "2024/01/15", "", "today"}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidShiftTime(t *testing.T) {
	valid := []string{"00:00", "09:00", "13:45", "23:59"}
	invalid := []string{"24:00", "9:00", "09:60", "09-00", "09:00:00", "", "noon"}
	for _, s := range valid {
		if !IsValidShiftTime(s) {
			t.Errorf("IsValidShiftTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidShiftTime(s) {
			t.Errorf("IsValidShiftTime(%q) = true, want false", s)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	if !IsNumeric("0123456789") {
		t.Error(`IsNumeric("0123456789") = false, want true`)
	}
	for _, s := range []string{"12a", "", "-5", "1.5"} {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b"}
	if !IsInSlice("a", slice) {
		t.Error(`IsInSlice("a") = false, want true`)
	}
	if IsInSlice("c", slice) {
		t.Error(`IsInSlice("c") = true, want false`)
	}
}
