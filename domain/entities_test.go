package domain

import "testing"

func TestProfileDraft_PhoneNumberInvariant(t *testing.T) {
	d := &ProfileDraft{}

	d.SetCountryCode("+91")
	if d.PhoneNumber != "+91" {
		t.Errorf("expected bare country code, got %q", d.PhoneNumber)
	}
	if d.HasPhoneNumber() {
		t.Error("a bare country code is not a phone number")
	}

	d.SetNationalNumber("1234567890")
	if d.PhoneNumber != "+911234567890" {
		t.Errorf("expected concatenation, got %q", d.PhoneNumber)
	}
	if !d.HasPhoneNumber() {
		t.Error("expected a complete phone number")
	}

	// Changing either part recomputes the concatenation.
	d.SetCountryCode("+1")
	if d.PhoneNumber != "+11234567890" {
		t.Errorf("country code change not reflected, got %q", d.PhoneNumber)
	}
	d.SetNationalNumber("5550100")
	if d.PhoneNumber != "+15550100" {
		t.Errorf("national number change not reflected, got %q", d.PhoneNumber)
	}
}

func TestProfileDraft_SetPhoneNumber(t *testing.T) {
	d := &ProfileDraft{}
	d.SetCountryCode("+91")
	d.SetPhoneNumber("+449876543210")

	if d.PhoneNumber != "+449876543210" {
		t.Errorf("full number not installed, got %q", d.PhoneNumber)
	}
	if d.CountryCode != "" {
		t.Errorf("direct install must drop the stale country code, got %q", d.CountryCode)
	}
	if !d.HasPhoneNumber() {
		t.Error("expected a complete phone number")
	}
}

func TestProfileDraft_HasPhoneNumberEmpty(t *testing.T) {
	d := &ProfileDraft{}
	if d.HasPhoneNumber() {
		t.Error("empty draft has no phone number")
	}
}
