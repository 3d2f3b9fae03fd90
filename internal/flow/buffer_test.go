package flow

import "testing"

func TestCodeBuffer_TypingMatchesPaste(t *testing.T) {
	codes := []string{"123456", "000000", "987654", "555555"}

	for _, code := range codes {
		t.Run(code, func(t *testing.T) {
			typed := NewCodeBuffer()
			for _, ch := range code {
				typed.Type(ch)
			}

			pasted := NewCodeBuffer()
			pasted.Paste(code)

			if typed.Code() != pasted.Code() {
				t.Errorf("typed %q, pasted %q", typed.Code(), pasted.Code())
			}
			if typed.Focus() != pasted.Focus() {
				t.Errorf("typed focus %d, pasted focus %d", typed.Focus(), pasted.Focus())
			}
		})
	}
}

func TestCodeBuffer_Type(t *testing.T) {
	b := NewCodeBuffer()

	b.Type('1')
	if b.Focus() != 1 {
		t.Errorf("expected focus 1 after first digit, got %d", b.Focus())
	}

	// Non-digit keystrokes are ignored entirely.
	b.Type('a')
	b.Type(' ')
	b.Type('-')
	if b.Code() != "1" || b.Focus() != 1 {
		t.Errorf("non-digit input changed state: code=%q focus=%d", b.Code(), b.Focus())
	}

	for _, ch := range "23456" {
		b.Type(ch)
	}
	if b.Code() != "123456" {
		t.Errorf("expected full code, got %q", b.Code())
	}
	if b.Focus() != CodeLength-1 {
		t.Errorf("focus should stop at the last slot, got %d", b.Focus())
	}
	if !b.Complete() {
		t.Error("buffer should be complete")
	}
}

func TestCodeBuffer_Backspace(t *testing.T) {
	b := NewCodeBuffer()
	b.Type('1')
	b.Type('2')

	// Focused slot is empty (slot 2): backspace retreats focus.
	b.Backspace()
	if b.Focus() != 1 {
		t.Errorf("expected focus 1, got %d", b.Focus())
	}

	// Focused slot holds a digit: backspace clears it, focus stays.
	b.Backspace()
	if b.Code() != "1" || b.Focus() != 1 {
		t.Errorf("expected code %q focus 1, got %q focus %d", "1", b.Code(), b.Focus())
	}

	b.Backspace() // retreat to slot 0
	b.Backspace() // clear slot 0
	b.Backspace() // already empty at slot 0: no-op
	if b.Code() != "" || b.Focus() != 0 {
		t.Errorf("expected empty buffer at slot 0, got %q focus %d", b.Code(), b.Focus())
	}
}

func TestCodeBuffer_Paste(t *testing.T) {
	tests := []struct {
		name      string
		paste     string
		wantCode  string
		wantFocus int
	}{
		{name: "full code", paste: "123456", wantCode: "123456", wantFocus: 5},
		{name: "partial code", paste: "123", wantCode: "123", wantFocus: 2},
		{name: "non-digit ignored", paste: "12a456", wantCode: "999999", wantFocus: 5},
		{name: "too long ignored", paste: "1234567", wantCode: "999999", wantFocus: 5},
		{name: "empty ignored", paste: "", wantCode: "999999", wantFocus: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewCodeBuffer()
			// Pre-populate so ignored pastes are observable.
			b.Paste("999999")

			b.Paste(tt.paste)
			if b.Code() != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, b.Code())
			}
			if b.Focus() != tt.wantFocus {
				t.Errorf("expected focus %d, got %d", tt.wantFocus, b.Focus())
			}
		})
	}
}

func TestCodeBuffer_PasteOverwritesFromSlotZero(t *testing.T) {
	b := NewCodeBuffer()
	b.Type('7')
	b.Type('8')
	b.Type('9')

	b.Paste("12")
	if b.Code() != "12" {
		t.Errorf("paste should fill from slot 0 and clear the rest, got %q", b.Code())
	}
	if b.Focus() != 1 {
		t.Errorf("expected focus on last populated slot, got %d", b.Focus())
	}
}

func TestCodeBuffer_Clear(t *testing.T) {
	b := NewCodeBuffer()
	b.Paste("123456")

	b.Clear()
	for i, s := range b.Slots() {
		if s != "" {
			t.Errorf("slot %d not empty after clear: %q", i, s)
		}
	}
	if b.Focus() != 0 {
		t.Errorf("expected focus 0 after clear, got %d", b.Focus())
	}
}
