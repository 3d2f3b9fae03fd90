package flow

import "strings"

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

// CodeBuffer models the six one-digit input slots of the verification
// step, with an explicit focus index instead of ambient focus lookups.
// Each slot holds at most one digit character or the empty string.
type CodeBuffer struct {
	slots [CodeLength]string
	focus int
}

// NewCodeBuffer returns an empty buffer focused on slot 0.
func NewCodeBuffer() *CodeBuffer {
	return &CodeBuffer{}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// Type handles a single keystroke. Non-digit input is ignored; a digit
// fills the focused slot and advances focus to the next one.
func (b *CodeBuffer) Type(ch rune) {
	if !isDigit(ch) {
		return
	}
	b.slots[b.focus] = string(ch)
	if b.focus < CodeLength-1 {
		b.focus++
	}
}

// Backspace clears the focused slot, or retreats focus to the previous
// slot when the focused one is already empty.
func (b *CodeBuffer) Backspace() {
	if b.slots[b.focus] != "" {
		b.slots[b.focus] = ""
		return
	}
	if b.focus > 0 {
		b.focus--
	}
}

// Paste fills the buffer from slot 0 with a pasted digit string and
// focuses the last populated slot. Pastes containing anything but
// digits are ignored, as are pastes longer than the buffer.
func (b *CodeBuffer) Paste(s string) {
	if s == "" || len(s) > CodeLength {
		return
	}
	for _, ch := range s {
		if !isDigit(ch) {
			return
		}
	}
	for i := 0; i < CodeLength; i++ {
		if i < len(s) {
			b.slots[i] = string(s[i])
		} else {
			b.slots[i] = ""
		}
	}
	b.focus = len(s) - 1
}

// Clear empties every slot and returns focus to slot 0.
func (b *CodeBuffer) Clear() {
	for i := range b.slots {
		b.slots[i] = ""
	}
	b.focus = 0
}

// Code joins the populated slots.
func (b *CodeBuffer) Code() string {
	return strings.Join(b.slots[:], "")
}

// Complete reports whether all six slots are populated.
func (b *CodeBuffer) Complete() bool {
	for _, s := range b.slots {
		if s == "" {
			return false
		}
	}
	return true
}

// Focus returns the focused slot index.
func (b *CodeBuffer) Focus() int {
	return b.focus
}

// Slots returns a copy of the slot contents.
func (b *CodeBuffer) Slots() [CodeLength]string {
	return b.slots
}
