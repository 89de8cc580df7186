package auth

import "strings"

// OTPLength is the number of digits in an email verification code.
const OTPLength = 6

// OTPInput models the six single-character cells of the verification form
// and which cell has focus.
type OTPInput struct {
	cells [OTPLength]string
	focus int
}

func (o *OTPInput) Focus() int { return o.focus }

func (o *OTPInput) Cell(i int) string { return o.cells[i] }

// Input sets cell i. A multi-character value (a paste) is spread over the
// cells starting at i; focus moves to the cell after the last one written.
func (o *OTPInput) Input(i int, value string) {
	if i < 0 || i >= OTPLength {
		return
	}
	chars := []rune(value)
	if len(chars) > 1 {
		for k, r := range chars {
			if i+k >= OTPLength {
				break
			}
			o.cells[i+k] = string(r)
		}
		o.focus = min(i+len(chars), OTPLength-1)
		return
	}
	o.cells[i] = value
	if value != "" {
		o.focus = min(i+1, OTPLength-1)
	}
}

// Backspace clears cell i, or the previous cell when i is already empty.
func (o *OTPInput) Backspace(i int) {
	if i < 0 || i >= OTPLength {
		return
	}
	if o.cells[i] != "" {
		o.cells[i] = ""
		o.focus = i
		return
	}
	if i > 0 {
		o.cells[i-1] = ""
		o.focus = i - 1
	}
}

func (o *OTPInput) Code() string {
	return strings.Join(o.cells[:], "")
}

func (o *OTPInput) Complete() bool {
	return validOTP(o.Code())
}

func (o *OTPInput) Reset() {
	*o = OTPInput{}
}

func validOTP(code string) bool {
	if len(code) != OTPLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
