package mdlite

import (
	"errors"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports invalid UTF-8 input.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// ValidateInput returns an error if the input is not valid UTF-8 or appears
// binary. Render itself accepts any input; this is for callers that would
// rather refuse to preview a file that is obviously not an article.
func ValidateInput(src []byte) error {
	if !utf8.Valid(src) {
		return ErrInvalidUTF8
	}
	var total, control int
	for _, b := range src {
		total++
		if b == 0x00 {
			return ErrBinaryInput
		}
		if isControlByte(b) {
			control++
		}
	}
	if total >= minBinarySample && control*100 >= total*maxControlPct {
		return ErrBinaryInput
	}
	return nil
}

// validator applies the ValidateInput rules incrementally, one line at a
// time.
type validator struct {
	total   int
	control int
}

// addLine checks one line. newline reports whether the line was terminated
// by '\n', which counts toward the sample but is never a control byte.
func (v *validator) addLine(text string, newline bool) error {
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			return ErrInvalidUTF8
		}
		if err := v.addRune(r, size); err != nil {
			return err
		}
		i += size
	}
	if newline {
		v.total++
	}
	return nil
}

func (v *validator) addRune(r rune, size int) error {
	if r == 0 {
		return ErrBinaryInput
	}
	v.total += size
	if isControlRune(r) {
		v.control++
		if v.total >= minBinarySample && v.control*100 >= v.total*maxControlPct {
			return ErrBinaryInput
		}
	}
	return nil
}

func isControlByte(b byte) bool {
	if b < 0x09 {
		return true
	}
	if b > 0x0D && b < 0x20 {
		return true
	}
	if b == 0x7F {
		return true
	}
	return false
}

func isControlRune(r rune) bool {
	return r < utf8.RuneSelf && isControlByte(byte(r))
}
