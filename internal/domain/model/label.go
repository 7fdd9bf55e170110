package model

import (
	"fmt"
	"strings"
)

// Label is the classifier output class.
type Label int

// Label codes are fixed by the trained model: 0=NORMAL, 1=PLAYING, 2=DANGER.
const (
	LabelNormal  Label = 0
	LabelPlaying Label = 1
	LabelDanger  Label = 2
)

// NumLabels is the number of classes the classifier distinguishes.
const NumLabels = 3

// LabelFromCode converts a raw classifier code to a Label. Codes outside
// {0,1,2} are reported as ErrUnknownLabel and never coerced.
func LabelFromCode(code int) (Label, error) {
	switch Label(code) {
	case LabelNormal, LabelPlaying, LabelDanger:
		return Label(code), nil
	}
	return 0, fmt.Errorf("%w: code %d", ErrUnknownLabel, code)
}

// Code returns the integer code the classifier uses for l.
func (l Label) Code() int { return int(l) }

func (l Label) String() string {
	switch l {
	case LabelNormal:
		return "NORMAL"
	case LabelPlaying:
		return "PLAYING"
	case LabelDanger:
		return "DANGER"
	}
	return "UNKNOWN"
}

// MarshalText encodes the label by name.
func (l Label) MarshalText() ([]byte, error) {
	if _, err := LabelFromCode(int(l)); err != nil {
		return nil, err
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes a label name.
func (l *Label) UnmarshalText(b []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(b))) {
	case "NORMAL":
		*l = LabelNormal
	case "PLAYING":
		*l = LabelPlaying
	case "DANGER":
		*l = LabelDanger
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLabel, string(b))
	}
	return nil
}
