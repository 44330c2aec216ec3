package domain

import (
	"fmt"
	"strings"
)

// Size is the parcel size class. The zero value means the size was not provided.
type Size string

const (
	SizeSmall Size = "SMALL"
	SizeLarge Size = "LARGE"
)

// ParseSize accepts a size name in any letter case.
func ParseSize(s string) (Size, error) {
	switch Size(strings.ToUpper(strings.TrimSpace(s))) {
	case SizeSmall:
		return SizeSmall, nil
	case SizeLarge:
		return SizeLarge, nil
	}
	return "", fmt.Errorf("parse size: unknown size %q", s)
}

// Cost returns the additive size cost. Anything that is not LARGE is priced as small.
func (s Size) Cost() float64 {
	if s == SizeLarge {
		return LargeSizeCost
	}
	return SmallSizeCost
}
