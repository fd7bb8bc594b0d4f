package financing

import (
	"fmt"
	"strings"
)

type SaleMode string

const (
	SaleModeNewBuild SaleMode = "new-build"
	SaleModeResale   SaleMode = "resale"
)

// ParseSaleMode accepts the canonical names plus "bto" for new-build flats.
func ParseSaleMode(s string) (SaleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "new-build", "bto":
		return SaleModeNewBuild, nil
	case "resale":
		return SaleModeResale, nil
	}
	return "", fmt.Errorf("%w: sale mode %q", ErrInvalidEnumValue, s)
}

func (m SaleMode) Valid() bool {
	switch m {
	case SaleModeNewBuild, SaleModeResale:
		return true
	}
	return false
}

type FlatType string

const (
	FlatType2Room     FlatType = "2-room"
	FlatType3Room     FlatType = "3-room"
	FlatType4Room     FlatType = "4-room"
	FlatType5Room     FlatType = "5-room"
	FlatTypeExecutive FlatType = "executive"
)

var AllFlatTypes = []FlatType{FlatType2Room, FlatType3Room, FlatType4Room, FlatType5Room, FlatTypeExecutive}

func ParseFlatType(s string) (FlatType, error) {
	ft := FlatType(strings.ToLower(strings.TrimSpace(s)))
	if !ft.Valid() {
		return "", fmt.Errorf("%w: flat type %q", ErrInvalidEnumValue, s)
	}
	return ft, nil
}

func (t FlatType) Valid() bool {
	switch t {
	case FlatType2Room, FlatType3Room, FlatType4Room, FlatType5Room, FlatTypeExecutive:
		return true
	}
	return false
}

type Lender string

const (
	LenderGovernment Lender = "government"
	LenderPrivate    Lender = "private"
)

var AllLenders = []Lender{LenderGovernment, LenderPrivate}

// ParseLender accepts "hdb" and "bank" as aliases.
func ParseLender(s string) (Lender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "government", "hdb":
		return LenderGovernment, nil
	case "private", "bank":
		return LenderPrivate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLender, s)
}

// ParseLenders expands "both" and drops duplicates, keeping first-seen order.
func ParseLenders(choices []string) ([]Lender, error) {
	var out []Lender
	seen := make(map[Lender]bool, len(AllLenders))
	add := func(l Lender) {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	for _, c := range choices {
		if strings.EqualFold(strings.TrimSpace(c), "both") {
			for _, l := range AllLenders {
				add(l)
			}
			continue
		}
		l, err := ParseLender(c)
		if err != nil {
			return nil, err
		}
		add(l)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no lender selected", ErrUnknownLender)
	}
	return out, nil
}

func (l Lender) Valid() bool {
	switch l {
	case LenderGovernment, LenderPrivate:
		return true
	}
	return false
}
