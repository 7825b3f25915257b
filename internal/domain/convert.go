package domain

import (
	"errors"
	"fmt"
)

// Unit is a display unit for weights. Stored values are always kilograms.
type Unit string

const (
	UnitKg Unit = "kg"
	UnitLb Unit = "lb"
	UnitSt Unit = "st"
)

const (
	kgToLb = 2.20462 // 1 kg = 2.20462 lb
	stToKg = 6.35029 // 1 stone = 6.35029 kg
)

// ErrInvalidUnit is returned when a conversion involves an unknown unit.
var ErrInvalidUnit = errors.New("invalid unit")

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool {
	return u == UnitKg || u == UnitLb || u == UnitSt
}

// ConvertWeight converts v between units, pivoting through kilograms.
// Same-unit conversions return v untouched to avoid floating-point churn.
// No rounding is applied; rounding is a presentation concern.
func ConvertWeight(v float64, from, to Unit) (float64, error) {
	if from == to {
		return v, nil
	}

	var kg float64
	switch from {
	case UnitKg:
		kg = v
	case UnitLb:
		kg = v / kgToLb
	case UnitSt:
		kg = v * stToKg
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, from)
	}

	switch to {
	case UnitKg:
		return kg, nil
	case UnitLb:
		return kg * kgToLb, nil
	case UnitSt:
		return kg / stToKg, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, to)
	}
}
