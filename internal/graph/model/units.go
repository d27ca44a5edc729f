package model

import (
	"errors"
	"fmt"
)

// ErrUnsupportedUnit is matched by every UnsupportedUnitError.
var ErrUnsupportedUnit = errors.New("unsupported unit")

// UnsupportedUnitError is returned when a conversion is asked for a unit
// that is not part of the corresponding enum.
type UnsupportedUnitError struct {
	Kind string // "Height" or "Weight"
	Unit string
}

func (e *UnsupportedUnitError) Error() string {
	return fmt.Sprintf("%s unit %q not supported", e.Kind, e.Unit)
}

func (e *UnsupportedUnitError) Unwrap() error {
	return ErrUnsupportedUnit
}

const (
	centimetresPerMetre = 100
	centimetresPerFoot  = 30.48
	gramsPerKilogram    = 100 // GRAM reports kilograms x 100
	kilogramsPerPound   = 0.45359237
)

// HeightUnit is the unit a height is reported in. The zero value is the
// storage unit.
type HeightUnit int

const (
	HeightUnitCentimetre HeightUnit = iota
	HeightUnitMetre
	HeightUnitFoot
)

// AllHeightUnits lists every HeightUnit in schema order.
var AllHeightUnits = []HeightUnit{HeightUnitMetre, HeightUnitCentimetre, HeightUnitFoot}

// String returns the GraphQL enum name of the unit.
func (u HeightUnit) String() string {
	switch u {
	case HeightUnitCentimetre:
		return "CENTIMETRE"
	case HeightUnitMetre:
		return "METRE"
	case HeightUnitFoot:
		return "FOOT"
	default:
		return fmt.Sprintf("HeightUnit(%d)", int(u))
	}
}

// ParseHeightUnit maps a GraphQL enum name to a HeightUnit.
func ParseHeightUnit(s string) (HeightUnit, error) {
	for _, u := range AllHeightUnits {
		if u.String() == s {
			return u, nil
		}
	}
	return 0, &UnsupportedUnitError{Kind: "Height", Unit: s}
}

// FromCentimetres converts a stored height into u.
func (u HeightUnit) FromCentimetres(cm float64) (float64, error) {
	switch u {
	case HeightUnitCentimetre:
		return cm, nil
	case HeightUnitMetre:
		return cm / centimetresPerMetre, nil
	case HeightUnitFoot:
		return cm / centimetresPerFoot, nil
	default:
		return 0, &UnsupportedUnitError{Kind: "Height", Unit: u.String()}
	}
}

// ImplementsGraphQLType binds HeightUnit to the HeightUnit enum.
func (HeightUnit) ImplementsGraphQLType(name string) bool {
	return name == "HeightUnit"
}

// UnmarshalGraphQL decodes an enum argument value.
func (u *HeightUnit) UnmarshalGraphQL(input interface{}) error {
	s, ok := input.(string)
	if !ok {
		return fmt.Errorf("HeightUnit must be a string, got %T", input)
	}
	parsed, err := ParseHeightUnit(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// WeightUnit is the unit a weight is reported in. The zero value is the
// storage unit.
type WeightUnit int

const (
	WeightUnitKilogram WeightUnit = iota
	WeightUnitGram
	WeightUnitPound
)

// AllWeightUnits lists every WeightUnit in schema order.
var AllWeightUnits = []WeightUnit{WeightUnitKilogram, WeightUnitGram, WeightUnitPound}

// String returns the GraphQL enum name of the unit.
func (u WeightUnit) String() string {
	switch u {
	case WeightUnitKilogram:
		return "KILOGRAM"
	case WeightUnitGram:
		return "GRAM"
	case WeightUnitPound:
		return "POUND"
	default:
		return fmt.Sprintf("WeightUnit(%d)", int(u))
	}
}

// ParseWeightUnit maps a GraphQL enum name to a WeightUnit.
func ParseWeightUnit(s string) (WeightUnit, error) {
	for _, u := range AllWeightUnits {
		if u.String() == s {
			return u, nil
		}
	}
	return 0, &UnsupportedUnitError{Kind: "Weight", Unit: s}
}

// FromKilograms converts a stored weight into u.
func (u WeightUnit) FromKilograms(kg float64) (float64, error) {
	switch u {
	case WeightUnitKilogram:
		return kg, nil
	case WeightUnitGram:
		return kg * gramsPerKilogram, nil
	case WeightUnitPound:
		return kg / kilogramsPerPound, nil
	default:
		return 0, &UnsupportedUnitError{Kind: "Weight", Unit: u.String()}
	}
}

// ImplementsGraphQLType binds WeightUnit to the WeightUnit enum.
func (WeightUnit) ImplementsGraphQLType(name string) bool {
	return name == "WeightUnit"
}

// UnmarshalGraphQL decodes an enum argument value.
func (u *WeightUnit) UnmarshalGraphQL(input interface{}) error {
	s, ok := input.(string)
	if !ok {
		return fmt.Errorf("WeightUnit must be a string, got %T", input)
	}
	parsed, err := ParseWeightUnit(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
