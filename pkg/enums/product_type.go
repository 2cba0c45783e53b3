package enums

import "fmt"

// ProductType tags which catalog family a cart or order line refers to.
type ProductType string

const (
	ProductTypeUPS              ProductType = "ups"
	ProductTypeInverter         ProductType = "inverter"
	ProductTypeBattery          ProductType = "battery"
	ProductTypeSolarPV          ProductType = "solar-pv"
	ProductTypeSolarPCU         ProductType = "solar-pcu"
	ProductTypeSolarStreetLight ProductType = "solar-street-light"
)

var validProductTypes = []ProductType{
	ProductTypeUPS,
	ProductTypeInverter,
	ProductTypeBattery,
	ProductTypeSolarPV,
	ProductTypeSolarPCU,
	ProductTypeSolarStreetLight,
}

// String implements fmt.Stringer.
func (p ProductType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductType.
func (p ProductType) IsValid() bool {
	for _, candidate := range validProductTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductType converts raw input into a ProductType.
func ParseProductType(value string) (ProductType, error) {
	for _, candidate := range validProductTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type %q", value)
}

// ProductTypes returns the closed set of catalog families.
func ProductTypes() []ProductType {
	return append([]ProductType{}, validProductTypes...)
}
