package domain

import "fmt"

// Cents is a monetary amount in integer minor units (hundredths of a dollar).
// All arithmetic inside the engine happens on this type; decimal values only
// exist at the ingest and formatting boundaries.
type Cents int64

func (c Cents) Float64() float64 {
	return float64(c) / 100
}

func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
