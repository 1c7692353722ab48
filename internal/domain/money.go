package domain

import "fmt"

// Money is an amount in minor currency units (cents). All price math in the
// service is integer math; totals are sums of line amounts, never float
// accumulation.
type Money int64

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
