package entity

import (
	"fmt"
	"math"
)

// Cents is an amount of money in the smallest currency unit.
type Cents int64

// MaxPrice is the highest single price a catalog may hold. Summing a ticket
// with any realistic number of extras stays far away from int64 overflow.
const MaxPrice Cents = math.MaxInt32

// Dollars renders the amount with exactly two decimal places, e.g. 17500 -> "175.00".
func (c Cents) Dollars() string {
	sign := ""
	abs := uint64(c)
	if c < 0 {
		sign = "-"
		abs = -abs
	}

	return fmt.Sprintf("%s%d.%02d", sign, abs/100, abs%100)
}
