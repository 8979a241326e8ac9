// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package satoshi

import (
	"fmt"
)

const decimalPlaces = 8

// Parse - convert a decimal coin amount to base units
//
// i.e. "0.00000001" will convert to int64(1)
//
// digits past the eighth decimal place are ignored, any other
// character is an error
func Parse(coins string) (int64, bool) {
	if "" == coins {
		return 0, false
	}
	s := int64(0)
	point := false
	decimals := 0
	digits := 0

get_digits:
	for _, b := range []byte(coins) {
		switch {
		case b >= '0' && b <= '9':
			digits += 1
			if point && decimals >= decimalPlaces {
				continue get_digits
			}
			if s > (1<<62)/10 {
				return 0, false
			}
			s = s*10 + int64(b-'0')
			if point {
				decimals += 1
			}
		case '.' == b && !point:
			point = true
		default:
			return 0, false
		}
	}
	if 0 == digits {
		return 0, false
	}
	for decimals < decimalPlaces {
		s *= 10
		decimals += 1
	}
	return s, true
}

// Format - render base units with eight decimal places
func Format(value int64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	return fmt.Sprintf("%s%d.%08d", sign, value/100000000, value%100000000)
}
