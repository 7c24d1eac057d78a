// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package sparse

import "math"

// KBNSummer accumulates a sum with the Kahan-Babushka-Neumaier
// compensated summation algorithm. The zero value is ready to use.
type KBNSummer struct {
	sum          float64
	compensation float64
}

// Add adds value to the running sum.
func (s *KBNSummer) Add(value float64) {
	t := s.sum + value
	if math.Abs(s.sum) >= math.Abs(value) {
		s.compensation += (s.sum - t) + value
	} else {
		s.compensation += (value - t) + s.sum
	}
	s.sum = t
}

// Sum returns the compensated total.
func (s *KBNSummer) Sum() float64 {
	return s.sum + s.compensation
}
