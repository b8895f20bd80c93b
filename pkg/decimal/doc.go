// Package decimal implements an immutable fixed-point decimal parsed from its
// text form, together with the scale analysis used by precision rules.
//
// A Value is stored as a sign, a non-negative unscaled magnitude (math/big)
// and a scale between 0 and 28:
//
//	value = sign * unscaled * 10^-scale
//
// Different representations of the same number keep their declared scale, so
// "1", "1.0" and "1.00" parse to scales 0, 1 and 2. Scale reports either the
// declared scale or the number of significant fractional digits:
//
//	v, _ := decimal.Parse("12.340")
//	v.Scale(false) // 3
//	v.Scale(true)  // 2
//
// Parse accepts an optional sign, digits and at most one decimal point. It
// rejects exponents, grouping separators and empty input. The magnitude is
// limited to 96 bits, matching the range of common fixed-point decimal types.
// Literals with more than 28 fractional digits, or whose digits exceed 96 bits,
// are rounded half to even until they fit; only an integer part that is out
// of range is an error.
package decimal
