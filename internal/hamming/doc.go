// Package hamming counts generalized Hamming numbers: positive integers whose
// prime factors all belong to a given prime set.
//
// Two strategies are provided. The enumeration strategy walks the tree of
// non-decreasing prime sequences and never scans the integer range, so it is
// the one to use for real work. The naive strategy tests every integer up to
// the threshold by repeated division and exists as a slow reference oracle for
// cross-checking small inputs.
//
// Both strategies count the unit value 1 (the empty product) and return 0 for
// thresholds below 1.
package hamming
