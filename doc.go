// Package molweight computes molecular weights of chemical formulas.
//
// A formula is a sequence of element symbols, each optionally followed by a
// count, with parenthesized groups that may themselves be followed by a
// count: "C", "CH4", and "(NH4)2SO4" are formulas. Symbols are
// case-sensitive, so "Co" is cobalt while "CO" is carbon monoxide.
// Characters that can't be part of a formula are skipped unless parsing with
// Strict.
//
// Weights are computed to arbitrary precision from an element Table. The
// default table holds IUPAC standard atomic weights. Parse a formula once and
// evaluate it with as many contexts as you like; formulas, tables, and
// contexts are all immutable.
package molweight
