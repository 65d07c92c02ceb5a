/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

// Package names provides chromosome name canonicalization for the
// optional chromosome-indexed lookup layered on top of a chain collection.
//
// It is never applied to a Chain's own Refs.Chr/Query.Chr fields: the
// round-trip property required of chain.go (parse then render reproduces
// the original bytes) depends on those fields surviving unchanged, so
// canonicalization only ever happens at lookup keys, never at parse time.
package names

import "strings"

// Canonical returns a chromosome label stripped of any "chr" prefix,
// upper-cased, with the mitochondrial alias normalized to "MT". It is a
// lookup convenience, not a parser transform.
func Canonical(chromosome string) string {
	chromosome = strings.ToUpper(strings.TrimPrefix(chromosome, "chr"))
	if chromosome == "M" {
		chromosome = "MT"
	}

	return chromosome
}
