/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

// Package chain parses and represents UCSC-style chain alignment files and
// implements the coordinate projection engine that maps reference
// intervals through a chain into query coordinates.
//
// A Chain is a header (score, reference head, query head, id) plus an
// ordered list of AlignmentRecords. Records are materialized into blocks
// on demand by BlockIter rather than stored as a block slice; Project and
// Coverage are the two consumers of that sweep.
package chain
