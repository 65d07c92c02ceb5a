/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

package chain

import (
	"bytes"
	"fmt"
	"strconv"
)

// ParseHeader decodes a chain header line:
//
//	chain SCORE refChr refSize refStrand refStart refEnd qChr qSize qStrand qStart qEnd ID
//
// into its score, reference head, query head, and id.
func ParseHeader(line []byte) (score uint64, refs, query ChainHead, id uint32, err error) {
	line = bytes.TrimRight(line, "\r\n")
	fields := bytes.Fields(line)
	if len(fields) != 13 {
		return 0, ChainHead{}, ChainHead{}, 0, fmt.Errorf("header %q has %d fields, want 13: %w", line, len(fields), ErrMalformedHeader)
	}
	if string(fields[0]) != "chain" {
		return 0, ChainHead{}, ChainHead{}, 0, fmt.Errorf("header %q: leading token is not %q: %w", line, "chain", ErrMalformedHeader)
	}

	score, err = strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0, ChainHead{}, ChainHead{}, 0, fmt.Errorf("header score %q: %w", fields[1], ErrMalformedHeader)
	}

	refs, err = parseHead(fields[2:7])
	if err != nil {
		return 0, ChainHead{}, ChainHead{}, 0, fmt.Errorf("header reference fields: %w", err)
	}

	query, err = parseHead(fields[7:12])
	if err != nil {
		return 0, ChainHead{}, ChainHead{}, 0, fmt.Errorf("header query fields: %w", err)
	}

	idVal, err := strconv.ParseUint(string(fields[12]), 10, 32)
	if err != nil {
		return 0, ChainHead{}, ChainHead{}, 0, fmt.Errorf("header id %q: %w", fields[12], ErrMalformedHeader)
	}

	return score, refs, query, uint32(idVal), nil
}

func parseHead(fields [][]byte) (ChainHead, error) {
	chr := string(fields[0])

	size, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return ChainHead{}, fmt.Errorf("size %q: %w", fields[1], ErrMalformedHeader)
	}

	if len(fields[2]) != 1 || (fields[2][0] != '+' && fields[2][0] != '-') {
		return ChainHead{}, fmt.Errorf("strand %q: %w", fields[2], ErrMalformedHeader)
	}
	strand := fields[2][0]

	start, err := strconv.ParseUint(string(fields[3]), 10, 64)
	if err != nil {
		return ChainHead{}, fmt.Errorf("start %q: %w", fields[3], ErrMalformedHeader)
	}

	end, err := strconv.ParseUint(string(fields[4]), 10, 64)
	if err != nil {
		return ChainHead{}, fmt.Errorf("end %q: %w", fields[4], ErrMalformedHeader)
	}

	return ChainHead{Chr: chr, Size: size, Strand: strand, Start: start, End: end}, nil
}
