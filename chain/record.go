/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

package chain

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
)

// ParseAlignment decodes the body of a chain (everything after the
// header's newline, up to the blank-line terminator) into an ordered
// sequence of AlignmentRecords. The last record is always the terminal,
// dt/dq-less size line.
func ParseAlignment(body []byte) ([]AlignmentRecord, error) {
	var records []AlignmentRecord

	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	for scanner.Scan() {
		line := bytes.TrimRight(scanner.Bytes(), "\r")
		if len(bytes.TrimSpace(line)) == 0 {
			break
		}

		fields := bytes.Split(line, []byte{'\t'})
		switch len(fields) {
		case 1:
			size, err := parseUint32(fields[0])
			if err != nil {
				return nil, fmt.Errorf("terminal alignment record %q: %w", line, err)
			}
			records = append(records, AlignmentRecord{Size: size, IsLast: true})
			return records, nil

		case 3:
			size, err := parseUint32(fields[0])
			if err != nil {
				return nil, fmt.Errorf("alignment record %q size: %w", line, err)
			}
			dt, err := parseUint32(fields[1])
			if err != nil {
				return nil, fmt.Errorf("alignment record %q dt: %w", line, err)
			}
			dq, err := parseUint32(fields[2])
			if err != nil {
				return nil, fmt.Errorf("alignment record %q dq: %w", line, err)
			}
			records = append(records, AlignmentRecord{Size: size, Dt: dt, Dq: dq})

		default:
			return nil, fmt.Errorf("alignment record %q: missing tab separator: %w", line, ErrMalformedRecord)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning alignment body: %v: %w", err, ErrMalformedRecord)
	}

	if len(records) == 0 || !records[len(records)-1].IsLast {
		return nil, fmt.Errorf("alignment body has no terminal record: %w", ErrMalformedRecord)
	}

	return records, nil
}

func parseUint32(field []byte) (uint32, error) {
	n, err := strconv.ParseUint(string(field), 10, 32)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, fmt.Errorf("%q: %w", field, ErrIntegerOverflow)
		}
		return 0, fmt.Errorf("%q: %w", field, ErrMalformedRecord)
	}
	return uint32(n), nil
}
