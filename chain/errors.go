/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

package chain

import "errors"

// Sentinel errors identify the error kinds a caller may want to match with
// errors.Is. Every fallible function wraps one of these with fmt.Errorf's
// %w so the offending line, field, or chain id travels with it.
var (
	ErrIO                = errors.New("chain: io failure")
	ErrMalformedHeader   = errors.New("chain: malformed header")
	ErrMalformedRecord   = errors.New("chain: malformed alignment record")
	ErrIntegerOverflow   = errors.New("chain: integer overflow")
	ErrInputMissingField = errors.New("chain: input interval missing a required field")
	ErrEmptyInput        = errors.New("chain: interval input is empty")
	ErrMissingChain      = errors.New("chain: chain id not found")
	ErrSerialization     = errors.New("chain: serialization failure")
)
