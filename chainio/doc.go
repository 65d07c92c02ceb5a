/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

// Package chainio reads chain files from disk: the streaming (header,
// body) splitter and its parallel parse, the byte-offset sidecar index
// that enables random access without re-parsing, and a binary dump of a
// parsed ChainMap for fast reload.
package chainio
