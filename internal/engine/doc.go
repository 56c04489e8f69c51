// Package engine contains the serial search for stkeys. It enumerates every
// serial in the configured year range, hashes each candidate, and reports
// those whose digest ends with the target SSID bytes. This package is
// internal; external consumers should use the stable facade in pkg/core.
package engine
