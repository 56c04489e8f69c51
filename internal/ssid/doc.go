// Package ssid parses the partial digest carried in a router SSID. The hex
// suffix of the SSID equals the last bytes of the SHA-1 digest of the device
// serial; a Target holds those bytes and tests candidate digests against them.
package ssid
