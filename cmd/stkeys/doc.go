// Package stkeys provides the command-line interface for the stkeys tool.
// It parses the SSID and year range, runs the serial search, and prints one
// default key per matching serial.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/stkeys/stkeys/cmd/stkeys"
//	func main() { stkeys.Execute() }
package stkeys
