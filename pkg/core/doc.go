// Package core provides a small, stable facade over the stkeys search engine
// for external integrations, so other programs can recover keys without
// importing internal packages.
//
// Example:
//
//	target, err := core.ParseSSID("F8A3D0")
//	if err != nil { /* handle */ }
//	matches, err := core.Search(core.Config{Target: target, StartYear: 2, EndYear: 10, Threads: 1})
//	if err != nil { /* handle */ }
//	_ = core.MarshalMatches(os.Stdout, matches)
package core
