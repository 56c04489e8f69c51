package main

import "github.com/stkeys/stkeys/cmd/stkeys"

func main() { stkeys.Execute() }
