// Package main is the entry point for the intlcode CLI.
package main

import "intlcode.dev/pkg/intlcode/cmd"

func main() {
	cmd.Execute()
}
