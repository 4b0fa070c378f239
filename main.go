// Package main is the entry point for the bytemut CLI.
package main

import "bytemut.dev/pkg/bytemut/cmd"

func main() {
	cmd.Execute()
}
