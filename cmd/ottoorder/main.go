// OttoOrder is a rule-based restaurant ordering assistant.
//
// Usage:
//
//	ottoorder serve [--addr :8080] [--catalog-dir catalogs]
//	ottoorder chat <restaurant-id>
//	ottoorder validate <file>...
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
