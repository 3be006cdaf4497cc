package main

import (
	"os"

	"github.com/wonny/gdpdash/cmd/gdpdash/commands"
)

// main is the entry point for the gdpdash CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/gdpdash [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
