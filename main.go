// Package main is the entrypoint for the reviewers CLI.
package main

import (
	"github.com/huangsam/reviewers/cmd"
	"github.com/huangsam/reviewers/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Cannot suggest reviewers", err)
	}
}
