// Package main is the entry point for the favigo CLI.
package main

import (
	"github.com/favigo/favigo/cmd"
	"github.com/favigo/favigo/config"
	"github.com/favigo/favigo/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
