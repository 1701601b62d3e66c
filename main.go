// Package main is the entry point for reelplay.
package main

import (
	"github.com/reelplay/reelplay/cmd"
	"github.com/reelplay/reelplay/config"
	"github.com/reelplay/reelplay/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
