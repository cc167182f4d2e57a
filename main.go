package main

import (
	"github.com/playcheck-cli/playcheck/cmd"
	"github.com/playcheck-cli/playcheck/config"
	"github.com/playcheck-cli/playcheck/internal/prune"
	"github.com/playcheck-cli/playcheck/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go prune.CollectGarbage()

	cmd.Execute()
}
