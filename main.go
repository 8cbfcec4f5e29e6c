// main is the entry point for the libstats CLI.
package main

import (
	"github.com/huangsam/libstats/cmd"
	"github.com/huangsam/libstats/internal/contract"
	"github.com/huangsam/libstats/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	iocache.CloseStores()
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
