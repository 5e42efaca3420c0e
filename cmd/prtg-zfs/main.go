// Command prtg-zfs prints ZFS pool free space, pool health and ARC hit/miss
// counters as a PRTG custom-sensor JSON document.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Guliveer/prtg-sensors/internal/app"
	"github.com/Guliveer/prtg-sensors/internal/collector"
	"github.com/Guliveer/prtg-sensors/internal/pipeline"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	flags := app.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if flags.ShowVersion {
		fmt.Printf("prtg-zfs %s\n", version)
		return
	}

	env, err := app.Setup("zfs", flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer env.Logger.Sync()

	ctx, cancel := app.SignalContext()
	defer cancel()

	pools := collector.NewZpoolCollector(env.Runner, env.Config.ZFS.ZpoolCommand, env.Logger)
	arc := collector.NewARCCollector(env.Config.ZFS.ArcstatsPath, env.Logger)
	env.CheckAvailable(pools, arc)

	resp, err := pipeline.ZFS(ctx, pools, arc, env.Config.ZFS.Text, env.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing zpool command: %s\n", pipeline.FailureDetail(err))
		return
	}

	if err := resp.Write(os.Stdout, "    "); err != nil {
		env.Logger.Error("Failed to write output", zap.Error(err))
	}
}
