// Command prtg-drives reports SMART drive temperatures.
//
// Usage:
//
//	prtg-drives list           list whole disks found by lsblk
//	prtg-drives temperatures   print PRTG JSON with one channel per drive
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

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
		fmt.Printf("prtg-drives %s\n", version)
		return
	}

	env, err := app.Setup("drives", flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer env.Logger.Sync()

	ctx, cancel := app.SignalContext()
	defer cancel()

	drives := collector.NewDriveCollector(env.Runner,
		env.Config.Drives.LsblkCommand, env.Config.Drives.SmartctlCommand, env.Logger)

	switch flag.Arg(0) {
	case "list":
		list, err := drives.ListDrives(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		names := make([]string, 0, len(list))
		for _, d := range list {
			names = append(names, fmt.Sprintf("%s (%s)", d.Name, d.Model))
		}
		fmt.Println("List of hard drives:", strings.Join(names, ", "))

	case "temperatures":
		env.CheckAvailable(drives)
		resp, err := pipeline.Drives(ctx, drives)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		if err := resp.Write(os.Stdout, "  "); err != nil {
			env.Logger.Error("Failed to write output", zap.Error(err))
		}

	default:
		fmt.Println(`Invalid mode. Please use "list" or "temperatures".`)
	}
}
