// Command prtg-temperature prints hardware temperatures from lm-sensors as
// a PRTG custom-sensor JSON document.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Guliveer/prtg-sensors/internal/app"
	"github.com/Guliveer/prtg-sensors/internal/collector"
	"github.com/Guliveer/prtg-sensors/internal/config"
	"github.com/Guliveer/prtg-sensors/internal/pipeline"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	flags := app.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if flags.ShowVersion {
		fmt.Printf("prtg-temperature %s\n", version)
		return
	}

	env, err := app.Setup("temperature", flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer env.Logger.Sync()

	ctx, cancel := app.SignalContext()
	defer cancel()

	var src collector.Collector
	switch env.Config.Temperature.Source {
	case config.SourceGopsutil:
		src = collector.NewHostSensorsCollector(env.Logger)
	default:
		src = collector.NewSensorsCollector(env.Runner,
			env.Config.Temperature.Command, env.Config.Temperature.Args, env.Logger)
	}
	env.CheckAvailable(src)

	resp, err := pipeline.Temperature(ctx, src)
	switch {
	case errors.Is(err, pipeline.ErrNoSensorData):
		fmt.Println("Error: No valid sensor data found.")
	case err != nil:
		env.Logger.Error("Collection failed", zap.String("collector", src.Name()), zap.Error(err))
		fmt.Println("Error: Unable to fetch sensors data.")
	default:
		if err := resp.Write(os.Stdout, ""); err != nil {
			env.Logger.Error("Failed to write output", zap.Error(err))
		}
	}
}
