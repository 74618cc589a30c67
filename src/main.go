// ptp-stats ingests ptp4l daemon logs from a fixed fleet of hosts, reports
// clock offset and path-delay statistics with a Shapiro-Wilk normality
// check, renders per-host line plots, and, when a second log directory is
// given, runs a Mann-Whitney U comparison of the control and experimental
// datasets per host and per metric.
//
// Usage:
//
//	ptp-stats [flags] <control_dir> [experimental_dir]
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/a1g3/ptp-stats/src/ptplog"
	"github.com/a1g3/ptp-stats/src/report"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <control_dir> [experimental_dir]\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	plotDir := flag.String("plot-dir", "plots", "Output directory for PNG plots")
	hosts := flag.String("hosts", strings.Join(report.DefaultHosts, ","), "Comma-separated host names; logs are <dir>/<lowercase name>.log")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		usage()
		os.Exit(1)
	}
	controlDir := args[0]
	experimentalDir := ""
	if len(args) == 2 {
		experimentalDir = args[1]
	}

	ptplog.SetLogLevel(*logLevel)

	var hostList []string
	for _, h := range strings.Split(*hosts, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hostList = append(hostList, h)
		}
	}

	report.Run(os.Stdout, controlDir, experimentalDir, report.Options{
		Hosts:   hostList,
		PlotDir: *plotDir,
	})
}
