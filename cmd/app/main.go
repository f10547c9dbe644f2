// Package main for the sendgate service
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/reachforge/sendgate/pkg/cmd"
)

func main() {
	// This is needed to make `glog` believe that the flags have already been parsed, otherwise
	// every log messages is prefixed by an error message stating the flags haven't been
	// parsed.
	_ = flag.CommandLine.Parse([]string{})

	// Always log to stderr by default, required for glog.
	if err := flag.Set("logtostderr", "true"); err != nil {
		glog.Info("unable to set logtostderr to true.")
	}

	if err := cmd.Command().Execute(); err != nil {
		glog.Errorf("error running command: %v", err)
		os.Exit(1)
	}
}
