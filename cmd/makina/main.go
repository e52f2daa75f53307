// Command makina runs a two-dimensional esoteric-language program.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/golang/glog"

	"makina/display"
	"makina/interp"
)

var (
	displayName = flag.String("display", "simple", "display to render the run with (see -list)")
	list        = flag.Bool("list", false, "list available displays and exit")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if *list {
		printDisplays()
		return
	}

	path := flag.Arg(0)
	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: makina [-display name] program.mkn")
		os.Exit(1)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		glog.Errorf("reading program: %v", err)
		os.Exit(1)
	}

	d, err := display.New(*displayName, os.Stdout)
	if err != nil {
		glog.Errorf("%v", err)
		os.Exit(1)
	}

	w := interp.FromText(string(src), d, os.Stdin)
	if err := w.Run(); err != nil {
		// World already reported this to the display; glog records it
		// too, so -v-enabled runs keep a trace independent of whichever
		// display was active (spec.md §7).
		glog.Errorf("run failed: %v", err)
		os.Exit(1)
	}
}

func printDisplays() {
	names := display.Names()
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s — %s\n", name, display.Describe(name))
	}
}
