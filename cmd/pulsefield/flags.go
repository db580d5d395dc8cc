package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/lixenwraith/pulsefield/parameter"
)

// options are the command line switches
type options struct {
	configPath  string
	printConfig bool
	debug       bool
	mute        bool
	seed        uint64
	unitsPerCol float64
}

// parseFlags returns flag.ErrHelp for -h, every other error has already been written to out
func parseFlags(args []string, out io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("pulsefield", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&o.configPath, "config", "", "JSON tuning file")
	fs.BoolVar(&o.printConfig, "print-config", false, "write the default tuning file to stdout and exit")
	fs.BoolVar(&o.debug, "debug", false, "write logs to "+logDir+"/"+logFileName)
	fs.BoolVar(&o.mute, "mute", false, "start with sound off")
	fs.Uint64Var(&o.seed, "seed", 0, "note RNG seed, 0 picks one")
	fs.Float64Var(&o.unitsPerCol, "units-per-col", parameter.UnitsPerColumn, "plane units per terminal column (rows are twice as tall)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	// Reported like a parse error: message then usage
	if o.unitsPerCol <= 0 {
		err := fmt.Errorf("units-per-col must be positive, got %g", o.unitsPerCol)
		fmt.Fprintln(fs.Output(), err)
		fs.Usage()
		return options{}, err
	}
	return o, nil
}
