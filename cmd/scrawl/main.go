package main

import (
	"flag"
	"os"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"

	"github.com/friedelschoen/scrawl"
	"github.com/friedelschoen/scrawl/backend"
)

func tracer() tracing.Trace {
	return tracing.Select("scrawl.main")
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func main() {
	initDisplay()

	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	display := flag.String("display", "", "Wayland display name, empty uses $WAYLAND_DISPLAY")
	flag.Parse()

	conf := testconfig.Conf{
		"tracing.adapter":    "go",
		"trace.scrawl.main":  *tlevel,
		"trace.scrawl.input": *tlevel,
		"trace.scrawl.frame": *tlevel,
		"trace.scrawl.backend": *tlevel,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		pterm.Error.Println("cannot configure tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	pterm.Info.Println("scrawl: starting overlay session")

	cfg := scrawl.DefaultConfig()
	b, err := backend.Connect(*display, cfg)
	if err != nil {
		tracer().Errorf("connect: %v", err)
		pterm.Error.Println(err)
		os.Exit(2)
	}
	defer b.Close()

	pterm.Info.Println("scrawl: overlay mapped, drawing")
	if err := b.Run(); err != nil {
		tracer().Errorf("run: %v", err)
		pterm.Error.Println(err)
		os.Exit(3)
	}
	pterm.Info.Println("scrawl: exiting")
}
