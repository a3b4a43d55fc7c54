package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"gopkg.in/yaml.v3"

	"github.com/spanmk/spanmk/spanlib"
	"github.com/spanmk/spanmk/spanwire"
)

// fileConfig holds defaults read from an optional YAML config file.
// Command line flags win over config values.
type fileConfig struct {
	Flavor string `yaml:"flavor"`
	Output string `yaml:"output"`
	Trace  string `yaml:"trace"`
}

func main() {
	var opts struct {
		Path   string `short:"p" long:"path" description:"input filename (default: stdin)"`
		Flavor string `short:"f" long:"flavor" description:"markdown flavor" choice:"standard" choice:"extended" choice:"extended-math"`
		Output string `short:"o" long:"output" description:"projection to emit" choice:"debug" choice:"content" choice:"render" choice:"wire"`
		Config string `short:"c" long:"config" description:"YAML config file with defaults"`
		Trace  string `long:"trace" description:"trace level [Debug|Info|Error]"`
	}
	_, err := flags.Parse(&opts)
	if err != nil {
		os.Exit(1)
	}

	conf := fileConfig{Flavor: "extended", Output: "render", Trace: "Info"}
	if opts.Config != "" {
		raw, err := os.ReadFile(opts.Config)
		if err != nil {
			log.Fatalln("Config file not found: ", opts.Config)
		}
		if err := yaml.Unmarshal(raw, &conf); err != nil {
			log.Fatalln("Bad config file: ", err)
		}
	}
	if opts.Flavor != "" {
		conf.Flavor = opts.Flavor
	}
	if opts.Output != "" {
		conf.Output = opts.Output
	}
	if opts.Trace != "" {
		conf.Trace = opts.Trace
	}

	// set up tracing
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	tconf := testconfig.Conf{
		"tracing.adapter":    "go",
		"trace.spanmk.parse": conf.Trace,
	}
	if err := trace2go.ConfigureRoot(tconf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Fprintln(os.Stderr, "error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	flavor, err := spanlib.ParseFlavor(conf.Flavor)
	if err != nil {
		log.Fatalln(err)
	}
	var content []byte
	if opts.Path != "" {
		content, err = os.ReadFile(opts.Path)
		if err != nil {
			log.Fatalln("File not found: ", opts.Path)
		}
	} else {
		content, err = io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalln("Cannot read stdin: ", err)
		}
	}

	ast := spanlib.Parse(flavor, string(content))
	switch conf.Output {
	case "debug":
		fmt.Println(spanlib.DebugString(ast))
	case "content":
		fmt.Println(spanlib.ContentString(ast))
	case "render":
		fmt.Println(spanlib.RenderString(ast))
	case "wire":
		if _, err := os.Stdout.Write(spanwire.Encode(ast)); err != nil {
			log.Fatalln("Cannot write wire output: ", err)
		}
	default:
		log.Fatalln("Unknown output projection: ", conf.Output)
	}
}
