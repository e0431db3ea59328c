/*
Command treereplay replays recorded tree operation batches into a store and
prints the resulting forest.

Usage:

    treereplay [-config cfg.yaml] [-dot out.dot] [-metrics] batches.jsonl

Every line of the input file holds one batch, encoded as a JSON array of
integers. Empty lines and lines starting with '#' are skipped. Batches are
applied in order; the first fatal error stops the replay with exit code 1.
An input file of "-" reads batches from stdin.

The optional YAML configuration looks like this:

    collapseByDefault: false
    devChecks: true
    traceLevel: Info
    protocol:
      version: 2
      minCompatible: 4.22.0

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/elemtree/metrics"
	"github.com/npillmayer/elemtree/protocol"
	"github.com/npillmayer/elemtree/store"
	"github.com/npillmayer/elemtree/store/storedbg"
	"github.com/npillmayer/schuko/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/xlab/treeprint"
	"gopkg.in/yaml.v3"
)

var traceKeys = []string{"elemtree.store", "elemtree.strtab", "elemtree.protocol", "elemtree.metrics"}

// config is the YAML configuration of a replay.
type config struct {
	CollapseByDefault *bool  `yaml:"collapseByDefault"`
	DevChecks         *bool  `yaml:"devChecks"`
	TraceLevel        string `yaml:"traceLevel"`
	Protocol          *struct {
		Version       int    `yaml:"version"`
		MinCompatible string `yaml:"minCompatible"`
		MaxCompatible string `yaml:"maxCompatible"`
	} `yaml:"protocol"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("treereplay", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML configuration")
	dotPath := fs.String("dot", "", "write the final forest as a GraphViz DOT file")
	showMetrics := fs.Bool("metrics", false, "print replay metrics")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: treereplay [-config cfg.yaml] [-dot out.dot] [-metrics] batches.jsonl")
		return 2
	}
	conf, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "treereplay: %v\n", err)
		return 1
	}
	setTraceLevel(conf.TraceLevel)
	opts, err := conf.options()
	if err != nil {
		fmt.Fprintf(stderr, "treereplay: %v\n", err)
		return 1
	}
	in := stdin
	if name := fs.Arg(0); name != "-" {
		f, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(stderr, "treereplay: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	}
	s := store.New(opts...)
	defer s.Close()
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	detach := collector.Attach(s)
	defer detach()
	//
	code := 0
	if err = replay(s, in); err != nil {
		collector.ObserveError(err)
		fmt.Fprintf(stderr, "treereplay: %v\n", err)
		code = 1
	}
	fmt.Fprint(stdout, forest(s))
	if *showMetrics {
		if err := printMetrics(reg, stdout); err != nil {
			fmt.Fprintf(stderr, "treereplay: %v\n", err)
			code = 1
		}
	}
	if *dotPath != "" {
		if err := writeDot(s, *dotPath); err != nil {
			fmt.Fprintf(stderr, "treereplay: %v\n", err)
			code = 1
		}
	}
	return code
}

func loadConfig(path string) (config, error) {
	var conf config
	if path == "" {
		return conf, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return conf, err
	}
	if err = yaml.Unmarshal(data, &conf); err != nil {
		return conf, fmt.Errorf("config %s: %w", path, err)
	}
	return conf, nil
}

func (conf config) options() ([]store.Option, error) {
	var opts []store.Option
	if conf.CollapseByDefault != nil {
		opts = append(opts, store.WithCollapseByDefault(*conf.CollapseByDefault))
	}
	if conf.DevChecks != nil {
		opts = append(opts, store.WithDevChecks(*conf.DevChecks))
	}
	if p := conf.Protocol; p != nil {
		bridge, err := protocol.NewBridge(p.Version, p.MinCompatible, p.MaxCompatible)
		if err != nil {
			return nil, err
		}
		opts = append(opts, store.WithBridgeProtocol(bridge))
	}
	return opts, nil
}

func setTraceLevel(level string) {
	l := tracing.LevelError
	switch strings.ToLower(level) {
	case "info":
		l = tracing.LevelInfo
	case "debug":
		l = tracing.LevelDebug
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
}

// replay applies batches line by line.
func replay(s *store.Store, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var ops []int
		if err := json.Unmarshal([]byte(line), &ops); err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
		report, err := s.ApplyBatch(ops)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
		for _, w := range report.Warnings {
			tracing.Select("elemtree.store").Infof("line %d: %s", lineno, w)
		}
	}
	return scanner.Err()
}

// forest renders the roots of a store, followed by a line of totals.
func forest(s *store.Store) string {
	var sb strings.Builder
	for _, rootID := range s.Roots() {
		tree := treeprint.New()
		r, _ := s.RendererIDForRoot(rootID)
		tree.SetValue(fmt.Sprintf("root %d (renderer %d)", rootID, r))
		branches := map[int]treeprint.Tree{rootID: tree}
		s.TopDown(rootID, func(el *store.Element) {
			if el.IsRoot() {
				return
			}
			parent := branches[el.ParentID]
			if len(el.Children) == 0 {
				parent.AddNode(elementLabel(el))
				return
			}
			branches[el.ID] = parent.AddBranch(elementLabel(el))
		})
		sb.WriteString(tree.String())
	}
	fmt.Fprintf(&sb, "revision %d: %d elements, %d visible, %d roots, %d errors, %d warnings\n",
		s.Revision(), s.Len(), s.NumElements(), len(s.Roots()), s.ErrorCount(), s.WarningCount())
	return sb.String()
}

func elementLabel(el *store.Element) string {
	name := el.DisplayName
	if name == "" {
		name = el.Type.String()
	}
	if el.Key != nil {
		return fmt.Sprintf("%s key=%q #%d", name, *el.Key, el.ID)
	}
	return fmt.Sprintf("%s #%d", name, el.ID)
}

// printMetrics writes the gathered metrics in the Prometheus text format.
func printMetrics(reg *prometheus.Registry, w io.Writer) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func writeDot(s *store.Store, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = storedbg.ToGraphViz(s, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
