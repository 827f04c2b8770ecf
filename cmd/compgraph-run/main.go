// Command compgraph-run runs one of the library's bundled example graphs
// against a line-delimited JSON input file and prints the result.
//
// A flag-selected example, godotenv/autoload for .env defaults, and an
// environment-driven slog level exactly as GetLogLevelFromEnv documents.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/flowgraph/compgraph"
	"github.com/flowgraph/compgraph/examples/geospeed"
	"github.com/flowgraph/compgraph/examples/ingest"
	"github.com/flowgraph/compgraph/examples/pmi"
	"github.com/flowgraph/compgraph/examples/tfidf"
	"github.com/flowgraph/compgraph/examples/wordcount"
	"github.com/flowgraph/compgraph/observability/slogobs"
	"github.com/flowgraph/compgraph/record"
	"github.com/flowgraph/compgraph/runconfig"
)

func main() {
	var (
		which      = flag.String("graph", "wordcount", "example graph to run: wordcount, tfidf, pmi, geospeed")
		input      = flag.String("input", "", "path to a line-delimited JSON input file (required for wordcount/tfidf/pmi)")
		edgesPath  = flag.String("edges", "", "path to a line-delimited JSON edges file (geospeed only)")
		timesPath  = flag.String("times", "", "path to a line-delimited JSON times file (geospeed only)")
		printStats = flag.Bool("stats", false, "print run statistics to stderr after completion")
	)
	flag.Parse()

	observer := slogobs.New(slogobs.WithLevel(slogobs.GetLogLevelFromEnv()))

	var (
		root    *compgraph.Graph
		sources = map[string]compgraph.Source{}
	)

	switch *which {
	case "wordcount", "tfidf", "pmi":
		if *input == "" {
			log.Fatalf("-input is required for -graph=%s", *which)
		}
		docs, err := ingest.LoadFile(*input)
		if err != nil {
			log.Fatalf("loading input: %v", err)
		}
		switch *which {
		case "wordcount":
			root = wordcount.Build()
			sources[wordcount.SourceName] = docs
		case "tfidf":
			root = tfidf.Build()
			sources[tfidf.SourceName] = docs
		case "pmi":
			root = pmi.Build()
			sources[pmi.SourceName] = docs
		}
	case "geospeed":
		if *edgesPath == "" || *timesPath == "" {
			log.Fatal("-edges and -times are both required for -graph=geospeed")
		}
		edges, err := ingest.LoadFile(*edgesPath)
		if err != nil {
			log.Fatalf("loading edges: %v", err)
		}
		times, err := ingest.LoadFile(*timesPath)
		if err != nil {
			log.Fatalf("loading times: %v", err)
		}
		root = geospeed.Build()
		sources[geospeed.EdgesSourceName] = edges
		sources[geospeed.TimesSourceName] = times
	default:
		log.Fatalf("unknown -graph %q", *which)
	}

	ctx := context.Background()
	exec, err := compgraph.Run(ctx, root, sources, runconfig.WithProvider(observer))
	if err != nil {
		log.Fatalf("planning failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	for rec := range exec.Records {
		if err := enc.Encode(recordToMap(rec)); err != nil {
			log.Fatalf("encoding output: %v", err)
		}
	}
	if err := exec.Err(); err != nil {
		log.Fatalf("run failed: %v", err)
	}

	if *printStats {
		fmt.Fprintf(os.Stderr, "run %s: %v elapsed\n", exec.Stats.RunID, exec.Stats.ExecutionDuration())
		for graphID, count := range exec.Stats.GraphRecordCounts {
			fmt.Fprintf(os.Stderr, "graph %s: %d records, materialized=%v\n", graphID, count, exec.Stats.GraphMaterialized[graphID])
		}
	}
}

func recordToMap(rec record.Record) map[string]any {
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		out[k] = v.Any()
	}
	return out
}
