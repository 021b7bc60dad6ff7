// Command hpo is a thin CLI front end over the gohpo library: load an
// ontology data directory once, run a single operation against it, and
// print the result as JSON.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/hpokit/gohpo/hposet"
	"github.com/hpokit/gohpo/ontology"
	"github.com/hpokit/gohpo/similarity"
	"github.com/hpokit/gohpo/stats"
)

const writerBufferSize = 256 * 1024

func main() {
	dataDir := pflag.StringP("data", "d", "", "Path to the HPO data directory (hp.obo, phenotype_to_genes.txt, phenotype.hpoa)")
	config := pflag.StringP("config", "c", "", "Path to an optional hpo.yaml config file")
	op := pflag.StringP("op", "o", "term", "Operation: term, search, path, similarity, enrich-gene, enrich-omim, enrich-orpha, enrich-decipher")
	kernel := pflag.String("kernel", "graphic", "Similarity kernel: "+strings.Join(similarity.Names(), ", "))
	kind := pflag.String("kind", "gene", "Annotation kind similarity/enrichment is computed against: gene, omim, orpha, decipher")
	combine := pflag.String("combine", "funSimAvg", "Set-similarity combiner: funSimAvg, funSimMax, BMA, BMWA")
	pretty := pflag.Bool("pretty", false, "Pretty-print JSON output")
	pflag.Parse()

	cfg, err := ontology.LoadConfig(*config)
	if err != nil {
		fail("loading config: %v", err)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	fmt.Fprintf(os.Stderr, "Loading ontology from %s...\n", cfg.DataDir)
	start := time.Now()
	o, err := ontology.Load(cfg)
	if err != nil {
		fail("loading ontology: %v", err)
	}
	fmt.Fprintf(os.Stderr, "Loaded %d terms, %d genes in %v\n", o.Len(), o.Genes.Len(), time.Since(start))

	args := pflag.Args()
	var result any
	switch *op {
	case "term":
		result, err = runTerm(o, args)
	case "search":
		result, err = runSearch(o, args)
	case "path":
		result, err = runPath(o, args)
	case "similarity":
		result, err = runSimilarity(o, args, *kernel, *kind, *combine)
	case "enrich-gene":
		result, err = runEnrichGene(o, args)
	case "enrich-omim":
		result, err = runEnrichDisease(o, args, ontology.KindOmim)
	case "enrich-orpha":
		result, err = runEnrichDisease(o, args, ontology.KindOrpha)
	case "enrich-decipher":
		result, err = runEnrichDisease(o, args, ontology.KindDecipher)
	default:
		fail("unknown -op %q", *op)
	}
	if err != nil {
		fail("%v", err)
	}

	if err := writeJSON(os.Stdout, result, *pretty); err != nil {
		fail("writing output: %v", err)
	}
}

func runTerm(o *ontology.Ontology, args []string) (any, error) {
	if len(args) != 1 {
		return nil, usageError("term requires exactly one query argument")
	}
	return o.Get(args[0])
}

func runSearch(o *ontology.Ontology, args []string) (any, error) {
	if len(args) != 1 {
		return nil, usageError("search requires exactly one substring argument")
	}
	var out []*ontology.Term
	for t := range o.Search(args[0]) {
		out = append(out, t)
	}
	return out, nil
}

func runPath(o *ontology.Ontology, args []string) (any, error) {
	if len(args) != 2 {
		return nil, usageError("path requires exactly two term arguments")
	}
	return o.Path(args[0], args[1])
}

func runSimilarity(o *ontology.Ontology, args []string, kernel, kind, combine string) (any, error) {
	if len(args) != 2 {
		return nil, usageError("similarity requires exactly two \"+\"-separated term-index lists")
	}
	setA, err := hposet.FromSerialized(o, args[0])
	if err != nil {
		return nil, err
	}
	setB, err := hposet.FromSerialized(o, args[1])
	if err != nil {
		return nil, err
	}
	score, err := hposet.Similarity(o, setA, setB, kernel, kind, combine)
	if err != nil {
		return nil, err
	}
	return map[string]any{"score": score, "kernel": kernel, "kind": kind, "combine": combine}, nil
}

func runEnrichGene(o *ontology.Ontology, args []string) (any, error) {
	query, err := parseQuerySet(o, args)
	if err != nil {
		return nil, err
	}
	return stats.GeneEnrichment(o, query)
}

func runEnrichDisease(o *ontology.Ontology, args []string, kind ontology.AnnotationKind) (any, error) {
	query, err := parseQuerySet(o, args)
	if err != nil {
		return nil, err
	}
	return stats.DiseaseEnrichment(o, query, kind)
}

func parseQuerySet(o *ontology.Ontology, args []string) (*hposet.Set, error) {
	if len(args) != 1 {
		return nil, usageError("enrichment requires exactly one \"+\"-separated term-index list")
	}
	return hposet.FromSerialized(o, args[0])
}

func usageError(msg string) error { return fmt.Errorf("usage: %s", msg) }

func writeJSON(w io.Writer, v any, pretty bool) error {
	bw := bufio.NewWriterSize(w, writerBufferSize)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return err
	}
	return bw.Flush()
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
