// Command buildindex runs the offline build: it reads the corpus directory,
// builds the inverted index, the similarity graph, and the document list, and
// persists them for the serving binary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gutensearch/gutensearch/config"
	"github.com/gutensearch/gutensearch/internal/engine"
	"github.com/gutensearch/gutensearch/internal/logging"
)

func main() {
	var (
		help       = flag.Bool("help", false, "Show help message")
		configPath = flag.String("config", "", "Path to YAML config file")
		corpusDir  = flag.String("corpus-dir", "", "Corpus directory (overrides config)")
		dataDir    = flag.String("data-dir", "", "Artifact output directory (overrides config)")
	)
	flag.Parse()

	if *help {
		fmt.Printf("gutensearch buildindex - offline corpus index and graph builder\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *corpusDir != "" {
		cfg.Corpus.Dir = *corpusDir
	}
	if *dataDir != "" {
		cfg.Storage.DataDir = *dataDir
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	log := logging.ForComponent("buildindex")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	builder := engine.NewBuilder(cfg, log)
	summary, err := builder.Run(ctx)
	if err != nil {
		log.WithError(err).Fatal("build failed")
	}
	log.Infof("artifacts written to %s (%d documents, %d terms, %d edges, took %s)",
		cfg.Storage.DataDir, summary.Documents, summary.Vocabulary, summary.GraphEdges, summary.Took)
}
