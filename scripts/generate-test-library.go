//go:build ignore

// Package main generates a synthetic library database for manual testing and
// benchmarking.
// Usage: go run scripts/generate-test-library.go -papers 500 -output testdata/library.db
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/paperdex/paperdex/internal/storage/sqlite"
)

var (
	numPapers = flag.Int("papers", 500, "Number of papers to generate")
	output    = flag.String("output", "testdata/library.db", "Output database path")
	seed      = flag.Int64("seed", 42, "Random seed for reproducibility")
)

var titleWords = []string{
	"Neural", "Sparse", "Attention", "Retrieval", "Scaling", "Contrastive",
	"Bayesian", "Robust", "Efficient", "Latent", "Graph", "Causal",
	"Networks", "Transformers", "Inference", "Representations", "Models",
	"Optimization", "Embeddings", "Benchmarks",
}

var lastNames = []string{
	"Vaswani", "Hinton", "Lovelace", "Hopper", "Shannon", "Pearl",
	"García", "Müller", "Nakamura", "Okafor",
}

var firstNames = []string{
	"Ada", "Grace", "Claude", "Judea", "Ashish", "Geoffrey",
	"María", "Jonas", "Yuki", "Amara",
}

var venues = []string{
	"NeurIPS", "ICML", "ICLR", "ACL", "Journal of Machine Learning Research",
	"Transactions on Information Theory",
}

var folderNames = []string{
	"To Read", "Classics", "Neural Networks", "Information Retrieval",
	"Causality", "Reproducibility",
}

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(filepath.Dir(*output), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	_ = os.Remove(*output)

	store, err := sqlite.Open(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	db := store.DB()
	must := func(query string, args ...any) {
		if _, err := db.Exec(query, args...); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	must(`INSERT INTO libraries (id, name) VALUES (1, 'Test Library')`)

	for i, name := range folderNames {
		parent := 0
		if i >= 3 {
			parent = rng.Intn(3) + 1
		}
		must(`INSERT INTO folders (id, library_id, parent_id, name) VALUES (?, 1, ?, ?)`,
			i+1, parent, name)
	}

	attachmentID := int64(1)
	for i := 0; i < *numPapers; i++ {
		docID := int64(i + 1)
		title := fmt.Sprintf("%s %s for %s %s",
			titleWords[rng.Intn(len(titleWords))],
			titleWords[rng.Intn(len(titleWords))],
			titleWords[rng.Intn(len(titleWords))],
			titleWords[rng.Intn(len(titleWords))])
		last := lastNames[rng.Intn(len(lastNames))]
		first := firstNames[rng.Intn(len(firstNames))]
		year := 1990 + rng.Intn(36)

		must(`INSERT INTO documents
			(id, library_id, regular, title, short_title, citation_key, doi, date,
			 publication, conference, proceedings, first_creator, modified)
			VALUES (?, 1, 1, ?, '', ?, ?, ?, ?, '', '', ?, ?)`,
			docID, title,
			fmt.Sprintf("%s%d%s", lowerASCII(last), year, lowerASCII(titleWords[rng.Intn(len(titleWords))])),
			fmt.Sprintf("10.%04d/paperdex.%d", 1000+rng.Intn(9000), docID),
			fmt.Sprintf("%d-01-01", year),
			venues[rng.Intn(len(venues))],
			fmt.Sprintf("%s et al.", last),
			fmt.Sprintf("%d-06-01 12:%02d:00", year, rng.Intn(60)))

		must(`INSERT INTO creators (document_id, position, first_name, last_name)
			VALUES (?, 0, ?, ?)`, docID, first, last)

		// Every generated paper gets a PDF so it is visible to the index.
		must(`INSERT INTO attachments (id, document_id, content_type, title, filename)
			VALUES (?, ?, 'application/pdf', ?, ?)`,
			attachmentID, docID, "Full Text PDF", fmt.Sprintf("paper-%d.pdf", docID))
		attachmentID++

		// Roughly a third of the papers are filed somewhere.
		if rng.Intn(3) == 0 {
			must(`INSERT INTO folder_documents (folder_id, document_id) VALUES (?, ?)`,
				rng.Intn(len(folderNames))+1, docID)
		}
	}

	fmt.Printf("Generated %d papers in %s\n", *numPapers, *output)
}

func lowerASCII(s string) string {
	b := []byte(s)
	out := b[:0]
	for _, c := range b {
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c+'a'-'A')
		case c >= 'a' && c <= 'z':
			out = append(out, c)
		}
	}
	return string(out)
}
