package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"banlist/internal"
	"banlist/internal/config"
	"banlist/internal/ingest"
	"banlist/internal/pipeline"
	"banlist/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "build":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		authorityPath := fs.String("authority", cfg.AuthorityPath, "authority list (csv|xlsx|html)")
		termsPath := fs.String("terms", cfg.TermsPath, "search-term list (csv|xlsx|html)")
		_ = fs.Parse(os.Args[2:])

		start := time.Now()
		authority, err := ingest.ReadAuthority(*authorityPath)
		must(err)
		terms, err := ingest.ReadTerms(*termsPath)
		must(err)

		result := pipeline.NewReconciler(cfg.Country, cfg.RulesSource).Build(authority, terms)
		suggestions := pipeline.BuildSuggestions(terms, result.Items)

		must(pipeline.WriteJSON(cfg.ItemsPath(), internal.CatalogFile{Country: cfg.Country, Items: result.Items}))
		must(pipeline.WriteJSON(cfg.SuggestPath(), internal.SuggestFile{Country: cfg.Country, Terms: suggestions}))

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()
		must(db.ReplaceItems(cfg.Country, result.Items))
		must(db.InsertBuild(map[string]int{
			"authorityRows":     result.Stats.AuthorityRows,
			"skippedEmpty":      result.Stats.SkippedEmpty,
			"skippedDuplicates": result.Stats.SkippedDuplicates,
			"joined":            result.Stats.Joined,
			"items":             result.Stats.Items,
			"terms":             len(suggestions),
		}, time.Since(start).Milliseconds()))
		must(db.SetMetadata("catalog.last_build", time.Now().UTC().Format(time.RFC3339)))

		fmt.Printf("build done items=%d terms=%d -> %s\n", len(result.Items), len(suggestions), cfg.ItemsPath())
	case "categories":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		itemsPath := fs.String("items", cfg.ItemsPath(), "built items file")
		_ = fs.Parse(os.Args[2:])

		count, categories, err := pipeline.AssignCategoriesFile(*itemsPath)
		must(err)
		must(pipeline.WriteJSON(cfg.CategoriesPath(), internal.CategoriesFile{Categories: categories}))

		fmt.Printf("categories done items=%d categories=%d -> %s\n", count, len(categories), cfg.CategoriesPath())
	case "normalize":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", cfg.ItemsPath(), "catalog file to rewrite in place")
		_ = fs.Parse(os.Args[2:])

		count, err := pipeline.RepairFile(*input, cfg.Country)
		must(err)
		fmt.Printf("normalized %d items in %s\n", count, *input)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()
		items, err := db.ListItems()
		must(err)
		if len(items) == 0 {
			must(fmt.Errorf("no item snapshot; run build first"))
		}
		must(pipeline.ExportItemsToXLSX(items, cfg.Country, *out))
		fmt.Printf("exported %d items to %s\n", len(items), *out)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: banlist <command>")
	fmt.Println("commands:")
	fmt.Println("  build [--authority=path] [--terms=path]")
	fmt.Println("  categories [--items=path]")
	fmt.Println("  normalize [--input=path]")
	fmt.Println("  export:xlsx --out=./out/items.xlsx")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
