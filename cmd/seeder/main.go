package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/prodmatch"
	"github.com/poiesic/prodmatch/core"
)

var products = []core.CatalogEntry{
	{Code: "7891000100103", Description: "Whole milk 1L carton"},
	{Code: "7891000053508", Description: "Condensed milk 395g can"},
	{Code: "7894900011517", Description: "Cola soft drink 2L bottle"},
	{Code: "7896005800058", Description: "White rice 5kg bag"},
	{Code: "7896004000503", Description: "Black beans 1kg bag"},
	{Code: "7891910000197", Description: "Refined sugar 1kg pack"},
	{Code: "7896036090244", Description: "Soybean cooking oil 900ml"},
	{Code: "7891991010856", Description: "Lager beer 350ml can"},
	{Code: "7896102501124", Description: "Wheat flour 1kg pack"},
	{Code: "7891021006125", Description: "Ground roasted coffee 500g"},
	{Code: "7896090101010", Description: "Mineral water 500ml bottle"},
	{Code: "7891962037219", Description: "Sliced sandwich bread 500g"},
	{Code: "7896183202028", Description: "Spaghetti pasta 500g"},
	{Code: "7891030003151", Description: "Strawberry yogurt 170g cup"},
	{Code: "7896019609999", Description: "Tomato sauce 340g pouch"},
	{Code: "7891150022006", Description: "Powdered chocolate drink mix 400g"},
	{Code: "7896045104024", Description: "Mozzarella cheese 150g sliced"},
	{Code: "7891515901011", Description: "Smoked ham 200g sliced"},
	{Code: "7896333020024", Description: "Corn flakes cereal 300g box"},
	{Code: "7891098000456", Description: "Liquid laundry detergent 1L"},
	{Code: "7896098900147", Description: "Bar soap 90g pack of 5"},
	{Code: "7891024130902", Description: "Toothpaste 90g triple pack"},
	{Code: "7896085087028", Description: "Toilet paper 12 rolls double sheet"},
	{Code: "7891035617801", Description: "Shampoo anti-dandruff 400ml"},
	{Code: "7896112900111", Description: "Orange juice 1L carton"},
	{Code: "7898080640017", Description: "Frozen chicken nuggets 300g"},
	{Code: "7891118014309", Description: "Extra virgin olive oil 500ml"},
	{Code: "7896283000881", Description: "Instant noodles chicken flavor 85g"},
	{Code: "7891000244203", Description: "Chocolate bar milk 90g"},
	{Code: "7896423420012", Description: "Harry Potter and the Philosopher's Stone paperback"},
}

var (
	dbPath       = flag.String("db", "./catalog_db", "BadgerDB database directory")
	seedFileName = flag.String("src", "", "CSV file of seed data (code,description)")
	query        = flag.String("query", "harry poter", "demo query to run after seeding")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// entriesFromFile reads code,description rows from a CSV file.
func entriesFromFile(filename string) ([]*core.CatalogEntry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	entries := []*core.CatalogEntry{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) != 2 {
			return nil, fmt.Errorf("expected 2 columns, got %d", len(record))
		}
		entries = append(entries, &core.CatalogEntry{
			Code:        strings.TrimSpace(record[0]),
			Description: strings.TrimSpace(record[1]),
		})
	}
	return entries, nil
}

func main() {
	catalog, err := prodmatch.Open(*dbPath)
	if err != nil {
		panic(err)
	}
	defer catalog.Close()

	ctx := context.Background()

	// Determine source of seed data
	var entries []*core.CatalogEntry
	if *seedFileName != "" {
		entries, err = entriesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		entries = make([]*core.CatalogEntry, len(products))
		for i := range products {
			entries[i] = &products[i]
		}
	}

	pipeline, err := catalog.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	if err := pipeline.Ingest(ctx, entries); err != nil {
		panic(err)
	}
	slog.Info("seeded catalog", "entries", len(entries))

	if err := catalog.LoadIndex(ctx); err != nil {
		panic(err)
	}

	// Run a demo query against the freshly built index
	result, err := catalog.SearchVectorizedProduct(ctx, *query)
	if err != nil {
		panic(err)
	}

	fmt.Printf("query: %q (used: %q)\n", result.QueryOriginal, result.QueryUsed)
	for i, hit := range result.SemanticMatches {
		fmt.Printf("%d: '%s' (%s)[%0.2f]\n", i, hit.Description, hit.Code, hit.Score)
	}
	for i, hit := range result.FuzzyMatches {
		fmt.Printf("fuzzy %d: '%s' (%s)[%0.2f]\n", i, hit.Description, hit.Code, hit.Score)
	}
}
