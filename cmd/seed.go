package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/timemedia/adlibrary/internal/fixture"
	"github.com/timemedia/adlibrary/internal/store"
)

var seedCount int
var seedValue int64

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with generated catalog data",
	Long: `Seed creates the schema if needed and fills Postgres with a
deterministic generated catalog: companies, newsletters and ads.

The same seed always produces the same catalog, so environments stay
reproducible.

Examples:
  # Seed 500 ads with the default seed
  ./adlib seed

  # Seed a larger catalog with a specific seed
  ./adlib seed --count 2000 --seed 7`,
	Run: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVarP(&seedCount, "count", "c", defaultFixtureCount, "Number of ads to generate")
	seedCmd.Flags().Int64Var(&seedValue, "seed", defaultFixtureSeed, "Generator seed")
}

func runSeed(cmd *cobra.Command, args []string) {
	// Get database URL from environment
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	// Connect to database
	log.Println("Connecting to database...")
	db, err := store.NewDB(dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := store.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	gen := fixture.NewGenerator(seedValue)
	companyStore := store.NewCompanyStore(db)
	newsletterStore := store.NewNewsletterStore(db)
	adStore := store.NewAdStore(db)

	failed := 0

	companies := gen.Companies()
	log.Printf("Seeding %d companies...", len(companies))
	for i := range companies {
		if ctx.Err() != nil {
			log.Println("Seed cancelled")
			os.Exit(1)
		}
		if err := companyStore.UpsertCompany(ctx, &companies[i]); err != nil {
			log.Printf("Failed to upsert company %s: %v", companies[i].Name, err)
			failed++
		}
	}

	newsletters := gen.Newsletters()
	log.Printf("Seeding %d newsletters...", len(newsletters))
	for i := range newsletters {
		if ctx.Err() != nil {
			log.Println("Seed cancelled")
			os.Exit(1)
		}
		if err := newsletterStore.UpsertNewsletter(ctx, &newsletters[i]); err != nil {
			log.Printf("Failed to upsert newsletter %s: %v", newsletters[i].Name, err)
			failed++
		}
	}

	ads := gen.Ads(seedCount)
	log.Printf("Seeding %d ads...", len(ads))
	for i := range ads {
		if ctx.Err() != nil {
			log.Println("Seed cancelled")
			os.Exit(1)
		}
		ad := &ads[i]
		if err := adStore.UpsertAd(ctx, ad); err != nil {
			log.Printf("Failed to upsert ad %s: %v", ad.ID, err)
			failed++
			continue
		}
		ids := make([]string, len(ad.Newsletters))
		for j, n := range ad.Newsletters {
			ids[j] = n.ID
		}
		if err := adStore.ReplaceNewsletterLinks(ctx, ad.ID, ids); err != nil {
			log.Printf("Failed to link ad %s: %v", ad.ID, err)
			failed++
		}
	}

	log.Println("")
	log.Println("=== Seed Summary ===")
	log.Printf("Companies:   %d", len(companies))
	log.Printf("Newsletters: %d", len(newsletters))
	log.Printf("Ads:         %d", len(ads))
	log.Printf("Failed:      %d", failed)

	if failed > 0 {
		os.Exit(1)
	}
}
