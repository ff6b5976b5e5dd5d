package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/mathquest/internal/question"
)

func main() {
	var (
		seed     = flag.Uint64("seed", 0, "Generation seed (0 picks a random one)")
		target   = flag.Int("target", question.DefaultTarget, "Questions per category")
		attempts = flag.Int("attempts", question.DefaultAttempts, "Retry bound per generated item")
		strict   = flag.Bool("strict", false, "Fail when a category ends below target")
		command  = flag.String("command", "stats", "Output: stats, dump, or sample")
		count    = flag.Int("count", 10, "Questions to draw for -command=sample")
	)
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bank, err := question.Build(ctx, question.Options{
		Seed:     *seed,
		Target:   *target,
		Attempts: *attempts,
		Strict:   *strict,
		Logger:   log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Uint64("seed", *seed).Msg("failed to build question bank")
	}

	switch *command {
	case "stats":
		printStats(bank)

	case "dump":
		dump := make(map[question.Category][]question.Question, len(question.Categories))
		for _, c := range bank.Categories() {
			dump[c] = bank.ByCategory(c, bank.Size())
		}
		writeJSON(map[string]any{"seed": bank.Seed(), "categories": dump})

	case "sample":
		writeJSON(map[string]any{"seed": bank.Seed(), "questions": bank.Sample(*count)})

	default:
		log.Fatal().Str("command", *command).Msg("unknown command. Use: stats, dump, or sample")
	}
}

func printStats(bank *question.Bank) {
	stats := bank.Statistics()
	fmt.Printf("seed: %d\n\n", bank.Seed())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tNAME\tQUESTIONS\tREJECTED\tSKIPPED")
	for _, r := range bank.Reports() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", r.Category, r.Category.DisplayName(), stats[r.Category], r.Rejected, r.Skipped)
	}
	fmt.Fprintf(w, "total\t\t%d\t\t\n", bank.Size())
	if err := w.Flush(); err != nil {
		log.Fatal().Err(err).Msg("failed to write statistics")
	}
}

func writeJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatal().Err(err).Msg("failed to encode output")
	}
}
