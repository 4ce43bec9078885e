// rulesengine runs a self-play episode through the public pkg/game API,
// picking uniformly among the legal actions the mask allows each step.
// It exists as a smoke test and a usage example for the engine, not as a
// tournament runner.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/mtgforge/rulesengine/internal/logger"
	"github.com/mtgforge/rulesengine/pkg/action"
	"github.com/mtgforge/rulesengine/pkg/card"
	"github.com/mtgforge/rulesengine/pkg/deck"
	"github.com/mtgforge/rulesengine/pkg/game"
)

func main() {
	deckAPath := flag.String("deck-a", "", "decklist file for player 0")
	deckBPath := flag.String("deck-b", "", "decklist file for player 1")
	dbPath := flag.String("db", "carddb.json", "path to the local card database cache")
	dbURL := flag.String("db-url", "", "URL to fetch the card database from if the local cache is missing")
	seed := flag.Int64("seed", 1, "RNG seed for shuffles and random choices")
	maxTurns := flag.Int("max-turns", 200, "abort the episode after this many turns")
	logLevel := flag.String("log", "GAME", "log level (META, GAME, PLAYER, CARD)")
	flag.Parse()

	logger.SetLogLevel(logger.ParseLogLevel(*logLevel))

	if *deckAPath == "" || *deckBPath == "" {
		fmt.Fprintln(os.Stderr, "rulesengine: -deck-a and -deck-b are required")
		os.Exit(1)
	}

	db, err := card.LoadDatabase(*dbPath, *dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rulesengine: loading card database: %v\n", err)
		os.Exit(1)
	}
	logger.LogMeta("card database loaded: %d cards", db.Size())

	deckA, err := deck.ImportDecklist(*deckAPath, db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rulesengine: loading %s: %v\n", *deckAPath, err)
		os.Exit(1)
	}
	deckB, err := deck.ImportDecklist(*deckBPath, db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rulesengine: loading %s: %v\n", *deckBPath, err)
		os.Exit(1)
	}

	g := game.NewGame()
	obs, mask, err := g.Reset(game.Config{Decks: []*deck.Deck{deckA, deckB}, Seed: *seed})
	if err != nil {
		fmt.Fprintf(os.Stderr, "rulesengine: reset: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	for !obs.Terminated && obs.Turn <= *maxTurns {
		choices := mask.Indices()
		if len(choices) == 0 {
			break
		}
		idx := choices[rng.Intn(len(choices))]
		obs, mask, _, err = g.Apply(idx)
		if err != nil && err != action.ErrIllegalAction {
			fmt.Fprintf(os.Stderr, "rulesengine: apply(%d): %v\n", idx, err)
			os.Exit(1)
		}
	}

	fmt.Printf("turn %d, phase %v, terminated=%v, reason=%v, winner=%d\n",
		obs.Turn, obs.Phase, obs.Terminated, obs.Reason, obs.Winner)
}
