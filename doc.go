/*
Package guessr is a "guess the character" engine: it trains a decision tree over a table of
characters and numeric traits, then plays a yes/no questioning game to find the character a
player is thinking of.

# Concept

A game starts by loading the table from a ports.DataProvider (CSV, Parquet or memory) and
training a fresh tree over it. Each answer walks one edge of the tree and filters the candidate
set. The engine guesses as soon as one candidate is left, when it reaches a leaf, or when the
question budget runs out. A rejected guess removes that character and resumes from the root.

Games are keyed by session ID, so one Engine serves any number of players. The front ends in
this module (terminal, MCP and HTTP) use DefaultSession unless told otherwise.

# Usage

	provider, err := guessr.OpenDataset("anime.csv", "Names")
	if err != nil {
		log.Fatal(err)
	}
	eng, err := guessr.New(guessr.WithProvider(provider))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	fmt.Println(eng.Start(ctx, guessr.DefaultSession))
	fmt.Println(eng.Answer(ctx, guessr.DefaultSession, "yes"))
	fmt.Println(eng.Quit(ctx, guessr.DefaultSession))
*/
package guessr
