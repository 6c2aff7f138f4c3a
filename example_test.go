package guessr_test

import (
	"context"
	"fmt"

	"github.com/aretw0/guessr"
	"github.com/aretw0/guessr/pkg/adapters/memory"
)

func Example() {
	provider := memory.NewProvider(
		[]string{"Names", "is_pirate", "uses_sword"},
		[]string{"Luffy", "1", "0"},
		[]string{"Zoro", "1", "1"},
		[]string{"Light", "0", "0"},
	)
	eng, err := guessr.New(guessr.WithProvider(provider))
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	id := guessr.DefaultSession
	fmt.Println(eng.Start(ctx, id))
	fmt.Println(eng.Answer(ctx, id, "yes"))
	fmt.Println(eng.Answer(ctx, id, "no"))
	fmt.Println(eng.Answer(ctx, id, "yes"))

	// Output:
	// Is your character known for the trait 'is pirate'?
	// Is your character known for the trait 'uses sword'?
	// I think I've got it! Are you thinking of 'Luffy'?
	// Awesome! I knew it! Thanks for playing.
}
