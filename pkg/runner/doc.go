/*
Package runner plays a game over a line-oriented reader and writer.

It is the terminal front end of the engine: every line typed by the player is sanitized
with SanitizeInput and sent as an answer, and every reply is written back through an
optional ContentRenderer. "quit" or "exit" ends the game; end of input quits it too.

# Usage

	r := runner.NewRunner(
		runner.WithSessionID(guessr.DefaultSession),
		runner.WithRenderer(tui.NewRenderer()),
	)
	if err := r.Run(ctx, engine); err != nil {
		log.Fatal(err)
	}

The same sanitizer guards the MCP and HTTP adapters.
*/
package runner
