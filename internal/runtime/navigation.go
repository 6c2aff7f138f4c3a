package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/guessr/pkg/domain"
)

type answerKind int

const (
	answerInvalid answerKind = iota
	answerYes
	answerNo
	answerUnknown
)

// parseAnswer normalises free text into one of the recognised answers.
func parseAnswer(text string) (answerKind, string) {
	norm := strings.ToLower(strings.TrimSpace(text))
	norm = strings.ReplaceAll(norm, "’", "'")
	switch norm {
	case "yes":
		return answerYes, norm
	case "no":
		return answerNo, norm
	case "don't know", "i don't know":
		return answerUnknown, norm
	}
	return answerInvalid, norm
}

// Answer applies the player's answer to g and returns the next prompt.
//
// Unrecognised text leaves g untouched and returns a clarifying reply with
// domain.ErrInvalidInput. Any unexpected failure deactivates g and returns a
// generic retry message; the player never sees the failure itself.
func (e *Engine) Answer(ctx context.Context, g *domain.Game, text string) (reply domain.Reply, err error) {
	if !g.Active || g.Dataset == nil || g.Tree == nil {
		return notice(msgNoActiveGame), domain.ErrNoActiveSession
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil && reply.Kind == "" {
			g.End(domain.OutcomeAborted)
			e.logger.Error("Unexpected failure processing answer", "session_id", g.ID, "err", err)
			reply = domain.Reply{Text: msgAnswerUnexpected, Kind: domain.ReplyTerminal, Outcome: domain.OutcomeAborted}
		}
	}()

	kind, norm := parseAnswer(text)
	if g.PendingGuess != "" {
		return e.confirm(ctx, g, kind)
	}
	return e.navigate(ctx, g, kind, norm)
}

// confirm resolves a pending guess.
func (e *Engine) confirm(ctx context.Context, g *domain.Game, kind answerKind) (domain.Reply, error) {
	guess := g.PendingGuess
	switch kind {
	case answerYes:
		return e.finish(ctx, g, domain.OutcomeWon, guess, msgWon), nil
	case answerNo:
		g.Eliminate(guess)
		g.PendingGuess = ""
		g.UpdatedAt = e.now()
		e.logger.Debug("Guess rejected", "session_id", g.ID, "guess", guess, "remaining", len(g.Remaining))
		if len(g.Remaining) == 0 {
			return e.finish(ctx, g, domain.OutcomeStumped, "", msgStumpedAfterGuess), nil
		}
		// Resume from the root without retraining; the question count is kept.
		g.CurrentNode = domain.RootID
		trait, err := g.Tree.Question(domain.RootID)
		if err != nil {
			return domain.Reply{}, err
		}
		return e.ask(ctx, g, msgResumePrefix, trait), nil
	default:
		return domain.Reply{Text: msgClarifyGuess, Kind: domain.ReplyClarify, Guess: guess}, domain.ErrInvalidInput
	}
}

// navigate applies an answer to the question at the current node.
func (e *Engine) navigate(ctx context.Context, g *domain.Game, kind answerKind, norm string) (domain.Reply, error) {
	if kind == answerInvalid {
		return domain.Reply{Text: msgClarifyQuestion, Kind: domain.ReplyClarify}, domain.ErrInvalidInput
	}

	node, err := g.Tree.Node(g.CurrentNode)
	if err != nil {
		return domain.Reply{}, err
	}
	if node.IsLeaf() {
		return domain.Reply{}, fmt.Errorf("questioning from leaf node %d", g.CurrentNode)
	}
	trait := g.Tree.Features[node.Trait]

	var next int
	keep := func(int) bool { return true }
	switch kind {
	case answerYes:
		next = node.Right
		keep = func(row int) bool { return g.Dataset.Value(node.Trait, row) > node.Threshold }
	case answerNo:
		next = node.Left
		keep = func(row int) bool { return g.Dataset.Value(node.Trait, row) <= node.Threshold }
	case answerUnknown:
		next = node.Left
		if e.rng.Intn(2) == 1 {
			next = node.Right
		}
	}

	asked := g.CurrentNode
	g.Narrow(keep)
	g.CurrentNode = next
	g.QuestionsAsked++
	g.UpdatedAt = e.now()
	g.Turns = append(g.Turns, domain.Turn{
		Node:      asked,
		Trait:     trait,
		Answer:    norm,
		Remaining: len(g.Remaining),
	})

	if e.hooks.OnAnswer != nil {
		e.hooks.OnAnswer(ctx, &domain.TurnEvent{
			EventBase: e.event(domain.EventAnswer, g),
			Node:      asked,
			Trait:     trait,
			Answer:    norm,
			Remaining: len(g.Remaining),
		})
	}
	e.logger.Debug("Answer applied",
		"session_id", g.ID,
		"trait", trait,
		"answer", norm,
		"next_node", next,
		"remaining", len(g.Remaining),
		"questions", g.QuestionsAsked,
	)

	// The order of these checks matters: a single candidate is guessed even
	// before a leaf, and the budget is checked before leaf detection.
	switch {
	case len(g.Remaining) == 1:
		return e.guess(ctx, g, g.Remaining[0], msgGuessSingle), nil
	case len(g.Remaining) == 0:
		return e.finish(ctx, g, domain.OutcomeStumped, "", msgStumped), nil
	case g.QuestionsAsked >= e.budget:
		return e.bestEffort(ctx, g, msgGuessBudget), nil
	}

	current, err := g.Tree.Node(g.CurrentNode)
	if err != nil {
		return domain.Reply{}, err
	}
	if current.IsLeaf() {
		return e.bestEffort(ctx, g, msgGuessLeaf), nil
	}

	nextTrait, err := g.Tree.Question(g.CurrentNode)
	if err != nil {
		return domain.Reply{}, err
	}
	return e.ask(ctx, g, "", nextTrait), nil
}

// bestEffort guesses a random remaining candidate, or ends the game when there is none.
func (e *Engine) bestEffort(ctx context.Context, g *domain.Game, format string) domain.Reply {
	if len(g.Remaining) == 0 {
		return e.finish(ctx, g, domain.OutcomeBudgetExhausted, "", msgExhausted)
	}
	pick := g.Remaining[e.rng.Intn(len(g.Remaining))]
	return e.guess(ctx, g, pick, format)
}
