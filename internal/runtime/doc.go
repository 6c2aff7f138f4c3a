// Package runtime implements the guessing state machine.
//
// A game moves between three phases: inactive, questioning and awaiting
// confirmation of a guess. Start trains a fresh tree, Answer walks it one
// answer at a time while pruning the candidates, and Quit ends the game.
package runtime
