/*
Package domain contains the core domain models of the guessing engine.

It defines the character table, the trained decision tree and the per-game state,
along with the replies and events the engine emits. This package is kept pure and
free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Dataset: characters and their numeric traits, validated and immutable.
  - Tree: the trained binary decision structure. Node 0 is the root.
  - Game: the runtime snapshot of a session (candidates, position, counters, pending guess).
  - Reply: the user-facing message produced by every engine operation.
*/
package domain
