/*
Package ports defines the driven ports (interfaces) of the guessing engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to work with various data sources, session stores and result ledgers.

# Key Interfaces

  - DataProvider: loads a fresh character table for every new game (CSV, Parquet, Memory).
  - GameStore: maps session IDs to their game state.
  - DistributedLocker: provides distributed locking for concurrent session access.
  - ResultRecorder: keeps a ledger of finished games.
  - Randomizer: the seedable randomness source used for "don't know" and best-effort guesses.
*/
package ports
