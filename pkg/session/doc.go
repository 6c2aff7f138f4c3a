/*
Package session serialises access to games by session ID.

A process-local lock guards each session, and an optional ports.DistributedLocker
extends the guarantee across replicas that share a lock backend.
*/
package session
