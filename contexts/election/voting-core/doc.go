// Package votingcore implements the voting core inside the election context.
//
// The module owns event lifecycle, candidate registration, bulk voter account
// provisioning, username/password login and the one-vote-per-account-per-event
// ledger. Credentials are encrypted at rest and always verified by decrypting
// and comparing plaintext. Storage is reached only through ports; the postgres
// adapter enforces vote uniqueness with the votes composite primary key.
package votingcore
