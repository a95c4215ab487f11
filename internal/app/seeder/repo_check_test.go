package seeder_test

import (
	"github.com/heartmarshall/lettergreep/internal/adapter/postgres"
	"github.com/heartmarshall/lettergreep/internal/adapter/postgres/lexicon"
	"github.com/heartmarshall/lettergreep/internal/app/seeder"
)

// Compile-time checks: the Postgres adapters satisfy the pipeline contracts.
var (
	_ seeder.LexiconBulkRepo = (*lexicon.Repo)(nil)
	_ seeder.TxRunner        = (*postgres.TxManager)(nil)
)
