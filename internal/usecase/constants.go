package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// MemberStatsCacheTTL is how long derived member stats may be served from cache
	MemberStatsCacheTTL = 30 * time.Second
)
