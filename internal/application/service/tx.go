package service

import "context"

// TxRunner runs fn inside one document-store transaction when the deployment supports
// them, and runs it directly otherwise. fn must be safe to retry.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
