package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/headline-goat/abtest/internal/store"
)

// withStore opens the database, executes the function, and handles cleanup.
func (o *globalOptions) withStore(fn func(context.Context, *store.SQLiteStore) error) error {
	s, err := store.Open(o.cfg.DBPath, o.logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	return fn(context.Background(), s)
}

// notFound turns store.ErrNotFound into a readable message.
func notFound(name string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("experiment '%s' not found", name)
	}
	return err
}
