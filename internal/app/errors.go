package app

import (
	"fmt"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// StoreFetchError fails a whole plan read when one store is unavailable.
type StoreFetchError struct {
	Kind domain.PlanItemKind
	Err  error
}

func (e *StoreFetchError) Error() string {
	return fmt.Sprintf("fetching %s records: %v", e.Kind, e.Err)
}

func (e *StoreFetchError) Unwrap() error {
	return e.Err
}

// ItemPersistError records one failed item in a batch.
type ItemPersistError struct {
	Kind domain.PlanItemKind
	ID   string
	Op   string
	Err  error
}

func (e *ItemPersistError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Op, e.Kind, e.ID, e.Err)
}

func (e *ItemPersistError) Unwrap() error {
	return e.Err
}
