// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package questionbank

import (
	"context"

	"github.com/acadex-platform/acadex/pkg/pagination"
)

// # Data Access Contracts

// BankRepository defines the persistence contract for question banks.
type BankRepository interface {

	// ListBySubject returns a page of banks with question counts, plus
	// the total.
	ListBySubject(context context.Context, subjectID string, params pagination.Params) ([]*Bank, int, error)

	// FindByID returns one bank with its question count, or
	// apperr.NotFound.
	FindByID(context context.Context, id string) (*Bank, error)

	Create(context context.Context, bank *Bank) error
	Update(context context.Context, bank *Bank) error

	// Delete removes the bank and cascades to its questions and options.
	Delete(context context.Context, id string) error

	// SubjectExists probes the owning subject row.
	SubjectExists(context context.Context, subjectID string) (bool, error)
}

// QuestionRepository defines the persistence contract for questions and
// their options.
type QuestionRepository interface {

	// ListByBank returns all questions of a bank with options populated,
	// oldest first.
	ListByBank(context context.Context, bankID string) ([]*Question, error)

	// FindByID returns one question with options, or apperr.NotFound.
	FindByID(context context.Context, id string) (*Question, error)

	// Create persists a question and its options atomically.
	Create(context context.Context, question *Question) error

	// CreateBatch persists several questions and their options in one
	// transaction; either all rows land or none do.
	CreateBatch(context context.Context, questions []*Question) error

	// Update rewrites the question text and replaces its options
	// atomically.
	Update(context context.Context, question *Question) error

	// Delete removes the question and cascades to its options.
	Delete(context context.Context, id string) error
}
