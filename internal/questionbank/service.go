// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package questionbank

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/pkg/pagination"
	"github.com/acadex-platform/acadex/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for question banks.
type Service struct {
	bankRepository     BankRepository
	questionRepository QuestionRepository
	logger             *slog.Logger
}

// NewService constructs a new question bank [Service].
func NewService(bankRepo BankRepository, questionRepo QuestionRepository, logger *slog.Logger) *Service {
	return &Service{
		bankRepository:     bankRepo,
		questionRepository: questionRepo,
		logger:             logger,
	}
}

// # Bank Operations

func (service *Service) ListBanks(context context.Context, subjectID string, params pagination.Params) ([]*Bank, int, error) {
	exists, err := service.bankRepository.SubjectExists(context, subjectID)
	if err != nil {
		return nil, 0, fmt.Errorf("questionbank_service_subject_check_failed: %w", err)
	}
	if !exists {
		return nil, 0, apperr.NotFound("Subject")
	}

	return service.bankRepository.ListBySubject(context, subjectID, params)
}

func (service *Service) GetBank(context context.Context, id string) (*Bank, error) {
	return service.bankRepository.FindByID(context, id)
}

// BankInput holds the writable fields of a bank.
type BankInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (service *Service) CreateBank(context context.Context, subjectID string, input BankInput) (*Bank, error) {
	exists, err := service.bankRepository.SubjectExists(context, subjectID)
	if err != nil {
		return nil, fmt.Errorf("questionbank_service_subject_check_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Subject")
	}

	bank := &Bank{
		ID:          uuid.New(),
		SubjectID:   subjectID,
		Name:        input.Name,
		Description: input.Description,
	}

	if err := service.bankRepository.Create(context, bank); err != nil {
		return nil, fmt.Errorf("questionbank_service_create_failed: %w", err)
	}

	service.logger.Info("question_bank_created",
		slog.String("bank_id", bank.ID),
		slog.String("subject_id", subjectID),
	)

	return bank, nil
}

func (service *Service) UpdateBank(context context.Context, id string, input BankInput) (*Bank, error) {
	bank, err := service.bankRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	bank.Name = input.Name
	bank.Description = input.Description

	if err := service.bankRepository.Update(context, bank); err != nil {
		return nil, fmt.Errorf("questionbank_service_update_failed: %w", err)
	}

	return bank, nil
}

func (service *Service) DeleteBank(context context.Context, id string) error {
	if err := service.bankRepository.Delete(context, id); err != nil {
		if apperr.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("questionbank_service_delete_failed: %w", err)
	}

	service.logger.Warn("question_bank_deleted", slog.String("bank_id", id))

	return nil
}

// # Question Operations

// OptionInput holds the writable fields of one answer choice.
type OptionInput struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionInput holds the writable fields of a question.
type QuestionInput struct {
	Text    string        `json:"text"`
	Options []OptionInput `json:"options"`
}

// validateQuestion enforces the choice-set rules: between MinOptions and
// MaxOptions non-empty options with exactly one marked correct.
func validateQuestion(input QuestionInput) error {
	if input.Text == "" {
		return apperr.ValidationError("Question text is required")
	}
	if len(input.Text) > MaxTextLen {
		return apperr.ValidationError(fmt.Sprintf("Question text must be at most %d characters", MaxTextLen))
	}
	if len(input.Options) < MinOptions || len(input.Options) > MaxOptions {
		return apperr.ValidationError(fmt.Sprintf("A question must have between %d and %d options", MinOptions, MaxOptions))
	}

	correct := 0
	for _, option := range input.Options {
		if option.Text == "" {
			return apperr.ValidationError("Option text is required")
		}
		if option.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return apperr.ValidationError("Exactly one option must be marked correct")
	}

	return nil
}

// buildQuestion materializes a validated input into a persistable entity.
func buildQuestion(bankID string, input QuestionInput) *Question {
	question := &Question{
		ID:     uuid.New(),
		BankID: bankID,
		Text:   input.Text,
	}
	for _, option := range input.Options {
		question.Options = append(question.Options, &Option{
			ID:         uuid.New(),
			QuestionID: question.ID,
			Text:       option.Text,
			IsCorrect:  option.IsCorrect,
		})
	}
	return question
}

func (service *Service) ListQuestions(context context.Context, bankID string) ([]*Question, error) {
	if _, err := service.bankRepository.FindByID(context, bankID); err != nil {
		return nil, err
	}

	return service.questionRepository.ListByBank(context, bankID)
}

func (service *Service) GetQuestion(context context.Context, id string) (*Question, error) {
	return service.questionRepository.FindByID(context, id)
}

func (service *Service) CreateQuestion(context context.Context, bankID string, input QuestionInput) (*Question, error) {
	if _, err := service.bankRepository.FindByID(context, bankID); err != nil {
		return nil, err
	}
	if err := validateQuestion(input); err != nil {
		return nil, err
	}

	question := buildQuestion(bankID, input)

	if err := service.questionRepository.Create(context, question); err != nil {
		return nil, fmt.Errorf("questionbank_service_question_create_failed: %w", err)
	}

	return question, nil
}

func (service *Service) UpdateQuestion(context context.Context, id string, input QuestionInput) (*Question, error) {
	existing, err := service.questionRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if err := validateQuestion(input); err != nil {
		return nil, err
	}

	updated := buildQuestion(existing.BankID, input)
	updated.ID = existing.ID
	for _, option := range updated.Options {
		option.QuestionID = existing.ID
	}

	if err := service.questionRepository.Update(context, updated); err != nil {
		return nil, fmt.Errorf("questionbank_service_question_update_failed: %w", err)
	}

	return updated, nil
}

func (service *Service) DeleteQuestion(context context.Context, id string) error {
	if err := service.questionRepository.Delete(context, id); err != nil {
		if apperr.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("questionbank_service_question_delete_failed: %w", err)
	}

	return nil
}
