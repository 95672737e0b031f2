// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package questionbank_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/internal/questionbank"
	"github.com/acadex-platform/acadex/pkg/pagination"
)

// # Test Doubles

type memoryBankRepository struct {
	banks    map[string]*questionbank.Bank
	subjects map[string]bool
}

func (repo *memoryBankRepository) ListBySubject(_ context.Context, subjectID string, _ pagination.Params) ([]*questionbank.Bank, int, error) {
	var banks []*questionbank.Bank
	for _, bank := range repo.banks {
		if bank.SubjectID == subjectID {
			banks = append(banks, bank)
		}
	}
	return banks, len(banks), nil
}

func (repo *memoryBankRepository) FindByID(_ context.Context, id string) (*questionbank.Bank, error) {
	bank, ok := repo.banks[id]
	if !ok {
		return nil, apperr.NotFound("Question bank")
	}
	return bank, nil
}

func (repo *memoryBankRepository) Create(_ context.Context, bank *questionbank.Bank) error {
	repo.banks[bank.ID] = bank
	return nil
}

func (repo *memoryBankRepository) Update(_ context.Context, bank *questionbank.Bank) error {
	repo.banks[bank.ID] = bank
	return nil
}

func (repo *memoryBankRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.banks[id]; !ok {
		return apperr.NotFound("Question bank")
	}
	delete(repo.banks, id)
	return nil
}

func (repo *memoryBankRepository) SubjectExists(_ context.Context, subjectID string) (bool, error) {
	return repo.subjects[subjectID], nil
}

type memoryQuestionRepository struct {
	questions map[string]*questionbank.Question
	order     []string
	batches   int
}

func (repo *memoryQuestionRepository) ListByBank(_ context.Context, bankID string) ([]*questionbank.Question, error) {
	var questions []*questionbank.Question
	for _, id := range repo.order {
		if question := repo.questions[id]; question != nil && question.BankID == bankID {
			questions = append(questions, question)
		}
	}
	return questions, nil
}

func (repo *memoryQuestionRepository) FindByID(_ context.Context, id string) (*questionbank.Question, error) {
	question, ok := repo.questions[id]
	if !ok {
		return nil, apperr.NotFound("Question")
	}
	return question, nil
}

func (repo *memoryQuestionRepository) Create(_ context.Context, question *questionbank.Question) error {
	repo.questions[question.ID] = question
	repo.order = append(repo.order, question.ID)
	return nil
}

func (repo *memoryQuestionRepository) CreateBatch(_ context.Context, questions []*questionbank.Question) error {
	repo.batches++
	for _, question := range questions {
		repo.questions[question.ID] = question
		repo.order = append(repo.order, question.ID)
	}
	return nil
}

func (repo *memoryQuestionRepository) Update(_ context.Context, question *questionbank.Question) error {
	if _, ok := repo.questions[question.ID]; !ok {
		return apperr.NotFound("Question")
	}
	repo.questions[question.ID] = question
	return nil
}

func (repo *memoryQuestionRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.questions[id]; !ok {
		return apperr.NotFound("Question")
	}
	delete(repo.questions, id)
	return nil
}

// # Fixtures

type fixture struct {
	service   *questionbank.Service
	banks     *memoryBankRepository
	questions *memoryQuestionRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	banks := &memoryBankRepository{
		banks:    make(map[string]*questionbank.Bank),
		subjects: make(map[string]bool),
	}
	questions := &memoryQuestionRepository{questions: make(map[string]*questionbank.Question)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		service:   questionbank.NewService(banks, questions, logger),
		banks:     banks,
		questions: questions,
	}
}

func (f *fixture) createBank(t *testing.T, subjectID, name string) *questionbank.Bank {
	t.Helper()

	f.banks.subjects[subjectID] = true
	bank, err := f.service.CreateBank(context.Background(), subjectID, questionbank.BankInput{Name: name})
	require.NoError(t, err)
	return bank
}

// buildWorkbook produces .xlsx bytes with a header row and the given
// data rows on the default sheet.
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	workbook := excelize.NewFile()
	defer workbook.Close()

	header := []interface{}{"Question", "Option A", "Option B", "Option C", "Option D", "Option E", "Option F", "Correct"}
	require.NoError(t, workbook.SetSheetRow("Sheet1", "A1", &header))

	for index, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, index+2)
		require.NoError(t, err)
		require.NoError(t, workbook.SetSheetRow("Sheet1", cell, &row))
	}

	buffer, err := workbook.WriteToBuffer()
	require.NoError(t, err)
	return buffer
}

// # Tests

func TestService_CreateBank(t *testing.T) {
	t.Run("unknown_subject", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.CreateBank(context.Background(), "missing", questionbank.BankInput{Name: "Anatomy MCQs"})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 404, appError.HTTPStatus)
	})

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)

		bank := f.createBank(t, "subj-1", "Anatomy MCQs")

		assert.NotEmpty(t, bank.ID)
		assert.Equal(t, "subj-1", bank.SubjectID)
	})
}

/*
TestService_CreateQuestion verifies the choice-set rules: option count
bounds and the exactly-one-correct constraint.
*/
func TestService_CreateQuestion(t *testing.T) {
	valid := questionbank.QuestionInput{
		Text: "Which bone is the longest?",
		Options: []questionbank.OptionInput{
			{Text: "Femur", IsCorrect: true},
			{Text: "Tibia"},
			{Text: "Humerus"},
		},
	}

	tests := []struct {
		name    string
		mutate  func(input *questionbank.QuestionInput)
		message string
	}{
		{
			name:    "empty_text",
			mutate:  func(input *questionbank.QuestionInput) { input.Text = "" },
			message: "Question text is required",
		},
		{
			name: "too_few_options",
			mutate: func(input *questionbank.QuestionInput) {
				input.Options = input.Options[:1]
			},
			message: "A question must have between 2 and 6 options",
		},
		{
			name: "no_correct_option",
			mutate: func(input *questionbank.QuestionInput) {
				input.Options[0].IsCorrect = false
			},
			message: "Exactly one option must be marked correct",
		},
		{
			name: "two_correct_options",
			mutate: func(input *questionbank.QuestionInput) {
				input.Options[1].IsCorrect = true
			},
			message: "Exactly one option must be marked correct",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture(t)
			bank := f.createBank(t, "subj-1", "Anatomy MCQs")

			input := valid
			input.Options = append([]questionbank.OptionInput(nil), valid.Options...)
			test.mutate(&input)

			_, err := f.service.CreateQuestion(context.Background(), bank.ID, input)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, 400, appError.HTTPStatus)
			assert.Equal(t, test.message, appError.Message)
		})
	}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		bank := f.createBank(t, "subj-1", "Anatomy MCQs")

		question, err := f.service.CreateQuestion(context.Background(), bank.ID, valid)

		require.NoError(t, err)
		require.Len(t, question.Options, 3)
		assert.True(t, question.Options[0].IsCorrect)
		assert.Equal(t, question.ID, question.Options[0].QuestionID)
	})

	t.Run("unknown_bank", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.CreateQuestion(context.Background(), "missing", valid)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 404, appError.HTTPStatus)
	})
}

/*
TestService_ImportExcel verifies the all-or-nothing import: malformed
rows reject the whole sheet with row numbers attached, and a valid
sheet lands in a single batch.
*/
func TestService_ImportExcel(t *testing.T) {
	t.Run("unreadable_workbook", func(t *testing.T) {
		f := newFixture(t)
		bank := f.createBank(t, "subj-1", "Anatomy MCQs")

		_, err := f.service.ImportExcel(context.Background(), bank.ID, strings.NewReader("not an xlsx"))

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 400, appError.HTTPStatus)
	})

	t.Run("invalid_rows_reject_whole_sheet", func(t *testing.T) {
		f := newFixture(t)
		bank := f.createBank(t, "subj-1", "Anatomy MCQs")

		workbook := buildWorkbook(t, [][]interface{}{
			{"Valid question?", "Yes", "No", "", "", "", "", "A"},
			{"", "Yes", "No", "", "", "", "", "A"},
			{"Missing correct?", "Yes", "No", "", "", "", "", ""},
			{"Correct points at blank?", "Yes", "No", "", "", "", "", "C"},
		})

		imported, err := f.service.ImportExcel(context.Background(), bank.ID, workbook)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 400, appError.HTTPStatus)
		assert.Equal(t, questionbank.MsgImportRejected, appError.Message)
		require.Len(t, appError.Details, 3)
		assert.Equal(t, "row 3", appError.Details[0].Field)
		assert.Equal(t, "row 4", appError.Details[1].Field)
		assert.Equal(t, "row 5", appError.Details[2].Field)

		assert.Zero(t, imported)
		assert.Empty(t, f.questions.questions, "a rejected sheet must persist nothing")
	})

	t.Run("valid_sheet_imports_in_one_batch", func(t *testing.T) {
		f := newFixture(t)
		bank := f.createBank(t, "subj-1", "Anatomy MCQs")

		workbook := buildWorkbook(t, [][]interface{}{
			{"Which bone is the longest?", "Femur", "Tibia", "Humerus", "", "", "", "A"},
			{"How many chambers has the heart?", "Two", "Three", "Four", "Five", "", "", "C"},
		})

		imported, err := f.service.ImportExcel(context.Background(), bank.ID, workbook)

		require.NoError(t, err)
		assert.Equal(t, 2, imported)
		assert.Equal(t, 1, f.questions.batches)

		questions, err := f.service.ListQuestions(context.Background(), bank.ID)
		require.NoError(t, err)
		require.Len(t, questions, 2)
		assert.Equal(t, "Which bone is the longest?", questions[0].Text)
		require.Len(t, questions[1].Options, 4)
		assert.True(t, questions[1].Options[2].IsCorrect)
	})

	t.Run("unknown_bank", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.ImportExcel(context.Background(), "missing", strings.NewReader(""))

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 404, appError.HTTPStatus)
	})
}

/*
TestService_ExportRoundTrip verifies that an exported bank can be
imported back unchanged.
*/
func TestService_ExportRoundTrip(t *testing.T) {
	f := newFixture(t)
	source := f.createBank(t, "subj-1", "Anatomy MCQs")

	inputs := []questionbank.QuestionInput{
		{
			Text: "Which bone is the longest?",
			Options: []questionbank.OptionInput{
				{Text: "Femur", IsCorrect: true},
				{Text: "Tibia"},
			},
		},
		{
			Text: "How many chambers has the heart?",
			Options: []questionbank.OptionInput{
				{Text: "Two"},
				{Text: "Three"},
				{Text: "Four", IsCorrect: true},
			},
		},
	}
	for _, input := range inputs {
		_, err := f.service.CreateQuestion(context.Background(), source.ID, input)
		require.NoError(t, err)
	}

	var exported bytes.Buffer
	require.NoError(t, f.service.ExportExcel(context.Background(), source.ID, &exported))

	target := f.createBank(t, "subj-1", "Anatomy MCQs Copy")
	imported, err := f.service.ImportExcel(context.Background(), target.ID, &exported)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	questions, err := f.service.ListQuestions(context.Background(), target.ID)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, "Which bone is the longest?", questions[0].Text)
	require.Len(t, questions[0].Options, 2)
	assert.True(t, questions[0].Options[0].IsCorrect)

	assert.Equal(t, "How many chambers has the heart?", questions[1].Text)
	require.Len(t, questions[1].Options, 3)
	assert.True(t, questions[1].Options[2].IsCorrect)
}
