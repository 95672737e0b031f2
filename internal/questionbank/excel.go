// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package questionbank

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
)

// # Excel Import / Export

// Sheet layout: one question per row. The first column holds the
// question text, the next MaxOptions columns hold the choices (blank
// cells are skipped), and the last column names the correct choice by
// letter (A, B, ...).
const (
	sheetName = "Questions"

	// MsgImportRejected is returned when any row of an import sheet is
	// malformed. Nothing is persisted in that case.
	MsgImportRejected = "The sheet contains invalid rows. Nothing was imported."
)

var sheetHeader = buildSheetHeader()

func buildSheetHeader() []string {
	header := []string{"Question"}
	for index := 0; index < MaxOptions; index++ {
		header = append(header, fmt.Sprintf("Option %c", 'A'+index))
	}
	return append(header, "Correct")
}

// parseRow converts one data row into a question input. The returned
// message is empty when the row is well formed.
func parseRow(cells []string) (QuestionInput, string) {
	var input QuestionInput

	if len(cells) == 0 || strings.TrimSpace(cells[0]) == "" {
		return input, "question text is empty"
	}
	input.Text = strings.TrimSpace(cells[0])

	correctCell := ""
	if len(cells) > MaxOptions+1 {
		correctCell = strings.TrimSpace(cells[MaxOptions+1])
	}
	if correctCell == "" {
		return input, "correct column is empty"
	}

	correctIndex := int(strings.ToUpper(correctCell)[0] - 'A')
	if len(correctCell) != 1 || correctIndex < 0 || correctIndex >= MaxOptions {
		return input, fmt.Sprintf("correct column must be a letter A to %c", 'A'+MaxOptions-1)
	}

	for index := 0; index < MaxOptions; index++ {
		cell := ""
		if len(cells) > index+1 {
			cell = strings.TrimSpace(cells[index+1])
		}
		if cell == "" {
			if index == correctIndex {
				return input, fmt.Sprintf("correct option %c is empty", 'A'+index)
			}
			continue
		}
		input.Options = append(input.Options, OptionInput{
			Text:      cell,
			IsCorrect: index == correctIndex,
		})
	}

	if len(input.Options) < MinOptions {
		return input, fmt.Sprintf("a question needs at least %d options", MinOptions)
	}

	return input, ""
}

/*
ImportExcel bulk-loads questions from an .xlsx sheet into a bank.

Description: The import is all-or-nothing. Every data row is parsed and
validated first; when any row is malformed the whole sheet is rejected
with a 400 carrying the offending row numbers, and nothing is persisted.
Valid sheets land in one transaction.

Parameters:
  - context: context.Context
  - bankID: string
  - reader: io.Reader holding the .xlsx bytes

Returns:
  - int: Number of imported questions
  - error: apperr.NotFound, apperr.ValidationError, or storage failures
*/
func (service *Service) ImportExcel(context context.Context, bankID string, reader io.Reader) (int, error) {
	if _, err := service.bankRepository.FindByID(context, bankID); err != nil {
		return 0, err
	}

	workbook, err := excelize.OpenReader(reader)
	if err != nil {
		return 0, apperr.ValidationError("The file is not a readable Excel workbook")
	}
	defer workbook.Close()

	// The first sheet is used regardless of its name so exported files
	// and hand-made ones both import.
	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return 0, apperr.ValidationError("The workbook contains no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return 0, fmt.Errorf("questionbank_service_import_read_failed: %w", err)
	}
	if len(rows) <= 1 {
		return 0, apperr.ValidationError("The sheet contains no question rows")
	}

	var questions []*Question
	var rowErrors []apperr.FieldError

	for index, cells := range rows[1:] {
		rowNumber := index + 2 // 1-based, after the header row

		input, message := parseRow(cells)
		if message == "" {
			if err := validateQuestion(input); err != nil {
				message = err.Error()
			}
		}
		if message != "" {
			rowErrors = append(rowErrors, apperr.FieldError{
				Field:   fmt.Sprintf("row %d", rowNumber),
				Message: message,
			})
			continue
		}

		questions = append(questions, buildQuestion(bankID, input))
	}

	if len(rowErrors) > 0 {
		return 0, apperr.ValidationError(MsgImportRejected, rowErrors...)
	}

	if err := service.questionRepository.CreateBatch(context, questions); err != nil {
		return 0, fmt.Errorf("questionbank_service_import_failed: %w", err)
	}

	service.logger.Info("question_bank_imported",
		slog.String("bank_id", bankID),
		slog.Int("questions", len(questions)),
	)

	return len(questions), nil
}

/*
ExportExcel writes a bank's questions as an .xlsx workbook.

Description: The produced sheet uses the same layout ImportExcel reads,
so an exported bank can be edited offline and imported back.

Parameters:
  - context: context.Context
  - bankID: string
  - writer: io.Writer receiving the .xlsx bytes

Returns:
  - error: apperr.NotFound or storage failures
*/
func (service *Service) ExportExcel(context context.Context, bankID string, writer io.Writer) error {
	if _, err := service.bankRepository.FindByID(context, bankID); err != nil {
		return err
	}

	questions, err := service.questionRepository.ListByBank(context, bankID)
	if err != nil {
		return fmt.Errorf("questionbank_service_export_failed: %w", err)
	}

	workbook := excelize.NewFile()
	defer workbook.Close()

	index, err := workbook.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("questionbank_service_export_failed: %w", err)
	}
	workbook.SetActiveSheet(index)
	if err := workbook.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("questionbank_service_export_failed: %w", err)
	}

	if err := workbook.SetSheetRow(sheetName, "A1", &sheetHeader); err != nil {
		return fmt.Errorf("questionbank_service_export_failed: %w", err)
	}

	for rowIndex, question := range questions {
		row := make([]interface{}, len(sheetHeader))
		row[0] = question.Text
		for optionIndex, option := range question.Options {
			if optionIndex >= MaxOptions {
				break
			}
			row[optionIndex+1] = option.Text
			if option.IsCorrect {
				row[MaxOptions+1] = fmt.Sprintf("%c", 'A'+optionIndex)
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, rowIndex+2)
		if err != nil {
			return fmt.Errorf("questionbank_service_export_failed: %w", err)
		}
		if err := workbook.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("questionbank_service_export_failed: %w", err)
		}
	}

	if err := workbook.Write(writer); err != nil {
		return fmt.Errorf("questionbank_service_export_failed: %w", err)
	}

	return nil
}
