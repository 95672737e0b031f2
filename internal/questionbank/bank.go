// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

/*
Package questionbank manages multiple-choice question banks per subject.

A bank belongs to a subject and holds questions; each question carries
two or more options with exactly one marked correct. Banks can be filled
one question at a time through the API or in bulk from an Excel sheet,
and exported back to Excel for review outside the platform.
*/
package questionbank

import "time"

// # Domain Entities

// Bank is a named collection of questions for one subject.
type Bank struct {
	ID          string    `json:"id"`
	SubjectID   string    `json:"subject_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// QuestionCount is computed on reads.
	QuestionCount int `json:"question_count"`
}

// Question is one multiple-choice question inside a bank.
type Question struct {
	ID        string    `json:"id"`
	BankID    string    `json:"bank_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Options []*Option `json:"options"`
}

// Option is one answer choice of a question.
type Option struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct"`
}

// # Field Identifiers

const (
	FieldSubjectID = "subject_id"
	FieldBankID    = "bank_id"
	FieldName      = "name"
	FieldText      = "text"
	FieldOptions   = "options"
	FieldFile      = "file"

	MaxNameLen = 200
	MaxTextLen = 2000

	// MinOptions is the smallest usable choice set for a question.
	MinOptions = 2
	MaxOptions = 6
)
