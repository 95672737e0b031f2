// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package questionbank

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/pkg/pagination"
)

// # Bank Repository

// PostgresBankRepository implements [BankRepository] backed by qbank.bank.
type PostgresBankRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBankRepository constructs a new [PostgresBankRepository].
func NewPostgresBankRepository(pool *pgxpool.Pool) *PostgresBankRepository {
	return &PostgresBankRepository{pool: pool}
}

const bankSelect = `
	SELECT b.id, b.subjectid, b.name, COALESCE(b.description, ''),
	       b.createdat, b.updatedat, COUNT(q.id)
	FROM qbank.bank b
	LEFT JOIN qbank.question q ON q.bankid = b.id`

const bankGroup = ` GROUP BY b.id, b.subjectid, b.name, b.description, b.createdat, b.updatedat`

func scanBank(row pgx.Row) (*Bank, error) {
	var bank Bank
	err := row.Scan(
		&bank.ID, &bank.SubjectID, &bank.Name, &bank.Description,
		&bank.CreatedAt, &bank.UpdatedAt, &bank.QuestionCount,
	)
	if err != nil {
		return nil, err
	}
	return &bank, nil
}

func (repo *PostgresBankRepository) ListBySubject(context context.Context, subjectID string, params pagination.Params) ([]*Bank, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM qbank.bank WHERE subjectid = $1`
	if err := repo.pool.QueryRow(context, countQuery, subjectID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_bank_repo_count_failed: %w", err)
	}

	query := bankSelect + ` WHERE b.subjectid = $1` + bankGroup +
		` ORDER BY b.createdat DESC LIMIT $2 OFFSET $3`

	rows, err := repo.pool.Query(context, query, subjectID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_bank_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var banks []*Bank
	for rows.Next() {
		bank, err := scanBank(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_bank_repo_scan_failed: %w", err)
		}
		banks = append(banks, bank)
	}

	return banks, total, rows.Err()
}

func (repo *PostgresBankRepository) FindByID(context context.Context, id string) (*Bank, error) {
	query := bankSelect + ` WHERE b.id = $1` + bankGroup

	bank, err := scanBank(repo.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Question bank")
		}
		return nil, fmt.Errorf("postgres_bank_repo_find_failed: %w", err)
	}

	return bank, nil
}

func (repo *PostgresBankRepository) Create(context context.Context, bank *Bank) error {
	query := `
		INSERT INTO qbank.bank (id, subjectid, name, description)
		VALUES ($1, $2, $3, NULLIF($4, ''))`

	_, err := repo.pool.Exec(context, query, bank.ID, bank.SubjectID, bank.Name, bank.Description)
	if err != nil {
		return fmt.Errorf("postgres_bank_repo_create_failed: %w", err)
	}

	return nil
}

func (repo *PostgresBankRepository) Update(context context.Context, bank *Bank) error {
	query := `
		UPDATE qbank.bank
		SET name = $2, description = NULLIF($3, ''), updatedat = NOW()
		WHERE id = $1`

	tag, err := repo.pool.Exec(context, query, bank.ID, bank.Name, bank.Description)
	if err != nil {
		return fmt.Errorf("postgres_bank_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Question bank")
	}

	return nil
}

func (repo *PostgresBankRepository) Delete(context context.Context, id string) error {
	tag, err := repo.pool.Exec(context, `DELETE FROM qbank.bank WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres_bank_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Question bank")
	}

	return nil
}

func (repo *PostgresBankRepository) SubjectExists(context context.Context, subjectID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM academics.subject WHERE id = $1)`
	if err := repo.pool.QueryRow(context, query, subjectID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_bank_repo_subject_check_failed: %w", err)
	}
	return exists, nil
}

// # Question Repository

// PostgresQuestionRepository implements [QuestionRepository] backed by
// qbank.question and qbank.option.
type PostgresQuestionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresQuestionRepository constructs a new [PostgresQuestionRepository].
func NewPostgresQuestionRepository(pool *pgxpool.Pool) *PostgresQuestionRepository {
	return &PostgresQuestionRepository{pool: pool}
}

func (repo *PostgresQuestionRepository) ListByBank(context context.Context, bankID string) ([]*Question, error) {
	query := `
		SELECT id, bankid, text, createdat, updatedat
		FROM qbank.question
		WHERE bankid = $1
		ORDER BY createdat ASC`

	rows, err := repo.pool.Query(context, query, bankID)
	if err != nil {
		return nil, fmt.Errorf("postgres_question_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var questions []*Question
	byID := make(map[string]*Question)
	for rows.Next() {
		var question Question
		err := rows.Scan(&question.ID, &question.BankID, &question.Text,
			&question.CreatedAt, &question.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("postgres_question_repo_scan_failed: %w", err)
		}
		question.Options = []*Option{}
		questions = append(questions, &question)
		byID[question.ID] = &question
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	optionQuery := `
		SELECT o.id, o.questionid, o.text, o.iscorrect
		FROM qbank.option o
		JOIN qbank.question q ON q.id = o.questionid
		WHERE q.bankid = $1
		ORDER BY o.id ASC`

	optionRows, err := repo.pool.Query(context, optionQuery, bankID)
	if err != nil {
		return nil, fmt.Errorf("postgres_question_repo_options_failed: %w", err)
	}
	defer optionRows.Close()

	for optionRows.Next() {
		var option Option
		err := optionRows.Scan(&option.ID, &option.QuestionID, &option.Text, &option.IsCorrect)
		if err != nil {
			return nil, fmt.Errorf("postgres_question_repo_scan_failed: %w", err)
		}
		if question, ok := byID[option.QuestionID]; ok {
			question.Options = append(question.Options, &option)
		}
	}

	return questions, optionRows.Err()
}

func (repo *PostgresQuestionRepository) FindByID(context context.Context, id string) (*Question, error) {
	query := `
		SELECT id, bankid, text, createdat, updatedat
		FROM qbank.question
		WHERE id = $1`

	var question Question
	err := repo.pool.QueryRow(context, query, id).Scan(
		&question.ID, &question.BankID, &question.Text,
		&question.CreatedAt, &question.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Question")
		}
		return nil, fmt.Errorf("postgres_question_repo_find_failed: %w", err)
	}

	optionQuery := `
		SELECT id, questionid, text, iscorrect
		FROM qbank.option
		WHERE questionid = $1
		ORDER BY id ASC`

	rows, err := repo.pool.Query(context, optionQuery, id)
	if err != nil {
		return nil, fmt.Errorf("postgres_question_repo_options_failed: %w", err)
	}
	defer rows.Close()

	question.Options = []*Option{}
	for rows.Next() {
		var option Option
		if err := rows.Scan(&option.ID, &option.QuestionID, &option.Text, &option.IsCorrect); err != nil {
			return nil, fmt.Errorf("postgres_question_repo_scan_failed: %w", err)
		}
		question.Options = append(question.Options, &option)
	}

	return &question, rows.Err()
}

// insertQuestion writes one question and its options inside the given
// transaction.
func insertQuestion(context context.Context, tx pgx.Tx, question *Question) error {
	query := `INSERT INTO qbank.question (id, bankid, text) VALUES ($1, $2, $3)`
	if _, err := tx.Exec(context, query, question.ID, question.BankID, question.Text); err != nil {
		return err
	}

	optionQuery := `INSERT INTO qbank.option (id, questionid, text, iscorrect) VALUES ($1, $2, $3, $4)`
	for _, option := range question.Options {
		if _, err := tx.Exec(context, optionQuery, option.ID, option.QuestionID, option.Text, option.IsCorrect); err != nil {
			return err
		}
	}

	return nil
}

func (repo *PostgresQuestionRepository) Create(context context.Context, question *Question) error {
	return repo.CreateBatch(context, []*Question{question})
}

func (repo *PostgresQuestionRepository) CreateBatch(context context.Context, questions []*Question) error {
	tx, err := repo.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_question_repo_begin_failed: %w", err)
	}
	defer tx.Rollback(context)

	for _, question := range questions {
		if err := insertQuestion(context, tx, question); err != nil {
			return fmt.Errorf("postgres_question_repo_create_failed: %w", err)
		}
	}

	if err := tx.Commit(context); err != nil {
		return fmt.Errorf("postgres_question_repo_commit_failed: %w", err)
	}

	return nil
}

func (repo *PostgresQuestionRepository) Update(context context.Context, question *Question) error {
	tx, err := repo.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_question_repo_begin_failed: %w", err)
	}
	defer tx.Rollback(context)

	query := `UPDATE qbank.question SET text = $2, updatedat = NOW() WHERE id = $1`
	tag, err := tx.Exec(context, query, question.ID, question.Text)
	if err != nil {
		return fmt.Errorf("postgres_question_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Question")
	}

	if _, err := tx.Exec(context, `DELETE FROM qbank.option WHERE questionid = $1`, question.ID); err != nil {
		return fmt.Errorf("postgres_question_repo_update_failed: %w", err)
	}

	optionQuery := `INSERT INTO qbank.option (id, questionid, text, iscorrect) VALUES ($1, $2, $3, $4)`
	for _, option := range question.Options {
		if _, err := tx.Exec(context, optionQuery, option.ID, option.QuestionID, option.Text, option.IsCorrect); err != nil {
			return fmt.Errorf("postgres_question_repo_update_failed: %w", err)
		}
	}

	if err := tx.Commit(context); err != nil {
		return fmt.Errorf("postgres_question_repo_commit_failed: %w", err)
	}

	return nil
}

func (repo *PostgresQuestionRepository) Delete(context context.Context, id string) error {
	tag, err := repo.pool.Exec(context, `DELETE FROM qbank.question WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres_question_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Question")
	}

	return nil
}
