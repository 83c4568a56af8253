package book

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/folio-app/folio/internal/platform/database/schema"
	"github.com/folio-app/folio/internal/platform/dberr"
	"github.com/folio-app/folio/pkg/uuid"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectColumns is the shared SELECT list for hydrating a full Book row.
func selectColumns() string {
	return strings.Join(schema.CoreBook.Columns(), ", ")
}

func (repository *PostgresRepository) FindByIdentifiers(context context.Context, ids Identifiers) (*Book, error) {
	if ids.IsZero() {
		return nil, dberr.ErrNotFound
	}

	conditions := []string{}
	args := []any{}

	appendCondition := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, column+" = $"+itos(len(args)))
	}

	appendCondition(schema.CoreBook.ID, ids.ID)
	appendCondition(schema.CoreBook.GoogleID, ids.GoogleID)
	appendCondition(schema.CoreBook.ISBN13, ids.ISBN13)
	appendCondition(schema.CoreBook.ISBN10, ids.ISBN10)

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s ASC
		LIMIT 1
	`,
		selectColumns(), schema.CoreBook.Table,
		strings.Join(conditions, " OR "), schema.CoreBook.CreatedAt,
	)

	row := repository.db.QueryRow(context, query, args...)
	record, err := scanBook(row)
	if err != nil {
		return nil, dberr.Wrap(err, "find_book_by_identifiers")
	}
	return record, nil
}

func (repository *PostgresRepository) FindByText(context context.Context, query string, limit int) ([]*Book, error) {
	// Title gets a case-insensitive substring match; authors get exact term
	// matches against the text[] column. Exact title matches float to the
	// top, then newest records first.
	sql := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s ILIKE $1 OR %s && $2
		ORDER BY (lower(%s) = lower($3)) DESC, %s DESC
		LIMIT $4
	`,
		selectColumns(), schema.CoreBook.Table,
		schema.CoreBook.Title, schema.CoreBook.Authors,
		schema.CoreBook.Title, schema.CoreBook.CreatedAt,
	)

	terms := strings.Fields(query)
	rows, err := repository.db.Query(context, sql, "%"+query+"%", terms, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "find_books_by_text")
	}
	defer rows.Close()

	return collectBooks(rows)
}

func (repository *PostgresRepository) Insert(context context.Context, book *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CoreBook.Table,
		schema.CoreBook.ID, schema.CoreBook.GoogleID, schema.CoreBook.Title,
		schema.CoreBook.Authors, schema.CoreBook.PublishedDate, schema.CoreBook.PageCount,
		schema.CoreBook.Description, schema.CoreBook.CoverURL,
		schema.CoreBook.ISBN10, schema.CoreBook.ISBN13,
		schema.CoreBook.CreatedAt, schema.CoreBook.UpdatedAt,
		schema.CoreBook.CreatedAt, schema.CoreBook.UpdatedAt,
	)

	// Authors is NOT NULL in the schema; never write a SQL NULL array.
	authors := book.Authors
	if authors == nil {
		authors = []string{}
	}

	book.ID = uuid.New()
	book.Source = SourcePersisted

	err := repository.db.QueryRow(context, query,
		book.ID, book.GoogleID, book.Title, authors, book.PublishedDate,
		book.PageCount, book.Description, book.CoverURL, book.ISBN10, book.ISBN13,
	).Scan(&book.CreatedAt, &book.UpdatedAt)

	return dberr.Wrap(err, "insert_book")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
	`,
		selectColumns(), schema.CoreBook.Table, schema.CoreBook.ID,
	)

	row := repository.db.QueryRow(context, query, id)
	record, err := scanBook(row)
	if err != nil {
		return nil, dberr.Wrap(err, "find_book_by_id")
	}
	return record, nil
}

func (repository *PostgresRepository) ListRecent(context context.Context, limit, offset int) ([]*Book, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.CoreBook.Table)

	var total int
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_books")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2
	`,
		selectColumns(), schema.CoreBook.Table, schema.CoreBook.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_recent_books")
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// scanBook hydrates one Book from a row, tagging it as persisted.
func scanBook(row pgx.Row) (*Book, error) {
	record := &Book{Source: SourcePersisted}
	err := row.Scan(
		&record.ID, &record.GoogleID, &record.Title, &record.Authors,
		&record.PublishedDate, &record.PageCount, &record.Description,
		&record.CoverURL, &record.ISBN10, &record.ISBN13,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func collectBooks(rows pgx.Rows) ([]*Book, error) {
	var books []*Book
	for rows.Next() {
		record, err := scanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		books = append(books, record)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_books")
	}
	return books, nil
}

func itos(i int) string {
	return strconv.Itoa(i)
}
