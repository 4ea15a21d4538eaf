// Package storage is the Postgres persistence layer: users, transactions,
// budgets and categories, with bounded retry on connection failures.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"grana/internal/core"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type Store struct {
	db    *sql.DB
	retry RetryPolicy
}

// New opens the Postgres pool, verifies connectivity and runs the
// embedded migrations.
func New(databaseURL string, retry RetryPolicy) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db, retry: retry}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping probes the database; used by the status server's health check.
func (s *Store) Ping(ctx context.Context) error {
	return withRetry(ctx, s.retry, "ping", func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

// UpsertUser registers a chat identity on first contact; existing ids
// are left untouched.
func (s *Store) UpsertUser(ctx context.Context, telegramID, firstName string) error {
	return withRetry(ctx, s.retry, "upsert_user", func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO users (telegram_id, first_name) VALUES ($1, $2)
			 ON CONFLICT (telegram_id) DO NOTHING`,
			telegramID, firstName)
		return err
	})
}

// ListCategories returns categories of the given kind plus the "ambos"
// ones, ordered by name. An empty kind returns everything.
func (s *Store) ListCategories(ctx context.Context, kind core.Kind) ([]core.Category, error) {
	query := `SELECT nome, tipo, icone FROM categorias ORDER BY nome`
	args := []any{}
	if kind != "" {
		query = `SELECT nome, tipo, icone FROM categorias
		         WHERE tipo = $1 OR tipo = 'ambos' ORDER BY nome`
		args = []any{string(kind)}
	}
	var out []core.Category
	err := withRetry(ctx, s.retry, "list_categories", func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out = out[:0]
		for rows.Next() {
			var c core.Category
			var tipo string
			if err := rows.Scan(&c.Name, &tipo, &c.Icon); err != nil {
				return err
			}
			c.Kind = core.Kind(tipo)
			out = append(out, c)
		}
		return rows.Err()
	})
	return out, err
}

// ListCardSubcategories returns the "Cartão - *" rows that refine a
// parent card category.
func (s *Store) ListCardSubcategories(ctx context.Context) ([]core.Category, error) {
	var out []core.Category
	err := withRetry(ctx, s.retry, "list_card_subcategories", func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx,
			`SELECT nome, tipo, icone FROM categorias WHERE nome LIKE 'Cartão - %' ORDER BY nome`)
		if err != nil {
			return err
		}
		defer rows.Close()
		out = out[:0]
		for rows.Next() {
			var c core.Category
			var tipo string
			if err := rows.Scan(&c.Name, &tipo, &c.Icon); err != nil {
				return err
			}
			c.Kind = core.Kind(tipo)
			out = append(out, c)
		}
		return rows.Err()
	})
	return out, err
}

// AddTransaction persists a completed flow and returns the new id.
func (s *Store) AddTransaction(ctx context.Context, tx core.Transaction) (int64, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}
	var id int64
	err := withRetry(ctx, s.retry, "add_transaction", func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx,
			`INSERT INTO transacoes (user_id, tipo, categoria, valor, descricao, data)
			 VALUES ($1, $2, $3, $4::numeric / 100, $5, $6) RETURNING id`,
			tx.UserID, string(tx.Kind), tx.Category, tx.Amount.Cents, tx.Description, tx.Date).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("add transaction: %w", err)
	}
	slog.InfoContext(ctx, "Transaction saved",
		"id", id, "kind", tx.Kind, "category", tx.Category, "amount_cents", tx.Amount.Cents)
	return id, nil
}

// DeleteTransaction removes a row; false means the id did not exist.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	var affected int64
	err := withRetry(ctx, s.retry, "delete_transaction", func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM transacoes WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	return affected > 0, nil
}

// GetTransaction fetches one row; a missing id maps to core.ErrNotFound.
func (s *Store) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	var tx core.Transaction
	err := withRetry(ctx, s.retry, "get_transaction", func(ctx context.Context) error {
		var tipo string
		err := s.db.QueryRowContext(ctx,
			`SELECT id, COALESCE(user_id, ''), tipo, categoria, (valor * 100)::bigint,
			        COALESCE(descricao, ''), data, created_at
			 FROM transacoes WHERE id = $1`, id).
			Scan(&tx.ID, &tx.UserID, &tipo, &tx.Category, &tx.Amount.Cents,
				&tx.Description, &tx.Date, &tx.CreatedAt)
		if err != nil {
			return err
		}
		tx.Kind = core.Kind(tipo)
		return nil
	})
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// UpdateTransactionField changes one editable field. The field set is a
// closed enumeration with one static statement per field; anything else
// is a no-op returning false, as is a value of the wrong type.
func (s *Store) UpdateTransactionField(ctx context.Context, id int64, field core.EditableField, value any) (bool, error) {
	var query string
	var arg any
	switch field {
	case core.FieldAmount:
		m, ok := value.(core.Money)
		if !ok || m.Cents <= 0 {
			return false, nil
		}
		query = `UPDATE transacoes SET valor = $1::numeric / 100 WHERE id = $2`
		arg = m.Cents
	case core.FieldCategory:
		cat, ok := value.(string)
		if !ok || cat == "" {
			return false, nil
		}
		query = `UPDATE transacoes SET categoria = $1 WHERE id = $2`
		arg = cat
	case core.FieldDescription:
		desc, ok := value.(string)
		if !ok {
			return false, nil
		}
		query = `UPDATE transacoes SET descricao = $1 WHERE id = $2`
		arg = desc
	default:
		return false, nil
	}

	var affected int64
	err := withRetry(ctx, s.retry, "update_transaction_field", func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, query, arg, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("update transaction %d field %s: %w", id, field, err)
	}
	return affected > 0, nil
}

// BudgetStatus reports limit, spending, remainder and percent-used for a
// category in a month. Without a budget row everything is zero and
// Defined is false.
func (s *Store) BudgetStatus(ctx context.Context, category string, month, year int) (core.BudgetStatus, error) {
	var st core.BudgetStatus
	err := withRetry(ctx, s.retry, "budget_status", func(ctx context.Context) error {
		err := s.db.QueryRowContext(ctx,
			`SELECT (valor_limite * 100)::bigint FROM orcamentos
			 WHERE categoria = $1 AND mes = $2 AND ano = $3`,
			category, month, year).Scan(&st.Limit.Cents)
		if errors.Is(err, sql.ErrNoRows) {
			st = core.BudgetStatus{}
			return nil
		}
		if err != nil {
			return err
		}
		st.Defined = true
		if err := s.db.QueryRowContext(ctx,
			`SELECT COALESCE(SUM(valor * 100), 0)::bigint FROM transacoes
			 WHERE categoria = $1 AND tipo = 'despesa'
			   AND EXTRACT(YEAR FROM data) = $2 AND EXTRACT(MONTH FROM data) = $3`,
			category, year, month).Scan(&st.Spent.Cents); err != nil {
			return err
		}
		st.Available = st.Limit.Sub(st.Spent)
		st.PercentUsed = core.PercentUsed(st.Spent, st.Limit)
		return nil
	})
	if err != nil {
		return core.BudgetStatus{}, fmt.Errorf("budget status: %w", err)
	}
	return st, nil
}

// UpsertBudget sets the monthly limit, replacing an existing row for the
// same (category, month, year).
func (s *Store) UpsertBudget(ctx context.Context, category string, limit core.Money, month, year int) error {
	err := withRetry(ctx, s.retry, "upsert_budget", func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO orcamentos (categoria, valor_limite, mes, ano)
			 VALUES ($1, $2::numeric / 100, $3, $4)
			 ON CONFLICT (categoria, mes, ano)
			 DO UPDATE SET valor_limite = EXCLUDED.valor_limite`,
			category, limit.Cents, month, year)
		return err
	})
	if err != nil {
		return fmt.Errorf("upsert budget: %w", err)
	}
	return nil
}

// ListBudgets returns every budget of a month ordered by category.
func (s *Store) ListBudgets(ctx context.Context, month, year int) ([]core.Budget, error) {
	var out []core.Budget
	err := withRetry(ctx, s.retry, "list_budgets", func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx,
			`SELECT categoria, (valor_limite * 100)::bigint FROM orcamentos
			 WHERE mes = $1 AND ano = $2 ORDER BY categoria`, month, year)
		if err != nil {
			return err
		}
		defer rows.Close()
		out = out[:0]
		for rows.Next() {
			b := core.Budget{Month: month, Year: year}
			if err := rows.Scan(&b.Category, &b.Limit.Cents); err != nil {
				return err
			}
			out = append(out, b)
		}
		return rows.Err()
	})
	return out, err
}

// ExpensesForCategory lists a category's expenses in a month ordered by
// effective date.
func (s *Store) ExpensesForCategory(ctx context.Context, category string, month, year int) ([]core.Transaction, error) {
	var out []core.Transaction
	err := withRetry(ctx, s.retry, "expenses_for_category", func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx,
			`SELECT data, COALESCE(descricao, ''), (valor * 100)::bigint FROM transacoes
			 WHERE categoria = $1 AND tipo = 'despesa'
			   AND EXTRACT(YEAR FROM data) = $2 AND EXTRACT(MONTH FROM data) = $3
			 ORDER BY data`, category, year, month)
		if err != nil {
			return err
		}
		defer rows.Close()
		out = out[:0]
		for rows.Next() {
			tx := core.Transaction{Kind: core.Expense, Category: category}
			if err := rows.Scan(&tx.Date, &tx.Description, &tx.Amount.Cents); err != nil {
				return err
			}
			out = append(out, tx)
		}
		return rows.Err()
	})
	return out, err
}

// MonthlyTotals aggregates a month's transactions by (category, kind).
func (s *Store) MonthlyTotals(ctx context.Context, month, year int) ([]core.CategoryTotal, error) {
	var out []core.CategoryTotal
	err := withRetry(ctx, s.retry, "monthly_totals", func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx,
			`SELECT categoria, tipo, SUM(valor * 100)::bigint FROM transacoes
			 WHERE EXTRACT(YEAR FROM data) = $1 AND EXTRACT(MONTH FROM data) = $2
			 GROUP BY categoria, tipo`, year, month)
		if err != nil {
			return err
		}
		defer rows.Close()
		out = out[:0]
		for rows.Next() {
			var t core.CategoryTotal
			var tipo string
			if err := rows.Scan(&t.Category, &tipo, &t.Total.Cents); err != nil {
				return err
			}
			t.Kind = core.Kind(tipo)
			out = append(out, t)
		}
		return rows.Err()
	})
	return out, err
}

// MonthlyEntries lists every transaction of a month ordered by date, for
// the detailed report.
func (s *Store) MonthlyEntries(ctx context.Context, month, year int) ([]core.Transaction, error) {
	var out []core.Transaction
	err := withRetry(ctx, s.retry, "monthly_entries", func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx,
			`SELECT data, categoria, COALESCE(descricao, ''), tipo, (valor * 100)::bigint,
			        COALESCE(user_id, '')
			 FROM transacoes
			 WHERE EXTRACT(YEAR FROM data) = $1 AND EXTRACT(MONTH FROM data) = $2
			 ORDER BY data`, year, month)
		if err != nil {
			return err
		}
		defer rows.Close()
		out = out[:0]
		for rows.Next() {
			var tx core.Transaction
			var tipo string
			if err := rows.Scan(&tx.Date, &tx.Category, &tx.Description, &tipo,
				&tx.Amount.Cents, &tx.UserID); err != nil {
				return err
			}
			tx.Kind = core.Kind(tipo)
			out = append(out, tx)
		}
		return rows.Err()
	})
	return out, err
}

// RecentTransactions returns the latest rows by id descending; a
// non-positive limit defaults to 7.
func (s *Store) RecentTransactions(ctx context.Context, limit int) ([]core.Transaction, error) {
	if limit <= 0 {
		limit = 7
	}
	var out []core.Transaction
	err := withRetry(ctx, s.retry, "recent_transactions", func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx,
			`SELECT id, data, tipo, categoria, COALESCE(descricao, ''), (valor * 100)::bigint,
			        COALESCE(user_id, '')
			 FROM transacoes ORDER BY id DESC LIMIT $1`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		out = out[:0]
		for rows.Next() {
			var tx core.Transaction
			var tipo string
			if err := rows.Scan(&tx.ID, &tx.Date, &tipo, &tx.Category,
				&tx.Description, &tx.Amount.Cents, &tx.UserID); err != nil {
				return err
			}
			tx.Kind = core.Kind(tipo)
			out = append(out, tx)
		}
		return rows.Err()
	})
	return out, err
}

// Wipe removes every transaction and budget. Categories and users stay.
func (s *Store) Wipe(ctx context.Context) error {
	err := withRetry(ctx, s.retry, "wipe", func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()
		if _, err := tx.ExecContext(ctx, `DELETE FROM transacoes`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM orcamentos`); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("wipe data: %w", err)
	}
	slog.InfoContext(ctx, "All transactions and budgets wiped")
	return nil
}
