package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository"
)

type articleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) repository.ArticleRepository {
	return &articleRepository{db: db}
}

const articleColumns = `a.id, a.type_id, t.name, a.code, a.state, a.hold_until, a.notes, a.created_at, a.updated_at`

func scanArticle(row interface{ Scan(...any) error }) (*domain.Article, error) {
	a := &domain.Article{}
	err := row.Scan(&a.ID, &a.TypeID, &a.TypeName, &a.Code, &a.State, &a.HoldUntil, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *articleRepository) GetByID(ctx context.Context, id int32) (*domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles a JOIN article_types t ON t.id = a.type_id WHERE a.id = $1`
	a, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeErr("article.GetByID", notFound(err, "article", id))
	}
	return a, nil
}

func (r *articleRepository) List(ctx context.Context, filter repository.ArticleFilter) ([]domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles a JOIN article_types t ON t.id = a.type_id WHERE 1=1`
	args := []any{}
	if filter.State != "" {
		args = append(args, filter.State)
		query += fmt.Sprintf(" AND a.state = $%d", len(args))
	}
	if filter.TypeID != 0 {
		args = append(args, filter.TypeID)
		query += fmt.Sprintf(" AND a.type_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND a.code ILIKE $%d", len(args))
	}
	query += " ORDER BY a.updated_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("article.List", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, storeErr("article.List", err)
		}
		articles = append(articles, *a)
	}
	return articles, storeErr("article.List", rows.Err())
}

// Transition locks the article row, re-validates reachability against the
// locked state, writes the new state and appends the audit entry. Holding the
// row lock for the whole unit is what serializes concurrent transitions.
func (r *articleRepository) Transition(ctx context.Context, tr domain.StateTransition, holdUntil *time.Time) (*domain.Article, error) {
	err := inTx(ctx, r.db, "article.Transition", func(tx *sql.Tx) error {
		var current domain.ArticleState
		err := tx.QueryRowContext(ctx, `SELECT state FROM articles WHERE id = $1 FOR UPDATE`, tr.ArticleID).Scan(&current)
		if err != nil {
			return notFound(err, "article", tr.ArticleID)
		}
		if err := domain.CheckTransition(current, tr.ToState); err != nil {
			return fmt.Errorf("article %d: %w", tr.ArticleID, err)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE articles SET state = $1, hold_until = $2, updated_at = $3 WHERE id = $4`,
			tr.ToState, holdUntil, time.Now(), tr.ArticleID)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO article_state_log (article_id, from_state, to_state, reason, comment, actor_id, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			tr.ArticleID, current, tr.ToState, tr.Reason, tr.Comment, tr.ActorID, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, tr.ArticleID)
}

func (r *articleRepository) ListHoldExpired(ctx context.Context, state domain.ArticleState, now time.Time) ([]domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles a JOIN article_types t ON t.id = a.type_id
	          WHERE a.state = $1 AND a.hold_until IS NOT NULL AND a.hold_until <= $2 ORDER BY a.hold_until`
	rows, err := r.db.QueryContext(ctx, query, state, now)
	if err != nil {
		return nil, storeErr("article.ListHoldExpired", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, storeErr("article.ListHoldExpired", err)
		}
		articles = append(articles, *a)
	}
	return articles, storeErr("article.ListHoldExpired", rows.Err())
}

func (r *articleRepository) ListTransitions(ctx context.Context, articleID int32, limit int32) ([]domain.StateTransition, error) {
	query := `SELECT id, article_id, from_state, to_state, reason, comment, actor_id, created_at
	          FROM article_state_log WHERE article_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, articleID, limit)
	if err != nil {
		return nil, storeErr("article.ListTransitions", err)
	}
	defer rows.Close()

	var entries []domain.StateTransition
	for rows.Next() {
		var e domain.StateTransition
		if err := rows.Scan(&e.ID, &e.ArticleID, &e.FromState, &e.ToState, &e.Reason, &e.Comment, &e.ActorID, &e.CreatedAt); err != nil {
			return nil, storeErr("article.ListTransitions", err)
		}
		entries = append(entries, e)
	}
	return entries, storeErr("article.ListTransitions", rows.Err())
}
