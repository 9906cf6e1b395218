package postgres

import (
	"context"
	"database/sql"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository"

	"github.com/lib/pq"
)

type suitRepository struct {
	db *sql.DB
}

func NewSuitRepository(db *sql.DB) repository.SuitRepository {
	return &suitRepository{db: db}
}

func (r *suitRepository) Create(ctx context.Context, suit *domain.Suit) error {
	return inTx(ctx, r.db, "suit.Create", func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO suits (name, description, active) VALUES ($1, $2, true) RETURNING id`,
			suit.Name, suit.Description).Scan(&suit.ID)
		if err != nil {
			return err
		}
		suit.Active = true
		for i := range suit.Pieces {
			p := &suit.Pieces[i]
			p.SuitID = suit.ID
			err = tx.QueryRowContext(ctx,
				`INSERT INTO suit_pieces (suit_id, type_id, optional) VALUES ($1, $2, $3) RETURNING id`,
				p.SuitID, p.TypeID, p.Optional).Scan(&p.ID)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *suitRepository) GetByID(ctx context.Context, id int32) (*domain.Suit, error) {
	s := &domain.Suit{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, active FROM suits WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Description, &s.Active)
	if err != nil {
		return nil, storeErr("suit.GetByID", notFound(err, "suit", id))
	}
	pieces, err := r.piecesBySuitIDs(ctx, []int32{id})
	if err != nil {
		return nil, err
	}
	s.Pieces = pieces[id]
	return s, nil
}

func (r *suitRepository) List(ctx context.Context) ([]domain.Suit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, active FROM suits ORDER BY name`)
	if err != nil {
		return nil, storeErr("suit.List", err)
	}
	defer rows.Close()

	var suits []domain.Suit
	var ids []int32
	for rows.Next() {
		var s domain.Suit
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Active); err != nil {
			return nil, storeErr("suit.List", err)
		}
		suits = append(suits, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("suit.List", err)
	}
	if len(ids) == 0 {
		return suits, nil
	}

	pieces, err := r.piecesBySuitIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range suits {
		suits[i].Pieces = pieces[suits[i].ID]
	}
	return suits, nil
}

func (r *suitRepository) piecesBySuitIDs(ctx context.Context, ids []int32) (map[int32][]domain.SuitPiece, error) {
	query := `SELECT p.id, p.suit_id, p.type_id, t.name, p.optional
	          FROM suit_pieces p JOIN article_types t ON t.id = p.type_id
	          WHERE p.suit_id = ANY($1) ORDER BY p.id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, storeErr("suit.pieces", err)
	}
	defer rows.Close()

	out := make(map[int32][]domain.SuitPiece)
	for rows.Next() {
		var p domain.SuitPiece
		if err := rows.Scan(&p.ID, &p.SuitID, &p.TypeID, &p.TypeName, &p.Optional); err != nil {
			return nil, storeErr("suit.pieces", err)
		}
		out[p.SuitID] = append(out[p.SuitID], p)
	}
	return out, storeErr("suit.pieces", rows.Err())
}

func (r *suitRepository) Update(ctx context.Context, suit *domain.Suit, pieces []domain.SuitPiece) (*domain.Suit, error) {
	err := inTx(ctx, r.db, "suit.Update", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE suits SET name = $1, description = $2, active = $3 WHERE id = $4`,
			suit.Name, suit.Description, suit.Active, suit.ID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return notFound(sql.ErrNoRows, "suit", suit.ID)
		}
		if pieces == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM suit_pieces WHERE suit_id = $1`, suit.ID); err != nil {
			return err
		}
		for _, p := range pieces {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO suit_pieces (suit_id, type_id, optional) VALUES ($1, $2, $3)`,
				suit.ID, p.TypeID, p.Optional)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, suit.ID)
}
