package repo

import (
	"context"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/Avi0425/Paper-Forge-AI/internal/model"
)

// CorpusRepo persists the reference sources the local similarity
// corpus matches against.
type CorpusRepo struct {
	db *sqlx.DB
}

func NewCorpusRepo(db *sqlx.DB) *CorpusRepo {
	return &CorpusRepo{db: db}
}

func (r *CorpusRepo) Add(ctx context.Context, source *model.CorpusSource) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO corpus_sources (id, description, content, ctime) VALUES (?, ?, ?, ?)`,
		source.ID, source.Description, source.Content, source.Ctime)
	return persistErr("add corpus source", err)
}

// List returns sources in insertion order, optionally filtered by a
// description substring. Stable ordering keeps Lookup deterministic.
func (r *CorpusRepo) List(ctx context.Context, query string) ([]model.CorpusSource, error) {
	where := map[string]interface{}{
		"_orderby": "ctime asc, id asc",
	}
	if query != "" {
		where["description like"] = "%" + query + "%"
	}
	sqlStr, args, err := builder.BuildSelect("corpus_sources",
		where, []string{"id", "description", "content", "ctime"})
	if err != nil {
		return nil, persistErr("list corpus sources", err)
	}
	rows, err := r.db.QueryxContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, persistErr("list corpus sources", err)
	}
	defer rows.Close()
	sources := make([]model.CorpusSource, 0)
	for rows.Next() {
		var source model.CorpusSource
		if err := rows.Scan(&source.ID, &source.Description, &source.Content, &source.Ctime); err != nil {
			return nil, persistErr("list corpus sources", err)
		}
		sources = append(sources, source)
	}
	return sources, persistErr("list corpus sources", rows.Err())
}

func (r *CorpusRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM corpus_sources WHERE id = ?`, id)
	if err != nil {
		return persistErr("delete corpus source", err)
	}
	return persistErr("delete corpus source", requireRow(res))
}
