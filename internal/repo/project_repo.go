package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/Avi0425/Paper-Forge-AI/internal/model"
	appErr "github.com/Avi0425/Paper-Forge-AI/internal/pkg/errors"
)

// ProjectRepo persists paper projects. Section content and analysis
// results are stored as JSON blobs; the project row itself carries the
// metadata used for listing.
type ProjectRepo struct {
	db *sqlx.DB
}

func NewProjectRepo(db *sqlx.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

func (r *ProjectRepo) Create(ctx context.Context, project *model.PaperProject) error {
	sections, err := json.Marshal(project.Sections)
	if err != nil {
		return persistErr("encode sections", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO projects (id, title, author, sections, citations, similarity, ctime, mtime)
		 VALUES (?, ?, ?, ?, NULL, NULL, ?, ?)`,
		project.ID, project.Title, project.Author, string(sections), project.Ctime, project.Mtime)
	return persistErr("create project", err)
}

func (r *ProjectRepo) Get(ctx context.Context, id string) (*model.PaperProject, error) {
	row := r.db.QueryRowxContext(ctx,
		`SELECT id, title, author, sections, citations, similarity, ctime, mtime
		 FROM projects WHERE id = ?`, id)
	project, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, persistErr("get project", err)
	}
	return project, nil
}

// List returns projects newest first, optionally filtered by a title
// substring.
func (r *ProjectRepo) List(ctx context.Context, query string, limit uint) ([]model.PaperProject, error) {
	where := map[string]interface{}{
		"_orderby": "mtime desc",
	}
	if query != "" {
		where["title like"] = "%" + query + "%"
	}
	if limit > 0 {
		where["_limit"] = []uint{0, limit}
	}
	sqlStr, args, err := builder.BuildSelect("projects",
		where, []string{"id", "title", "author", "sections", "citations", "similarity", "ctime", "mtime"})
	if err != nil {
		return nil, persistErr("list projects", err)
	}
	rows, err := r.db.QueryxContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, persistErr("list projects", err)
	}
	defer rows.Close()
	projects := make([]model.PaperProject, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, persistErr("list projects", err)
		}
		projects = append(projects, *project)
	}
	return projects, persistErr("list projects", rows.Err())
}

// UpdateSections replaces the stored section map.
func (r *ProjectRepo) UpdateSections(ctx context.Context, id string, sections map[model.Section]string, mtime int64) error {
	encoded, err := json.Marshal(sections)
	if err != nil {
		return persistErr("encode sections", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET sections = ?, mtime = ? WHERE id = ?`, string(encoded), mtime, id)
	if err != nil {
		return persistErr("update sections", err)
	}
	return persistErr("update sections", requireRow(res))
}

// SaveAnalysis attaches both analysis stage outputs in one write so a
// reader never sees one stage applied without the other.
func (r *ProjectRepo) SaveAnalysis(ctx context.Context, id string, citations []model.CitationSuggestion, similarity *model.SimilarityResult, mtime int64) error {
	encodedCitations, err := json.Marshal(citations)
	if err != nil {
		return persistErr("encode citations", err)
	}
	encodedSimilarity, err := json.Marshal(similarity)
	if err != nil {
		return persistErr("encode similarity", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET citations = ?, similarity = ?, mtime = ? WHERE id = ?`,
		string(encodedCitations), string(encodedSimilarity), mtime, id)
	if err != nil {
		return persistErr("save analysis", err)
	}
	return persistErr("save analysis", requireRow(res))
}

func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return persistErr("delete project", err)
	}
	return persistErr("delete project", requireRow(res))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*model.PaperProject, error) {
	var project model.PaperProject
	var sections string
	var citations, similarity sql.NullString
	if err := row.Scan(&project.ID, &project.Title, &project.Author, &sections,
		&citations, &similarity, &project.Ctime, &project.Mtime); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(sections), &project.Sections); err != nil {
		return nil, err
	}
	if citations.Valid && citations.String != "" {
		if err := json.Unmarshal([]byte(citations.String), &project.Citations); err != nil {
			return nil, err
		}
	}
	if similarity.Valid && similarity.String != "" && similarity.String != "null" {
		project.Similarity = &model.SimilarityResult{}
		if err := json.Unmarshal([]byte(similarity.String), project.Similarity); err != nil {
			return nil, err
		}
	}
	return &project, nil
}
