package template

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) PutTemplate(ctx context.Context, t Template) error {
	if t.ID == "" {
		return errors.New("template id required")
	}
	var structure sql.NullString
	if t.Structure != nil {
		buf, err := json.Marshal(t.Structure)
		if err != nil {
			return err
		}
		structure = sql.NullString{String: string(buf), Valid: true}
	}
	created := t.CreatedAt
	if created == 0 {
		created = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO templates (id,name,exam_type,level,published,structure_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, exam_type=EXCLUDED.exam_type, level=EXCLUDED.level,
			published=EXCLUDED.published, structure_json=EXCLUDED.structure_json`,
		t.ID, t.Name, t.ExamType, t.Level, t.Published, structure, created)
	return err
}

func (s *SQLStore) GetTemplate(ctx context.Context, id string) (Template, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,name,exam_type,level,published,structure_json,created_at FROM templates WHERE id=$1`, id)
	var (
		t         Template
		structure sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Name, &t.ExamType, &t.Level, &t.Published, &structure, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Template{}, ErrNotFound
		}
		return Template{}, err
	}
	if structure.Valid && structure.String != "" {
		var st Structure
		if err := json.Unmarshal([]byte(structure.String), &st); err != nil {
			return Template{}, fmt.Errorf("%w: template %s: decode structure: %v", ErrStructureInvalid, id, err)
		}
		t.Structure = &st
	}
	return t, nil
}
