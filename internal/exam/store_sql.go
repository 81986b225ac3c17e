package exam

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) CreateTest(ctx context.Context, t Test) error {
	if t.ID == "" {
		return errors.New("test id required")
	}
	if t.Status == "" {
		t.Status = StatusDraft
	}
	sj, err := marshalSections(t.Sections)
	if err != nil {
		return err
	}
	created := t.CreatedAt
	if created.IsZero() {
		created = s.now()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO tests (id,title,template_id,status,completion_percentage,sections_json,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		t.ID, t.Title, t.TemplateID, string(t.Status), t.CompletionPercentage, sj, created.Unix(), created.Unix())
	return err
}

func (s *SQLStore) GetTest(ctx context.Context, id string) (Test, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,template_id,status,completion_percentage,sections_json,created_at,updated_at
		FROM tests WHERE id=$1`, id)
	var (
		t                  Test
		status, sjson      string
		createdAt, updated int64
	)
	if err := row.Scan(&t.ID, &t.Title, &t.TemplateID, &status, &t.CompletionPercentage, &sjson, &createdAt, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Test{}, ErrNotFound
		}
		return Test{}, err
	}
	t.Status = TestStatus(status)
	t.CreatedAt = time.Unix(createdAt, 0).UTC()
	t.UpdatedAt = time.Unix(updated, 0).UTC()
	if sjson != "" {
		if err := json.Unmarshal([]byte(sjson), &t.Sections); err != nil {
			return Test{}, err
		}
	}
	return t, nil
}

func (s *SQLStore) SaveTest(ctx context.Context, id string, req SaveRequest) error {
	sj, err := marshalSections(req.Sections)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE tests SET sections_json=$1, status=$2, completion_percentage=$3, updated_at=$4 WHERE id=$5`,
		sj, string(req.Status), req.CompletionPercentage, s.now().Unix(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalSections(sections []Section) (string, error) {
	if sections == nil {
		sections = []Section{}
	}
	buf, err := json.Marshal(sections)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}
