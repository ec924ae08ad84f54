package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lib/pq"

	"portfolio-backend/internal/models"
)

// Connect opens the postgres connection used by the relational backend,
// retrying a bounded number of times before giving up. Callers treat an
// error here as fatal: the process cannot serve without its datastore.
func Connect(dsn string, attempts int, delay time.Duration) (*sql.DB, error) {
	var lastErr error
	for i := 1; i <= attempts; i++ {
		db, err := sql.Open("postgres", dsn)
		if err == nil {
			if err = db.Ping(); err == nil {
				db.SetMaxOpenConns(25)
				db.SetMaxIdleConns(5)
				return db, nil
			}
			db.Close()
		}
		lastErr = err
		log.Printf("database connection attempt %d/%d failed: %v", i, attempts, err)
		if i < attempts {
			time.Sleep(delay)
		}
	}
	return nil, fmt.Errorf("failed to connect after %d attempts: %w", attempts, lastErr)
}

// PostgresStorage is the durable backend. All writes read back the
// persisted row via RETURNING so callers always observe stored state,
// including database-assigned ids and timestamps.
type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) GetUser(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password, created_at
		FROM users
		WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &u, nil
}

func (s *PostgresStorage) CreateUser(ctx context.Context, in models.InsertUser) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING id, username, password, created_at
	`, in.Username, in.Password).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	var techs []byte
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Image, &techs,
		&p.DemoLink, &p.CodeLink, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(techs, &p.Technologies); err != nil {
		return nil, fmt.Errorf("failed to decode technologies: %w", err)
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	return &p, nil
}

const projectColumns = "id, title, description, image, technologies, demo_link, code_link, created_at, updated_at"

func (s *PostgresStorage) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (s *PostgresStorage) GetProject(ctx context.Context, id int) (*models.Project, error) {
	p, err := scanProject(s.db.QueryRowContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (s *PostgresStorage) CreateProject(ctx context.Context, in models.InsertProject) (*models.Project, error) {
	techs := in.Technologies
	if techs == nil {
		techs = []string{}
	}
	techsJSON, err := json.Marshal(techs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode technologies: %w", err)
	}
	p, err := scanProject(s.db.QueryRowContext(ctx, `
		INSERT INTO projects (title, description, image, technologies, demo_link, code_link)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+projectColumns+`
	`, in.Title, in.Description, in.Image, techsJSON, in.DemoLink, in.CodeLink))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return p, nil
}

func (s *PostgresStorage) UpdateProject(ctx context.Context, id int, in models.UpdateProject) (*models.Project, error) {
	set := newSetBuilder()
	set.add("title", in.Title)
	set.add("description", in.Description)
	set.add("image", in.Image)
	if in.Technologies != nil {
		techsJSON, err := json.Marshal(*in.Technologies)
		if err != nil {
			return nil, fmt.Errorf("failed to encode technologies: %w", err)
		}
		set.add("technologies", &techsJSON)
	}
	set.add("demo_link", in.DemoLink)
	set.add("code_link", in.CodeLink)

	query := fmt.Sprintf(`
		UPDATE projects
		SET %s
		WHERE id = $%d
		RETURNING `+projectColumns, set.clause(), set.next())
	p, err := scanProject(s.db.QueryRowContext(ctx, query, append(set.args, id)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return p, nil
}

func (s *PostgresStorage) DeleteProject(ctx context.Context, id int) (bool, error) {
	return s.deleteByID(ctx, "projects", id)
}

const skillColumns = "id, name, category, level, COALESCE(icon, ''), created_at, updated_at"

func scanSkill(row interface{ Scan(...any) error }) (*models.Skill, error) {
	var sk models.Skill
	err := row.Scan(&sk.ID, &sk.Name, &sk.Category, &sk.Level, &sk.Icon, &sk.CreatedAt, &sk.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &sk, nil
}

func (s *PostgresStorage) ListSkills(ctx context.Context) ([]models.Skill, error) {
	return s.querySkills(ctx, `
		SELECT `+skillColumns+`
		FROM skills
		ORDER BY id
	`)
}

func (s *PostgresStorage) ListSkillsByCategory(ctx context.Context, category string) ([]models.Skill, error) {
	return s.querySkills(ctx, `
		SELECT `+skillColumns+`
		FROM skills
		WHERE category = $1
		ORDER BY id
	`, category)
}

func (s *PostgresStorage) querySkills(ctx context.Context, query string, args ...any) ([]models.Skill, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	skills := []models.Skill{}
	for rows.Next() {
		sk, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, *sk)
	}
	return skills, rows.Err()
}

func (s *PostgresStorage) CreateSkill(ctx context.Context, in models.InsertSkill) (*models.Skill, error) {
	sk, err := scanSkill(s.db.QueryRowContext(ctx, `
		INSERT INTO skills (name, category, level, icon)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING `+skillColumns+`
	`, in.Name, in.Category, in.Level, in.Icon))
	if err != nil {
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}
	return sk, nil
}

func (s *PostgresStorage) UpdateSkill(ctx context.Context, id int, in models.UpdateSkill) (*models.Skill, error) {
	set := newSetBuilder()
	set.add("name", in.Name)
	set.add("category", in.Category)
	set.add("level", in.Level)
	set.add("icon", in.Icon)

	query := fmt.Sprintf(`
		UPDATE skills
		SET %s
		WHERE id = $%d
		RETURNING `+skillColumns, set.clause(), set.next())
	sk, err := scanSkill(s.db.QueryRowContext(ctx, query, append(set.args, id)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update skill: %w", err)
	}
	return sk, nil
}

func (s *PostgresStorage) DeleteSkill(ctx context.Context, id int) (bool, error) {
	return s.deleteByID(ctx, "skills", id)
}

const messageColumns = "id, name, email, message, read, created_at"

func (s *PostgresStorage) ListMessages(ctx context.Context) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Message, &msg.Read, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (s *PostgresStorage) GetMessage(ctx context.Context, id int) (*models.Message, error) {
	var msg models.Message
	err := s.db.QueryRowContext(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE id = $1
	`, id).Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Message, &msg.Read, &msg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return &msg, nil
}

func (s *PostgresStorage) CreateMessage(ctx context.Context, in models.InsertMessage) (*models.Message, error) {
	var msg models.Message
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO messages (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING `+messageColumns+`
	`, in.Name, in.Email, in.Message).Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Message, &msg.Read, &msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return &msg, nil
}

func (s *PostgresStorage) MarkMessageRead(ctx context.Context, id int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE messages
		SET read = 1
		WHERE id = $1
	`, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark message as read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *PostgresStorage) DeleteMessage(ctx context.Context, id int) (bool, error) {
	return s.deleteByID(ctx, "messages", id)
}

const resumeColumns = "id, title, organization, period, description, type, sort_order, created_at, updated_at"

func scanResumeEntry(row interface{ Scan(...any) error }) (*models.ResumeEntry, error) {
	var e models.ResumeEntry
	err := row.Scan(&e.ID, &e.Title, &e.Organization, &e.Period, &e.Description,
		&e.Type, &e.Order, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *PostgresStorage) ListResumeEntries(ctx context.Context) ([]models.ResumeEntry, error) {
	return s.queryResumeEntries(ctx, `
		SELECT `+resumeColumns+`
		FROM resume
		ORDER BY sort_order, id
	`)
}

func (s *PostgresStorage) ListResumeEntriesByType(ctx context.Context, entryType string) ([]models.ResumeEntry, error) {
	return s.queryResumeEntries(ctx, `
		SELECT `+resumeColumns+`
		FROM resume
		WHERE type = $1
		ORDER BY sort_order, id
	`, entryType)
}

func (s *PostgresStorage) queryResumeEntries(ctx context.Context, query string, args ...any) ([]models.ResumeEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume entries: %w", err)
	}
	defer rows.Close()

	entries := []models.ResumeEntry{}
	for rows.Next() {
		e, err := scanResumeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *PostgresStorage) CreateResumeEntry(ctx context.Context, in models.InsertResumeEntry) (*models.ResumeEntry, error) {
	e, err := scanResumeEntry(s.db.QueryRowContext(ctx, `
		INSERT INTO resume (title, organization, period, description, type, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+resumeColumns+`
	`, in.Title, in.Organization, in.Period, in.Description, in.Type, in.Order))
	if err != nil {
		return nil, fmt.Errorf("failed to create resume entry: %w", err)
	}
	return e, nil
}

func (s *PostgresStorage) UpdateResumeEntry(ctx context.Context, id int, in models.UpdateResumeEntry) (*models.ResumeEntry, error) {
	set := newSetBuilder()
	set.add("title", in.Title)
	set.add("organization", in.Organization)
	set.add("period", in.Period)
	set.add("description", in.Description)
	set.add("type", in.Type)
	set.add("sort_order", in.Order)

	query := fmt.Sprintf(`
		UPDATE resume
		SET %s
		WHERE id = $%d
		RETURNING `+resumeColumns, set.clause(), set.next())
	e, err := scanResumeEntry(s.db.QueryRowContext(ctx, query, append(set.args, id)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update resume entry: %w", err)
	}
	return e, nil
}

func (s *PostgresStorage) DeleteResumeEntry(ctx context.Context, id int) (bool, error) {
	return s.deleteByID(ctx, "resume", id)
}

// deleteByID removes one row and reports whether a row was actually
// present, so callers can distinguish a no-op from a real deletion.
func (s *PostgresStorage) deleteByID(ctx context.Context, table string, id int) (bool, error) {
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// setBuilder accumulates SET clauses for partial updates. updated_at is
// always refreshed, even when the caller supplied no fields.
type setBuilder struct {
	clauses []string
	args    []any
}

func newSetBuilder() *setBuilder {
	return &setBuilder{}
}

func (b *setBuilder) add(column string, value any) {
	switch v := value.(type) {
	case *string:
		if v == nil {
			return
		}
		b.args = append(b.args, *v)
	case *int:
		if v == nil {
			return
		}
		b.args = append(b.args, *v)
	case *[]byte:
		if v == nil {
			return
		}
		b.args = append(b.args, *v)
	default:
		b.args = append(b.args, value)
	}
	b.clauses = append(b.clauses, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func (b *setBuilder) clause() string {
	return strings.Join(append(b.clauses, "updated_at = NOW()"), ", ")
}

// next is the placeholder index for the WHERE argument.
func (b *setBuilder) next() int {
	return len(b.args) + 1
}
