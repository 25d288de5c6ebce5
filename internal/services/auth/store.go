// Package auth guarda as credenciais dos jogadores em SQLite.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// MinPasswordLength é o tamanho mínimo aceito para uma senha.
const MinPasswordLength = 6

var (
	ErrInvalidInput  = errors.New("username and password (min 6 characters) are required")
	ErrUsernameTaken = errors.New("username already exists")
	ErrUnauthorized  = errors.New("invalid credentials")
	errNotConfigured = errors.New("auth storage is not configured")
)

const schema = `CREATE TABLE IF NOT EXISTS players (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    INTEGER NOT NULL
)`

// Store persiste contas de jogadores.
type Store struct {
	sqlDB *sql.DB
	cost  int
	now   func() time.Time
}

// Open abre (ou cria) o banco em path e garante o schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create players table: %w", err)
	}
	return &Store{sqlDB: sqlDB, cost: bcrypt.DefaultCost, now: time.Now}, nil
}

// Close fecha o banco.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping verifica se o banco responde. Usado pelo health check.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return errNotConfigured
	}
	return s.sqlDB.PingContext(ctx)
}

// Register cria uma conta nova.
func (s *Store) Register(ctx context.Context, username, password string) error {
	if s == nil || s.sqlDB == nil {
		return errNotConfigured
	}
	username = strings.TrimSpace(username)
	if username == "" || len(password) < MinPasswordLength {
		return ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO players (username, password_hash, created_at) VALUES (?, ?, ?)`,
		username, string(hash), s.now().UTC().UnixMilli(),
	)
	if err != nil {
		if isUsernameUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("register %s: %w", username, err)
	}
	return nil
}

// Login confere as credenciais e devolve o nome de usuário gravado.
func (s *Store) Login(ctx context.Context, username, password string) (string, error) {
	if s == nil || s.sqlDB == nil {
		return "", errNotConfigured
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrUnauthorized
	}

	var stored, hash string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT username, password_hash FROM players WHERE username = ?`, username,
	).Scan(&stored, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUnauthorized
		}
		return "", fmt.Errorf("login %s: %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}
	return stored, nil
}

func isUsernameUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "players.username")
}
