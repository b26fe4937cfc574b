//go:build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tglang/internal/core/language"
	"tglang/internal/modkit/repokit"
	perr "tglang/internal/platform/errors"
	"tglang/internal/platform/store"
	"tglang/internal/services/feedback/domain"

	"github.com/google/uuid"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "tglang",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/tglang?sslmode=disable", host, port.Port())
}

func TestPG_Integration(t *testing.T) {
	dsn := startPostgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "tglang-feedback-integration",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	r := NewPG().Bind(st.PG)
	if err := r.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	base := time.Now().UTC().Truncate(time.Microsecond)
	first := domain.Feedback{ID: uuid.New(), CreatedAt: base, Text: "puts 1", Detected: language.Python, Expected: language.Ruby}
	second := domain.Feedback{ID: uuid.New(), CreatedAt: base.Add(time.Second), Text: "x", Detected: language.Other, Expected: language.Go, Note: "one letter"}

	err = repokit.WithTx(ctx, st.PG, func(q repokit.Queryer) error {
		tx := NewPG().Bind(q)
		if err := tx.Insert(ctx, first); err != nil {
			return err
		}
		return tx.Insert(ctx, second)
	})
	if err != nil {
		t.Fatalf("insert tx: %v", err)
	}

	if err := r.Insert(ctx, first); !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		t.Fatalf("duplicate err = %v", err)
	}

	got, err := r.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 || got[0].ID != second.ID || got[0].Note != "one letter" || got[1].Expected != language.Ruby {
		t.Fatalf("recent = %+v", got)
	}

	one, err := r.Get(ctx, first.ID)
	if err != nil || !one.CreatedAt.Equal(first.CreatedAt) || one.Text != "puts 1" {
		t.Fatalf("Get = %+v %v", one, err)
	}
	if _, err := r.Get(ctx, uuid.New()); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("missing err = %v", err)
	}
}
