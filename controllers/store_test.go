package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"reboot-api/middleware"
)

// fakeRow hands scan destinations pre-baked values. A nil value leaves the
// destination untouched, which models a NULL column scanned into a pointer.
type fakeRow struct {
	err    error
	values []any
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		if i >= len(r.values) || r.values[i] == nil {
			continue
		}
		dv := reflect.ValueOf(d).Elem()
		sv := reflect.ValueOf(r.values[i])
		switch {
		case sv.Type().AssignableTo(dv.Type()):
			dv.Set(sv)
		case sv.Type().ConvertibleTo(dv.Type()):
			dv.Set(sv.Convert(dv.Type()))
		}
	}
	return nil
}

// fakeRows is an empty result set.
type fakeRows struct{}

func (fakeRows) Close()                                       {}
func (fakeRows) Err() error                                   { return nil }
func (fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (fakeRows) Next() bool                                   { return false }
func (fakeRows) Scan(dest ...any) error                       { return nil }
func (fakeRows) Values() ([]any, error)                       { return nil, nil }
func (fakeRows) RawValues() [][]byte                          { return nil }
func (fakeRows) Conn() *pgx.Conn                              { return nil }

type storeCall struct {
	sql  string
	args []any
}

// fakeStore records every statement it receives. QueryRow consumes the queued
// rows in order and falls back to a no-rows result once they run out, so a
// test only stages the rows it cares about.
type fakeStore struct {
	rows    []*fakeRow
	calls   []storeCall
	execTag string
}

func (s *fakeStore) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	s.calls = append(s.calls, storeCall{sql: sql, args: args})
	if len(s.rows) > 0 {
		row := s.rows[0]
		s.rows = s.rows[1:]
		return row
	}
	return &fakeRow{err: pgx.ErrNoRows}
}

func (s *fakeStore) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	s.calls = append(s.calls, storeCall{sql: sql, args: args})
	return fakeRows{}, nil
}

func (s *fakeStore) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.calls = append(s.calls, storeCall{sql: sql, args: args})
	tag := s.execTag
	if tag == "" {
		tag = "OK 1"
	}
	return pgconn.NewCommandTag(tag), nil
}

func (s *fakeStore) Begin(context.Context) (pgx.Tx, error) {
	return &fakeTx{store: s}, nil
}

func (s *fakeStore) statements() []string {
	out := make([]string, 0, len(s.calls))
	for _, c := range s.calls {
		out = append(out, c.sql)
	}
	return out
}

// fakeTx forwards statements to the owning store. The rest of the pgx.Tx
// surface stays unimplemented; a handler touching it is a test failure.
type fakeTx struct {
	pgx.Tx
	store *fakeStore
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.store.Exec(ctx, sql, args...)
}

func (t *fakeTx) Commit(context.Context) error {
	t.store.calls = append(t.store.calls, storeCall{sql: "COMMIT"})
	return nil
}

func (t *fakeTx) Rollback(context.Context) error { return nil }

// newRouter builds a bare engine, optionally seeding the verified subject the
// way the access gate would.
func newRouter(subject string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if subject != "" {
		r.Use(func(c *gin.Context) { c.Set(middleware.SubjectKey, subject) })
	}
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func ptr[T any](v T) *T { return &v }
