package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmeshcher/billed/internal/model"
	"github.com/mmeshcher/billed/internal/session"
	"github.com/mmeshcher/billed/internal/store"
)

func withEmail(t *testing.T, email string) context.Context {
	t.Helper()

	st := session.NewMemoryStorage()
	if err := st.SetUser(session.User{Type: session.TypeEmployee, Email: email}); err != nil {
		t.Fatalf("SetUser: %v", err)
	}
	return session.WithStorage(context.Background(), st)
}

func TestOpen_DefaultsToMemory(t *testing.T) {
	svc, err := Open(Settings{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer svc.Close()

	if svc.Kind() != SourceMemory {
		t.Fatalf("kind = %q, want %q", svc.Kind(), SourceMemory)
	}

	bills, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(bills) != len(store.Fixtures()) {
		t.Fatalf("len = %d, want %d", len(bills), len(store.Fixtures()))
	}
}

func TestOpen_Remote(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"1","status":"pending","date":"2021-03-01","amount":10}]`))
	}))
	defer ts.Close()

	svc, err := Open(Settings{BillsAPIAddress: ts.URL, DatabaseURI: "postgres://ignored"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if svc.Kind() != SourceRemote {
		t.Fatalf("kind = %q, want %q", svc.Kind(), SourceRemote)
	}

	bills, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(bills) != 1 || bills[0].ID != "1" {
		t.Fatalf("unexpected bills: %+v", bills)
	}
}

func TestList_FiltersBySessionEmail(t *testing.T) {
	svc := NewService(store.NewMemory(
		model.Bill{ID: "1", Email: "a@a"},
		model.Bill{ID: "2", Email: "b@b"},
		model.Bill{ID: "3"},
	), SourceMemory)

	bills, err := svc.List(withEmail(t, "a@a"))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(bills) != 2 || bills[0].ID != "1" || bills[1].ID != "3" {
		t.Fatalf("unexpected bills: %+v", bills)
	}

	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
}

func TestList_PropagatesError(t *testing.T) {
	want := store.NewStatusError(http.StatusNotFound)
	svc := NewService(store.NewFailing(want), SourceMemory)

	bills, err := svc.List(withEmail(t, "a@a"))
	if bills != nil {
		t.Fatalf("expected nil bills, got %+v", bills)
	}
	if !errors.Is(err, want) {
		t.Fatalf("error = %v, want %v", err, want)
	}
}
