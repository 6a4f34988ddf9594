// Package service выбирает источник расходов и отдаёт из него расходы текущего пользователя.
package service

import (
	"context"
	"time"

	"github.com/mmeshcher/billed/internal/model"
	"github.com/mmeshcher/billed/internal/remote"
	"github.com/mmeshcher/billed/internal/repository"
	"github.com/mmeshcher/billed/internal/session"
	"github.com/mmeshcher/billed/internal/store"
)

// Виды источников расходов.
const (
	SourceRemote   = "remote"
	SourcePostgres = "postgres"
	SourceMemory   = "memory"
)

// Source описывает источник расходов.
type Source interface {
	List(ctx context.Context) ([]model.Bill, error)
}

// Settings задаёт адреса источников. Если не задан ни один, используется демонстрационный набор в памяти.
type Settings struct {
	BillsAPIAddress string
	BillsAPITimeout time.Duration
	DatabaseURI     string
}

// Service отдаёт расходы из выбранного источника.
type Service struct {
	source Source
	kind   string
	close  func() error
}

// NewService создаёт сервис поверх готового источника.
func NewService(source Source, kind string) *Service {
	return &Service{source: source, kind: kind}
}

// Open выбирает источник по настройкам: API расходов, затем PostgreSQL, затем память.
func Open(s Settings) (*Service, error) {
	switch {
	case s.BillsAPIAddress != "":
		return NewService(remote.NewClient(s.BillsAPIAddress, s.BillsAPITimeout), SourceRemote), nil
	case s.DatabaseURI != "":
		repo, err := repository.NewPostgresRepository(s.DatabaseURI)
		if err != nil {
			return nil, err
		}
		svc := NewService(repo, SourcePostgres)
		svc.close = repo.Close
		return svc, nil
	default:
		return NewService(store.NewMemory(store.Fixtures()...), SourceMemory), nil
	}
}

// Kind возвращает вид выбранного источника.
func (s *Service) Kind() string {
	return s.kind
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.close != nil {
		return s.close()
	}
	return nil
}

// List возвращает расходы пользователя текущей сессии. Расходы без адреса владельца отдаются всем.
func (s *Service) List(ctx context.Context) ([]model.Bill, error) {
	bills, err := s.source.List(ctx)
	if err != nil {
		return nil, err
	}

	email := session.EmailFromContext(ctx)
	if email == "" {
		return bills, nil
	}

	res := bills[:0:0]
	for _, b := range bills {
		if b.Email == "" || b.Email == email {
			res = append(res, b)
		}
	}
	return res, nil
}
