// Package repository holds the SQL behind the service layer.
package repository

import (
	"github.com/deppfellow/opl-checker/internal/server"
)

// Repositories fields are nil when no database is configured.
type Repositories struct {
	CheckRun *CheckRunRepository
}

func NewRepositories(s *server.Server) *Repositories {
	repos := &Repositories{}
	if s.DB != nil {
		repos.CheckRun = NewCheckRunRepository(s.DB.Pool)
	}
	return repos
}
