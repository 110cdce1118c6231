// Package service holds the business logic between the HTTP handlers and
// the engine, the repositories and the job queue.
package service

import (
	"github.com/deppfellow/opl-checker/internal/checker"
	"github.com/deppfellow/opl-checker/internal/lib/job"
	"github.com/deppfellow/opl-checker/internal/repository"
	"github.com/deppfellow/opl-checker/internal/server"
)

type Services struct {
	Checker *CheckerService
	Contact *ContactService
	Job     *job.JobService
}

// NewServices wires the services to whatever infrastructure the server
// has. Without Redis there is no job queue, so check runs are not recorded
// and the contact form is unavailable.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var recorder CheckRunRecorder
	var contactQueue ContactQueue
	if s.Job != nil {
		if repos.CheckRun != nil {
			recorder = s.Job
		}
		if s.Config.Integration != nil {
			contactQueue = s.Job
		}
	}

	return &Services{
		Checker: NewCheckerService(checker.New(), recorder),
		Contact: NewContactService(contactQueue),
		Job:     s.Job,
	}, nil
}
