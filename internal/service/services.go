package service

import (
	"github.com/deppfellow/attendance-bot/internal/lib/job"
	"github.com/deppfellow/attendance-bot/internal/repository"
	"github.com/deppfellow/attendance-bot/internal/server"
)

type Services struct {
	Module  *ModuleService
	Lecture *LectureService
	Seminar *SeminarService
	Code    *CodeService
	Stats   *StatsService
	Sweep   *SweepService
	Job     *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Module:  NewModuleService(repos.Module),
		Lecture: NewLectureService(repos.Lecture),
		Seminar: NewSeminarService(repos.Seminar),
		Code:    NewCodeService(repos.Code, repos.Lecture, repos.Seminar, repos.Draft, s.Config, s.Logger),
		Stats:   NewStatsService(repos.Stats),
		Sweep:   NewSweepService(s.Job),
		Job:     s.Job,
	}, nil
}
