package repository

import (
	"github.com/deppfellow/attendance-bot/internal/server"
)

// Repositories groups every repository so it can be handed to the
// services in one piece.
type Repositories struct {
	Module  *ModuleRepository
	Lecture *LectureRepository
	Seminar *SeminarRepository
	Code    *CodeRepository
	Stats   *StatsRepository
	Draft   *DraftRepository
}

func NewRepositories(s *server.Server) *Repositories {
	db := s.DB.Pool

	return &Repositories{
		Module:  NewModuleRepository(db),
		Lecture: NewLectureRepository(db),
		Seminar: NewSeminarRepository(db),
		Code:    NewCodeRepository(db),
		Stats:   NewStatsRepository(db),
		Draft:   NewDraftRepository(s.Redis),
	}
}
