package handler

import (
	"github.com/deppfellow/attendance-bot/internal/server"
	"github.com/deppfellow/attendance-bot/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health  *HealthHandler
	System  *SystemHandler
	Module  *ModuleHandler
	Lecture *LectureHandler
	Seminar *SeminarHandler
	Code    *CodeHandler
	Stats   *StatsHandler
	Sweep   *SweepHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		System:  NewSystemHandler(s),
		Module:  NewModuleHandler(s, services.Module),
		Lecture: NewLectureHandler(s, services.Lecture),
		Seminar: NewSeminarHandler(s, services.Seminar),
		Code:    NewCodeHandler(s, services.Code),
		Stats:   NewStatsHandler(s, services.Stats),
		Sweep:   NewSweepHandler(s, services.Sweep),
	}
}
