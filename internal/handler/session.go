package handler

import (
	"github.com/deppfellow/attendance-bot/internal/model"
	"github.com/deppfellow/attendance-bot/internal/server"
	"github.com/deppfellow/attendance-bot/internal/service"
	"github.com/labstack/echo/v4"
)

type LectureHandler struct {
	Handler
	lectureService *service.LectureService
}

func NewLectureHandler(s *server.Server, lectureService *service.LectureService) *LectureHandler {
	return &LectureHandler{
		Handler:        NewHandler(s),
		lectureService: lectureService,
	}
}

func (h *LectureHandler) AddLecture(c echo.Context, payload *model.AddSessionPayload) (*model.Lecture, error) {
	return h.lectureService.AddLecture(c.Request().Context(), payload.ModuleCode, payload.Name)
}

func (h *LectureHandler) ListLectures(c echo.Context, payload *model.ModuleCodeParam) ([]model.Lecture, error) {
	return h.lectureService.ListLectures(c.Request().Context(), payload.ModuleCode)
}

// RemoveLecture deletes a lecture by name. module_code is needed only
// when several modules have a lecture of that name.
func (h *LectureHandler) RemoveLecture(c echo.Context, payload *model.RemoveLecturePayload) error {
	return h.lectureService.RemoveLecture(c.Request().Context(), payload.ModuleCode, payload.Name)
}

type SeminarHandler struct {
	Handler
	seminarService *service.SeminarService
}

func NewSeminarHandler(s *server.Server, seminarService *service.SeminarService) *SeminarHandler {
	return &SeminarHandler{
		Handler:        NewHandler(s),
		seminarService: seminarService,
	}
}

func (h *SeminarHandler) AddSeminar(c echo.Context, payload *model.AddSessionPayload) (*model.Seminar, error) {
	return h.seminarService.AddSeminar(c.Request().Context(), payload.ModuleCode, payload.Name)
}

func (h *SeminarHandler) ListSeminars(c echo.Context, payload *model.ModuleCodeParam) ([]model.Seminar, error) {
	return h.seminarService.ListSeminars(c.Request().Context(), payload.ModuleCode)
}

func (h *SeminarHandler) RemoveSeminar(c echo.Context, payload *model.RemoveSeminarPayload) error {
	return h.seminarService.RemoveSeminar(c.Request().Context(), payload.Name)
}
