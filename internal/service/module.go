package service

import (
	"context"
	"strings"

	"github.com/deppfellow/attendance-bot/internal/model"
)

type ModuleStore interface {
	AddModule(ctx context.Context, name, moduleCode string, description *string) (*model.Module, error)
	GetModule(ctx context.Context, moduleCode string) (*model.Module, error)
	ListModules(ctx context.Context) ([]model.Module, error)
	RemoveModule(ctx context.Context, moduleCode string) error
}

type ModuleService struct {
	modules ModuleStore
}

func NewModuleService(modules ModuleStore) *ModuleService {
	return &ModuleService{modules: modules}
}

func (s *ModuleService) AddModule(ctx context.Context, name, moduleCode string, description *string) (*model.Module, error) {
	name, err := NormalizeName("module", name)
	if err != nil {
		return nil, err
	}

	moduleCode, err = NormalizeModuleCode(moduleCode)
	if err != nil {
		return nil, err
	}

	if description != nil {
		trimmed := strings.TrimSpace(*description)
		if trimmed == "" {
			description = nil
		} else {
			description = &trimmed
		}
	}

	return s.modules.AddModule(ctx, name, moduleCode, description)
}

func (s *ModuleService) GetModule(ctx context.Context, moduleCode string) (*model.Module, error) {
	moduleCode, err := NormalizeModuleCode(moduleCode)
	if err != nil {
		return nil, err
	}
	return s.modules.GetModule(ctx, moduleCode)
}

func (s *ModuleService) ListModules(ctx context.Context) ([]model.Module, error) {
	return s.modules.ListModules(ctx)
}

// RemoveModule fails with ErrHasDependents while the module still owns
// lectures, seminars or codes.
func (s *ModuleService) RemoveModule(ctx context.Context, moduleCode string) error {
	moduleCode, err := NormalizeModuleCode(moduleCode)
	if err != nil {
		return err
	}
	return s.modules.RemoveModule(ctx, moduleCode)
}
