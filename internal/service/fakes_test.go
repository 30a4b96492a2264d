package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/deppfellow/attendance-bot/internal/errs"
	"github.com/deppfellow/attendance-bot/internal/model"
)

// fakeStore is an in-memory stand-in for every repository the services use.
type fakeStore struct {
	mu sync.Mutex

	modules  map[string]*model.Module
	lectures map[string][]string
	seminars map[string][]string
	codes    []model.Code
	drafts   map[string]*model.AssignmentDraft
	draftTTL time.Duration

	addCodeCalls int
	// beforeAddCode runs at the start of AddCode, to simulate a concurrent writer.
	beforeAddCode func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		modules:  map[string]*model.Module{},
		lectures: map[string][]string{},
		seminars: map[string][]string{},
		drafts:   map[string]*model.AssignmentDraft{},
	}
}

func notFound(entity string) error {
	return errs.NewNotFoundError(entity+" not found", true, nil)
}

func (f *fakeStore) AddModule(_ context.Context, name, moduleCode string, description *string) (*model.Module, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.modules[moduleCode]; ok {
		return nil, errs.NewDuplicateKeyError("Module already exists", true, nil)
	}
	m := &model.Module{Name: name, ModuleCode: moduleCode, Description: description}
	m.ID = int64(len(f.modules) + 1)
	f.modules[moduleCode] = m
	return m, nil
}

func (f *fakeStore) GetModule(_ context.Context, moduleCode string) (*model.Module, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, ok := f.modules[moduleCode]
	if !ok {
		return nil, notFound("Module")
	}
	return m, nil
}

func (f *fakeStore) ListModules(context.Context) ([]model.Module, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.Module
	for _, m := range f.modules {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeStore) RemoveModule(_ context.Context, moduleCode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.modules[moduleCode]; !ok {
		return notFound("Module")
	}
	if len(f.lectures[moduleCode])+len(f.seminars[moduleCode]) > 0 {
		return errs.NewHasDependentsError("Module has dependents", true, nil)
	}
	delete(f.modules, moduleCode)
	return nil
}

func (f *fakeStore) AddLecture(_ context.Context, name, moduleCode string) (*model.Lecture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.modules[moduleCode]; !ok {
		return nil, notFound("Module")
	}
	f.lectures[moduleCode] = append(f.lectures[moduleCode], name)
	return &model.Lecture{Name: name}, nil
}

func (f *fakeStore) ListLectures(_ context.Context, moduleCode string) ([]model.Lecture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.modules[moduleCode]; !ok {
		return nil, notFound("Module")
	}
	var out []model.Lecture
	for _, name := range f.lectures[moduleCode] {
		out = append(out, model.Lecture{Name: name})
	}
	return out, nil
}

func (f *fakeStore) RemoveLecture(_ context.Context, moduleCode, name string) error {
	return fmt.Errorf("not used: %s %s", moduleCode, name)
}

func (f *fakeStore) AddSeminar(_ context.Context, name, moduleCode string) (*model.Seminar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.modules[moduleCode]; !ok {
		return nil, notFound("Module")
	}
	f.seminars[moduleCode] = append(f.seminars[moduleCode], name)
	return &model.Seminar{Name: name}, nil
}

func (f *fakeStore) ListSeminars(_ context.Context, moduleCode string) ([]model.Seminar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.modules[moduleCode]; !ok {
		return nil, notFound("Module")
	}
	var out []model.Seminar
	for _, name := range f.seminars[moduleCode] {
		out = append(out, model.Seminar{Name: name})
	}
	return out, nil
}

func (f *fakeStore) RemoveSeminar(_ context.Context, name string) error {
	return fmt.Errorf("not used: %s", name)
}

func (f *fakeStore) AddCode(_ context.Context, code, moduleCode string, target model.Target) (*model.Code, error) {
	if f.beforeAddCode != nil {
		f.beforeAddCode()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.addCodeCalls++

	if _, ok := f.modules[moduleCode]; !ok {
		return nil, notFound("Module")
	}

	names := f.lectures[moduleCode]
	if target.Kind == model.TargetSeminar {
		names = f.seminars[moduleCode]
	}
	found := false
	for _, n := range names {
		found = found || n == target.Name
	}
	if !found {
		return nil, notFound(string(target.Kind))
	}

	for _, c := range f.codes {
		if c.Code == code {
			return nil, errs.NewDuplicateKeyError("Code already exists", true, nil)
		}
	}

	c := model.Code{Code: code}
	c.ID = int64(len(f.codes) + 1)
	f.codes = append(f.codes, c)
	return &c, nil
}

func (f *fakeStore) CodeExists(_ context.Context, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.codes {
		if c.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) RemoveCode(_ context.Context, code string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var kept []model.Code
	for _, c := range f.codes {
		if c.Code != code {
			kept = append(kept, c)
		}
	}
	removed := int64(len(f.codes) - len(kept))
	if removed == 0 {
		return 0, notFound("Code")
	}
	f.codes = kept
	return removed, nil
}

func (f *fakeStore) ListCodes(_ context.Context, window model.Window) ([]model.CodeListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.CodeListing
	for _, c := range f.codes {
		if window.Contains(c.CreatedAt) {
			out = append(out, model.CodeListing{ID: c.ID, Code: c.Code, CreatedAt: c.CreatedAt})
		}
	}
	return out, nil
}

func (f *fakeStore) Save(_ context.Context, draft *model.AssignmentDraft, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := *draft
	f.drafts[draft.ID] = &copied
	f.draftTTL = ttl
	return nil
}

func (f *fakeStore) Get(_ context.Context, id string) (*model.AssignmentDraft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, ok := f.drafts[id]
	if !ok {
		return nil, notFound("Draft")
	}
	copied := *d
	return &copied, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.drafts, id)
	return nil
}
