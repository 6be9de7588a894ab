package service

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/escrowline/backend/internal/apperr"
	"github.com/escrowline/backend/internal/store"
	"github.com/escrowline/backend/internal/workflow/model"
)

// TemplateService manages the named text templates tasks refer to.
type TemplateService struct {
	templates *store.Table[string, model.Template]
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{
		templates: store.NewTable(db, "title", func(t *model.Template) string { return t.Title }),
	}
}

// CreateTemplate stores a new template. Titles are unique.
func (s *TemplateService) CreateTemplate(ctx context.Context, req *model.CreateTemplateDTO) (*model.Template, error) {
	if req == nil {
		return nil, apperr.Validation("create request cannot be nil")
	}

	exists, err := s.templates.Exists(ctx, req.Title)
	if err != nil {
		return nil, apperr.Internal(err, "failed to check template")
	}
	if exists {
		return nil, apperr.Conflict("Template already exists")
	}

	template := &model.Template{Title: req.Title, Content: req.Content}
	if err := s.templates.Put(ctx, template); err != nil {
		return nil, apperr.Internal(err, "failed to create template")
	}

	slog.InfoContext(ctx, "template created", "title", template.Title)
	return template, nil
}

// GetTemplate retrieves a template by its title.
func (s *TemplateService) GetTemplate(ctx context.Context, title string) (*model.Template, error) {
	template, err := s.templates.Get(ctx, title)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Template not found")
		}
		return nil, apperr.Internal(err, "failed to retrieve template")
	}
	return template, nil
}

// UpdateTemplate replaces the content of an existing template.
func (s *TemplateService) UpdateTemplate(ctx context.Context, req *model.UpdateTemplateDTO) (*model.Template, error) {
	if req == nil {
		return nil, apperr.Validation("update request cannot be nil")
	}

	template, err := s.GetTemplate(ctx, req.Title)
	if err != nil {
		return nil, err
	}
	if req.Content == nil {
		return template, nil
	}

	if err := s.templates.Update(ctx, req.Title, map[string]any{"content": *req.Content}); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Template not found")
		}
		return nil, apperr.Internal(err, "failed to update template")
	}
	return s.GetTemplate(ctx, req.Title)
}

// DeleteTemplate removes a template. Tasks that cite it keep the title.
func (s *TemplateService) DeleteTemplate(ctx context.Context, title string) error {
	if err := s.templates.Delete(ctx, title); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("Template not found")
		}
		return apperr.Internal(err, "failed to delete template")
	}
	slog.InfoContext(ctx, "template deleted", "title", title)
	return nil
}

// RenderTemplate fills the placeholders of a stored template.
func (s *TemplateService) RenderTemplate(ctx context.Context, req *model.RenderTemplateDTO) (*model.RenderedTemplate, error) {
	template, err := s.GetTemplate(ctx, req.Title)
	if err != nil {
		return nil, err
	}
	return &model.RenderedTemplate{Title: template.Title, Content: template.Render(req.Values)}, nil
}

// FilterExistingTitles returns the titles that resolve to a stored template,
// in their original order and without duplicates. Unknown titles are dropped.
func (s *TemplateService) FilterExistingTitles(ctx context.Context, titles []string) ([]string, error) {
	unique := make([]string, 0, len(titles))
	seen := make(map[string]struct{}, len(titles))
	for _, title := range titles {
		if _, dup := seen[title]; dup || title == "" {
			continue
		}
		seen[title] = struct{}{}
		unique = append(unique, title)
	}

	found, err := s.templates.BatchGet(ctx, unique)
	if err != nil {
		return nil, apperr.Internal(err, "failed to resolve templates")
	}

	valid := make([]string, 0, len(found))
	for _, template := range found {
		valid = append(valid, template.Title)
	}
	if dropped := len(unique) - len(valid); dropped > 0 {
		slog.DebugContext(ctx, "dropped unknown template titles", "requested", len(unique), "dropped", dropped)
	}
	return valid, nil
}

// SeedDefaultTemplates inserts the default templates that are not stored yet
// and returns how many were added. Existing templates are not overwritten.
func (s *TemplateService) SeedDefaultTemplates(ctx context.Context) (int, error) {
	added := 0
	for _, template := range model.DefaultTemplates {
		exists, err := s.templates.Exists(ctx, template.Title)
		if err != nil {
			return added, apperr.Internal(err, "failed to check template %s", template.Title)
		}
		if exists {
			continue
		}
		t := template
		if err := s.templates.Put(ctx, &t); err != nil {
			return added, apperr.Internal(err, "failed to seed template %s", template.Title)
		}
		added++
	}
	return added, nil
}
