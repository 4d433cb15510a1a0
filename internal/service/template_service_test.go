package service

import (
	"context"
	"testing"

	"royalcert/internal/models"
	"royalcert/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTemplateNormalizes(t *testing.T) {
	f := newFixture(t)
	s := NewTemplateService(f.templates, f.auditService())

	tpl, err := s.Create(context.Background(), f.admin, TemplateInput{
		Name:          "Vinç",
		EquipmentType: " VINC ",
		Categories: []models.TemplateCategory{
			{Code: "A", Items: []models.TemplateItem{{ID: 5, Text: "Kanca"}, {Text: "Halat"}}},
			{Code: "B", Items: []models.TemplateItem{{Text: "Fren", InputType: "text"}}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.TemplateForm, tpl.TemplateType)
	assert.Equal(t, "VINC", tpl.EquipmentType)
	assert.True(t, tpl.IsActive)
	assert.Equal(t, f.admin.ID, tpl.CreatedBy)
	assert.Equal(t, "A", tpl.Categories[0].Name)

	items := tpl.Categories[0].Items
	assert.Equal(t, 5, items[0].ID)
	assert.Equal(t, 6, items[1].ID)
	assert.Equal(t, models.InputDropdown, items[1].InputType)
	assert.Equal(t, 7, tpl.Categories[1].Items[0].ID)
	assert.Equal(t, "text", tpl.Categories[1].Items[0].InputType)
}

func TestCreateTemplateRejects(t *testing.T) {
	f := newFixture(t)
	s := NewTemplateService(f.templates, f.auditService())
	ctx := context.Background()

	_, err := s.Create(ctx, f.admin, TemplateInput{Name: "x", EquipmentType: "y", TemplateType: "PDF"})
	assert.ErrorIs(t, err, ErrInvalidTemplateType)

	_, err = s.Create(ctx, f.admin, TemplateInput{Name: "x", EquipmentType: "y", Categories: []models.TemplateCategory{
		{Code: "A", Items: []models.TemplateItem{{ID: 1, Text: "a"}}},
		{Code: "B", Items: []models.TemplateItem{{ID: 1, Text: "b"}}},
	}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Details["item_id"])

	_, err = s.Create(ctx, f.admin, TemplateInput{Name: "x", EquipmentType: "y", Categories: []models.TemplateCategory{{Code: " "}}})
	require.ErrorAs(t, err, &verr)

	_, err = s.Create(ctx, f.admin, TemplateInput{EquipmentType: "y"})
	require.ErrorAs(t, err, &verr)
}

func TestTemplateListFiltersAndUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := NewTemplateService(f.templates, f.auditService())

	a, err := s.Create(ctx, f.admin, TemplateInput{Name: "A", EquipmentType: "FORKLIFT"})
	require.NoError(t, err)
	_, err = s.Create(ctx, f.admin, TemplateInput{Name: "B", EquipmentType: "FORKLIFT", TemplateType: "report"})
	require.NoError(t, err)

	forms, err := s.List(ctx, repository.TemplateFilter{EquipmentType: "forklift", TemplateType: "form"})
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, a.ID, forms[0].ID)

	updated, err := s.Update(ctx, f.admin, a.ID, TemplateInput{Name: "A2", EquipmentType: "FORKLIFT", IsActive: ptr(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	active, err := s.List(ctx, repository.TemplateFilter{Active: ptr(true)})
	require.NoError(t, err)
	assert.Len(t, active, 1)

	require.NoError(t, s.Delete(ctx, f.admin, a.ID))
	_, err = s.Get(ctx, a.ID)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestInitializeTemplates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := NewTemplateService(f.templates, f.auditService())

	res, err := s.Initialize(ctx, f.admin)
	require.NoError(t, err)
	assert.Equal(t, []string{"FORKLIFT MUAYENE FORMU", "CARASKAL MUAYENE FORMU"}, res.Created)

	forklift, err := f.templates.FindActiveForm(ctx, "forklift")
	require.NoError(t, err)
	require.Len(t, forklift.Categories, 8)
	assert.Equal(t, "H", forklift.Categories[7].Code)
	assert.Equal(t, 1, forklift.Categories[0].Items[0].ID)

	seen := map[int]bool{}
	for _, c := range forklift.Categories {
		for _, it := range c.Items {
			assert.False(t, seen[it.ID], "duplicate id %d", it.ID)
			seen[it.ID] = true
		}
	}
	assert.Len(t, seen, forklift.ItemCount())

	res, err = s.Initialize(ctx, f.admin)
	require.NoError(t, err)
	assert.Empty(t, res.Created)
	n, _ := f.templates.Count(ctx)
	assert.EqualValues(t, 2, n)
}
