package inspectionform

import (
	"testing"

	"royalcert/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forkliftLike() *models.EquipmentTemplate {
	return &models.EquipmentTemplate{
		ID:   "tpl-1",
		Name: "FORKLIFT",
		Categories: []models.TemplateCategory{
			{Code: "A", Name: "Genel", Items: []models.TemplateItem{
				{ID: 1, Text: "Etiket", Required: true},
				{ID: 2, Text: "Kabin", HasComment: true},
			}},
			{Code: "B", Name: "Fren", Items: []models.TemplateItem{
				{ID: 3, Text: "El freni", Required: true},
				{ID: 4, Text: "Ayak freni"},
			}},
		},
	}
}

func TestFlattenKeepsCategoryOrder(t *testing.T) {
	items := Flatten(forkliftLike())
	require.Len(t, items, 4)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, "A", items[0].Category)
	assert.Equal(t, "Fren", items[3].CategoryName)

	assert.NotNil(t, Flatten(nil))
	assert.Empty(t, Flatten(nil))
}

func TestEvaluateCompletionAndMissing(t *testing.T) {
	ev, err := Evaluate(forkliftLike(), map[string]models.ItemResult{
		"1": {Result: "U", Comment: "not kept"},
		"2": {Result: "UD", Comment: "çatlak"},
		"4": {Result: ""},
	})
	require.NoError(t, err)

	assert.Equal(t, 50, ev.Completion)
	assert.Equal(t, []int{3}, ev.Missing)
	assert.Equal(t, models.ItemResult{Result: "U"}, ev.FormData["1"])
	assert.Equal(t, "çatlak", ev.FormData["2"].Comment)
	assert.NotContains(t, ev.FormData, "4")
}

func TestEvaluateRoundsDown(t *testing.T) {
	tpl := &models.EquipmentTemplate{Categories: []models.TemplateCategory{{Code: "A", Items: []models.TemplateItem{{ID: 1}, {ID: 2}, {ID: 3}}}}}
	ev, err := Evaluate(tpl, map[string]models.ItemResult{"1": {Result: "U.Y"}, "2": {Result: "U"}})
	require.NoError(t, err)
	assert.Equal(t, 66, ev.Completion)
}

func TestEvaluateEmptyTemplateIsComplete(t *testing.T) {
	ev, err := Evaluate(&models.EquipmentTemplate{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, ev.Completion)
	assert.Empty(t, ev.Missing)

	ev, err = Evaluate(nil, map[string]models.ItemResult{"x": {Result: "U"}})
	require.NoError(t, err)
	assert.Equal(t, 100, ev.Completion)
	assert.Contains(t, ev.FormData, "x")
}

func TestEvaluateRejectsUnknownItemsAndResults(t *testing.T) {
	_, err := Evaluate(forkliftLike(), map[string]models.ItemResult{
		"9":   {Result: "U"},
		"abc": {Result: "U"},
		"1":   {Result: "OK"},
	})
	require.Error(t, err)

	var inv *InvalidError
	require.ErrorAs(t, err, &inv)
	assert.Len(t, inv.Problems, 3)
}

func TestEvaluateChecksKeysOfEmptyAndAliasedEntries(t *testing.T) {
	_, err := Evaluate(forkliftLike(), map[string]models.ItemResult{
		"1":  {Result: "U"},
		"01": {Result: "UD"},
		"x":  {},
	})
	var inv *InvalidError
	require.ErrorAs(t, err, &inv)
	require.Len(t, inv.Problems, 2)
	assert.Equal(t, "x", inv.Problems[1].Item)

	ev, err := Evaluate(forkliftLike(), map[string]models.ItemResult{"02": {Result: "U"}, "3": {}})
	require.NoError(t, err)
	assert.Equal(t, models.ItemResult{Result: "U"}, ev.FormData["2"])
	assert.NotContains(t, ev.FormData, "3")
}

func TestBuildView(t *testing.T) {
	insp := &models.Inspection{
		ID:                   "insp-1",
		Status:               models.StatusInProgress,
		EquipmentInfo:        models.EquipmentInfo{EquipmentType: "forklift", SerialNumber: "SN-1"},
		CompletionPercentage: 25,
	}

	v := BuildView(insp, "ACME", forkliftLike())
	assert.Equal(t, "tpl-1", v.TemplateID)
	assert.Equal(t, "FORKLIFT", v.TemplateName)
	assert.Len(t, v.ControlItems, 4)
	assert.NotNil(t, v.FormData)
	assert.NotNil(t, v.GeneralInfo)
	assert.Equal(t, 25, v.CompletionPercentage)

	v = BuildView(insp, "ACME", nil)
	assert.Empty(t, v.TemplateID)
	assert.NotNil(t, v.Categories)
	assert.Empty(t, v.ControlItems)
}
