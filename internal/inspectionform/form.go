// Package inspectionform turns an equipment template into a fillable
// checklist and evaluates the results an inspector submits against it.
package inspectionform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"royalcert/internal/models"
)

// ControlItem is a template item flattened out of its category.
type ControlItem struct {
	models.TemplateItem
	Category     string `json:"category"`
	CategoryName string `json:"category_name"`
}

// View is what the inspector's form screen renders.
type View struct {
	InspectionID         string                       `json:"inspection_id"`
	Status               models.InspectionStatus      `json:"status"`
	CustomerName         string                       `json:"customer_name"`
	EquipmentType        string                       `json:"equipment_type"`
	EquipmentSerial      string                       `json:"equipment_serial"`
	TemplateID           string                       `json:"template_id,omitempty"`
	TemplateName         string                       `json:"template_name,omitempty"`
	Categories           []models.TemplateCategory    `json:"categories"`
	ControlItems         []ControlItem                `json:"control_items"`
	FormData             map[string]models.ItemResult `json:"form_data"`
	GeneralInfo          map[string]any               `json:"general_info"`
	CompletionPercentage int                          `json:"completion_percentage"`
}

// Flatten lists the template's items in category order. A nil template
// yields an empty, non-nil slice.
func Flatten(tpl *models.EquipmentTemplate) []ControlItem {
	items := []ControlItem{}
	if tpl == nil {
		return items
	}
	for _, cat := range tpl.Categories {
		for _, it := range cat.Items {
			items = append(items, ControlItem{TemplateItem: it, Category: cat.Code, CategoryName: cat.Name})
		}
	}
	return items
}

// BuildView assembles the form for an inspection. tpl may be nil when no
// template matches the equipment.
func BuildView(insp *models.Inspection, customerName string, tpl *models.EquipmentTemplate) View {
	v := View{
		InspectionID:         insp.ID,
		Status:               insp.Status,
		CustomerName:         customerName,
		EquipmentType:        insp.EquipmentInfo.EquipmentType,
		EquipmentSerial:      insp.EquipmentInfo.SerialNumber,
		Categories:           []models.TemplateCategory{},
		ControlItems:         Flatten(tpl),
		FormData:             insp.FormData,
		GeneralInfo:          insp.GeneralInfo,
		CompletionPercentage: insp.CompletionPercentage,
	}
	if tpl != nil {
		v.TemplateID = tpl.ID
		v.TemplateName = tpl.Name
		v.Categories = tpl.Categories
	}
	if v.FormData == nil {
		v.FormData = map[string]models.ItemResult{}
	}
	if v.GeneralInfo == nil {
		v.GeneralInfo = map[string]any{}
	}
	return v
}

// Problem describes one rejected entry of a submission.
type Problem struct {
	Item    string `json:"item"`
	Message string `json:"message"`
}

type InvalidError struct {
	Problems []Problem
}

func (e *InvalidError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, fmt.Sprintf("%s: %s", p.Item, p.Message))
	}
	return "geçersiz form verisi: " + strings.Join(msgs, "; ")
}

// Evaluation is the normalized outcome of a submission.
type Evaluation struct {
	FormData   map[string]models.ItemResult
	Completion int
	// Missing holds required item ids without a result, ascending.
	Missing []int
}

func validResult(r string) bool {
	switch r {
	case models.ResultSuitable, models.ResultUnsuitable, models.ResultNotApplicable:
		return true
	}
	return false
}

// Evaluate checks formData against tpl and computes completion. With a
// template, every key must be one of its item ids, two keys may not name the
// same item ("1" and "01"), and comments on items without a comment field are
// discarded. Without a template only the result values are checked. Entries
// left with neither a result nor a comment are dropped.
func Evaluate(tpl *models.EquipmentTemplate, formData map[string]models.ItemResult) (*Evaluation, error) {
	byID := map[int]models.TemplateItem{}
	for _, it := range Flatten(tpl) {
		byID[it.ID] = it.TemplateItem
	}

	out := make(map[string]models.ItemResult, len(formData))
	var problems []Problem

	keys := make([]string, 0, len(formData))
	for k := range formData {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seen := map[string]string{}
	for _, key := range keys {
		res := formData[key]
		res.Result = strings.TrimSpace(res.Result)
		res.Comment = strings.TrimSpace(res.Comment)

		if tpl != nil {
			id, err := strconv.Atoi(strings.TrimSpace(key))
			item, ok := byID[id]
			if err != nil || !ok {
				problems = append(problems, Problem{Item: key, Message: "şablonda böyle bir madde yok"})
				continue
			}
			norm := strconv.Itoa(id)
			if prev, dup := seen[norm]; dup {
				problems = append(problems, Problem{Item: key, Message: fmt.Sprintf("%q ile aynı maddeyi gösteriyor", prev)})
				continue
			}
			seen[norm] = key
			if !item.HasComment {
				res.Comment = ""
			}
			key = norm
		}

		if res.Result != "" && !validResult(res.Result) {
			problems = append(problems, Problem{Item: key, Message: fmt.Sprintf("geçersiz sonuç %q (U, UD veya U.Y olmalı)", res.Result)})
			continue
		}
		if res.Result == "" && res.Comment == "" {
			continue
		}
		out[key] = res
	}

	if len(problems) > 0 {
		return nil, &InvalidError{Problems: problems}
	}

	ev := &Evaluation{FormData: out, Missing: []int{}}

	total, answered := 0, 0
	for _, it := range Flatten(tpl) {
		total++
		if out[strconv.Itoa(it.ID)].Result != "" {
			answered++
		} else if it.Required {
			ev.Missing = append(ev.Missing, it.ID)
		}
	}
	sort.Ints(ev.Missing)

	if total == 0 {
		ev.Completion = 100
	} else {
		ev.Completion = answered * 100 / total
	}
	return ev, nil
}
