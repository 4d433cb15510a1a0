package service

import (
	"context"
	"testing"
	"time"

	"royalcert/internal/auth"
	"royalcert/internal/models"
	"royalcert/internal/repository/repotest"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	users       *repotest.Users
	customers   *repotest.Customers
	templates   *repotest.Templates
	inspections *repotest.Inspections
	audit       *repotest.Audit

	admin, planner, inspector, otherInspector, manager *models.User
	customer                                          *models.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:       repotest.NewUsers(),
		customers:   repotest.NewCustomers(),
		templates:   repotest.NewTemplates(),
		inspections: repotest.NewInspections(),
		audit:       repotest.NewAudit(),
	}
	f.admin = f.addUser(t, "admin", models.RoleAdmin)
	f.planner = f.addUser(t, "planner", models.RolePlanner)
	f.inspector = f.addUser(t, "denetci1", models.RoleInspector)
	f.otherInspector = f.addUser(t, "denetci2", models.RoleInspector)
	f.manager = f.addUser(t, "yonetici", models.RoleTechnicalMgr)

	f.customer = &models.Customer{CompanyName: "ACME Lojistik", ContactPerson: "Ali", Phone: "555", Email: "a@acme.test", Address: "İstanbul"}
	require.NoError(t, f.customers.Create(context.Background(), f.customer))
	return f
}

func (f *fixture) addUser(t *testing.T, username string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	u := &models.User{Username: username, Email: username + "@royalcert.test", FullName: username, PasswordHash: hash, Role: role, IsActive: true}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) auditService() AuditService { return NewAuditService(f.audit) }

func (f *fixture) inspectionService(now time.Time) *inspectionService {
	s := NewInspectionService(f.inspections, f.customers, f.users, f.templates, f.auditService()).(*inspectionService)
	s.now = func() time.Time { return now }
	return s
}

func (f *fixture) addInspection(t *testing.T, status models.InspectionStatus, serial string) *models.Inspection {
	t.Helper()
	insp := &models.Inspection{
		CustomerID:    f.customer.ID,
		InspectorID:   f.inspector.ID,
		EquipmentInfo: models.EquipmentInfo{EquipmentType: "FORKLIFT", SerialNumber: serial},
		PlannedDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:        status,
	}
	require.NoError(t, f.inspections.Create(context.Background(), insp))
	return insp
}

func (f *fixture) addForkliftTemplate(t *testing.T) *models.EquipmentTemplate {
	t.Helper()
	tpl := &models.EquipmentTemplate{
		Name:          "FORKLIFT MUAYENE FORMU",
		EquipmentType: "forklift",
		TemplateType:  models.TemplateForm,
		IsActive:      true,
		Categories: []models.TemplateCategory{
			{Code: "A", Name: "Kumanda", Items: []models.TemplateItem{
				{ID: 1, Text: "Acil durdurma", Required: true, HasComment: true},
				{ID: 2, Text: "Korna"},
			}},
			{Code: "B", Name: "Fren", Items: []models.TemplateItem{
				{ID: 3, Text: "Park freni", Required: true},
				{ID: 4, Text: "Servis freni"},
			}},
		},
	}
	require.NoError(t, f.templates.Create(context.Background(), tpl))
	return tpl
}
