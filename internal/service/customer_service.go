package service

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"

	"royalcert/internal/models"
	"royalcert/internal/repository"
)

type CustomerInput struct {
	CompanyName   string             `json:"company_name" validate:"required"`
	ContactPerson string             `json:"contact_person" validate:"required"`
	Phone         string             `json:"phone" validate:"required"`
	Email         string             `json:"email" validate:"required,email"`
	Address       string             `json:"address" validate:"required"`
	Equipments    []models.Equipment `json:"equipments" validate:"dive"`
}

func (in *CustomerInput) normalize() {
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.ContactPerson = strings.TrimSpace(in.ContactPerson)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	if in.Equipments == nil {
		in.Equipments = []models.Equipment{}
	}
	for i := range in.Equipments {
		in.Equipments[i].EquipmentType = strings.TrimSpace(in.Equipments[i].EquipmentType)
		in.Equipments[i].SerialNumber = strings.TrimSpace(in.Equipments[i].SerialNumber)
	}
}

type ImportTemplate struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	// Content is the hex-encoded xlsx file.
	Content string `json:"content"`
}

type CustomerService interface {
	Create(ctx context.Context, actor *models.User, in CustomerInput) (*models.Customer, error)
	List(ctx context.Context, query string) ([]models.Customer, error)
	Get(ctx context.Context, id string) (*models.Customer, error)
	Update(ctx context.Context, actor *models.User, id string, in CustomerInput) (*models.Customer, error)
	Delete(ctx context.Context, actor *models.User, id string) error
	ImportTemplate(ctx context.Context) (*ImportTemplate, error)
}

type customerService struct {
	customers   repository.CustomerRepository
	inspections repository.InspectionRepository
	audit       AuditService
}

func NewCustomerService(customers repository.CustomerRepository, inspections repository.InspectionRepository, audit AuditService) CustomerService {
	return &customerService{customers: customers, inspections: inspections, audit: audit}
}

func (s *customerService) Create(ctx context.Context, actor *models.User, in CustomerInput) (*models.Customer, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	c := &models.Customer{
		CompanyName:   in.CompanyName,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		Equipments:    in.Equipments,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor.ID, models.EntityCustomer, c.ID, "create", "Müşteri oluşturuldu: "+c.CompanyName)
	return c, nil
}

func (s *customerService) List(ctx context.Context, query string) ([]models.Customer, error) {
	return s.customers.List(ctx, query)
}

func (s *customerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCustomerNotFound
	}
	return c, err
}

func (s *customerService) Update(ctx context.Context, actor *models.User, id string, in CustomerInput) (*models.Customer, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	c.CompanyName = in.CompanyName
	c.ContactPerson = in.ContactPerson
	c.Phone = in.Phone
	c.Email = in.Email
	c.Address = in.Address
	c.Equipments = in.Equipments
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor.ID, models.EntityCustomer, c.ID, "update", "Müşteri güncellendi: "+c.CompanyName)
	return c, nil
}

func (s *customerService) Delete(ctx context.Context, actor *models.User, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	open, err := s.inspections.Count(ctx, repository.InspectionFilter{CustomerID: id, Statuses: models.OpenStatuses})
	if err != nil {
		return err
	}
	if open > 0 {
		return ErrCustomerHasOpenInspections
	}

	if err := s.customers.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}

	s.audit.Record(ctx, actor.ID, models.EntityCustomer, id, "delete", "Müşteri silindi: "+c.CompanyName)
	return nil
}

func (s *customerService) ImportTemplate(context.Context) (*ImportTemplate, error) {
	data, err := BuildImportSheet()
	if err != nil {
		return nil, err
	}
	return &ImportTemplate{
		Message:  "Toplu içe aktarma şablonu hazır",
		Filename: importSheetFilename,
		Content:  hex.EncodeToString(data),
	}, nil
}
