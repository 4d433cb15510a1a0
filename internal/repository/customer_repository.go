package repository

import (
	"context"
	"strings"

	"royalcert/internal/models"

	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, c *models.Customer) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var c models.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context, query string) ([]models.Customer, error) {
	q := r.db.WithContext(ctx).Order("company_name asc")
	if query = strings.TrimSpace(query); query != "" {
		q = q.Where("company_name ILIKE ?", "%"+escapeLike(query)+"%")
	}
	customers := []models.Customer{}
	if err := q.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, c *models.Customer) error {
	return translate(r.db.WithContext(ctx).Save(c).Error)
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Customer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&n).Error
	return n, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
