package repository

import (
	"context"
	"time"

	"github.com/andrensaraiva/PortalJogosSENAI/internal/domain/admin"

	"gorm.io/gorm"
)

// AdminRepository concentra o acesso às contas administrativas via GORM.
type AdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository cria o repositório sobre o *gorm.DB compartilhado.
func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create grava uma conta administrativa.
func (r *AdminRepository) Create(ctx context.Context, account *admin.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// FindByEmail busca a conta pelo e-mail; ausente, devolve
// gorm.ErrRecordNotFound.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*admin.Account, error) {
	var account admin.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// TouchLastLogin registra o horário do login bem-sucedido.
func (r *AdminRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&admin.Account{}).
		Where("id = ?", id).
		Update("last_login_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
