package admin

import "time"

// Account representa uma conta do painel administrativo no banco. As contas
// de admin guardam hash bcrypt, diferente das senhas dos alunos que o portal
// herda em texto puro do cadastro das turmas.
type Account struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"size:255;uniqueIndex" json:"email"`
	Name         string     `gorm:"size:128" json:"name"`
	PasswordHash string     `gorm:"size:255" json:"-"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName fixa o nome da tabela.
func (Account) TableName() string {
	return "admin_accounts"
}
