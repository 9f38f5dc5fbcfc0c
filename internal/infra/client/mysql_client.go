package client

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	mysqlDriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewGORMMySQL abre a conexão GORM com o banco remoto a partir do DSN já
// validado pelos RuntimeFlags, devolvendo também o *sql.DB para controle de
// ciclo de vida. Um ping inicial confirma que o banco está alcançável antes
// de o processo se comprometer com o modo remoto.
func NewGORMMySQL(dsn string) (*gorm.DB, *sql.DB, error) {
	if dsn == "" {
		return nil, nil, fmt.Errorf("mysql dsn is required")
	}

	gormDB, err := gorm.Open(mysqlDriver.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("open gorm mysql: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}

	sqlDB.SetConnMaxLifetime(60 * time.Minute)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(25)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("ping mysql: %w", err)
	}

	return gormDB, sqlDB, nil
}
