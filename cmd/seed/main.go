package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/andrensaraiva/PortalJogosSENAI/internal/app"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/catalogdata"
	admindomain "github.com/andrensaraiva/PortalJogosSENAI/internal/domain/admin"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/infra/logger"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/repository"
	remotestore "github.com/andrensaraiva/PortalJogosSENAI/internal/store/remote"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	adminEmail    = flag.String("admin-email", "", "e-mail do administrador inicial (ou ADMIN_EMAIL)")
	adminPassword = flag.String("admin-password", "", "senha do administrador inicial (ou ADMIN_PASSWORD)")
	adminName     = flag.String("admin-name", "Administrador", "nome exibido do administrador inicial")
)

// main popula o banco remoto com o catálogo de demonstração e, se informado,
// cria a conta administrativa inicial. Exige PORTAL_DATABASE_DSN configurado.
func main() {
	flag.Parse()

	if _, err := logger.Init(); err != nil {
		panic(fmt.Sprintf("init logger failed: %v", err))
	}
	defer logger.Sync()
	sugar := logger.S().With("cmd", "seed")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resources, err := app.Bootstrap(ctx)
	if err != nil {
		sugar.Fatalw("falha ao inicializar recursos", "error", err)
	}
	defer func() {
		if closeErr := resources.Close(); closeErr != nil {
			sugar.Warnw("erro ao liberar recursos", "error", closeErr)
		}
	}()

	if !resources.Flags.Remote() {
		sugar.Fatalw("seed exige banco remoto; defina PORTAL_DATABASE_DSN")
	}

	st := remotestore.New(resources.DB)
	games := catalogdata.Games()
	students := catalogdata.Students()
	cohorts := catalogdata.Cohorts()
	if err := st.Seed(ctx, games, students, cohorts); err != nil {
		sugar.Fatalw("falha ao popular o catálogo", "error", err)
	}
	sugar.Infow("catálogo de demonstração gravado",
		"games", len(games),
		"students", len(students),
	)

	email := firstNonEmpty(*adminEmail, os.Getenv("ADMIN_EMAIL"))
	password := firstNonEmpty(*adminPassword, os.Getenv("ADMIN_PASSWORD"))
	if email == "" || password == "" {
		sugar.Infow("conta administrativa não criada; informe -admin-email e -admin-password")
		return
	}

	if err := ensureAdminAccount(ctx, resources.DB, email, *adminName, password); err != nil {
		sugar.Fatalw("falha ao criar conta administrativa", "error", err)
	}
	sugar.Infow("conta administrativa pronta", "email", email)
}

// ensureAdminAccount cria a conta se ainda não existir. Contas existentes são
// preservadas para não sobrescrever senhas em produção.
func ensureAdminAccount(ctx context.Context, db *gorm.DB, email, name, password string) error {
	repo := repository.NewAdminRepository(db)

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("gerar hash da senha: %w", err)
	}
	return repo.Create(ctx, &admindomain.Account{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         name,
		PasswordHash: string(hash),
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
