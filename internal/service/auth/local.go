package auth

import (
	"context"
	"strings"
	"sync"

	appLogger "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/logger"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/infra/prefs"

	"go.uber.org/zap"
)

// Credenciais fixas do modo local, sem banco de dados.
const (
	localAdminUser     = "admin"
	localAdminPassword = "senai123"
)

// LocalService implementa a sessão administrativa do modo offline: compara
// as credenciais com os literais acima e persiste o estado no arquivo de
// preferências, para a sessão sobreviver a reinícios.
type LocalService struct {
	notifier

	mu      sync.RWMutex
	session Session
	prefs   *prefs.Store
	logger  *zap.SugaredLogger
}

// NewLocalService cria o serviço local e restaura a sessão gravada nas
// preferências.
func NewLocalService(store *prefs.Store) *LocalService {
	s := &LocalService{
		prefs:  store,
		logger: appLogger.S().With("component", "auth.local"),
	}
	if store != nil {
		if value, ok := store.Get(prefs.KeyAdmin); ok && value == "true" {
			s.session = localAdminSession()
			s.logger.Infow("sessão administrativa restaurada das preferências")
		}
	}
	return s
}

func localAdminSession() Session {
	return Session{
		Admin:    true,
		Identity: AdminIdentity{Email: localAdminUser, Name: "Administrador"},
	}
}

// Login compara as credenciais com os valores fixos do modo local.
func (s *LocalService) Login(_ context.Context, params LoginParams) (Session, error) {
	log := s.logger.With("operation", "login", "login", params.Email)

	if strings.TrimSpace(params.Email) != localAdminUser || params.Password != localAdminPassword {
		log.Warnw("credenciais recusadas")
		return Session{}, ErrInvalidLogin
	}

	session := localAdminSession()

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	if s.prefs != nil {
		if err := s.prefs.Set(prefs.KeyAdmin, "true"); err != nil {
			log.Warnw("falha ao persistir sessão", "error", err)
		}
	}

	log.Infow("login do admin aceito")
	s.notify(session)
	return session, nil
}

// Logout encerra a sessão e remove o registro das preferências. O token é
// ignorado: o modo local não emite tokens.
func (s *LocalService) Logout(_ context.Context, _ string) error {
	s.mu.Lock()
	s.session = Session{}
	s.mu.Unlock()

	if s.prefs != nil {
		if err := s.prefs.Delete(prefs.KeyAdmin); err != nil {
			s.logger.Warnw("falha ao limpar sessão persistida", "error", err)
		}
	}

	s.logger.Infow("logout do admin")
	s.notify(Session{})
	return nil
}

// Current devolve a sessão corrente.
func (s *LocalService) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Subscribe registra um assinante de mudanças de sessão.
func (s *LocalService) Subscribe(fn func(Session)) func() {
	return s.notifier.Subscribe(fn)
}
