// Package app abre e fecha os recursos externos do portal conforme o modo de
// execução decidido na partida.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andrensaraiva/PortalJogosSENAI/internal/config"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/domain/admin"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/infra/client"
	appLogger "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/logger"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/infra/objstore"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/infra/prefs"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/store/remote"

	redislib "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Resources agrega tudo que o processo abre na partida. DB, SQLDB e Redis
// ficam nil no modo local.
type Resources struct {
	Flags   config.RuntimeFlags
	DB      *gorm.DB
	SQLDB   *sql.DB
	Redis   *redislib.Client
	Prefs   *prefs.Store
	Objects *objstore.Store
	ObjCfg  objstore.Config
}

// Bootstrap carrega o ambiente, inicializa o logger e abre os recursos do
// modo escolhido. A escolha entre remoto e local acontece aqui, uma única
// vez, e não é reavaliada durante a vida do processo.
func Bootstrap(ctx context.Context) (*Resources, error) {
	config.LoadEnvFiles()

	if _, err := appLogger.Init(); err != nil {
		return nil, fmt.Errorf("inicializar logger: %w", err)
	}
	log := appLogger.S().With("component", "app.bootstrap")

	flags := config.LoadRuntimeFlags()
	res := &Resources{Flags: flags}

	prefStore, err := prefs.Open(flags.PrefsPath)
	if err != nil {
		return nil, fmt.Errorf("abrir preferências: %w", err)
	}
	res.Prefs = prefStore

	objCfg := objstore.FromEnv()
	objects, err := objstore.Open(ctx, objCfg)
	if err != nil {
		return nil, fmt.Errorf("abrir bucket de imagens: %w", err)
	}
	res.Objects = objects
	res.ObjCfg = objCfg

	if !flags.Remote() {
		log.Infow("banco não configurado, portal em modo local com dados de demonstração")
		return res, nil
	}

	db, sqlDB, err := client.NewGORMMySQL(flags.DSN)
	if err != nil {
		return nil, fmt.Errorf("conectar banco: %w", err)
	}
	res.DB = db
	res.SQLDB = sqlDB

	if err := remote.New(db).AutoMigrate(); err != nil {
		return nil, fmt.Errorf("migrar tabelas do catálogo: %w", err)
	}
	if err := db.WithContext(ctx).AutoMigrate(&admin.Account{}); err != nil {
		return nil, fmt.Errorf("migrar tabela de admins: %w", err)
	}

	redisOpts, err := client.NewDefaultRedisOptions()
	if err != nil {
		// Sem Redis o modo remoto segue com sessões e limites em memória.
		log.Infow("redis não configurado, usando alternativas em memória", "reason", err.Error())
	} else {
		redisClient, redisErr := client.NewRedisClient(ctx, redisOpts)
		if redisErr != nil {
			log.Warnw("falha ao conectar redis, usando alternativas em memória", "error", redisErr)
		} else {
			res.Redis = redisClient
		}
	}

	log.Infow("modo remoto ativo", "redis", res.Redis != nil)
	return res, nil
}

// Close libera os recursos abertos.
func (r *Resources) Close() error {
	if r == nil {
		return nil
	}
	var firstErr error
	if r.Redis != nil {
		if err := r.Redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if r.SQLDB != nil {
		if err := r.SQLDB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if r.Objects != nil {
		if err := r.Objects.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
