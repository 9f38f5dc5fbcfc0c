package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// ModeLocal indica que o portal roda sobre o catálogo de demonstração
	// em memória, sem nenhum backend remoto.
	ModeLocal = "local"
	// ModeRemote indica que o portal usa o banco de documentos remoto.
	ModeRemote = "remote"

	envDatabaseDSN = "PORTAL_DATABASE_DSN"
	envPrefsPath   = "PORTAL_PREFS_PATH"

	// dsnPlaceholder é o valor que o .env de exemplo traz; enquanto ninguém o
	// substituir, o portal continua no modo local.
	dsnPlaceholder = "YOUR_DATABASE_DSN"
	// dsnMinLength descarta credenciais obviamente truncadas.
	dsnMinLength = 10

	defaultPrefsRelPath = "data/portal-prefs.json"
)

// RuntimeFlags resume a decisão de modo tomada na inicialização e os caminhos
// locais que o processo precisa. A decisão NÃO é reavaliada em tempo de
// execução: quem sobe em modo local fica em modo local até reiniciar.
type RuntimeFlags struct {
	Mode      string
	DSN       string
	PrefsPath string
}

// Remote informa se o backend remoto foi selecionado.
func (f RuntimeFlags) Remote() bool {
	return f.Mode == ModeRemote
}

// LoadRuntimeFlags lê o ambiente e decide o modo de operação. O backend
// remoto é considerado configurado quando a credencial existe, não é o
// placeholder do .env de exemplo e passa do tamanho mínimo — o mesmo critério
// de "configuração válida" do site original.
func LoadRuntimeFlags() RuntimeFlags {
	dsn := strings.TrimSpace(os.Getenv(envDatabaseDSN))

	mode := ModeLocal
	if dsn != "" && dsn != dsnPlaceholder && len(dsn) > dsnMinLength {
		mode = ModeRemote
	}

	prefsPath := strings.TrimSpace(os.Getenv(envPrefsPath))
	if prefsPath == "" {
		prefsPath = defaultPrefsRelPath
	}

	return RuntimeFlags{
		Mode:      mode,
		DSN:       dsn,
		PrefsPath: normalisePath(prefsPath),
	}
}

// normalisePath expande o caminho para absoluto, aceitando ~ e relativos.
func normalisePath(raw string) string {
	if raw == "" {
		return raw
	}
	if strings.HasPrefix(raw, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			raw = filepath.Join(home, strings.TrimPrefix(raw, "~"))
		}
	}
	if filepath.IsAbs(raw) {
		return raw
	}
	if abs, err := filepath.Abs(raw); err == nil {
		return abs
	}
	return raw
}
