// Package prefs persiste preferências da interface em um arquivo JSON local,
// cumprindo o papel que o armazenamento do navegador cumpre no portal.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Chaves conhecidas do arquivo de preferências.
const (
	KeyTheme = "senai-game-port-theme"
	KeyAdmin = "senai-admin"
)

// Store lê e grava pares chave/valor em um arquivo JSON. Todas as operações
// são seguras para uso concorrente; cada escrita regrava o arquivo inteiro.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// Open carrega (ou cria) o arquivo de preferências no caminho informado.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: make(map[string]string)}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("prefs: falha ao ler %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("prefs: arquivo %s corrompido: %w", path, err)
	}
	return s, nil
}

// Get devolve o valor da chave e se ela existe.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok
}

// Set grava o valor da chave e persiste o arquivo.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flushLocked()
}

// Delete remove a chave e persiste o arquivo. Remover chave inexistente não é
// erro.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flushLocked()
}

// Path devolve o caminho do arquivo atendido por este Store.
func (s *Store) Path() string {
	return s.path
}

// flushLocked grava o arquivo via rename para nunca deixar um JSON parcial no
// disco. Exige o mutex já adquirido.
func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("prefs: falha ao serializar: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("prefs: falha ao criar diretório %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*")
	if err != nil {
		return fmt.Errorf("prefs: falha ao criar arquivo temporário: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("prefs: falha ao gravar %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("prefs: falha ao fechar %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("prefs: falha ao substituir %s: %w", s.path, err)
	}
	return nil
}
