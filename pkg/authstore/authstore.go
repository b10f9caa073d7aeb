// Package authstore guarda o estado de autenticação do painel: token e
// usuário, sempre gravados juntos e apagados juntos, num único documento
// JSON. Fora do navegador não existe o evento de storage entre abas, então o
// próprio login/logout publica a notificação para quem assinou.
package authstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"lopes-agenda/pkg/adminaccess"
	"lopes-agenda/pkg/models"
)

// Event é publicado a cada mutação do estado de autenticação.
type Event struct {
	Type string // "login" ou "logout"
}

type persisted struct {
	Token   string          `json:"token"`
	Usuario *models.Usuario `json:"user"`
}

// Store é o estado de autenticação do processo.
type Store struct {
	mu      sync.RWMutex
	path    string
	token   string
	usuario *models.Usuario

	subMu  sync.Mutex
	subs   map[int]chan Event
	nextID int
}

func New(path string) *Store {
	return &Store{
		path: path,
		subs: make(map[int]chan Event),
	}
}

// Load lê o estado persistido na inicialização. Arquivo ausente não é erro:
// significa que ninguém está logado.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read auth state: %w", err)
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		// Estado corrompido equivale a deslogado.
		return nil
	}

	s.mu.Lock()
	s.token = p.Token
	s.usuario = p.Usuario
	s.mu.Unlock()

	return nil
}

// SaveAuth grava usuário e token como um par. O isAdmin persistido é o
// resultado da avaliação completa (objeto do usuário + claims do token),
// igual ao que o painel web fazia antes de guardar no localStorage.
func (s *Store) SaveAuth(usuario *models.Usuario, token string) error {
	if usuario == nil {
		return errors.New("usuário vazio")
	}

	usuario.IsAdmin = adminaccess.ValidateAdminAccess(usuario.Extra, token)

	s.mu.Lock()
	s.token = token
	s.usuario = usuario
	err := s.persistLocked()
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.publish(Event{Type: "login"})
	return nil
}

// Clear apaga token e usuário juntos.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.usuario = nil
	err := os.Remove(s.path)
	s.mu.Unlock()

	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear auth state: %w", err)
	}

	s.publish(Event{Type: "logout"})
	return nil
}

func (s *Store) persistLocked() error {
	data, err := json.Marshal(persisted{Token: s.token, Usuario: s.usuario})
	if err != nil {
		return fmt.Errorf("failed to encode auth state: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create auth dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write auth state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace auth state: %w", err)
	}

	return nil
}

// Token devolve o token atual, ou vazio quando deslogado.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Usuario devolve o usuário atual, ou nil.
func (s *Store) Usuario() *models.Usuario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usuario
}

func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.usuario != nil
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usuario != nil && s.usuario.IsAdmin
}

// Subscribe registra um assinante de eventos de login/logout. O segundo
// retorno cancela a assinatura e fecha o canal.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan Event, 4)
	s.subs[id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}

	return ch, cancel
}

func (s *Store) publish(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			// assinante lento não bloqueia login/logout
		}
	}
}
