package assistant

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/swiftstock-api/internal/domain"
)

// Roles de los mensajes.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Greeting primer mensaje de toda sesión.
const Greeting = "Estoy conectado a los tableros de estado de red y de compras. ¿Qué insumo reviso?"

// Message mensaje del historial.
type Message struct {
	Role    string
	Content string
}

// Session conversación con el asistente. FacilityID es la instalación del operador
// (opcional) y se usa como origen de la búsqueda lateral.
type Session struct {
	ID         string
	FacilityID string
	Messages   []Message
	CreatedAt  time.Time
}

// NewSession crea una sesión con el saludo inicial.
func NewSession(id, facilityID string) *Session {
	return &Session{
		ID:         id,
		FacilityID: facilityID,
		Messages:   []Message{{Role: RoleAssistant, Content: Greeting}},
		CreatedAt:  time.Now().UTC(),
	}
}

func (s *Session) clone() *Session {
	c := *s
	c.Messages = append([]Message(nil), s.Messages...)
	return &c
}

// SessionStore sesiones en memoria; seguro para uso concurrente.
// Get devuelve copias: los cambios se publican con Append.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	newID    func() string
}

// NewSessionStore construye el almacén con IDs UUID.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session), newID: uuid.NewString}
}

// Create registra una sesión nueva.
func (st *SessionStore) Create(facilityID string) *Session {
	s := NewSession(st.newID(), facilityID)
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s.clone()
}

// Get devuelve una copia de la sesión.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	return s.clone(), true
}

// Append agrega mensajes al historial de forma atómica.
func (st *SessionStore) Append(id string, msgs ...Message) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("sesión %s: %w", id, domain.ErrNotFound)
	}
	s.Messages = append(s.Messages, msgs...)
	return s.clone(), nil
}

// Len número de sesiones activas.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
