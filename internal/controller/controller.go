package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"usuarios-admin/internal/client"
	"usuarios-admin/internal/domain"
)

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
)

// notificationTTL is how long a notification stays visible without
// explicit dismissal.
const notificationTTL = 5 * time.Second

// Notification is a transient user-facing message.
type Notification struct {
	Message  string
	Severity Severity
	shownAt  time.Time
}

// Controller caches the usuario collection client-side and mediates all
// mutations through the REST client. After every successful mutation the
// cache is patched with the exact record the server returned, never an
// optimistic guess.
type Controller struct {
	mu       sync.Mutex
	api      *client.Client
	usuarios []domain.Usuario
	editing  *domain.Usuario
	loading  bool
	notif    *Notification
	now      func() time.Time
}

func New(api *client.Client) *Controller {
	return &Controller{
		api:     api,
		loading: true,
		now:     time.Now,
	}
}

// Load replaces the cached collection with the server's. A failed fetch
// still leaves the controller ready, with a danger notification.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	usuarios, err := c.api.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.notify("Error de conexión al cargar usuarios", SeverityDanger)
		return err
	}
	c.usuarios = usuarios
	return nil
}

func (c *Controller) Create(ctx context.Context, payload client.UsuarioPayload) error {
	usuario, err := c.api.Create(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.notify(fmt.Sprintf("Error al crear usuario: %v", err), SeverityDanger)
		return err
	}

	c.usuarios = append([]domain.Usuario{*usuario}, c.usuarios...)
	c.notify(fmt.Sprintf("Usuario %s %s creado correctamente", usuario.Nombre, usuario.Apellido), SeveritySuccess)
	return nil
}

func (c *Controller) Update(ctx context.Context, id int64, payload client.UsuarioPayload) error {
	usuario, err := c.api.Update(ctx, id, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.notify(fmt.Sprintf("Error al actualizar usuario: %v", err), SeverityDanger)
		return err
	}

	for i := range c.usuarios {
		if c.usuarios[i].ID == id {
			c.usuarios[i] = *usuario
			break
		}
	}
	c.editing = nil
	c.notify(fmt.Sprintf("Usuario %s %s actualizado correctamente", usuario.Nombre, usuario.Apellido), SeveritySuccess)
	return nil
}

func (c *Controller) Delete(ctx context.Context, id int64) error {
	err := c.api.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.notify(fmt.Sprintf("Error al eliminar usuario: %v", err), SeverityDanger)
		return err
	}

	var eliminado *domain.Usuario
	kept := c.usuarios[:0]
	for i := range c.usuarios {
		if c.usuarios[i].ID == id {
			u := c.usuarios[i]
			eliminado = &u
			continue
		}
		kept = append(kept, c.usuarios[i])
	}
	c.usuarios = kept

	// deleting the record being edited cancels the edit
	if c.editing != nil && c.editing.ID == id {
		c.editing = nil
	}

	if eliminado != nil {
		c.notify(fmt.Sprintf("Usuario %s %s eliminado correctamente", eliminado.Nombre, eliminado.Apellido), SeveritySuccess)
	} else {
		c.notify("Usuario eliminado correctamente", SeveritySuccess)
	}
	return nil
}

// Edit marks the usuario with the given id as the editing target.
func (c *Controller) Edit(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.usuarios {
		if c.usuarios[i].ID == id {
			u := c.usuarios[i]
			c.editing = &u
			return true
		}
	}
	return false
}

func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = nil
}

func (c *Controller) Editing() *domain.Usuario {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return nil
	}
	u := *c.editing
	return &u
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Usuarios returns a copy of the cached collection.
func (c *Controller) Usuarios() []domain.Usuario {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Usuario, len(c.usuarios))
	copy(out, c.usuarios)
	return out
}

// Notification returns the current notification, expiring it once it has
// been visible for longer than its TTL.
func (c *Controller) Notification() *Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.notif == nil {
		return nil
	}
	if c.now().Sub(c.notif.shownAt) > notificationTTL {
		c.notif = nil
		return nil
	}
	n := *c.notif
	return &n
}

func (c *Controller) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notif = nil
}

func (c *Controller) notify(message string, severity Severity) {
	c.notif = &Notification{
		Message:  message,
		Severity: severity,
		shownAt:  c.now(),
	}
}
