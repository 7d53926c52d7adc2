package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria; cada llamada toma el lock del Store.
type UserRepo struct {
	store *Store
}

// Create persiste un usuario. El email es único sin distinguir mayúsculas.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.st.users {
		if strings.EqualFold(existing.v.Email, u.Email) {
			return domain.NewError(domain.ErrConflict, "el email ya está registrado")
		}
	}
	put(r.store.st, r.store.st.users, u.ID, *u)
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return get(r.store.st.users, id), nil
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	found := collect(r.store.st.users, func(u entity.User) bool { return strings.EqualFold(u.Email, email) })
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}
