package usecase

import (
	"context"

	"github.com/jhoicas/Pos-api/internal/application/auth"
	"github.com/jhoicas/Pos-api/internal/application/dto"
	"github.com/jhoicas/Pos-api/internal/domain"
	"github.com/jhoicas/Pos-api/internal/domain/entity"
	"github.com/jhoicas/Pos-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (módulo users).
type UserUseCase struct {
	repo repository.UserRepository
	hub  *auth.SessionHub
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, hub *auth.SessionHub) *UserUseCase {
	return &UserUseCase{repo: repo, hub: hub}
}

// List lista usuarios.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	users, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: int(total)},
	}, nil
}

// UpdateRole cambia el rol de un usuario y publica user_updated. Un admin no puede quitarse su propio rol.
func (uc *UserUseCase) UpdateRole(ctx context.Context, actorID, userID string, role entity.Role) (*dto.UserResponse, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if actorID == userID && role != entity.RoleAdmin {
		return nil, domain.ErrConflict
	}
	if err := uc.repo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	uc.hub.Publish(auth.EventUserUpdated, user)
	return auth.ToUserResponse(user), nil
}
