package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"agency-backend/internal/auth"
	"agency-backend/internal/logger"
	"agency-backend/internal/models"
	"agency-backend/internal/remote"
	"agency-backend/internal/store"
	"agency-backend/internal/timeutil"
)

type UserService struct {
	store  *store.Store
	remote *remote.Client
	log    zerolog.Logger
}

func NewUserService(st *store.Store, rc *remote.Client) *UserService {
	return &UserService{
		store:  st,
		remote: rc,
		log:    logger.WithComponent("users"),
	}
}

// List returns all users with credentials stripped.
func (s *UserService) List() []models.User {
	users := s.store.Snapshot().Users
	out := make([]models.User, len(users))
	for i, u := range users {
		u.Password = ""
		out[i] = u
	}
	return out
}

func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	if req.Username == "" || req.Name == "" {
		return models.User{}, fmt.Errorf("%w: name and username are required", ErrInvalid)
	}
	switch req.Role {
	case models.RoleAdmin, models.RoleAccountant:
	case "":
		req.Role = models.RoleAccountant
	default:
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalid, req.Role)
	}
	for _, u := range s.store.Snapshot().Users {
		if u.Username == req.Username {
			return models.User{}, fmt.Errorf("%w: username %q already exists", ErrInvalid, req.Username)
		}
	}

	var user models.User
	if s.remote != nil {
		created, err := s.remote.CreateUser(ctx, req)
		if err != nil {
			return models.User{}, err
		}
		user = created
	} else {
		user = models.User{
			ID:        uuid.NewString(),
			Name:      req.Name,
			Username:  req.Username,
			Role:      req.Role,
			CreatedAt: timeutil.Timestamp(),
		}
		if req.Password != "" {
			hash, err := auth.HashPassword(req.Password)
			if err != nil {
				return models.User{}, err
			}
			user.Password = hash
		}
	}

	s.store.Update(func(d models.AppData) models.AppData {
		d.Users = append([]models.User{user}, d.Users...)
		return d
	})
	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("user created")

	user.Password = ""
	return user, nil
}

// Delete removes a user account. Deleting an id that does not exist is a
// no-op; deleting the last remaining admin is rejected.
func (s *UserService) Delete(ctx context.Context, id string) error {
	data := s.store.Snapshot()
	var target *models.User
	admins := 0
	for _, u := range data.Users {
		if u.Role == models.RoleAdmin {
			admins++
		}
		if u.ID == id {
			target = &u
		}
	}
	if target == nil {
		return nil
	}
	if target.Role == models.RoleAdmin && admins <= 1 {
		return fmt.Errorf("%w: cannot delete the last admin", ErrInvalid)
	}

	if s.remote != nil {
		if err := ignoreNotFound(s.remote.DeleteUser(ctx, id)); err != nil {
			return err
		}
	}
	s.store.Update(func(d models.AppData) models.AppData {
		out := d.Users[:0]
		for _, u := range d.Users {
			if u.ID != id {
				out = append(out, u)
			}
		}
		d.Users = out
		return d
	})
	return nil
}
