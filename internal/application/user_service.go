package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/devhubhq/devhub-api/internal/domain/entity"
	"github.com/devhubhq/devhub-api/internal/domain/repository"
	"github.com/devhubhq/devhub-api/pkg/helpers"
)

// UserService covers profile reads and updates, role administration, and
// avatar uploads.
type UserService struct {
	users     repository.UserRepository
	gcs       *storage.Client
	gcsBucket string
	log       *logrus.Logger
}

func NewUserService(users repository.UserRepository, gcs *storage.Client, gcsBucket string, log *logrus.Logger) *UserService {
	return &UserService{users: users, gcs: gcs, gcsBucket: gcsBucket, log: log}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserService) List(ctx context.Context, page, size int) ([]*entity.User, int, error) {
	return s.users.List(ctx, page, size)
}

// ProfileUpdate carries the optional profile fields; nil means leave as is.
type ProfileUpdate struct {
	Username   *string
	GitHubURL  *string
	DiscordURL *string
}

// UpdateProfile applies a partial update. A user may edit their own profile;
// admins may edit anyone's.
func (s *UserService) UpdateProfile(ctx context.Context, actorID string, actorRole entity.Role, targetID string, upd ProfileUpdate) (*entity.User, error) {
	if actorID != targetID && actorRole != entity.RoleAdmin {
		return nil, ErrForbidden
	}

	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if upd.Username != nil {
		if err := user.ChangeUsername(*upd.Username); err != nil {
			return nil, err
		}
	}
	if upd.GitHubURL != nil {
		user.ChangeGitHubURL(*upd.GitHubURL)
	}
	if upd.DiscordURL != nil {
		user.ChangeDiscordURL(*upd.DiscordURL)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangeRole promotes or demotes a user. The admin check is enforced by the
// entity, keyed off the acting user's stored role rather than the request.
func (s *UserService) ChangeRole(ctx context.Context, actorID, targetID string, newRole entity.Role) (*entity.User, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := target.ChangeRole(newRole, actor); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, target); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"actor_id":  actorID,
		"target_id": targetID,
		"role":      string(newRole),
	}).Info("user role changed")
	return target, nil
}

// UploadAvatar stores the image in the bucket under a per-user path and
// records the public URL on the profile.
func (s *UserService) UploadAvatar(ctx context.Context, userID, filename, contentType string, r io.Reader) (*entity.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	object := fmt.Sprintf("avatars/%s/%d-%s%s",
		userID, time.Now().Unix(), uuid.NewString()[:8], path.Ext(filename))
	url, err := helpers.UploadObject(ctx, s.gcs, s.gcsBucket, object, contentType, r)
	if err != nil {
		return nil, err
	}

	user.ChangeProfileImageURL(url)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
