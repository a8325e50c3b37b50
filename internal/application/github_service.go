package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/devhubhq/devhub-api/internal/domain/repository"
	"github.com/devhubhq/devhub-api/internal/infrastructure/github"
	"github.com/devhubhq/devhub-api/pkg/helpers"
)

var ErrRepoNotFound = errors.New("github repository not found")

const (
	ghTokenTTL     = 8 * time.Hour
	ghRepoCacheTTL = 5 * time.Minute
)

// GitHubService links platform accounts to GitHub and imports repositories as
// showcase projects. Access tokens live only in Redis with a TTL; they are
// never written to Postgres.
type GitHubService struct {
	gh       *github.Client
	users    repository.UserRepository
	projects *ProjectService
	rdb      *redis.Client
	log      *logrus.Logger
}

func NewGitHubService(gh *github.Client, users repository.UserRepository, projects *ProjectService, rdb *redis.Client, log *logrus.Logger) *GitHubService {
	return &GitHubService{gh: gh, users: users, projects: projects, rdb: rdb, log: log}
}

// AuthorizeURL returns the GitHub consent page URL for the given state.
func (s *GitHubService) AuthorizeURL(state string) string {
	return s.gh.AuthorizeURL(state)
}

// HandleCallback exchanges the authorization code, stores the access token,
// and links the GitHub profile to the account. The profile URL is only set
// the first time; an already linked URL is kept.
func (s *GitHubService) HandleCallback(ctx context.Context, userID, code string) (*github.User, error) {
	token, err := s.gh.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	ghUser, err := s.gh.GetUser(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	changed := false
	if user.GitHubURL == "" && ghUser.HTMLURL != "" {
		user.ChangeGitHubURL(ghUser.HTMLURL)
		changed = true
	}
	if user.ProfileImageURL == "" && ghUser.AvatarURL != "" {
		user.ChangeProfileImageURL(ghUser.AvatarURL)
		changed = true
	}
	if changed {
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	if err := helpers.RedisSetJSON(ctx, s.rdb, tokenKey(userID), token, ghTokenTTL); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "github_login": ghUser.Login}).Info("github account linked")
	return ghUser, nil
}

// ListRepos returns the linked account's repositories, cached briefly to keep
// repeated pagination off the GitHub API.
func (s *GitHubService) ListRepos(ctx context.Context, userID string, page, size int) ([]github.Repository, error) {
	token, err := s.accessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("github:repos:%s:%d:%d", userID, page, size)
	var cached []github.Repository
	if ok, err := helpers.RedisGetJSON(ctx, s.rdb, cacheKey, &cached); err == nil && ok {
		return cached, nil
	}

	repos, err := s.gh.ListRepos(ctx, token, page, size)
	if err != nil {
		return nil, err
	}
	if err := helpers.RedisSetJSON(ctx, s.rdb, cacheKey, repos, ghRepoCacheTTL); err != nil {
		s.log.WithError(err).Warn("failed to cache github repos")
	}
	return repos, nil
}

// ImportRepo creates a showcase project from a GitHub repository, carrying the
// description over and mapping language and topics onto tags.
func (s *GitHubService) ImportRepo(ctx context.Context, userID, owner, name string) (*github.Repository, error) {
	token, err := s.accessToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	repo, err := s.gh.GetRepo(ctx, token, owner, name)
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return nil, ErrRepoNotFound
	}

	tags := make([]string, 0, len(repo.Topics)+1)
	if repo.Language != "" {
		tags = append(tags, strings.ToLower(repo.Language))
	}
	tags = append(tags, repo.Topics...)

	if _, err := s.projects.Create(ctx, userID, ProjectInput{
		Title:       repo.Name,
		Description: repo.Description,
		GitHubURL:   repo.HTMLURL,
		Tags:        tags,
	}); err != nil {
		return nil, err
	}
	return repo, nil
}

func (s *GitHubService) accessToken(ctx context.Context, userID string) (string, error) {
	var token string
	ok, err := helpers.RedisGetJSON(ctx, s.rdb, tokenKey(userID), &token)
	if err != nil {
		return "", err
	}
	if !ok || token == "" {
		return "", ErrGitHubNotLinked
	}
	return token, nil
}

func tokenKey(userID string) string {
	return "github:token:" + userID
}
