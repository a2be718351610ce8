package profile

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/application/service"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
)

type GithubReposUseCase struct {
	lookup service.RepoLookup
}

func NewGithubReposUseCase(lookup service.RepoLookup) *GithubReposUseCase {
	return &GithubReposUseCase{lookup: lookup}
}

func (uc *GithubReposUseCase) Execute(ctx context.Context, username string) (json.RawMessage, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.NewUpstream("No Github profile found", nil)
	}
	body, err := uc.lookup.FetchRepos(ctx, username)
	if err != nil {
		if errors.Is(err, service.ErrRepoOwnerNotFound) {
			return nil, apperror.NewUpstream("No Github profile found", err)
		}
		return nil, apperror.NewInternal("github lookup failed", err)
	}
	return body, nil
}
