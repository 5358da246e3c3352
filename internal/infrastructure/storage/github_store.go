package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// GitHubStore stores content objects as files in a GitHub repository,
// committed through the contents API.
type GitHubStore struct {
	client *github.Client
	owner  string
	repo   string
	branch string
}

// NewGitHubStore creates a new GitHub-backed content store
func NewGitHubStore(ctx context.Context, owner, repo, branch, token string) *GitHubStore {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &GitHubStore{
		client: github.NewClient(oauth2.NewClient(ctx, ts)),
		owner:  owner,
		repo:   repo,
		branch: branch,
	}
}

// Put creates or updates the file at path and returns its download URL
func (s *GitHubStore) Put(ctx context.Context, path string, content []byte, message string) (string, error) {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
		Branch:  github.String(s.branch),
	}

	// An existing file can only be updated with its current blob SHA.
	sha, err := s.existingSHA(ctx, path)
	if err != nil {
		return "", err
	}

	var result *github.RepositoryContentResponse
	if sha != "" {
		opts.SHA = github.String(sha)
		result, _, err = s.client.Repositories.UpdateFile(ctx, s.owner, s.repo, path, opts)
	} else {
		result, _, err = s.client.Repositories.CreateFile(ctx, s.owner, s.repo, path, opts)
	}
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}

	if result.Content != nil && result.Content.GetDownloadURL() != "" {
		return result.Content.GetDownloadURL(), nil
	}
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", s.owner, s.repo, s.branch, path), nil
}

func (s *GitHubStore) existingSHA(ctx context.Context, path string) (string, error) {
	fc, _, resp, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, path, &github.RepositoryContentGetOptions{
		Ref: s.branch,
	})
	if err != nil {
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
			return "", nil
		}
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to check existing file %s: %w", path, err)
	}
	if fc == nil {
		return "", nil
	}
	return fc.GetSHA(), nil
}
