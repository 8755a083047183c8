// Package githubclt provides a github API client.
package githubclt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v59/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/efp-dev-ops/ai-workflow-automation/internal/logfields"
)

const DefaultHTTPClientTimeout = time.Minute

const loggerName = "github_client"

// ErrNotFound is returned when a queried object does not exist in the remote
// repository.
var ErrNotFound = errors.New("not found")

// ErrPullRequestExists is returned by CreatePullRequest when an open pull
// request for the same head and base branch already exists.
var ErrPullRequestExists = errors.New("pull request already exists")

// New returns a new github api client.
func New(oauthAPItoken string) *Client {
	httpClient := newHTTPClient(oauthAPItoken)
	return &Client{
		restClt: github.NewClient(httpClient),
		logger:  zap.L().Named(loggerName),
	}
}

func newHTTPClient(apiToken string) *http.Client {
	if apiToken == "" {
		return &http.Client{
			Timeout: DefaultHTTPClientTimeout,
		}
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: apiToken},
	)

	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = DefaultHTTPClientTimeout

	return tc
}

// Client is an github API client.
type Client struct {
	restClt *github.Client
	logger  *zap.Logger
}

// PullRequest describes a created pull request.
type PullRequest struct {
	Number  int
	HTMLURL string
}

// DefaultBranch returns the name of the repository's default branch.
func (clt *Client) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	repository, _, err := clt.restClt.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return "", err
	}

	branch := repository.GetDefaultBranch()
	if branch == "" {
		return "", errors.New("github returned a repository object with an empty default branch field")
	}

	return branch, nil
}

// BranchHeadSHA returns the commit SHA the branch head points to.
func (clt *Client) BranchHeadSHA(ctx context.Context, owner, repo, branch string) (string, error) {
	ref, _, err := clt.restClt.Git.GetRef(ctx, owner, repo, "refs/heads/"+branch)
	if err != nil {
		return "", err
	}

	sha := ref.GetObject().GetSHA()
	if sha == "" {
		return "", errors.New("github returned a ref object with an empty sha field")
	}

	return sha, nil
}

// EnsureBranch creates the branch pointing at sha.
// If a branch of the same name already exists it is reset to sha via a forced
// ref update, it is never merged.
// The returned bool is true when the branch was created and false when an
// existing branch was reset.
func (clt *Client) EnsureBranch(ctx context.Context, owner, repo, branch, sha string) (created bool, err error) {
	ref := &github.Reference{
		Ref:    github.String("refs/heads/" + branch),
		Object: &github.GitObject{SHA: github.String(sha)},
	}

	_, _, err = clt.restClt.Git.CreateRef(ctx, owner, repo, ref)
	if err == nil {
		return true, nil
	}

	if !isRefExistsErr(err) {
		return false, err
	}

	_, _, err = clt.restClt.Git.UpdateRef(ctx, owner, repo, ref, true)
	if err != nil {
		return false, fmt.Errorf("resetting existing branch failed: %w", err)
	}

	return false, nil
}

// FileContent returns the decoded content and the blob SHA of the file at
// path.
// When ref is empty the repository's default branch is queried.
// If the file does not exist an error wrapping ErrNotFound is returned.
func (clt *Client) FileContent(ctx context.Context, owner, repo, path, ref string) (content, blobSHA string, err error) {
	var opts *github.RepositoryContentGetOptions
	if ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: ref}
	}

	fileContent, _, resp, err := clt.restClt.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", "", fmt.Errorf("%s: %w", path, ErrNotFound)
		}

		return "", "", err
	}

	if fileContent == nil {
		return "", "", fmt.Errorf("%s is not a file", path)
	}

	content, err = fileContent.GetContent()
	if err != nil {
		return "", "", fmt.Errorf("decoding content of %s failed: %w", path, err)
	}

	return content, fileContent.GetSHA(), nil
}

// UpsertFile writes content to path on branch, creating the file when it does
// not exist and updating it in place when it does.
func (clt *Client) UpsertFile(ctx context.Context, owner, repo, path, branch, message string, content []byte) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
		Branch:  github.String(branch),
	}

	_, blobSHA, err := clt.FileContent(ctx, owner, repo, path, branch)
	switch {
	case err == nil:
		opts.SHA = github.String(blobSHA)
		_, _, err = clt.restClt.Repositories.UpdateFile(ctx, owner, repo, path, opts)

	case errors.Is(err, ErrNotFound):
		_, _, err = clt.restClt.Repositories.CreateFile(ctx, owner, repo, path, opts)

	default:
		return fmt.Errorf("reading current content of %s failed: %w", path, err)
	}

	if err != nil {
		return err
	}

	clt.logger.Debug(
		"file written",
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.Branch(branch),
		logfields.Path(path),
		logfields.Event("github_file_upserted"),
	)

	return nil
}

// CreatePullRequest opens a pull request from the head branch into the base
// branch.
// If an open pull request for the same head and base already exists, an error
// wrapping ErrPullRequestExists is returned.
func (clt *Client) CreatePullRequest(ctx context.Context, owner, repo, head, base, title, body string) (*PullRequest, error) {
	pr, _, err := clt.restClt.PullRequests.Create(ctx, owner, repo, &github.NewPullRequest{
		Title: github.String(title),
		Head:  github.String(head),
		Base:  github.String(base),
		Body:  github.String(body),
	})
	if err != nil {
		if isPullRequestExistsErr(err) {
			return nil, fmt.Errorf("%s -> %s: %w", head, base, ErrPullRequestExists)
		}

		return nil, err
	}

	return &PullRequest{
		Number:  pr.GetNumber(),
		HTMLURL: pr.GetHTMLURL(),
	}, nil
}

// AddLabels adds labels to a pull request or issue.
func (clt *Client) AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	if len(labels) == 0 {
		// github removes all labels when an empty list is sent, guard
		// against it
		return errors.New("provided label list is empty")
	}

	_, _, err := clt.restClt.Issues.AddLabelsToIssue(ctx, owner, repo, number, labels)
	return err
}

// isRefExistsErr returns true if err is the 422 response github sends when a
// ref of the same name already exists.
func isRefExistsErr(err error) bool {
	var respErr *github.ErrorResponse
	if !errors.As(err, &respErr) {
		return false
	}

	if respErr.Response == nil || respErr.Response.StatusCode != http.StatusUnprocessableEntity {
		return false
	}

	return strings.Contains(strings.ToLower(respErr.Message), "reference already exists")
}

// isPullRequestExistsErr returns true if err is the 422 response github sends
// when an open pull request for the same head and base branch exists.
func isPullRequestExistsErr(err error) bool {
	var respErr *github.ErrorResponse
	if !errors.As(err, &respErr) {
		return false
	}

	if respErr.Response == nil || respErr.Response.StatusCode != http.StatusUnprocessableEntity {
		return false
	}

	if strings.Contains(strings.ToLower(respErr.Message), "pull request already exists") {
		return true
	}

	for _, e := range respErr.Errors {
		if strings.Contains(strings.ToLower(e.Message), "pull request already exists") {
			return true
		}
	}

	return false
}
