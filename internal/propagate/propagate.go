// Package propagate updates the caller workflows of the configured satellite
// repositories to the configured workflow version.
//
// Repositories are processed sequentially in configuration order. For each
// enabled repository the remote caller workflow is checked for the version
// marker, and when it is stale the rendered documents are staged on a
// dedicated integration branch and a pull request is opened. One repository's
// failure never stops the batch.
package propagate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/efp-dev-ops/ai-workflow-automation/internal/cfg"
	"github.com/efp-dev-ops/ai-workflow-automation/internal/githubclt"
	"github.com/efp-dev-ops/ai-workflow-automation/internal/logfields"
)

const loggerName = "propagator"

// pullRequestLabels are attached to every opened pull request.
// Attaching them is best-effort, a labeling failure does not fail the
// repository.
var pullRequestLabels = []string{"automation", "ai-workflow"}

// GithubClient is the remote operation set the propagator needs.
// It is implemented by githubclt.Client.
type GithubClient interface {
	DefaultBranch(ctx context.Context, owner, repo string) (string, error)
	BranchHeadSHA(ctx context.Context, owner, repo, branch string) (string, error)
	EnsureBranch(ctx context.Context, owner, repo, branch, sha string) (created bool, err error)
	FileContent(ctx context.Context, owner, repo, path, ref string) (content, blobSHA string, err error)
	UpsertFile(ctx context.Context, owner, repo, path, branch, message string, content []byte) error
	CreatePullRequest(ctx context.Context, owner, repo, head, base, title, body string) (*githubclt.PullRequest, error)
	AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error
}

// Propagator runs one pass over the configured repository list.
type Propagator struct {
	clt    GithubClient
	config *cfg.Config
	logger *zap.Logger
}

func New(clt GithubClient, config *cfg.Config) *Propagator {
	return &Propagator{
		clt:    clt,
		config: config,
		logger: zap.L().Named(loggerName),
	}
}

// IsStale returns true when the caller workflow of repo needs an update.
// This is the case when the file does not exist in the repository's default
// branch or when its content does not contain the configured version marker.
// Remote errors other than not-found are returned unchanged.
func (p *Propagator) IsStale(ctx context.Context, repo *cfg.Repository) (bool, error) {
	content, _, err := p.clt.FileContent(ctx, repo.Owner, repo.RepositoryName, repo.WorkflowPath, "")
	if err != nil {
		if errors.Is(err, githubclt.ErrNotFound) {
			return true, nil
		}

		return false, fmt.Errorf("reading %s failed: %w", repo.WorkflowPath, err)
	}

	return !strings.Contains(content, versionMarker(p.config.WorkflowVersion)), nil
}

// SyncRepository brings one repository's caller workflows up to the
// configured version.
// Remote state that was already written when a later step fails is left in
// place, the next pass finishes the work.
func (p *Propagator) SyncRepository(ctx context.Context, repo *cfg.Repository) (Outcome, error) {
	logger := p.logger.With(
		logfields.RepositoryOwner(repo.Owner),
		logfields.Repository(repo.RepositoryName),
		logfields.WorkflowVersion(p.config.WorkflowVersion),
		logfields.ConfigProfile(repo.ConfigProfile),
	)

	if !repo.Enabled {
		logger.Info(
			"⏭️  skipping, repository is disabled",
			logfields.Event("repository_disabled"),
		)

		return OutcomeSkippedDisabled, nil
	}

	logger.Info(
		"🔍 checking repository",
		logfields.Event("staleness_check_started"),
	)

	stale, err := p.IsStale(ctx, repo)
	if err != nil {
		return OutcomeUndefined, err
	}

	if !stale {
		logger.Info(
			"⏭️  skipping, repository is up-to-date",
			logfields.Event("repository_uptodate"),
		)

		return OutcomeSkippedUpToDate, nil
	}

	if p.config.DryRun {
		logger.Info(
			"🔎 dry-run, repository is stale and would be updated",
			logfields.Event("dry_run_update_suppressed"),
			logfields.Path(repo.WorkflowPath),
		)

		return OutcomeSkippedDryRun, nil
	}

	return p.update(ctx, logger, repo)
}

func (p *Propagator) update(ctx context.Context, logger *zap.Logger, repo *cfg.Repository) (Outcome, error) {
	callerDoc, err := p.RenderCallerWorkflow(repo)
	if err != nil {
		return OutcomeUndefined, err
	}

	onDemandDoc, err := p.RenderOnDemandWorkflow(repo)
	if err != nil {
		return OutcomeUndefined, err
	}

	prBody, err := p.renderPullRequestBody(repo)
	if err != nil {
		return OutcomeUndefined, err
	}

	baseBranch, err := p.clt.DefaultBranch(ctx, repo.Owner, repo.RepositoryName)
	if err != nil {
		return OutcomeUndefined, fmt.Errorf("resolving default branch failed: %w", err)
	}

	headSHA, err := p.clt.BranchHeadSHA(ctx, repo.Owner, repo.RepositoryName, baseBranch)
	if err != nil {
		return OutcomeUndefined, fmt.Errorf("resolving head commit of %s failed: %w", baseBranch, err)
	}

	branch := BranchName(p.config.WorkflowVersion)

	created, err := p.clt.EnsureBranch(ctx, repo.Owner, repo.RepositoryName, branch, headSHA)
	if err != nil {
		return OutcomeUndefined, fmt.Errorf("creating branch %s failed: %w", branch, err)
	}

	if created {
		logger.Info(
			"🌿 branch created",
			logfields.Branch(branch),
			logfields.Commit(headSHA),
			logfields.Event("branch_created"),
		)
	} else {
		logger.Info(
			"🌿 existing branch reset to head of default branch",
			logfields.Branch(branch),
			logfields.Commit(headSHA),
			logfields.Event("branch_reused"),
		)
	}

	message := commitMessage(p.config.WorkflowVersion)

	err = p.clt.UpsertFile(ctx, repo.Owner, repo.RepositoryName, repo.WorkflowPath, branch, message, []byte(callerDoc))
	if err != nil {
		return OutcomeUndefined, fmt.Errorf("writing %s failed: %w", repo.WorkflowPath, err)
	}

	onDemandPath := OnDemandPath(repo.WorkflowPath)

	err = p.clt.UpsertFile(ctx, repo.Owner, repo.RepositoryName, onDemandPath, branch, message, []byte(onDemandDoc))
	if err != nil {
		return OutcomeUndefined, fmt.Errorf("writing %s failed: %w", onDemandPath, err)
	}

	pr, err := p.clt.CreatePullRequest(ctx, repo.Owner, repo.RepositoryName, branch, baseBranch, p.pullRequestTitle(), prBody)
	if err != nil {
		if errors.Is(err, githubclt.ErrPullRequestExists) {
			// an earlier pass already opened the PR, the file
			// writes above landed on its head branch
			logger.Info(
				"✅ pull request from an earlier run is still open",
				logfields.Branch(branch),
				logfields.Event("pull_request_already_exists"),
			)

			return OutcomeUpdated, nil
		}

		return OutcomeUndefined, fmt.Errorf("creating pull request failed: %w", err)
	}

	logger.Info(
		"✅ pull request created",
		logfields.PullRequest(pr.Number),
		logfields.Branch(branch),
		zap.String("github.pull_request_url", pr.HTMLURL),
		logfields.Event("pull_request_created"),
	)

	// labels are cosmetic, a failure must not fail the repository
	err = p.clt.AddLabels(ctx, repo.Owner, repo.RepositoryName, pr.Number, pullRequestLabels)
	if err != nil {
		logger.Warn(
			"adding labels to pull request failed",
			logfields.PullRequest(pr.Number),
			logfields.Event("adding_labels_failed"),
			zap.Error(err),
		)
	}

	return OutcomeUpdated, nil
}

// Run processes all configured repositories sequentially in configuration
// order and returns the aggregated result.
// Errors are recovered at the repository boundary, a failed repository is
// counted and the loop continues with the next one.
func (p *Propagator) Run(ctx context.Context) *RunResult {
	var result RunResult

	p.logger.Info(
		"🚀 starting workflow update propagation",
		logfields.WorkflowVersion(p.config.WorkflowVersion),
		zap.Int("repository_count", len(p.config.Repositories)),
		zap.Bool("dry_run", p.config.DryRun),
		logfields.Event("run_started"),
	)

	for _, repo := range p.config.Repositories {
		outcome, err := p.SyncRepository(ctx, repo)
		if err != nil {
			p.logger.Error(
				"❌ updating repository failed",
				logfields.RepositoryOwner(repo.Owner),
				logfields.Repository(repo.RepositoryName),
				logfields.Event("repository_update_failed"),
				zap.Error(err),
			)
		}

		result.record(outcome, err)
	}

	p.logger.Info(
		fmt.Sprintf("📊 run finished: %d updated, %d skipped, %d failed",
			result.Success, result.Skipped, result.Failed),
		zap.Int("success", result.Success),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
		logfields.Event("run_finished"),
	)

	return &result
}
