package propagate

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/efp-dev-ops/ai-workflow-automation/internal/cfg"
)

// Coordinates of the central repository hosting the reusable workflows.
// They are baked into every rendered caller workflow.
const (
	CentralOwner = "efp-dev-ops"
	CentralRepo  = "ai-workflow-automation"
)

const (
	reviewWorkflowFile   = "ai-review.yml"
	onDemandWorkflowFile = "ai-on-demand.yml"
)

// reviewActionRef is the pinned third-party action executing the actual
// review, forwarded verbatim to the reusable workflow.
const reviewActionRef = "anthropics/claude-code-action@v1"

const botMention = "@efp-dev-ops"

// The rendered documents contain GitHub Actions expressions (${{ ... }})
// whose syntax collides with the default text/template delimiters, therefore
// the workflow templates use << >>.
var callerWorkflowTmpl = template.Must(template.New("caller").Delims("<<", ">>").Parse(
	`# Managed by << .CentralOwner >>/<< .CentralRepo >>. Do not edit manually,
# changes are overwritten by the next workflow-sync run.
name: AI Code Review

on:
  pull_request:
    types: [opened, synchronize, reopened]

permissions:
  contents: read
  pull-requests: write
  issues: write

jobs:
  ai-review:
    uses: << .CentralOwner >>/<< .CentralRepo >>/.github/workflows/pr-review.yml@v<< .WorkflowVersion >>
    with:
      config-profile: << .ConfigProfile >>
      repository-config: .github/ai-review-config.yml
      review-action: << .ReviewAction >>
      enable-security-review: true
      enable-quality-review: true
      enable-docs-review: true
    secrets:
      ai-review-api-key: ${{ secrets.AI_REVIEW_API_KEY }}
      automation-token: ${{ secrets.WORKFLOW_AUTOMATION_TOKEN }}
      slack-webhook-url: ${{ secrets.SLACK_WEBHOOK_URL }}
      review-metrics-token: ${{ secrets.REVIEW_METRICS_TOKEN }}
`))

var onDemandWorkflowTmpl = template.Must(template.New("ondemand").Delims("<<", ">>").Parse(
	`# Managed by << .CentralOwner >>/<< .CentralRepo >>. Do not edit manually,
# changes are overwritten by the next workflow-sync run.
name: AI On-Demand Assistant

on:
  issue_comment:
    types: [created]
  pull_request_review_comment:
    types: [created]
  pull_request_review:
    types: [submitted]
  issues:
    types: [opened]

permissions:
  contents: read
  pull-requests: write
  issues: write

jobs:
  ai-assistant:
    uses: << .CentralOwner >>/<< .CentralRepo >>/.github/workflows/issue-response.yml@v<< .WorkflowVersion >>
    with:
      config-profile: << .ConfigProfile >>
      bot-mention: "<< .BotMention >>"
    secrets:
      ai-review-api-key: ${{ secrets.AI_REVIEW_API_KEY }}
      automation-token: ${{ secrets.WORKFLOW_AUTOMATION_TOKEN }}
      slack-webhook-url: ${{ secrets.SLACK_WEBHOOK_URL }}
      review-metrics-token: ${{ secrets.REVIEW_METRICS_TOKEN }}
`))

var pullRequestBodyTmpl = template.Must(template.New("prbody").Parse(
	`## 🤖 AI Workflow Automation Update

This pull request updates the caller workflows to version **v{{ .WorkflowVersion }}**.

- Workflow version: v{{ .WorkflowVersion }}
- Configuration profile: {{ .ConfigProfile }}
- Source: [{{ .CentralOwner }}/{{ .CentralRepo }}](https://github.com/{{ .CentralOwner }}/{{ .CentralRepo }})
{{ if .UpdateMessage }}
### Notes

{{ .UpdateMessage }}
{{ end }}
---
*Opened automatically by [workflow-sync](https://github.com/{{ .CentralOwner }}/{{ .CentralRepo }}).*
`))

type templateParams struct {
	CentralOwner    string
	CentralRepo     string
	WorkflowVersion string
	ConfigProfile   string
	ReviewAction    string
	BotMention      string
	UpdateMessage   string
}

func (p *Propagator) templateParams(repo *cfg.Repository) *templateParams {
	return &templateParams{
		CentralOwner:    CentralOwner,
		CentralRepo:     CentralRepo,
		WorkflowVersion: p.config.WorkflowVersion,
		ConfigProfile:   repo.ConfigProfile,
		ReviewAction:    reviewActionRef,
		BotMention:      botMention,
		UpdateMessage:   p.config.UpdateMessage,
	}
}

func render(tmpl *template.Template, params *templateParams) (string, error) {
	var buf bytes.Buffer

	if err := tmpl.Execute(&buf, params); err != nil {
		return "", fmt.Errorf("rendering %s template failed: %w", tmpl.Name(), err)
	}

	return buf.String(), nil
}

// RenderCallerWorkflow renders the pull-request triggered caller workflow
// document for repo.
// The output is deterministic, the same config profile and workflow version
// always yield byte-identical text.
func (p *Propagator) RenderCallerWorkflow(repo *cfg.Repository) (string, error) {
	return render(callerWorkflowTmpl, p.templateParams(repo))
}

// RenderOnDemandWorkflow renders the on-demand assistant workflow document
// for repo.
func (p *Propagator) RenderOnDemandWorkflow(repo *cfg.Repository) (string, error) {
	return render(onDemandWorkflowTmpl, p.templateParams(repo))
}

func (p *Propagator) renderPullRequestBody(repo *cfg.Repository) (string, error) {
	return render(pullRequestBodyTmpl, p.templateParams(repo))
}

func (p *Propagator) pullRequestTitle() string {
	return fmt.Sprintf("🤖 Update AI Workflow Automation to v%s", p.config.WorkflowVersion)
}

// OnDemandPath derives the path of the on-demand workflow document from the
// configured caller workflow path by replacing the ai-review.yml filename
// segment.
// If the configured path does not contain the segment, the on-demand document
// is placed next to it.
func OnDemandPath(workflowPath string) string {
	if strings.Contains(workflowPath, reviewWorkflowFile) {
		return strings.Replace(workflowPath, reviewWorkflowFile, onDemandWorkflowFile, 1)
	}

	return path.Join(path.Dir(workflowPath), onDemandWorkflowFile)
}

// BranchName returns the name of the integration branch used to stage the
// rendered documents for version.
func BranchName(version string) string {
	return "workflow-automation/update-v" + version
}

func commitMessage(version string) string {
	return "chore: update AI workflow automation to v" + version
}

// versionMarker is the substring whose presence in the remote caller workflow
// marks the repository as up-to-date.
func versionMarker(version string) string {
	return "@v" + version
}
