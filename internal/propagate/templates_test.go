package propagate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/efp-dev-ops/ai-workflow-automation/internal/cfg"
)

func testConfig() *cfg.Config {
	return &cfg.Config{
		WorkflowVersion: "2.3.0",
		UpdateMessage:   "rollout of the new review pipeline",
		Repositories:    []*cfg.Repository{testRepository()},
	}
}

func testRepository() *cfg.Repository {
	return &cfg.Repository{
		Owner:          "efp-dev-ops",
		RepositoryName: "billing-service",
		WorkflowPath:   ".github/workflows/ai-review.yml",
		ConfigProfile:  "backend",
		Enabled:        true,
	}
}

func TestRenderCallerWorkflowIsDeterministic(t *testing.T) {
	p := newTestPropagator(t, nil, testConfig())
	repo := testRepository()

	first, err := p.RenderCallerWorkflow(repo)
	require.NoError(t, err)

	second, err := p.RenderCallerWorkflow(repo)
	require.NoError(t, err)

	assert.Equal(t, first, second, "repeated renders must be byte-identical")
	assert.Contains(t, first, "@v2.3.0")
	assert.Contains(t, first, "pr-review.yml@v2.3.0")
	assert.Contains(t, first, "config-profile: backend")
	assert.Contains(t, first, "${{ secrets.AI_REVIEW_API_KEY }}",
		"github actions expressions must survive template rendering")
}

func TestRenderedCallerWorkflowIsValidYAML(t *testing.T) {
	p := newTestPropagator(t, nil, testConfig())

	doc, err := p.RenderCallerWorkflow(testRepository())
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(doc), &parsed))

	jobs, ok := parsed["jobs"].(map[string]any)
	require.True(t, ok, "rendered document must have a jobs map")

	job, ok := jobs["ai-review"].(map[string]any)
	require.True(t, ok, "rendered document must have an ai-review job")

	assert.Equal(t,
		"efp-dev-ops/ai-workflow-automation/.github/workflows/pr-review.yml@v2.3.0",
		job["uses"])

	with, ok := job["with"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "backend", with["config-profile"])
	assert.Equal(t, "anthropics/claude-code-action@v1", with["review-action"])
	assert.Equal(t, true, with["enable-security-review"])
}

func TestRenderOnDemandWorkflow(t *testing.T) {
	p := newTestPropagator(t, nil, testConfig())

	doc, err := p.RenderOnDemandWorkflow(testRepository())
	require.NoError(t, err)

	assert.Contains(t, doc, "issue-response.yml@v2.3.0")
	assert.Contains(t, doc, `bot-mention: "@efp-dev-ops"`)

	// the four trigger events
	assert.Contains(t, doc, "issue_comment:")
	assert.Contains(t, doc, "pull_request_review_comment:")
	assert.Contains(t, doc, "pull_request_review:")
	assert.Contains(t, doc, "issues:")

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(doc), &parsed))
	_, ok := parsed["jobs"].(map[string]any)
	require.True(t, ok)
}

func TestOnDemandPath(t *testing.T) {
	testcases := []struct {
		workflowPath string
		expected     string
	}{
		{
			workflowPath: ".github/workflows/ai-review.yml",
			expected:     ".github/workflows/ai-on-demand.yml",
		},
		{
			workflowPath: "ai-review.yml",
			expected:     "ai-on-demand.yml",
		},
		{
			workflowPath: ".github/workflows/review.yml",
			expected:     ".github/workflows/ai-on-demand.yml",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.workflowPath, func(t *testing.T) {
			result := OnDemandPath(tc.workflowPath)
			assert.Equal(t, tc.expected, result)
			assert.NotEmpty(t, result)
		})
	}
}

func TestPullRequestTitleAndBody(t *testing.T) {
	p := newTestPropagator(t, nil, testConfig())

	assert.Equal(t, "🤖 Update AI Workflow Automation to v2.3.0", p.pullRequestTitle())

	body, err := p.renderPullRequestBody(testRepository())
	require.NoError(t, err)

	assert.Contains(t, body, "v2.3.0")
	assert.Contains(t, body, "backend")
	assert.Contains(t, body, "efp-dev-ops/ai-workflow-automation")
	assert.Contains(t, body, "rollout of the new review pipeline")
	assert.Contains(t, body, "*Opened automatically by")
}

func TestPullRequestBodyWithoutUpdateMessage(t *testing.T) {
	config := testConfig()
	config.UpdateMessage = ""
	p := newTestPropagator(t, nil, config)

	body, err := p.renderPullRequestBody(testRepository())
	require.NoError(t, err)

	assert.NotContains(t, body, "### Notes")
}

func TestBranchName(t *testing.T) {
	assert.Equal(t, "workflow-automation/update-v2.3.0", BranchName("2.3.0"))
}

func TestVersionMarkerIsEmbeddedExactlyOnceInUsesLine(t *testing.T) {
	p := newTestPropagator(t, nil, testConfig())

	doc, err := p.RenderCallerWorkflow(testRepository())
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(doc, "uses:"))
}
