package services

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tubeharvest/releasekit/internal/core/domain"
	"github.com/tubeharvest/releasekit/internal/core/ports/driving"
)

// Ensure WorkflowService implements the interface.
var _ driving.WorkflowRenderer = (*WorkflowService)(nil)

// WorkflowService renders the CI workflow definition from a spec.
// Rendering is deterministic: all mappings are emitted through structs
// or explicit node builders, never Go maps.
type WorkflowService struct{}

// NewWorkflowService creates a new workflow renderer.
func NewWorkflowService() *WorkflowService {
	return &WorkflowService{}
}

// Workflow document model. Field order is emission order.

type workflowDoc struct {
	Name string       `yaml:"name"`
	On   triggersDoc  `yaml:"on"`
	Jobs yaml.Node    `yaml:"jobs"`
}

type triggersDoc struct {
	Push        pushTrigger   `yaml:"push"`
	PullRequest branchTrigger `yaml:"pull_request"`
}

type pushTrigger struct {
	Branches []string `yaml:"branches"`
	Tags     []string `yaml:"tags,omitempty"`
}

type branchTrigger struct {
	Branches []string `yaml:"branches"`
}

type testJob struct {
	RunsOn   string      `yaml:"runs-on"`
	Strategy strategyDoc `yaml:"strategy"`
	Steps    []stepDoc   `yaml:"steps"`
}

type strategyDoc struct {
	FailFast bool      `yaml:"fail-fast"`
	Matrix   matrixDoc `yaml:"matrix"`
}

type matrixDoc struct {
	OS            []string `yaml:"os"`
	PythonVersion []string `yaml:"python-version"`
}

type plainJob struct {
	RunsOn string    `yaml:"runs-on"`
	If     string    `yaml:"if,omitempty"`
	Needs  string    `yaml:"needs,omitempty"`
	Steps  []stepDoc `yaml:"steps"`
}

type stepDoc struct {
	Name string     `yaml:"name,omitempty"`
	Uses string     `yaml:"uses,omitempty"`
	With *yaml.Node `yaml:"with,omitempty"`
	Env  *yaml.Node `yaml:"env,omitempty"`
	Run  string     `yaml:"run,omitempty"`
}

// Render produces the workflow YAML for the spec.
func (s *WorkflowService) Render(ctx context.Context, spec domain.WorkflowSpec) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if !spec.Matrix.Valid() {
		return nil, fmt.Errorf("%w: matrix needs at least one OS and one interpreter version", domain.ErrInvalidInput)
	}
	if spec.Name == "" {
		spec.Name = "CI"
	}
	if spec.Package == "" {
		spec.Package = "tubeharvest"
	}
	if len(spec.Lint.StrictSelectors) == 0 {
		spec.Lint = domain.DefaultLintPolicy()
	}

	doc := workflowDoc{
		Name: spec.Name,
		On: triggersDoc{
			Push:        pushTrigger{Branches: []string{"main"}},
			PullRequest: branchTrigger{Branches: []string{"main"}},
		},
	}
	if spec.UploadOnTag {
		doc.On.Push.Tags = []string{"v*"}
	}

	jobs := []mapEntry{{key: "test", value: s.testJob(spec)}}
	if spec.UploadOnTag {
		jobs = append(jobs,
			mapEntry{key: "build", value: s.buildJob(spec)},
			mapEntry{key: "publish", value: s.publishJob()},
		)
	}

	jobsNode, err := mapNode(jobs...)
	if err != nil {
		return nil, err
	}
	doc.Jobs = *jobsNode

	var buf strings.Builder
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode workflow: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode workflow: %w", err)
	}

	return []byte(buf.String()), nil
}

// testJob builds the matrix test job. The lint policy invariant lives
// here: the strict selector pass fails the job, the style pass always
// exits zero.
func (s *WorkflowService) testJob(spec domain.WorkflowSpec) testJob {
	strict := strings.Join(spec.Lint.StrictSelectors, ",")

	steps := []stepDoc{
		{Uses: "actions/checkout@v4"},
		{
			Name: "Set up Python ${{ matrix.python-version }}",
			Uses: "actions/setup-python@v5",
			With: mustMapNode(mapEntry{key: "python-version", value: "${{ matrix.python-version }}"}),
		},
		{
			Name: "Install dependencies",
			Run:  "python -m pip install --upgrade pip\npip install -e \".[dev]\"",
		},
		{
			Name: "Lint (errors)",
			Run: fmt.Sprintf("flake8 %s --count --select=%s --show-source --statistics",
				spec.Package, strict),
		},
		{
			Name: "Lint (style)",
			Run: fmt.Sprintf("flake8 %s --count --exit-zero --max-complexity=%d --max-line-length=%d --statistics",
				spec.Package, spec.Lint.MaxComplexity, spec.Lint.MaxLineLength),
		},
		{
			Name: "Type check",
			Run:  fmt.Sprintf("mypy %s", spec.Package),
		},
		{
			Name: "Test",
			Run:  "pytest tests/ -v --cov=" + spec.Package,
		},
		{
			Name: "Security scan",
			Run:  fmt.Sprintf("bandit -r %s", spec.Package),
		},
	}

	return testJob{
		RunsOn: "${{ matrix.os }}",
		Strategy: strategyDoc{
			FailFast: false,
			Matrix: matrixDoc{
				OS:            spec.Matrix.OSes,
				PythonVersion: spec.Matrix.InterpreterVersions,
			},
		},
		Steps: steps,
	}
}

// buildJob builds the artifacts when a release tag is pushed.
func (s *WorkflowService) buildJob(spec domain.WorkflowSpec) plainJob {
	return plainJob{
		RunsOn: "ubuntu-latest",
		If:     "startsWith(github.ref, 'refs/tags/v')",
		Needs:  "test",
		Steps: []stepDoc{
			{Uses: "actions/checkout@v4"},
			{
				Name: "Set up Python",
				Uses: "actions/setup-python@v5",
				With: mustMapNode(mapEntry{key: "python-version", value: "3.12"}),
			},
			{
				Name: "Build distributions",
				Run:  "python -m pip install build twine\npython -m build",
			},
			{
				Name: "Check distributions",
				Run:  "python -m twine check dist/*",
			},
			{
				Name: "Upload artifacts",
				Uses: "actions/upload-artifact@v4",
				With: mustMapNode(
					mapEntry{key: "name", value: "dist"},
					mapEntry{key: "path", value: "dist/"},
				),
			},
		},
	}
}

// publishJob uploads the built artifacts to the package index.
func (s *WorkflowService) publishJob() plainJob {
	return plainJob{
		RunsOn: "ubuntu-latest",
		If:     "startsWith(github.ref, 'refs/tags/v')",
		Needs:  "build",
		Steps: []stepDoc{
			{
				Name: "Download artifacts",
				Uses: "actions/download-artifact@v4",
				With: mustMapNode(
					mapEntry{key: "name", value: "dist"},
					mapEntry{key: "path", value: "dist/"},
				),
			},
			{
				Name: "Publish to package index",
				Run:  "python -m pip install twine\npython -m twine upload dist/*",
				Env: mustMapNode(
					mapEntry{key: "TWINE_USERNAME", value: "__token__"},
					mapEntry{key: "TWINE_PASSWORD", value: "${{ secrets.PYPI_API_TOKEN }}"},
				),
			},
		},
	}
}

// mapEntry is one key/value pair of an ordered YAML mapping.
type mapEntry struct {
	key   string
	value any
}

// mapNode builds a YAML mapping node with deterministic key order.
// Go maps randomise iteration, which would make rendering
// non-reproducible.
func mapNode(entries ...mapEntry) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range entries {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.key}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(e.value); err != nil {
			return nil, fmt.Errorf("encode %s: %w", e.key, err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

func mustMapNode(entries ...mapEntry) *yaml.Node {
	node, err := mapNode(entries...)
	if err != nil {
		panic(err)
	}
	return node
}
