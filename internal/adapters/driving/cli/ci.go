package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tubeharvest/releasekit/internal/core/domain"
)

var (
	ciOutput      string
	ciUploadOnTag bool
)

var ciCmd = &cobra.Command{
	Use:   "ci",
	Short: "Manage CI configuration",
}

var ciRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the CI workflow definition",
	Long: `Renders the CI workflow YAML: a test job crossing every OS with
every interpreter version, a strict lint pass that breaks the build on
syntax errors and undefined names, and an advisory style pass that
never fails.

Rendering is deterministic: the same configuration always produces the
same bytes. Output goes to stdout unless --output is given.`,
	RunE: runCIRender,
}

func init() {
	ciRenderCmd.Flags().StringVarP(&ciOutput, "output", "o", "", "write the workflow to this file instead of stdout")
	ciRenderCmd.Flags().BoolVar(&ciUploadOnTag, "upload-on-tag", true, "include the tag-triggered build and upload jobs")
	ciCmd.AddCommand(ciRenderCmd)
	rootCmd.AddCommand(ciCmd)
}

func runCIRender(cmd *cobra.Command, _ []string) error {
	if workflowService == nil {
		return errors.New("workflow service not configured")
	}

	spec := workflowSpecFromConfig()
	spec.UploadOnTag = ciUploadOnTag

	rendered, err := workflowService.Render(context.Background(), spec)
	if err != nil {
		return fmt.Errorf("render workflow: %w", err)
	}

	if ciOutput == "" {
		cmd.Print(string(rendered))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(ciOutput), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(ciOutput, rendered, 0644); err != nil {
		return err
	}
	cmd.Printf("%s Wrote %s (%d matrix jobs)\n", passMark(), ciOutput, spec.Matrix.Jobs())
	return nil
}

// workflowSpecFromConfig builds the workflow spec, letting configuration
// override the defaults.
func workflowSpecFromConfig() domain.WorkflowSpec {
	spec := domain.WorkflowSpec{
		Name:    "CI",
		Package: "tubeharvest",
		Matrix:  domain.DefaultMatrix(),
		Lint:    domain.DefaultLintPolicy(),
	}
	if configStore == nil {
		return spec
	}

	if pkg := configStore.GetString("project.package"); pkg != "" {
		spec.Package = pkg
	}
	if oses := configStore.GetStringSlice("ci.oses"); len(oses) > 0 {
		spec.Matrix.OSes = oses
	}
	if versions := configStore.GetStringSlice("ci.interpreter_versions"); len(versions) > 0 {
		spec.Matrix.InterpreterVersions = versions
	}
	if limit := configStore.GetInt("ci.max_line_length"); limit > 0 {
		spec.Lint.MaxLineLength = limit
	}
	return spec
}
