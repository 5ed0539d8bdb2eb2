package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/sitestyle/internal/application/usecase"
	"github.com/bnema/sitestyle/internal/infrastructure/htmldoc"
	"github.com/bnema/sitestyle/internal/logging"
)

var (
	previewDomain string
	previewOutput string
)

var previewCmd = &cobra.Command{
	Use:   "preview <file.html>",
	Short: "Apply a domain's settings to a saved HTML page",
	Long: `Apply the settings stored for --domain to an HTML file and print the
styled document. Font sizes are resolved from inline styles only.

Examples:
  sitestyle preview page.html --domain news.example
  sitestyle preview page.html -d news.example -o styled.html`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringVarP(&previewDomain, "domain", "d", "", "domain whose settings are applied")
	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "", "write to file instead of stdout")
	_ = previewCmd.MarkFlagRequired("domain")
}

func runPreview(cmd *cobra.Command, args []string) (retErr error) {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx := logging.WithDomain(a.Ctx(), previewDomain)

	in, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	doc, err := htmldoc.Parse(in)
	_ = in.Close()
	if err != nil {
		return err
	}

	cfg, err := a.SettingsUC.Get(ctx, previewDomain)
	if err != nil {
		return err
	}
	if err := usecase.NewStylePageUseCase().ApplyOnLoad(ctx, doc, cfg); err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if previewOutput != "" {
		f, err := os.Create(previewOutput)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && retErr == nil {
				retErr = fmt.Errorf("close output: %w", closeErr)
			}
		}()
		out = f
	}
	return doc.Render(out)
}
