package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/bnema/sitestyle/internal/infrastructure/config"
)

const dirPerm = 0o755

var (
	genDocsOutputDir string
	genDocsFormat    string
)

// docFormat writes the whole command tree into dir.
type docFormat struct {
	ext        string
	defaultDir func() (string, error)
	generate   func(root *cobra.Command, dir string) error
}

var docFormats = map[string]docFormat{
	"man": {
		ext:        ".1",
		defaultDir: config.GetManDir,
		generate: func(root *cobra.Command, dir string) error {
			date := manDate(buildInfo.BuildDate)
			return doc.GenManTree(root, &doc.GenManHeader{
				Title:   "SITESTYLE",
				Section: "1",
				Source:  versionString(buildInfo),
				Manual:  "sitestyle manual",
				Date:    &date,
			}, dir)
		},
	},
	"markdown": {
		ext:        ".md",
		defaultDir: func() (string, error) { return "docs", nil },
		generate:   doc.GenMarkdownTree,
	},
}

var genDocsCmd = &cobra.Command{
	Use:   "gen-docs",
	Short: "Generate man pages or markdown for every command",
	Long: `Generate documentation from the command definitions.

Man pages go to $XDG_DATA_HOME/man/man1 by default, so 'man sitestyle'
works right away. Markdown goes to ./docs.

Examples:
  sitestyle gen-docs
  sitestyle gen-docs --format markdown
  sitestyle gen-docs -o ./man`,
	Args: cobra.NoArgs,
	RunE: runGenDocs,
}

func init() {
	rootCmd.AddCommand(genDocsCmd)
	genDocsCmd.Flags().StringVarP(&genDocsOutputDir, "output", "o", "", "output directory")
	genDocsCmd.Flags().StringVarP(&genDocsFormat, "format", "f", "man", "output format: man, markdown")
}

// manDate uses the build date when main set one, so rebuilt pages do not
// change on every run.
func manDate(buildDate string) time.Time {
	if t, err := time.Parse(time.RFC3339, buildDate); err == nil {
		return t
	}
	return time.Now()
}

func runGenDocs(cmd *cobra.Command, _ []string) error {
	format, ok := docFormats[genDocsFormat]
	if !ok {
		return fmt.Errorf("unsupported format %q (use: man, markdown)", genDocsFormat)
	}

	dir := genDocsOutputDir
	if dir == "" {
		var err error
		if dir, err = format.defaultDir(); err != nil {
			return fmt.Errorf("resolve output directory: %w", err)
		}
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true
	if err := format.generate(root, dir); err != nil {
		return fmt.Errorf("generate %s docs: %w", genDocsFormat, err)
	}

	written, err := filepath.Glob(filepath.Join(dir, "*"+format.ext))
	if err != nil {
		return err
	}
	cmd.Printf("Generated %d %s pages in %s\n", len(written), genDocsFormat, dir)
	return nil
}
