package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/sitestyle/internal/cli/styles"
	"github.com/bnema/sitestyle/internal/domain/build"
)

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Show version and build information",
	Long:  `Display version, build info, repository URL, and contributors.`,
	RunE:  runAbout,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println(versionString(buildInfo))
	},
}

func init() {
	rootCmd.AddCommand(aboutCmd)
	rootCmd.AddCommand(versionCmd)
}

func runAbout(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	cmd.Println(renderAbout(a.Theme, a.BuildInfo))
	return nil
}

func versionString(info build.Info) string {
	if info.Version == "" {
		return "sitestyle dev"
	}
	return "sitestyle " + info.Version
}

func renderAbout(theme *styles.Theme, info build.Info) string {
	goVersion := info.GoVersion
	if goVersion == "" {
		goVersion = runtime.Version()
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(versionString(info)))
	b.WriteString("\n\n")
	rows := [][2]string{
		{"Commit", orDash(info.Commit)},
		{"Built", orDash(info.BuildDate)},
		{"Go", goVersion},
		{"Repository", build.RepoURL()},
		{"Contributors", strings.Join(build.Contributors(), ", ")},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "  %s %s\n", theme.Subtle.Render(fmt.Sprintf("%-13s", row[0])), row[1])
	}
	return strings.TrimRight(b.String(), "\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
