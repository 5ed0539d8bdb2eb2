package cmd

import (
	"github.com/spf13/cobra"
)

var fontsCmd = &cobra.Command{
	Use:   "fonts",
	Short: "List the font families offered by the popup",
	Args:  cobra.NoArgs,
	RunE:  runFonts,
}

func init() {
	rootCmd.AddCommand(fontsCmd)
}

func runFonts(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	list := a.FontsUC.Execute(a.Ctx())
	if list.Fallback {
		cmd.PrintErrln(a.Theme.WarningStyle.Render("fc-list unavailable, showing popup.fallback_fonts"))
	}
	for _, font := range list.Fonts {
		cmd.Println(font)
	}
	return nil
}
