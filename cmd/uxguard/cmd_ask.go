package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"uxguard/internal/compose"
	"uxguard/internal/regulatory"
	"uxguard/internal/retrieval"
	"uxguard/internal/telemetry"
)

var (
	askRaw        bool
	askFrameworks bool
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Look up UX risks for a feature or concern",
	Long: `Looks up matching risks for a free-text query and prints the briefing.

A bare phase name (understand, specify, create, evaluate) or a phase:<name>
token routes to that phase's preset instead of scoring.

Examples:
  uxguard ask "facial recognition in onboarding"
  uxguard ask --raw "dark patterns in consent flows"
  uxguard ask phase:create`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askRaw, "raw", false, "Skip model composition, print curated entries directly")
	askCmd.Flags().BoolVar(&askFrameworks, "frameworks", false, "Append the GDPR/NIST/OECD frameworks note")
}

func runAsk(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))

	a, err := buildApp(cmd.Context(), !askRaw)
	if err != nil {
		return err
	}
	defer a.Close()

	a.telemetry.Note(query, telemetry.KindQuery)

	res, err := a.retriever.Retrieve(query)
	if err != nil {
		var nomatch *retrieval.NoMatchError
		if errors.As(err, &nomatch) {
			fmt.Println("No matching risks found. Try rephrasing, or browse with 'uxguard phase <name>'.")
			return nil
		}
		return err
	}

	var ans *compose.FormattedAnswer
	if askRaw {
		ans = compose.Fallback(res)
	} else {
		ans = a.composer.ComposeOrFallback(cmd.Context(), res)
	}

	fmt.Println(headerStyle.Render("> " + query))
	if regulatory.OutOfScope(query) {
		fmt.Println(warnStyle.Render(regulatory.ScopeWarning))
	}
	tier := regulatory.ClassifyQuery(query)
	fmt.Println(metaStyle.Render(fmt.Sprintf("EU AI Act: %s — %s", tier.Tag, tier.Note)))
	fmt.Println()

	renderAnswer(os.Stdout, ans, askFrameworks)
	return nil
}
