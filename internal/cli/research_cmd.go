package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/brieflist/internal/cli/formatter"
	"github.com/alexanderramin/brieflist/internal/domain"
	"github.com/alexanderramin/brieflist/internal/intelligence"
	"github.com/spf13/cobra"
)

func newResearchCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "research [company]",
		Short: "Look up a company's financial summary",
		Long: "Look up a company's financial summary through the completion provider.\n" +
			"Without an argument the name is prompted for on an interactive terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := companyArg(app, args)
			if err != nil {
				return err
			}
			res, err := lookupCompany(cmd, app, name)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(researchJSON(res))
			}
			fmt.Fprintln(out, formatter.FormatCompany(name, res, 80))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON, as returned by the HTTP API")
	return cmd
}

// companyArg joins args into a company name, prompting when none was given
// on an interactive terminal.
func companyArg(app *App, args []string) (string, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name != "" {
		return name, nil
	}
	if !app.IsInteractive() {
		return "", fmt.Errorf("company name is required")
	}
	if err := companyNameForm(&name).Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(name), nil
}

// lookupCompany runs a lookup, showing a spinner on interactive terminals.
func lookupCompany(cmd *cobra.Command, app *App, name string) (*intelligence.CompanyResult, error) {
	if err := app.requireCompany(); err != nil {
		return nil, err
	}
	if app.IsInteractive() {
		stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Researching "+name+"...")
		defer stop()
	}
	res, err := app.Company.Lookup(cmd.Context(), name)
	if err != nil {
		return nil, describeLookupError(err)
	}
	return res, nil
}

// describeLookupError adds guidance to the lookup failures a user can act on.
func describeLookupError(err error) error {
	var uerr *intelligence.UpstreamError
	switch {
	case errors.Is(err, intelligence.ErrConfiguration):
		return fmt.Errorf("%w (set OPENAI_API_KEY or llm.api_key)", err)
	case errors.As(err, &uerr):
		return fmt.Errorf("failed to fetch company information: %w", err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("lookup timed out: %w", err)
	default:
		return err
	}
}

type researchOutput struct {
	Financials *domain.FinancialPayload `json:"financials,omitempty"`
	Summary    string                   `json:"summary,omitempty"`
}

func researchJSON(res *intelligence.CompanyResult) researchOutput {
	if res.Variant == intelligence.VariantFreeText {
		return researchOutput{Summary: res.Summary}
	}
	return researchOutput{Financials: res.Financials}
}
