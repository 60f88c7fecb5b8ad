package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pennywise/internal/format"
	"pennywise/internal/prefs"
)

func newPrefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "View and change display preferences",
	}
	cmd.AddCommand(newPrefsGetCommand())
	cmd.AddCommand(newPrefsSetCommand())
	return cmd
}

func newPrefsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show current preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.prefs.Load(cmd.Context()); err != nil {
				return err
			}

			p := a.prefs.Get()
			fmt.Printf("Currency:    %s (%s)\n", p.Currency, format.CurrencyName(p.Currency))
			fmt.Printf("Date format: %s\n", p.DateFormat)
			fmt.Printf("Language:    %s\n", p.Language)
			return nil
		},
	}
}

func newPrefsSetCommand() *cobra.Command {
	var currency, dateFormat, language string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			if currency == "" && dateFormat == "" && language == "" {
				return fmt.Errorf("nothing to change; pass --currency, --date-format or --language")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.prefs.Load(cmd.Context()); err != nil {
				return err
			}

			var upd prefs.Update
			if currency != "" {
				currency = strings.ToUpper(currency)
				if _, ok := format.SupportedCurrencies[currency]; !ok {
					return fmt.Errorf("unsupported currency %q", currency)
				}
				upd.Currency = &currency
			}
			if dateFormat != "" {
				if _, ok := format.SupportedDateFormats[dateFormat]; !ok {
					return fmt.Errorf("unsupported date format %q", dateFormat)
				}
				upd.DateFormat = &dateFormat
			}
			if language != "" {
				upd.Language = &language
			}

			if err := a.prefs.Set(cmd.Context(), upd); err != nil {
				return err
			}

			p := a.prefs.Get()
			fmt.Printf("Preferences saved: %s, %s, %s\n", p.Currency, p.DateFormat, p.Language)
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "", "preferred currency code, e.g. EUR")
	cmd.Flags().StringVar(&dateFormat, "date-format", "", "preferred date format, e.g. DD/MM/YYYY")
	cmd.Flags().StringVar(&language, "language", "", "preferred language code, e.g. de")
	return cmd
}
