package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/meigma/actpak"
	"github.com/meigma/actpak/internal/config"
)

// Kind choices offered by the wizard.
const (
	choiceFiles    = "files"
	choiceStreamed = "streamed"
	choiceAll      = "all"
)

// wizardAnswers holds the values collected by the wizard.
type wizardAnswers struct {
	Input   string
	Output  string
	Kinds   string
	Group   bool
	Console bool
}

// apply copies the answers into cfg.
func (a wizardAnswers) apply(cfg *config.Config) {
	cfg.Input = a.Input
	cfg.Output = a.Output
	cfg.File = a.Kinds == choiceFiles || a.Kinds == choiceAll
	cfg.Stream = a.Kinds == choiceStreamed || a.Kinds == choiceAll
	cfg.Group = a.Group
	switch {
	case !a.Console:
		cfg.Log.Level = 0
	case cfg.Log.Level == 0:
		cfg.Log.Level = config.MaxLogLevel
	}
}

// validateDir rejects inputs that normalize to nothing.
func validateDir(s string) error {
	if actpak.NormalizeDir(s) == "" {
		return errors.New("a directory is required")
	}
	return nil
}

// runWizard asks for the settings of one run, starting from cfg.
func runWizard(cfg *config.Config) error {
	a := wizardAnswers{
		Input:   cfg.Input,
		Output:  cfg.Output,
		Kinds:   choiceAll,
		Group:   cfg.Group,
		Console: cfg.Log.Level > 0,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Game directory").
				Description("Folder holding the .actstr and .actbin containers.").
				Value(&a.Input).
				Validate(validateDir),
			huh.NewInput().
				Title("Output directory").
				Description("Leave blank to extract into <game directory>/Output.").
				Value(&a.Output),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Containers to extract").
				Options(
					huh.NewOption("Files (.actbin)", choiceFiles),
					huh.NewOption("Streamed (.actstr)", choiceStreamed),
					huh.NewOption("All", choiceAll),
				).
				Value(&a.Kinds),
			huh.NewConfirm().
				Title("Group output by asset type?").
				Value(&a.Group),
			huh.NewConfirm().
				Title("Log to console?").
				Value(&a.Console),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return fmt.Errorf("wizard: %w", err)
	}
	a.apply(cfg)
	return nil
}
