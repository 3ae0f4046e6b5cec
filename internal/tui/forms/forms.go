// Package forms holds the huh forms shared by the TUI and the CLI.
package forms

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitharbor/internal/models"
)

// HabitFormModel is bound to the fields of the habit form.
type HabitFormModel struct {
	Name      string
	Color     models.Color
	Frequency []models.Weekday
}

// NewHabitFormModel seeds the form with a habit's current values, or with
// the defaults for a new habit when h is nil.
func NewHabitFormModel(h *models.Habit) *HabitFormModel {
	if h == nil {
		return &HabitFormModel{
			Color:     models.DefaultColor,
			Frequency: models.DefaultFrequency(),
		}
	}
	return &HabitFormModel{
		Name:      h.Name,
		Color:     h.Color,
		Frequency: append([]models.Weekday{}, h.Frequency...),
	}
}

// Update returns the changes the form makes relative to h.
func (fm *HabitFormModel) Update(h models.Habit) models.HabitUpdate {
	var upd models.HabitUpdate
	if name := strings.TrimSpace(fm.Name); name != h.Name {
		upd = upd.WithName(name)
	}
	if fm.Color != h.Color {
		upd = upd.WithColor(fm.Color)
	}
	if models.FormatFrequency(fm.Frequency) != models.FormatFrequency(h.Frequency) {
		upd = upd.WithFrequency(fm.Frequency)
	}
	return upd
}

func colorOptions() []huh.Option[models.Color] {
	opts := make([]huh.Option[models.Color], len(models.Palette))
	for i, c := range models.Palette {
		opts[i] = huh.NewOption(c.Label, c.Value)
	}
	return opts
}

func weekdayOptions() []huh.Option[models.Weekday] {
	opts := make([]huh.Option[models.Weekday], len(models.Weekdays))
	for i, wd := range models.Weekdays {
		opts[i] = huh.NewOption(wd.Label(), wd)
	}
	return opts
}

// NewHabitForm creates a form for adding or editing a habit
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[models.Color]().
				Title("Color").
				Options(colorOptions()...).
				Value(&fm.Color),
			huh.NewMultiSelect[models.Weekday]().
				Title("Frequency").
				Description("Days this habit is scheduled").
				Options(weekdayOptions()...).
				Value(&fm.Frequency),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewConfirmForm creates a yes/no form bound to confirmed.
func NewConfirmForm(title string, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
