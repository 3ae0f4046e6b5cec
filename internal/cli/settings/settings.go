package settings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/habitharbor/internal/cli"
	"github.com/julianstephens/habitharbor/internal/constants"
	"github.com/julianstephens/habitharbor/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Theme     *string  `help:"Color theme: light or dark."`
	WeekStart *string  `help:"First day of the statistics week: sun or mon."`
	Timezone  *string  `help:"IANA timezone used for 'today', or Local."`
	Reset     []string `help:"Remove the named settings." placeholder:"KEY"`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if c.List {
		c.list(ctx)
		return nil
	}

	updates := map[string]any{}
	if c.Theme != nil {
		theme := strings.ToLower(strings.TrimSpace(*c.Theme))
		if theme != constants.ThemeLight && theme != constants.ThemeDark {
			return fmt.Errorf("invalid theme %q (expected light or dark)", *c.Theme)
		}
		updates[constants.SettingTheme] = theme
	}
	if c.WeekStart != nil {
		wd, err := utils.ParseWeekStart(strings.ToLower(strings.TrimSpace(*c.WeekStart)))
		if err != nil {
			return err
		}
		updates[constants.SettingWeekStart] = strings.ToLower(wd.String()[:3])
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		updates[constants.SettingTimezone] = *c.Timezone
	}
	for _, key := range c.Reset {
		updates[key] = nil
	}

	if len(updates) == 0 {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := ctx.Persisted(ctx.Store.SetSetting(k, updates[k])); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}
	ctx.Println("Settings updated successfully.")
	return nil
}

func (c *SettingsCmd) list(ctx *cli.Context) {
	ctx.Println("Current Settings:")
	ctx.Printf("  Theme:       %s\n", ctx.Store.SettingString(constants.SettingTheme, constants.ThemeDark))
	ctx.Printf("  Week Start:  %s\n", ctx.Store.SettingString(constants.SettingWeekStart, "sun"))
	ctx.Printf("  Timezone:    %s\n", ctx.Store.SettingString(constants.SettingTimezone, "Local"))

	known := map[string]bool{
		constants.SettingTheme:     true,
		constants.SettingWeekStart: true,
		constants.SettingTimezone:  true,
	}
	var extra []string
	for k, v := range ctx.Store.Settings() {
		if !known[k] {
			extra = append(extra, fmt.Sprintf("  %s: %s", k, string(v)))
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		ctx.Println("\nOther Settings:")
		for _, line := range extra {
			ctx.Println(line)
		}
	}
}
