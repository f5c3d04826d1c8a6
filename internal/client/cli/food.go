package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/client/models"
	"github.com/dmitrijs2005/nutrisync/internal/common"
)

func (a *App) today() string {
	return a.now().Local().Format(common.DateLayout)
}

// dateArg returns the first argument when it is a calendar day, else today.
func (a *App) dateArg(args []string) (string, error) {
	if len(args) == 0 {
		return a.today(), nil
	}
	if _, err := time.Parse(common.DateLayout, args[0]); err != nil {
		return "", fmt.Errorf("%q is not a date, use YYYY-MM-DD", args[0])
	}
	return args[0], nil
}

// parseClock combines an HH:MM answer with the calendar day of now.
func parseClock(now time.Time, text string) (time.Time, error) {
	t, err := time.ParseInLocation("15:04", text, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a time, use HH:MM", text)
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}

func formatGrams(v float64) string {
	return fmt.Sprintf("%.1fg", v)
}

// AddFood prompts for a food entry and stores it locally.
func (a *App) AddFood(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Food name", a.out)
	if err != nil {
		return err
	}
	protein, err := getNumber(a.reader, "Protein (g)", a.out, false)
	if err != nil {
		a.println("Error:", err)
		return err
	}
	calories, err := getNumber(a.reader, "Calories (kcal, empty to skip)", a.out, true)
	if err != nil {
		a.println("Error:", err)
		return err
	}
	at, err := getSimpleText(a.reader, "Eaten at HH:MM (empty for now)", a.out)
	if err != nil {
		return err
	}

	entry := &models.FoodEntry{
		Name:         name,
		ProteinGrams: *protein,
		Calories:     calories,
		Source:       models.SourceManual,
		Date:         a.today(),
	}
	if at != "" {
		consumed, err := parseClock(a.now().Local(), at)
		if err != nil {
			a.println("Error:", err)
			return err
		}
		entry.ConsumedAt = &consumed
	}

	if err := a.foodService.Add(ctx, entry); err != nil {
		a.println("Error:", err)
		return err
	}
	a.printf("Added %s, %s protein (%s)\n", entry.Name, formatGrams(entry.ProteinGrams), entry.SyncID)
	return nil
}

// List prints the entries of one day followed by the totals against the
// effective goal.
func (a *App) List(ctx context.Context, args []string) error {
	date, err := a.dateArg(args)
	if err != nil {
		a.println("Error:", err)
		return err
	}

	entries, err := a.foodService.List(ctx, date)
	if err != nil {
		a.println("Error:", err)
		return err
	}
	if len(entries) == 0 {
		a.println("No entries for", date)
	}
	for _, e := range entries {
		a.printf("%s  %-28s %8s  %s\n",
			e.EffectiveTime().Local().Format("15:04"), e.Name, formatGrams(e.ProteinGrams), e.SyncID)
	}

	totals, err := a.foodService.Totals(ctx, date)
	if err != nil {
		a.println("Error:", err)
		return err
	}
	goal, err := a.goalService.Effective(ctx, date)
	if err != nil {
		a.println("Error:", err)
		return err
	}

	line := fmt.Sprintf("Total %s: %s / %s protein", date, formatGrams(totals.Protein), formatGrams(goal.ProteinTargetGrams))
	if goal.CalorieTarget != nil {
		line += fmt.Sprintf(", %.0f / %.0f kcal", totals.Calories, *goal.CalorieTarget)
	} else if totals.Calories > 0 {
		line += fmt.Sprintf(", %.0f kcal", totals.Calories)
	}
	a.println(line)
	return nil
}

// DeleteFood tombstones an entry by its sync id.
func (a *App) DeleteFood(ctx context.Context, args []string) error {
	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		var err error
		if id, err = getSimpleText(a.reader, "Enter entry id to delete", a.out); err != nil {
			return err
		}
	}

	entry, err := a.foodService.Get(ctx, id)
	if err != nil {
		a.println("Error:", err)
		return err
	}
	if entry == nil {
		a.println("No such entry:", id)
		return common.ErrorNotFound
	}

	if err := a.foodService.Delete(ctx, id); err != nil {
		a.println("Error:", err)
		return err
	}
	a.println("Deleted", entry.Name)
	return nil
}

// Hits prints the meals of a day that reached the protein synthesis
// threshold and when the next window opens.
func (a *App) Hits(ctx context.Context, args []string) error {
	st, err := a.settingsService.Get(ctx)
	if err != nil {
		a.println("Error:", err)
		return err
	}
	if !st.MPSTrackingEnabled {
		a.println("MPS tracking is off, enable it with 'settings mps on'")
		return nil
	}

	date, err := a.dateArg(args)
	if err != nil {
		a.println("Error:", err)
		return err
	}
	summary, err := a.foodService.Hits(ctx, date)
	if err != nil {
		a.println("Error:", err)
		return err
	}

	names := make([]string, 0, len(summary.Hits))
	for _, h := range summary.Hits {
		names = append(names, fmt.Sprintf("%s %s (%s)",
			h.EffectiveTime().Local().Format("15:04"), h.Name, formatGrams(h.ProteinGrams)))
	}
	a.printf("MPS hits on %s: %d\n", summary.Date, len(summary.Hits))
	if len(names) > 0 {
		a.println("  " + strings.Join(names, "\n  "))
	}
	if !summary.NextWindow.IsZero() {
		a.println("Next window opens at", summary.NextWindow.Local().Format("15:04"))
	}
	return nil
}
