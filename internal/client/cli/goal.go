package cli

import (
	"context"
	"fmt"
)

// Goal shows, sets or clears the goal of a day.
//
//	goal [date]          show the effective goal
//	goal set [date]      prompt for targets
//	goal clear [date]    fall back to the settings defaults
func (a *App) Goal(ctx context.Context, args []string) error {
	action := "show"
	if len(args) > 0 && (args[0] == "set" || args[0] == "clear" || args[0] == "show") {
		action, args = args[0], args[1:]
	}
	date, err := a.dateArg(args)
	if err != nil {
		a.println("Error:", err)
		return err
	}

	switch action {
	case "set":
		protein, err := getNumber(a.reader, "Protein target (g)", a.out, false)
		if err != nil {
			a.println("Error:", err)
			return err
		}
		calories, err := getNumber(a.reader, "Calorie target (kcal, empty to skip)", a.out, true)
		if err != nil {
			a.println("Error:", err)
			return err
		}
		if _, err := a.goalService.Set(ctx, date, *protein, calories); err != nil {
			a.println("Error:", err)
			return err
		}
		a.println("Goal saved for", date)
		return nil

	case "clear":
		if err := a.goalService.Clear(ctx, date); err != nil {
			a.println("Error:", err)
			return err
		}
		a.println("Goal cleared for", date)
		return nil
	}

	goal, err := a.goalService.Get(ctx, date)
	if err != nil {
		a.println("Error:", err)
		return err
	}
	origin := "set for this day"
	if goal == nil {
		origin = "default"
		if goal, err = a.goalService.Effective(ctx, date); err != nil {
			a.println("Error:", err)
			return err
		}
	}

	line := fmt.Sprintf("Goal %s: %s protein", date, formatGrams(goal.ProteinTargetGrams))
	if goal.CalorieTarget != nil {
		line += fmt.Sprintf(", %.0f kcal", *goal.CalorieTarget)
	}
	a.printf("%s (%s)\n", line, origin)
	return nil
}
