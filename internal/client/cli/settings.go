package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Settings prints or changes the device-local preferences.
//
//	settings
//	settings protein <grams>
//	settings calories <kcal|off>
//	settings mps <on|off>
//	settings name <display name>
func (a *App) Settings(ctx context.Context, args []string) error {
	st, err := a.settingsService.Get(ctx)
	if err != nil {
		a.println("Error:", err)
		return err
	}

	if len(args) == 0 {
		a.println("Default protein goal:", formatGrams(st.DefaultProteinGoal))
		if st.DefaultCalorieGoal != nil {
			a.printf("Default calorie goal: %.0f kcal\n", *st.DefaultCalorieGoal)
		} else {
			a.println("Default calorie goal: none")
		}
		a.println("MPS tracking:", onOff(st.MPSTrackingEnabled))
		if st.DisplayName != "" {
			a.println("Display name:", st.DisplayName)
		}
		return nil
	}

	if len(args) < 2 {
		err := fmt.Errorf("usage: settings %s <value>", args[0])
		a.println(err)
		return err
	}
	value := strings.Join(args[1:], " ")

	switch args[0] {
	case "protein":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			err = fmt.Errorf("%q is not a number", value)
			a.println("Error:", err)
			return err
		}
		st.DefaultProteinGoal = v
	case "calories":
		if value == "off" {
			st.DefaultCalorieGoal = nil
			break
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			err = fmt.Errorf("%q is not a number", value)
			a.println("Error:", err)
			return err
		}
		st.DefaultCalorieGoal = &v
	case "mps":
		on, err := parseOnOff(value)
		if err != nil {
			a.println("Error:", err)
			return err
		}
		st.MPSTrackingEnabled = on
	case "name":
		st.DisplayName = value
	default:
		err := fmt.Errorf("unknown setting %q", args[0])
		a.println(err)
		return err
	}

	if err := a.settingsService.Save(ctx, st); err != nil {
		a.println("Error:", err)
		return err
	}
	a.println("Saved")
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("%q is neither on nor off", s)
}
