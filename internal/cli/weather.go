package cli

import (
	"context"
	"strings"
)

var weatherCommands = map[string]command{
	"current":  {"LOCATION", weatherCurrent},
	"forecast": {"LOCATION [--days N]", weatherForecast},
	"alerts":   {"LOCATION", weatherAlerts},
}

func location(cmd string, args []string) (string, error) {
	loc := strings.TrimSpace(strings.Join(args, " "))
	if loc == "" {
		return "", usageErrorf("%s: missing LOCATION", cmd)
	}
	return loc, nil
}

func weatherCurrent(ctx context.Context, a *App, args []string) error {
	loc, err := location("weather current", args)
	if err != nil {
		return err
	}
	resp, err := a.client.Weather.Current(ctx, a.sess, loc)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func weatherForecast(ctx context.Context, a *App, args []string) error {
	fs := a.flags("weather forecast")
	days := fs.Int("days", 7, "days to forecast (1-7)")
	if err := parse(fs, args); err != nil {
		return err
	}
	loc, err := location("weather forecast", fs.Args())
	if err != nil {
		return err
	}
	if *days < 1 || *days > 7 {
		return usageErrorf("weather forecast: --days must be between 1 and 7")
	}

	resp, err := a.client.Weather.Forecast(ctx, a.sess, loc, *days)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func weatherAlerts(ctx context.Context, a *App, args []string) error {
	loc, err := location("weather alerts", args)
	if err != nil {
		return err
	}
	resp, err := a.client.Weather.Alerts(ctx, a.sess, loc)
	if err != nil {
		return err
	}
	return a.print(resp)
}
