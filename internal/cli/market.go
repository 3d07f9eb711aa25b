package cli

import (
	"context"

	"github.com/Rrens/crop-advisory/internal/domain"
)

var marketCommands = map[string]command{
	"prices":   {"[--crop C --market M --state S --district D --limit N --offset N]", marketPrices},
	"history":  {"CROP [--days N] [--market M]", marketHistory},
	"insights": {"[--crop C --region R --type T --limit N]", marketInsights},
	"alert":    {"--crop C --target 2100 --type above|below [--market M]", marketAlert},
}

func marketPrices(ctx context.Context, a *App, args []string) error {
	fs := a.flags("market prices")
	var q domain.PriceQuery
	fs.StringVar(&q.CropName, "crop", "", "crop name")
	fs.StringVar(&q.MarketName, "market", "", "mandi name")
	fs.StringVar(&q.State, "state", "", "state")
	fs.StringVar(&q.District, "district", "", "district")
	fs.IntVar(&q.Limit, "limit", 0, "results to return")
	fs.IntVar(&q.Offset, "offset", 0, "results to skip")
	if err := parse(fs, args); err != nil {
		return err
	}

	resp, err := a.client.Market.Prices(ctx, a.sess, q)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func marketHistory(ctx context.Context, a *App, args []string) error {
	fs := a.flags("market history")
	days := fs.Int("days", 30, "days of history")
	market := fs.String("market", "", "mandi name")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("market history: expected one CROP")
	}

	resp, err := a.client.Market.PriceHistory(ctx, a.sess, fs.Arg(0), *days, *market)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func marketInsights(ctx context.Context, a *App, args []string) error {
	fs := a.flags("market insights")
	var q domain.InsightQuery
	fs.StringVar(&q.CropName, "crop", "", "crop name")
	fs.StringVar(&q.Region, "region", "", "region")
	fs.StringVar(&q.InsightType, "type", "", "trend, forecast or advice")
	fs.IntVar(&q.Limit, "limit", 0, "results to return")
	if err := parse(fs, args); err != nil {
		return err
	}

	resp, err := a.client.Market.Insights(ctx, a.sess, q)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func marketAlert(ctx context.Context, a *App, args []string) error {
	fs := a.flags("market alert")
	crop := fs.String("crop", "", "crop name")
	target := fs.String("target", "", "target price per quintal")
	alertType := fs.String("type", "", "above or below")
	market := fs.String("market", "", "mandi name")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required("market alert", fs, "crop", "target", "type"); err != nil {
		return err
	}

	price, err := domain.NewPrice(*target)
	if err != nil {
		return usageErrorf("market alert: %v", err)
	}

	resp, err := a.client.Market.SetPriceAlert(ctx, a.sess, domain.PriceAlert{
		CropName:    *crop,
		TargetPrice: price,
		AlertType:   domain.AlertType(*alertType),
		MarketName:  optional(fs, "market", *market),
	})
	if err != nil {
		return err
	}
	return a.print(resp)
}
