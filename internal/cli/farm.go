package cli

import (
	"context"
	"strings"

	"github.com/Rrens/crop-advisory/internal/domain"
)

var cropCommands = map[string]command{
	"list":      {"[--search S --limit N --offset N]", cropsList},
	"show":      {"ID", cropsShow},
	"recommend": {"--location L --season kharif|rabi|zaid --soil-type S --farm-size ACRES", cropsRecommend},
}

var soilCommands = map[string]command{
	"types":    {"", soilTypes},
	"add-test": {"[--ph N --nitrogen N --phosphorus N --potassium N --organic N --soil S --texture T --lab L]", soilAdd},
	"tests":    {"", soilTests},
}

var shopCommands = map[string]command{
	"list":      {"[--type T --state S --district D --approved --limit N --offset N]", shopsList},
	"inventory": {"ID [--product-type T]", shopsInventory},
	"search":    {"TERM...", shopsSearch},
}

func cropsList(ctx context.Context, a *App, args []string) error {
	fs := a.flags("crops list")
	var q domain.CropQuery
	fs.StringVar(&q.Search, "search", "", "name contains")
	fs.IntVar(&q.Limit, "limit", 0, "crops to return")
	fs.IntVar(&q.Offset, "offset", 0, "crops to skip")
	if err := parse(fs, args); err != nil {
		return err
	}

	resp, err := a.client.Crops.List(ctx, a.sess, q)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func cropsShow(ctx context.Context, a *App, args []string) error {
	id, err := idArg("crops show", args, 0)
	if err != nil {
		return err
	}
	resp, err := a.client.Crops.Details(ctx, a.sess, id)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func cropsRecommend(ctx context.Context, a *App, args []string) error {
	fs := a.flags("crops recommend")
	var req domain.RecommendationRequest
	fs.StringVar(&req.Location, "location", "", "district or village")
	fs.StringVar(&req.Season, "season", "", "kharif, rabi or zaid")
	fs.StringVar(&req.SoilType, "soil-type", "", "soil type")
	fs.Float64Var(&req.FarmSize, "farm-size", 0, "farm size in acres")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required("crops recommend", fs, "location", "season", "soil-type"); err != nil {
		return err
	}
	if req.FarmSize <= 0 {
		return usageErrorf("crops recommend: --farm-size must be positive")
	}

	resp, err := a.client.Crops.Recommendations(ctx, a.sess, req)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func soilTypes(ctx context.Context, a *App, _ []string) error {
	resp, err := a.client.Soil.Types(ctx, a.sess)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func soilAdd(ctx context.Context, a *App, args []string) error {
	fs := a.flags("soil add-test")
	ph := fs.Float64("ph", 0, "pH level")
	n := fs.Float64("nitrogen", 0, "nitrogen kg/ha")
	p := fs.Float64("phosphorus", 0, "phosphorus kg/ha")
	k := fs.Float64("potassium", 0, "potassium kg/ha")
	organic := fs.Float64("organic", 0, "organic matter percent")
	soil := fs.String("soil", "", "soil type")
	texture := fs.String("texture", "", "texture")
	lab := fs.String("lab", "", "testing lab")
	if err := parse(fs, args); err != nil {
		return err
	}

	resp, err := a.client.Soil.AddTest(ctx, a.sess, domain.SoilTestInput{
		PHLevel:           optional(fs, "ph", *ph),
		NitrogenContent:   optional(fs, "nitrogen", *n),
		PhosphorusContent: optional(fs, "phosphorus", *p),
		PotassiumContent:  optional(fs, "potassium", *k),
		OrganicMatter:     optional(fs, "organic", *organic),
		SoilType:          optional(fs, "soil", *soil),
		Texture:           optional(fs, "texture", *texture),
		LabName:           optional(fs, "lab", *lab),
	})
	if err != nil {
		return err
	}
	return a.print(resp)
}

func soilTests(ctx context.Context, a *App, _ []string) error {
	resp, err := a.client.Soil.Tests(ctx, a.sess)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func shopsList(ctx context.Context, a *App, args []string) error {
	fs := a.flags("shops list")
	var q domain.ShopQuery
	fs.StringVar(&q.ShopType, "type", "", "shop type")
	fs.StringVar(&q.State, "state", "", "state")
	fs.StringVar(&q.District, "district", "", "district")
	approved := fs.Bool("approved", false, "only government approved shops")
	fs.IntVar(&q.Limit, "limit", 0, "shops to return")
	fs.IntVar(&q.Offset, "offset", 0, "shops to skip")
	if err := parse(fs, args); err != nil {
		return err
	}
	q.IsGovernmentApproved = optional(fs, "approved", *approved)

	resp, err := a.client.Shops.List(ctx, a.sess, q)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func shopsInventory(ctx context.Context, a *App, args []string) error {
	fs := a.flags("shops inventory")
	productType := fs.String("product-type", "", "seed, fertilizer, pesticide ...")
	if err := parse(fs, args); err != nil {
		return err
	}
	id, err := idArg("shops inventory", fs.Args(), 0)
	if err != nil {
		return err
	}

	resp, err := a.client.Shops.Inventory(ctx, a.sess, id, *productType)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func shopsSearch(ctx context.Context, a *App, args []string) error {
	term := strings.TrimSpace(strings.Join(args, " "))
	if term == "" {
		return usageErrorf("shops search: missing TERM")
	}
	resp, err := a.client.Shops.SearchProducts(ctx, a.sess, term)
	if err != nil {
		return err
	}
	return a.print(resp)
}
