package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Rrens/crop-advisory/internal/domain"
)

var profileCommands = map[string]command{
	"show":   {"", profileShow},
	"update": {"[--name N --email E --state S --district D --village V --pincode P --language hi|en|pa ...]", profileUpdate},
	"avatar": {"FILE", profileAvatar},
}

func profileShow(ctx context.Context, a *App, _ []string) error {
	user, err := a.client.Users.Profile(ctx, a.sess)
	if err != nil {
		return err
	}
	return a.print(user)
}

func profileUpdate(ctx context.Context, a *App, args []string) error {
	fs := a.flags("profile update")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	state := fs.String("state", "", "state")
	district := fs.String("district", "", "district")
	village := fs.String("village", "", "village")
	pincode := fs.String("pincode", "", "6 digit pincode")
	lat := fs.Float64("latitude", 0, "farm latitude")
	lon := fs.Float64("longitude", 0, "farm longitude")
	farmSize := fs.Float64("farm-size", 0, "farm size in acres")
	crops := fs.String("crops", "", "primary crops, comma separated")
	experience := fs.Int("experience", 0, "years of farming")
	language := fs.String("language", "", "hi, en or pa")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NFlag() == 0 {
		return usageErrorf("profile update: nothing to update")
	}

	user, err := a.client.Users.UpdateProfile(ctx, a.sess, domain.UserUpdate{
		Name:              optional(fs, "name", *name),
		Email:             optional(fs, "email", *email),
		State:             optional(fs, "state", *state),
		District:          optional(fs, "district", *district),
		Village:           optional(fs, "village", *village),
		Pincode:           optional(fs, "pincode", *pincode),
		Latitude:          optional(fs, "latitude", *lat),
		Longitude:         optional(fs, "longitude", *lon),
		FarmSize:          optional(fs, "farm-size", *farmSize),
		PrimaryCrops:      optional(fs, "crops", *crops),
		FarmingExperience: optional(fs, "experience", *experience),
		PreferredLanguage: optional(fs, "language", *language),
	})
	if err != nil {
		return err
	}
	return a.print(user)
}

func profileAvatar(ctx context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return usageErrorf("profile avatar: expected one FILE")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	resp, err := a.client.Users.UploadAvatar(ctx, a.sess, domain.ImageUpload{Filename: filepath.Base(args[0]), Content: f})
	if err != nil {
		return err
	}
	return a.print(resp)
}
