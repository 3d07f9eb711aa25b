package cli

import (
	"context"
	"fmt"

	"github.com/Rrens/crop-advisory/internal/domain"
)

var authCommands = map[string]command{
	"send-otp": {"--phone P", authSendOTP},
	"verify":   {"--phone P [--otp C] [--name N --state S --district D --language L]", authVerify},
	"register": {"--phone P --name N --state S --district D [--email --village --pincode --language --farm-size --crops --experience]", authRegister},
	"whoami":   {"", authWhoami},
	"refresh":  {"", authRefresh},
	"logout":   {"", authLogout},
}

func authSendOTP(ctx context.Context, a *App, args []string) error {
	fs := a.flags("auth send-otp")
	phone := fs.String("phone", "", "10-digit mobile number")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required("auth send-otp", fs, "phone"); err != nil {
		return err
	}

	resp, err := a.client.Auth.SendOTP(ctx, a.sess, *phone)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func authVerify(ctx context.Context, a *App, args []string) error {
	fs := a.flags("auth verify")
	phone := fs.String("phone", "", "10-digit mobile number")
	otp := fs.String("otp", "", "code received by SMS; prompted for when omitted")
	name := fs.String("name", "", "name for a new account")
	state := fs.String("state", "", "state for a new account")
	district := fs.String("district", "", "district for a new account")
	language := fs.String("language", "", "hi, en or pa")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required("auth verify", fs, "phone"); err != nil {
		return err
	}

	code := *otp
	if code == "" {
		var err error
		if code, err = a.promptSecret("OTP: "); err != nil {
			return fmt.Errorf("failed to read OTP: %w", err)
		}
	}

	resp, err := a.client.Auth.VerifyOTP(ctx, a.sess, domain.OTPVerification{
		PhoneNumber: *phone,
		OTP:         code,
		Name:        optional(fs, "name", *name),
		State:       optional(fs, "state", *state),
		District:    optional(fs, "district", *district),
		Language:    optional(fs, "language", *language),
	})
	if err != nil {
		return err
	}
	return a.print(resp.User)
}

func authRegister(ctx context.Context, a *App, args []string) error {
	fs := a.flags("auth register")
	phone := fs.String("phone", "", "10-digit mobile number")
	name := fs.String("name", "", "full name")
	state := fs.String("state", "", "state")
	district := fs.String("district", "", "district")
	email := fs.String("email", "", "email address")
	village := fs.String("village", "", "village")
	pincode := fs.String("pincode", "", "6-digit PIN code")
	language := fs.String("language", "", "hi, en or pa")
	farmSize := fs.Float64("farm-size", 0, "farm size in acres")
	crops := fs.String("crops", "", "primary crops, comma separated")
	experience := fs.Int("experience", 0, "years of farming")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required("auth register", fs, "phone", "name", "state", "district"); err != nil {
		return err
	}

	resp, err := a.client.Auth.Register(ctx, a.sess, domain.UserRegistration{
		PhoneNumber:       *phone,
		Name:              *name,
		State:             *state,
		District:          *district,
		Email:             optional(fs, "email", *email),
		Village:           optional(fs, "village", *village),
		Pincode:           optional(fs, "pincode", *pincode),
		FarmSize:          optional(fs, "farm-size", *farmSize),
		PrimaryCrops:      optional(fs, "crops", *crops),
		FarmingExperience: optional(fs, "experience", *experience),
		PreferredLanguage: *language,
	})
	if err != nil {
		return err
	}
	return a.print(resp.User)
}

func authWhoami(ctx context.Context, a *App, _ []string) error {
	user, err := a.client.Auth.CurrentUser(ctx, a.sess)
	if err != nil {
		return err
	}
	return a.print(user)
}

func authRefresh(ctx context.Context, a *App, _ []string) error {
	if _, err := a.client.Auth.RefreshToken(ctx, a.sess); err != nil {
		return err
	}
	return a.print(domain.MessageResponse{Message: "Token refreshed"})
}

func authLogout(ctx context.Context, a *App, _ []string) error {
	resp, err := a.client.Auth.Logout(ctx, a.sess)
	if err != nil {
		return err
	}
	return a.print(resp)
}
