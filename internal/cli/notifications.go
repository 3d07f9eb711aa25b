package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/Rrens/crop-advisory/internal/domain"
)

var notificationCommands = map[string]command{
	"list":     {"[--unread | --read] [--type T --limit N --offset N]", notificationsList},
	"read":     {"ID", notificationsRead},
	"read-all": {"", notificationsReadAll},
	"prefs":    {"KEY=true|false...", notificationsPrefs},
}

func notificationsList(ctx context.Context, a *App, args []string) error {
	fs := a.flags("notifications list")
	var q domain.NotificationQuery
	fs.IntVar(&q.Limit, "limit", 0, "notifications to return")
	fs.IntVar(&q.Offset, "offset", 0, "notifications to skip")
	fs.StringVar(&q.NotificationType, "type", "", "notification type")
	unread := fs.Bool("unread", false, "only unread notifications")
	read := fs.Bool("read", false, "only read notifications")
	if err := parse(fs, args); err != nil {
		return err
	}

	switch {
	case *unread && *read:
		return usageErrorf("notifications list: --unread and --read are mutually exclusive")
	case *unread:
		q.IsRead = new(bool)
	case *read:
		isRead := true
		q.IsRead = &isRead
	}

	resp, err := a.client.Notifications.List(ctx, a.sess, q)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func notificationsRead(ctx context.Context, a *App, args []string) error {
	id, err := idArg("notifications read", args, 0)
	if err != nil {
		return err
	}
	resp, err := a.client.Notifications.MarkRead(ctx, a.sess, id)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func notificationsReadAll(ctx context.Context, a *App, _ []string) error {
	resp, err := a.client.Notifications.MarkAllRead(ctx, a.sess)
	if err != nil {
		return err
	}
	return a.print(resp)
}

// parsePreferences turns KEY=BOOL pairs into a preference map
func parsePreferences(args []string) (domain.NotificationPreferences, error) {
	if len(args) == 0 {
		return nil, usageErrorf("notifications prefs: expected at least one KEY=true|false")
	}
	prefs := make(domain.NotificationPreferences, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, usageErrorf("notifications prefs: %q is not KEY=VALUE", arg)
		}
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return nil, usageErrorf("notifications prefs: %q is not a boolean", value)
		}
		prefs[key] = enabled
	}
	return prefs, nil
}

func notificationsPrefs(ctx context.Context, a *App, args []string) error {
	prefs, err := parsePreferences(args)
	if err != nil {
		return err
	}
	resp, err := a.client.Notifications.UpdatePreferences(ctx, a.sess, prefs)
	if err != nil {
		return err
	}
	return a.print(resp)
}
