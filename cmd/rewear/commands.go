package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/erazemk/rewear/internal/auth"
	"github.com/erazemk/rewear/internal/model"
	"github.com/erazemk/rewear/internal/seed"
	"github.com/erazemk/rewear/internal/store"
)

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func wantArgs(fs *flag.FlagSet, lo, hi int, form string) error {
	if n := fs.NArg(); n < lo || n > hi {
		return fmt.Errorf("usage: rewear %s %s", fs.Name(), form)
	}
	return nil
}

// caller resolves a token flag to the user it names.
func (a *app) caller(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, errors.New("missing -token")
	}
	secret, err := a.secret(ctx)
	if err != nil {
		return nil, err
	}
	claims, err := auth.ValidateToken(secret, token)
	if err != nil {
		return nil, err
	}
	u := a.store.Users.Get(ctx, claims.UserID)
	if u == nil {
		return nil, fmt.Errorf("token user %s no longer exists", claims.UserID)
	}
	return u, nil
}

func (a *app) secret(ctx context.Context) (string, error) {
	if a.cfg.JWT.Secret != "" {
		return a.cfg.JWT.Secret, nil
	}
	return a.store.JWTSecret(ctx)
}

func (a *app) seed(ctx context.Context) error {
	n := seed.Initialize(ctx, a.store.Items)
	return a.print(map[string]int{"seeded": n})
}

func (a *app) items(ctx context.Context, args []string) error {
	fs := newFlags("items")
	status := fs.String("status", "", "")
	userID := fs.String("user", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 0, 0, "[-status s] [-user id]"); err != nil {
		return err
	}
	if *status != "" && !model.ValidItemStatus(*status) {
		return fmt.Errorf("unknown item status %q", *status)
	}

	var items []model.Item
	switch {
	case *userID != "":
		items = a.store.Items.ListByUser(ctx, *userID)
	case *status != "":
		items = a.store.Items.ListByStatus(ctx, *status)
	default:
		items = a.store.Items.List(ctx)
	}
	if *userID != "" && *status != "" {
		kept := items[:0]
		for _, it := range items {
			if it.Status == *status {
				kept = append(kept, it)
			}
		}
		items = kept
	}
	return a.print(items)
}

func (a *app) search(ctx context.Context, args []string) error {
	fs := newFlags("search")
	var f store.SearchFilters
	fs.StringVar(&f.Category, "category", "", "")
	fs.StringVar(&f.Type, "type", "", "")
	fs.StringVar(&f.Size, "size", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 0, 1, "[-category c] [-type t] [-size s] [query]"); err != nil {
		return err
	}
	return a.print(a.store.Items.Search(ctx, fs.Arg(0), f))
}

func (a *app) show(ctx context.Context, args []string) error {
	fs := newFlags("show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 1, 1, "<item-id>"); err != nil {
		return err
	}
	item := a.store.Items.GetWithImages(ctx, fs.Arg(0))
	if item == nil {
		return fmt.Errorf("item %s not found", fs.Arg(0))
	}
	return a.print(item)
}

func (a *app) addUser(ctx context.Context, args []string) error {
	fs := newFlags("add-user")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 2, 3, "<username> <email> [points]"); err != nil {
		return err
	}
	if a.store.Users.GetByUsername(ctx, fs.Arg(0)) != nil {
		return fmt.Errorf("username %q is taken", fs.Arg(0))
	}
	u := model.User{Username: fs.Arg(0), Email: fs.Arg(1)}
	if fs.NArg() == 3 {
		points, err := strconv.Atoi(fs.Arg(2))
		if err != nil || points < 0 {
			return fmt.Errorf("invalid points %q", fs.Arg(2))
		}
		u.Points = points
	}
	created, err := a.store.Users.Create(ctx, u)
	if err != nil {
		return err
	}
	return a.print(created)
}

func (a *app) addImage(ctx context.Context, args []string) error {
	fs := newFlags("add-image")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 1, 1, "<file>"); err != nil {
		return err
	}
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	id, err := a.images.Put(ctx, f)
	if err != nil {
		return err
	}
	return a.print(map[string]string{"id": id})
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlags("login")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 1, 1, "<user-id>"); err != nil {
		return err
	}
	u := a.store.Users.Get(ctx, fs.Arg(0))
	if u == nil {
		return fmt.Errorf("user %s not found", fs.Arg(0))
	}
	secret, err := a.secret(ctx)
	if err != nil {
		return err
	}
	token, err := auth.GenerateToken(secret, u.ID, u.Username)
	if err != nil {
		return err
	}
	return a.print(map[string]string{"userId": u.ID, "token": token})
}

func (a *app) redeem(ctx context.Context, args []string) error {
	fs := newFlags("redeem")
	token := fs.String("token", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 1, 1, "-token t <item-id>"); err != nil {
		return err
	}
	u, err := a.caller(ctx, *token)
	if err != nil {
		return err
	}
	updated, err := a.market.Redeem(ctx, u.ID, fs.Arg(0))
	if err != nil {
		return err
	}
	return a.print(updated)
}

func (a *app) swap(ctx context.Context, args []string) error {
	fs := newFlags("swap")
	token := fs.String("token", "", "")
	offer := fs.String("offer", "", "")
	message := fs.String("message", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 1, 1, "-token t [-offer item-id] [-message m] <item-id>"); err != nil {
		return err
	}
	u, err := a.caller(ctx, *token)
	if err != nil {
		return err
	}
	req, err := a.market.RequestSwap(ctx, u.ID, fs.Arg(0), *offer, *message)
	if err != nil {
		return err
	}
	return a.print(req)
}

func (a *app) respond(ctx context.Context, args []string) error {
	fs := newFlags("respond")
	token := fs.String("token", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 2, 2, "-token t <request-id> <status>"); err != nil {
		return err
	}
	u, err := a.caller(ctx, *token)
	if err != nil {
		return err
	}
	req, err := a.market.RespondSwap(ctx, u.ID, fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}
	return a.print(req)
}

func (a *app) message(ctx context.Context, args []string) error {
	fs := newFlags("message")
	token := fs.String("token", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 2, 2, "-token t <user-id> <text>"); err != nil {
		return err
	}
	u, err := a.caller(ctx, *token)
	if err != nil {
		return err
	}
	msg, err := a.market.SendMessage(ctx, u.ID, fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}
	return a.print(msg)
}

func (a *app) chat(ctx context.Context, args []string) error {
	fs := newFlags("chat")
	token := fs.String("token", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 0, 1, "-token t [user-id]"); err != nil {
		return err
	}
	u, err := a.caller(ctx, *token)
	if err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return a.print(a.store.Chat.Partners(ctx, u.ID))
	}
	return a.print(a.store.Chat.Conversation(ctx, u.ID, fs.Arg(0)))
}

func (a *app) follow(ctx context.Context, args []string) error {
	fs := newFlags("follow")
	token := fs.String("token", "", "")
	undo := fs.Bool("undo", false, "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 1, 1, "-token t [-undo] <user-id>"); err != nil {
		return err
	}
	u, err := a.caller(ctx, *token)
	if err != nil {
		return err
	}
	if *undo {
		removed, err := a.market.Unfollow(ctx, u.ID, fs.Arg(0))
		if err != nil {
			return err
		}
		return a.print(map[string]bool{"removed": removed})
	}
	f, err := a.market.Follow(ctx, u.ID, fs.Arg(0))
	if err != nil {
		return err
	}
	return a.print(f)
}

func (a *app) notifications(ctx context.Context, args []string) error {
	fs := newFlags("notifications")
	token := fs.String("token", "", "")
	markRead := fs.Bool("mark-read", false, "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 0, 0, "-token t [-mark-read]"); err != nil {
		return err
	}
	u, err := a.caller(ctx, *token)
	if err != nil {
		return err
	}
	list := a.store.Notifications.ListByUser(ctx, u.ID)
	unread := a.store.Notifications.UnreadCount(ctx, u.ID)
	if *markRead {
		if _, err := a.store.Notifications.MarkAllAsRead(ctx, u.ID); err != nil {
			return err
		}
	}
	return a.print(struct {
		Unread        int                  `json:"unread"`
		Notifications []model.Notification `json:"notifications"`
	}{unread, list})
}

func (a *app) stats(ctx context.Context) error {
	used, quota, err := a.kv.Usage(ctx)
	if err != nil {
		return err
	}
	keys, err := a.kv.Keys(ctx)
	if err != nil {
		return err
	}
	sort.Strings(keys)

	counts := map[string]int{
		store.KeyItems:         len(a.store.Items.List(ctx)),
		store.KeyUsers:         len(a.store.Users.List(ctx)),
		store.KeySwapRequests:  len(a.store.SwapRequests.List(ctx)),
		store.KeyNotifications: len(a.store.Notifications.List(ctx)),
		store.KeyChatMessages:  len(a.store.Chat.List(ctx)),
		store.KeyFollows:       len(a.store.Follows.List(ctx)),
	}

	metrics, err := a.gather()
	if err != nil {
		return err
	}
	return a.print(struct {
		UsedBytes  int64              `json:"usedBytes"`
		QuotaBytes int64              `json:"quotaBytes"`
		Keys       []string           `json:"keys"`
		Records    map[string]int     `json:"records"`
		Metrics    map[string]float64 `json:"metrics"`
	}{used, quota, keys, counts, metrics})
}

// gather flattens this process's metrics to name{labels} -> value.
func (a *app) gather() (map[string]float64, error) {
	families, err := a.metrics.Gather()
	if err != nil {
		return nil, fmt.Errorf("gathering metrics: %w", err)
	}
	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, lp := range m.GetLabel() {
				name += fmt.Sprintf("{%s=%s}", lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				out[name] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[name] = m.GetGauge().GetValue()
			}
		}
	}
	return out, nil
}
