package commands

import (
	"ShareAMeal/internal/config"
	"ShareAMeal/internal/model"
	"context"
	"fmt"
	"time"
)

type listCmd struct{}

func (listCmd) Name() string        { return "list" }
func (listCmd) Description() string { return "Показать все объявления (старые первыми)" }
func (listCmd) Usage() string       { return "list" }

func (listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	svc, done, err := OpenService(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	list := svc.List(ctx)
	if len(list) == 0 {
		fmt.Fprintln(Out, "No donations yet. Be the first to share food with those who need it.")
		return nil
	}
	now := time.Now()
	for _, d := range list {
		fmt.Fprintf(Out, "- %s  %s  @ %s  contact=%s%s\n", d.ID, d.Title, d.Address, d.ContactInfo, expiryNote(d, now))
	}
	fmt.Fprintf(Out, "Total: %d\n", len(list))
	return nil
}

// expiryNote: срок годности только отображается, записи не скрываются.
func expiryNote(d model.Donation, now time.Time) string {
	if _, ok := d.ExpiryDate(); !ok {
		return ""
	}
	if d.Expired(now) {
		return "  best-before=" + d.Expiry + " (expired)"
	}
	return "  best-before=" + d.Expiry
}

func init() { RegisterCmd(listCmd{}) }
