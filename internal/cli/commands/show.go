package commands

import (
	"ShareAMeal/internal/config"
	"ShareAMeal/internal/model"
	"ShareAMeal/internal/notify"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type showCmd struct{}

func (showCmd) Name() string        { return "show" }
func (showCmd) Description() string { return "Показать объявление по id" }
func (showCmd) Usage() string       { return "show <id>" }

func (showCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	svc, done, err := OpenService(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	d, err := svc.Get(ctx, args[0])
	if errors.Is(err, model.ErrNotFound) {
		fmt.Fprintf(Out, "× %s\n", notify.MsgNotFound)
		return err
	}
	if err != nil {
		return err
	}
	image := d.Image
	if strings.HasPrefix(image, "data:") {
		image = "<embedded image>"
	}
	expiry := d.Expiry
	if expiry == "" {
		expiry = "<not set>"
	} else if d.Expired(time.Now()) {
		expiry += " (expired)"
	}
	fmt.Fprintf(Out, "id:          %s\n", d.ID)
	fmt.Fprintf(Out, "title:       %s\n", d.Title)
	fmt.Fprintf(Out, "description: %s\n", d.Description)
	fmt.Fprintf(Out, "address:     %s\n", d.Address)
	fmt.Fprintf(Out, "contact:     %s\n", d.ContactInfo)
	fmt.Fprintf(Out, "best before: %s\n", expiry)
	fmt.Fprintf(Out, "image:       %s\n", image)
	fmt.Fprintf(Out, "posted:      %s\n", d.CreatedAt)
	return nil
}

func init() { RegisterCmd(showCmd{}) }
