package commands

import (
	"ShareAMeal/internal/config"
	"ShareAMeal/internal/image"
	"ShareAMeal/internal/model"
	"ShareAMeal/internal/notify"
	"ShareAMeal/internal/service"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
)

type donateCmd struct{}

func (donateCmd) Name() string        { return "donate" }
func (donateCmd) Description() string { return "Опубликовать объявление о раздаче еды" }
func (donateCmd) Usage() string {
	return "donate --title T --description D --address A --contact C --password P [--expiry YYYY-MM-DD] [--image PATH]"
}

func (donateCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("donate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var in model.CandidateFields
	var imagePath string
	fs.StringVar(&in.Title, "title", "", "food title")
	fs.StringVar(&in.Description, "description", "", "description")
	fs.StringVar(&in.Address, "address", "", "pickup address")
	fs.StringVar(&in.ContactInfo, "contact", "", "phone or email")
	fs.StringVar(&in.Password, "password", "", "password to manage the post")
	fs.StringVar(&in.Expiry, "expiry", "", "best before (YYYY-MM-DD)")
	fs.StringVar(&imagePath, "image", "", "path to an image file")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	if imagePath != "" {
		enc := image.NewEncoder(service.NewValidator(cfg.ImageMaxBytes()))
		uri, err := enc.EncodeFile(imagePath)
		switch {
		case err == nil:
			in.Image = uri
		case errors.Is(err, model.ErrImageType):
			fmt.Fprintf(Out, "× %s\n", notify.MsgImageType)
		case errors.Is(err, model.ErrImageTooLarge):
			fmt.Fprintf(Out, "× %s\n", notify.ImageTooLarge(cfg.ImageMaxBytes()))
		default:
			return err
		}
	}

	svc, done, err := OpenService(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	d, err := svc.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Created:")
	fmt.Fprintf(Out, "  id:      %s\n", d.ID)
	fmt.Fprintf(Out, "  title:   %s\n", d.Title)
	fmt.Fprintf(Out, "  created: %s\n", d.CreatedAt)
	if d.Image == in.Image && in.Image != "" {
		fmt.Fprintln(Out, "  image:   <uploaded>")
	}
	fmt.Fprintln(Out, "Remember your password to delete this donation later.")
	return nil
}

func init() { RegisterCmd(donateCmd{}) }
