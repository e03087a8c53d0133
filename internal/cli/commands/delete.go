package commands

import (
	"ShareAMeal/internal/config"
	"ShareAMeal/internal/notify"
	"context"
	"fmt"
)

type deleteCmd struct{}

func (deleteCmd) Name() string        { return "delete" }
func (deleteCmd) Description() string { return "Удалить своё объявление (нужен пароль)" }
func (deleteCmd) Usage() string       { return "delete <id> <password>" }

// Run: сообщения об успехе/ошибке печатает notifier сервиса.
func (deleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 || args[0] == "" {
		return ErrUsage
	}
	if args[1] == "" {
		fmt.Fprintf(Out, "× %s\n", notify.MsgEnterPassword)
		return ErrUsage
	}
	svc, done, err := OpenService(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()
	return svc.Delete(ctx, args[0], args[1])
}

func init() { RegisterCmd(deleteCmd{}) }
