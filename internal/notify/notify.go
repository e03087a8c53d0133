// Package notify, приёмники пользовательских уведомлений (аналог toast-сообщений).
package notify

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Тексты уведомлений.
const (
	MsgPosted         = "Food donation posted successfully!"
	MsgRequired       = "Please fill in all required fields"
	MsgNotFound       = "Donation not found"
	MsgWrongPassword  = "Incorrect password"
	MsgDeleted        = "Donation deleted successfully"
	MsgImageType      = "Please select an image file"
	MsgPasswordLength = "Password must be at least 4 characters"
	MsgEnterPassword  = "Please enter the password"
)

// ImageTooLarge строит сообщение о превышении лимита изображения.
func ImageTooLarge(limitBytes int64) string {
	return "Image size should be less than " + FormatSize(limitBytes)
}

// FormatSize печатает лимит в самой крупной единице, которая делит его нацело.
func FormatSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

// Notifier работает по принципу fire-and-forget, результат вызова никто не проверяет.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Nop отбрасывает все сообщения.
type Nop struct{}

func (Nop) Success(string) {}
func (Nop) Error(string) {}

// Writer печатает сообщения в поток вывода CLI.
type Writer struct {
	mu  sync.Mutex
	Out io.Writer
}

func NewWriter(out io.Writer) *Writer { return &Writer{Out: out} }

func (w *Writer) Success(msg string) { w.print("✓", msg) }
func (w *Writer) Error(msg string) { w.print("×", msg) }

func (w *Writer) print(mark, msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.Out, "%s %s\n", mark, msg)
}

// Log пишет уведомления в zap. Нужен HTTP-серверу, где toast рисует клиент.
type Log struct {
	Logger *zap.SugaredLogger
}

func (l Log) Success(msg string) { l.Logger.Infow("notify", "level", "success", "message", msg) }
func (l Log) Error(msg string) { l.Logger.Warnw("notify", "level", "error", "message", msg) }
