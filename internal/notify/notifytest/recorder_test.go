package notifytest_test

import (
	"ShareAMeal/internal/notify"
	"ShareAMeal/internal/notify/notifytest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var _ notify.Notifier = (*notifytest.Recorder)(nil)

func TestRecorder(t *testing.T) {
	r := &notifytest.Recorder{}
	r.Success("a")
	r.Error("b")
	r.Error("c")
	assert.Equal(t, []string{"a"}, r.Successes)
	assert.Equal(t, []string{"b", "c"}, r.Errors)
}
