package email

import (
	"context"
	"strings"
	"testing"

	"FleetOps/internal/config"
	"FleetOps/internal/modules/digest/domain/digest"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessageHeaders(t *testing.T) {
	raw := string(buildMessage("FleetOps <noreply@fleet.io>", "olivia@fleet.io", "Trend actions digest", "<p>hi</p>"))
	assert.Contains(t, raw, "To: olivia@fleet.io\r\n")
	assert.Contains(t, raw, "Content-Type: text/html; charset=\"UTF-8\"\r\n")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\n<p>hi</p>"))
}

func TestSendValidatesBeforeDialing(t *testing.T) {
	s := NewSMTPSender(config.EmailConfig{})
	assert.Error(t, s.Send(context.Background(), digest.Email{To: "a@b.io", From: "c@d.io"}))

	s = NewSMTPSender(config.EmailConfig{SMTPHost: "127.0.0.1", SMTPPort: 1})
	assert.Error(t, s.Send(context.Background(), digest.Email{To: "not an address", From: "c@d.io"}))
	assert.Equal(t, 1, s.port)
	assert.Equal(t, 587, NewSMTPSender(config.EmailConfig{SMTPHost: "x"}).port)
}
