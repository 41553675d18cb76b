package outreach

import (
	"context"
	"regexp"
	"strings"
	"time"
)

var (
	signoffPattern     = regexp.MustCompile(`(?i)(best\s*,?\s*harshit.*?dupont\s*tedlar.*?)$`)
	draftMarkerPattern = regexp.MustCompile(`(?i)^(draft\s*:|proposed\s*text:)\s*`)
)

// CleanMessage normalizes a drafted message: the required signoff is enforced
// at the end, leading draft markers are stripped, and overlong drafts are
// trimmed with the signoff re-applied.
func CleanMessage(content string) string {
	msg := strings.TrimSpace(content)

	if !strings.HasSuffix(msg, strings.TrimSpace(RequiredSignoff)) {
		msg = signoffPattern.ReplaceAllString(msg, "")
		msg = strings.TrimRight(msg, " \t\n") + RequiredSignoff
	}

	msg = draftMarkerPattern.ReplaceAllString(msg, "")

	if len([]rune(msg)) > MaxMessageLength {
		msg = string([]rune(msg)[:1400]) + "..." + RequiredSignoff
	}

	return msg
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
