package telegram

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	"git-commander/internal/model"
	pkgTelegram "git-commander/pkg/telegram"
)

const parseMode = pkgTelegram.ParseModeHTML

// teller renders one event type as a chat line.
type teller func(event model.Event) (string, error)

func tellPush(event model.Event) (string, error) {
	var payload struct {
		Size int    `json:"size"`
		Ref  string `json:"ref"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return "", fmt.Errorf("failed to parse push event %s: %w", event.ID, err)
	}

	noun := "commits"
	if payload.Size == 1 {
		noun = "commit"
	}

	// refs/heads/main -> main
	branch := strings.TrimPrefix(payload.Ref, "refs/heads/")
	target := bold(event.Repo.Name)
	if branch != "" {
		target = fmt.Sprintf("%s:%s", target, html.EscapeString(branch))
	}

	return fmt.Sprintf("[%s] %s pushed %d %s to %s (%s)",
		stamp(event.CreatedAt), bold(event.Actor), payload.Size, noun, target, link(event.Repo.WebURL)), nil
}

func tellRelease(event model.Event) (string, error) {
	var payload struct {
		Release struct {
			TagName string `json:"tag_name"`
		} `json:"release"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return "", fmt.Errorf("failed to parse release event %s: %w", event.ID, err)
	}

	return fmt.Sprintf("[%s] %s published a new release %s to %s (%s)",
		stamp(event.CreatedAt), bold(event.Actor), html.EscapeString(payload.Release.TagName),
		bold(event.Repo.Name), link(event.Repo.WebURL)), nil
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func bold(s string) string {
	return "<b>" + html.EscapeString(s) + "</b>"
}

func link(url string) string {
	escaped := html.EscapeString(url)
	return fmt.Sprintf(`<a href="%s">%s</a>`, escaped, escaped)
}
