package github

import (
	"fmt"
	"net/url"
)

// UserEventsPath is the feed of a single user.
func UserEventsPath(user string) string {
	return fmt.Sprintf("/users/%s/events", url.PathEscape(user))
}

// RepoEventsPath is the feed of a single repository.
func RepoEventsPath(owner, repo string) string {
	return fmt.Sprintf("/repos/%s/%s/events", url.PathEscape(owner), url.PathEscape(repo))
}

// OrgEventsPath is the feed of an organization.
func OrgEventsPath(org string) string {
	return fmt.Sprintf("/orgs/%s/events", url.PathEscape(org))
}

// RepoWebURL is the canonical browser URL of a repository ("owner/name").
func RepoWebURL(webURL, name string) string {
	if webURL == "" {
		webURL = DefaultWebURL
	}
	return fmt.Sprintf("%s/%s", webURL, name)
}
