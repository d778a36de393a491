package github

import "time"

const (
	DefaultAPIURL = "https://api.github.com"
	DefaultWebURL = "https://github.com"

	defaultTimeout   = 30 * time.Second
	acceptHeader     = "application/vnd.github+json"
	userAgent        = "git-commander"
	accessTokenParam = "access_token"
)
