package api

import (
	"regexp"

	"github.com/t4tarzan/seaclaw-platform/internal/domainerr"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_-]{2,32}$`)

func validateUsername(u string) error {
	if !usernamePattern.MatchString(u) {
		return domainerr.Validation("username must match ^[a-z0-9_-]{2,32}$, got %q", u)
	}
	return nil
}

func validateAPIKey(key string) error {
	if len(key) < 5 {
		return domainerr.Validation("api_key must be at least 5 characters")
	}
	return nil
}

func validateTokenBudget(budget int) error {
	if budget < 1000 || budget > 1000000 {
		return domainerr.Validation("token_budget must be between 1000 and 1000000, got %d", budget)
	}
	return nil
}

func validateTTLSeconds(ttl int) error {
	if ttl < 30 || ttl > 3600 {
		return domainerr.Validation("ttl_seconds must be between 30 and 3600, got %d", ttl)
	}
	return nil
}

func validateMessage(msg string) error {
	if len(msg) < 1 || len(msg) > 8192 {
		return domainerr.Validation("message length must be between 1 and 8192, got %d", len(msg))
	}
	return nil
}

func validateRepoURL(url string) error {
	if len(url) < 5 {
		return domainerr.Validation("repo_url must be at least 5 characters")
	}
	return nil
}
