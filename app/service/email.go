package service

import "strings"

// NormalizeEmail lowercases and trims an email address. Email is the sole
// natural login key, so every lookup and insert goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
