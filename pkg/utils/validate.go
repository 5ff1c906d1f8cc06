package utils

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// NormalizeIdentity 用户名与邮箱统一去空格并转小写，唯一索引因此对大小写不敏感
func NormalizeIdentity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
