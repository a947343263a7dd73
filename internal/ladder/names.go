package ladder

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var nameSeparator = regexp.MustCompile(`[\n,]`)

// ParseNames splits raw facilitator input on newlines and commas
func ParseNames(raw string) []string {
	return CleanNames(nameSeparator.Split(raw, -1))
}

// CleanNames trims every name and drops the blank ones
func CleanNames(names []string) []string {
	trimmed := lo.Map(names, func(n string, _ int) string {
		return strings.TrimSpace(n)
	})
	return lo.Compact(trimmed)
}
