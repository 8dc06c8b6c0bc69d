package validate

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// CommonEmailDomains are the providers SuggestEmail corrects towards.
var CommonEmailDomains = []string{
	"gmail.com",
	"hotmail.com",
	"outlook.com",
	"live.com",
	"yahoo.com",
	"yahoo.com.br",
	"icloud.com",
	"uol.com.br",
	"bol.com.br",
	"terra.com.br",
}

const maxSuggestDistance = 2

// SuggestEmail returns the address with its domain replaced by the closest
// common provider when the typed domain looks like a typo of one. It never
// suggests for exact matches or for domains far from every provider.
func SuggestEmail(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	local, domain := email[:at], strings.ToLower(email[at+1:])

	best, bestDist := "", maxSuggestDistance+1
	for _, d := range CommonEmailDomains {
		if d == domain {
			return "", false
		}
		dist := levenshtein.ComputeDistance(domain, d)
		if dist < bestDist {
			best, bestDist = d, dist
		}
	}
	if best == "" {
		return "", false
	}
	return local + "@" + best, true
}
