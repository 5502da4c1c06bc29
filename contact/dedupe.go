package contact

import (
	"strings"

	"github.com/pitchside/sponsorscout/models"
)

// DedupeContacts removes duplicate contacts, keyed by lowercase email, or
// LinkedIn URL when the email is empty. The first occurrence wins since
// strategies append in descending trust order. Contacts without either key
// (phone-only) are kept as-is.
func DedupeContacts(contacts []models.ContactInfo) []models.ContactInfo {
	out := make([]models.ContactInfo, 0, len(contacts))
	seen := make(map[string]struct{}, len(contacts))

	for _, c := range contacts {
		key := strings.ToLower(c.Email)
		if key == "" {
			key = strings.ToLower(c.LinkedIn)
		}
		if key != "" {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, c)
	}
	return out
}
