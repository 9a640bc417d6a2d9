package family

import (
	"sort"

	"github.com/fra-anto/wedding-rsvp-api/internal/models"
)

// Recipient is a de-duplicated, email-bearing group leader together with
// the display names of the full household. One notification goes out per
// recipient, addressed to the leader's email.
type Recipient struct {
	LeaderID    uint     `json:"id"`
	Name        string   `json:"name"`
	Surname     string   `json:"surname"`
	Email       string   `json:"email"`
	MemberCount int      `json:"family_members_count"`
	MemberNames []string `json:"family_member_names"`
}

// BuildRecipients resolves every email-bearing guest to its group leader
// and emits one Recipient per unique leader that has an email itself. A
// dependent's own email is ignored once the leader is resolved: the
// leader's address is the group's contact channel. MemberNames lists the
// leader first, then every dependent in the full guest list, whether or
// not the dependent has an email.
func BuildRecipients(guests []models.Guest) []Recipient {
	byID := make(map[uint]models.Guest, len(guests))
	for _, g := range guests {
		byID[g.ID] = g
	}

	withEmail := make([]models.Guest, 0, len(guests))
	for _, g := range guests {
		if g.HasEmail() {
			withEmail = append(withEmail, g)
		}
	}
	sort.Slice(withEmail, func(i, j int) bool {
		if withEmail[i].Surname != withEmail[j].Surname {
			return withEmail[i].Surname < withEmail[j].Surname
		}
		return withEmail[i].Name < withEmail[j].Name
	})

	seen := make(map[uint]bool)
	recipients := []Recipient{}

	for _, g := range withEmail {
		var leader models.Guest
		if g.FamilyID != nil {
			resolved, ok := byID[*g.FamilyID]
			if !ok || !resolved.HasEmail() {
				continue
			}
			leader = resolved
		} else {
			leader = g
		}

		if seen[leader.ID] {
			continue
		}
		seen[leader.ID] = true

		names := []string{leader.Name}
		for _, other := range guests {
			if other.FamilyID != nil && *other.FamilyID == leader.ID {
				names = append(names, other.Name)
			}
		}

		recipients = append(recipients, Recipient{
			LeaderID:    leader.ID,
			Name:        leader.Name,
			Surname:     leader.Surname,
			Email:       *leader.Email,
			MemberCount: len(names),
			MemberNames: names,
		})
	}

	return recipients
}
