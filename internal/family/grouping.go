// Package family clusters guest records into household groups and derives
// the de-duplicated recipient lists used by notifications and the
// invitation export.
package family

import (
	"sort"

	"github.com/fra-anto/wedding-rsvp-api/internal/models"
)

// GroupByFamily partitions guests into household groups keyed by the
// leader's id. The first element of every group is the leader; dependents
// follow in input-encounter order. The result does not depend on input
// ordering: leaders are resolved from a full pre-scan, so a dependent that
// appears before its leader is still grouped correctly.
//
// A guest whose FamilyID references an id missing from the input ends up
// alone in a phantom group keyed by the missing id. Reads tolerate the
// broken link; the write endpoints are the ones that reject it.
func GroupByFamily(guests []models.Guest) map[uint][]models.Guest {
	byID := make(map[uint]models.Guest, len(guests))
	hasDependents := make(map[uint]bool)
	for _, g := range guests {
		byID[g.ID] = g
		if g.FamilyID != nil {
			hasDependents[*g.FamilyID] = true
		}
	}

	grouped := make(map[uint][]models.Guest)
	for _, g := range guests {
		switch {
		case g.FamilyID != nil:
			key := *g.FamilyID
			if _, ok := grouped[key]; !ok {
				grouped[key] = []models.Guest{}
				if leader, found := byID[key]; found {
					grouped[key] = append(grouped[key], leader)
				}
			}
			if !containsGuest(grouped[key], g.ID) {
				grouped[key] = append(grouped[key], g)
			}
		case hasDependents[g.ID]:
			// Leader: the group may already exist if a dependent was
			// processed first, in which case the pre-scan lookup has
			// already placed the leader at the front.
			if !containsGuest(grouped[g.ID], g.ID) {
				grouped[g.ID] = append(grouped[g.ID], g)
			}
		default:
			grouped[g.ID] = []models.Guest{g}
		}
	}

	return grouped
}

// SortedGroupKeys returns the group keys ordered by the first member's
// surname, then name. This is the ordering used for printable exports.
func SortedGroupKeys(groups map[uint][]models.Guest) []uint {
	keys := make([]uint, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := groups[keys[i]][0], groups[keys[j]][0]
		if a.Surname != b.Surname {
			return a.Surname < b.Surname
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return keys[i] < keys[j]
	})
	return keys
}

// ResolveLeader returns the group leader of g within the given guest list,
// or nil when g points at an id that is not present.
func ResolveLeader(guests []models.Guest, g models.Guest) *models.Guest {
	if g.FamilyID == nil {
		return &g
	}
	for i := range guests {
		if guests[i].ID == *g.FamilyID {
			return &guests[i]
		}
	}
	return nil
}

// Members returns the full household of g, sorted by id: the leader (when
// present in the list) followed by every guest whose FamilyID points at the
// leader. A guest with no links resolves to a household of one.
func Members(guests []models.Guest, g models.Guest) []models.Guest {
	var leaderID uint
	members := []models.Guest{}

	if g.FamilyID != nil {
		leaderID = *g.FamilyID
		if leader := ResolveLeader(guests, g); leader != nil {
			members = append(members, *leader)
		}
	} else {
		leaderID = g.ID
		members = append(members, g)
	}

	for _, other := range guests {
		if other.FamilyID != nil && *other.FamilyID == leaderID && !containsGuest(members, other.ID) {
			members = append(members, other)
		}
	}

	if len(members) == 0 {
		members = append(members, g)
	}

	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members
}

func containsGuest(members []models.Guest, id uint) bool {
	for _, m := range members {
		if m.ID == id {
			return true
		}
	}
	return false
}
