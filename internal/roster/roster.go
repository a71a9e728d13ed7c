// Package roster defines the closed set of performers the application
// tracks: the group itself and its members. Sync only links tracks to these
// entries; nothing outside the roster enters the catalog through sync.
package roster

import (
	"strings"

	"github.com/mcerda31/fanpulse/internal/domain"
)

const (
	RoleGroup  = "group"
	RoleMember = "member"
)

// Member is one roster entry. Folder is the audio subdirectory uploads for
// this performer land in.
type Member struct {
	Slug      string
	Name      string
	SpotifyID string
	Role      string
	Folder    string
}

type Roster struct {
	members []Member
}

// Default returns the SB19 roster, group entry first.
func Default() *Roster {
	return &Roster{members: []Member{
		{Slug: "sb19", Name: "SB19", SpotifyID: "3g7vYcdDXnqnDKYFwqXBJP", Role: RoleGroup, Folder: "sb19"},
		{Slug: "pablo", Name: "Pablo", SpotifyID: "5XhUiCLKmdLEKrmgKUVVC1", Role: RoleMember, Folder: "pablo"},
		{Slug: "josh", Name: "Josh Cullen", SpotifyID: "2lSbFqmhcrgZGDvSC3emNy", Role: RoleMember, Folder: "josh"},
		{Slug: "stell", Name: "Stell", SpotifyID: "4b2PWcVIRXyBdEhRxrvLCN", Role: RoleMember, Folder: "stell"},
		{Slug: "ken", Name: "Felip", SpotifyID: "7uDL2BlWCrQ0Nc1LxVHKvD", Role: RoleMember, Folder: "ken"},
		{Slug: "justin", Name: "Justin", SpotifyID: "1sWvNBQmog4zrqvw9qVVbn", Role: RoleMember, Folder: "justin"},
	}}
}

func (r *Roster) Members() []Member {
	out := make([]Member, len(r.members))
	copy(out, r.members)
	return out
}

// Group returns the group entry.
func (r *Roster) Group() Member {
	return r.members[0]
}

// Resolve maps a caller-supplied member identifier, either a slug or a
// catalog artist id, to a roster entry.
func (r *Roster) Resolve(id string) (Member, bool) {
	for _, m := range r.members {
		if strings.EqualFold(m.Slug, id) || m.SpotifyID == id {
			return m, true
		}
	}
	return Member{}, false
}

// Lookup finds the roster entry for a catalog artist credit. Identifier
// match wins; name match covers credits the catalog lists under a variant
// id.
func (r *Roster) Lookup(spotifyID, name string) (Member, bool) {
	for _, m := range r.members {
		if m.SpotifyID != "" && m.SpotifyID == spotifyID {
			return m, true
		}
	}
	for _, m := range r.members {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return Member{}, false
}

// Folders lists every audio subdirectory, group folder first, in probe
// order.
func (r *Roster) Folders() []string {
	folders := make([]string, 0, len(r.members))
	for _, m := range r.members {
		folders = append(folders, m.Folder)
	}
	return folders
}

// SeedRows converts the roster to artist rows for startup seeding.
func (r *Roster) SeedRows() []domain.Artist {
	rows := make([]domain.Artist, 0, len(r.members))
	for _, m := range r.members {
		rows = append(rows, domain.Artist{Name: m.Name, SpotifyID: m.SpotifyID, Role: m.Role})
	}
	return rows
}
