package models

// Role describes a member's standing within a group.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// GroupMember is one user's membership in a group.
type GroupMember struct {
	// UserID references the member's user record.
	UserID string

	// Role is either RoleAdmin or RoleMember.
	Role Role

	// JoinedAt is the Unix millisecond timestamp when the user joined.
	// All founding members share the group's creation time.
	JoinedAt int64
}

// Group represents a named set of users who share expenses.
//
// Invariants: member user IDs are unique, the creator is always an admin
// member, and a group never has fewer than one member.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Weekend Trip").
	Name string

	// Description is optional free-form text.
	Description string

	// CreatedBy is the user ID of the group's creator.
	CreatedBy string

	// Members is the group's membership set. Order carries no meaning.
	Members []GroupMember

	// CreatedAt is the Unix millisecond timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether userID belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// GroupSummary is the compact group shape returned by the contacts view.
type GroupSummary struct {
	ID          string
	Name        string
	Description string
	MemberCount int
}
