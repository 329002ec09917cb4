package domain

// Identity is the authenticated user as confirmed by the collaborator.
type Identity struct {
	ID          string
	DisplayName string
	Email       string
	City        string
	AvatarURL   string
}
