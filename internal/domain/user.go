package domain

type User struct {
	ID           int64   `json:"-"`
	Login        string  `json:"login"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	CountryCode  string  `json:"countryCode"`
	IsPublic     bool    `json:"isPublic"`
	Phone        *string `json:"phone,omitempty"`
	Image        *string `json:"image,omitempty"`
}

// ProfileUpdate holds the optional fields of a profile edit; nil means keep.
type ProfileUpdate struct {
	CountryCode *string
	IsPublic    *bool
	Phone       *string
	Image       *string
}

// Apply returns a copy of u with the non-nil fields of p applied.
func (p ProfileUpdate) Apply(u User) User {
	if p.CountryCode != nil {
		u.CountryCode = *p.CountryCode
	}
	if p.IsPublic != nil {
		u.IsPublic = *p.IsPublic
	}
	if p.Phone != nil {
		phone := *p.Phone
		u.Phone = &phone
	}
	if p.Image != nil {
		image := *p.Image
		u.Image = &image
	}
	return u
}
