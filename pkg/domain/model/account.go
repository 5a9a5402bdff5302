package model

// AccountRef is one entry of a provider's account directory, as returned by
// the user search endpoint.
type AccountRef struct {
	ID       string `json:"id"`
	Username string `json:"userName"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
}
