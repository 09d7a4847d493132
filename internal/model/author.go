package model

// Author is the public projection of an identity-directory record. The
// directory owns these fields; this service never stores them durably.
type Author struct {
	ID              string  `json:"id"`
	Username        *string `json:"username"`
	ProfileImageURL string  `json:"profile_image_url"`
}

// Caller is the authenticated principal attempting an operation.
type Caller struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
