package dto

// UserInfo is the viewer identity block; anonymous viewers get the zero
// value, which serializes to an empty object.
type UserInfo struct {
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}
