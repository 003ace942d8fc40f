package models

// Dataset is the full collection set owned by one user. It is serialized as
// a single JSON blob under the user's data key on every mutation.
type Dataset struct {
	Projects []Project `json:"projects"`
	Tasks    []Task    `json:"tasks"`
	Teams    []Team    `json:"teams"`
	Users    []User    `json:"users"`
}
