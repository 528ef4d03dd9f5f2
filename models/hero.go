package models

// Hero is one entry of the imported hero catalog
type Hero struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	LocalizedName string `json:"localized_name"`
	PrimaryAttr   string `json:"primary_attr"`
	AttackType    string `json:"attack_type"`
	Roles         string `json:"roles"` // comma-separated role list
	Complexity    int    `json:"complexity"`
}

// PrimaryRole returns the first role tag, or "" when none are known
func (h *Hero) PrimaryRole() string {
	for i := 0; i < len(h.Roles); i++ {
		if h.Roles[i] == ',' {
			return h.Roles[:i]
		}
	}
	return h.Roles
}
