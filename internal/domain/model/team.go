package model

// Team describes a principal's fixed team: display name, home office and
// the roster of member names. Teams are static configuration, used only as
// a lookup and never mutated.
type Team struct {
	Name    string   `koanf:"name"`
	Office  string   `koanf:"office"`
	Members []string `koanf:"members"`
}

// Size is the roster length plus the principal.
func (t Team) Size() int { return len(t.Members) + 1 }
