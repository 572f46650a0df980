package model

// CandidateProfile describes one candidate as seen by the scoring engine.
// All attribute fields are free text exactly as captured at registration;
// list-valued attributes (skills, languages, interests, hobbies) are
// comma- or semicolon-separated. The engine never mutates a profile and
// treats every empty field as "attribute absent".
type CandidateProfile struct {
	ID                 string `json:"id"`
	Qualification      string `json:"qualification"`
	Skills             string `json:"skills"`
	Languages          string `json:"languages"`
	CurrentAddress     string `json:"current_address"`
	Interests          string `json:"interests"`
	Course             string `json:"course"`
	Hobbies            string `json:"hobbies"`
	Category           string `json:"category"`
	NeedsAccommodation bool   `json:"needs_accommodation"`
}
