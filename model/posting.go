package model

// PostingRecord describes one internship posting. Like CandidateProfile,
// it is owned by the caller and passed in fully materialized; the engine
// only reads it. RequiredSkills and RequiredLanguages are free text,
// comma- or semicolon-separated.
type PostingRecord struct {
	ID                    string `json:"id"`
	CompanyName           string `json:"company_name"`
	Title                 string `json:"title"`
	RequiredQualification string `json:"required_qualification"`
	RequiredSkills        string `json:"required_skills"`
	RequiredLanguages     string `json:"required_languages"`
	Location              string `json:"location"`
	PreferredCategory     string `json:"preferred_category"`
	AccommodationFriendly bool   `json:"accommodation_friendly"`
	Sector                string `json:"sector"`
}
