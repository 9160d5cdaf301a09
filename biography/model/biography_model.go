package model

// Localized holds the zh and en variants of one locale-partitioned value.
type Localized[T any] struct {
	ZH T `json:"zh" yaml:"zh" validate:"required"`
	EN T `json:"en" yaml:"en" validate:"required"`
}

// LocalizedList holds the zh and en variants of one locale-partitioned list.
// Entries at the same index describe the same fact.
type LocalizedList[T any] struct {
	ZH []T `json:"zh" yaml:"zh" validate:"required,dive"`
	EN []T `json:"en" yaml:"en" validate:"required,dive"`
}

// BiographyRecord is the canonical, read-only biography document.
type BiographyRecord struct {
	Personal       Localized[*PersonalInfo]     `json:"personal" yaml:"personal"`
	Experience     LocalizedList[Experience]    `json:"experience" yaml:"experience"`
	Education      LocalizedList[Education]     `json:"education" yaml:"education"`
	Skills         LocalizedList[SkillGroup]    `json:"skills" yaml:"skills"`
	Certifications LocalizedList[Certification] `json:"certifications" yaml:"certifications"`
	Projects       LocalizedList[Project]       `json:"projects" yaml:"projects"`
}

// PersonalInfo captures identity and contact details.
type PersonalInfo struct {
	Name     string `json:"name" yaml:"name" validate:"notblank"`
	Title    string `json:"title" yaml:"title"`
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	Location string `json:"location" yaml:"location"`
	GitHub   string `json:"github" yaml:"github"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Image    string `json:"image,omitempty" yaml:"image,omitempty"`
	Summary  string `json:"summary" yaml:"summary"`
}

// Experience represents a work history entry.
type Experience struct {
	Company          string           `json:"company" yaml:"company"`
	Position         string           `json:"position" yaml:"position"`
	Period           string           `json:"period" yaml:"period"`
	Description      string           `json:"description" yaml:"description"`
	Responsibilities []Responsibility `json:"responsibilities" yaml:"responsibilities"`
}

// Responsibility is one titled duty within an experience entry.
type Responsibility struct {
	Title   string `json:"title" yaml:"title"`
	Details string `json:"details" yaml:"details"`
}

// Education represents a school entry.
type Education struct {
	School      string `json:"school" yaml:"school"`
	Degree      string `json:"degree" yaml:"degree"`
	Period      string `json:"period" yaml:"period"`
	Description string `json:"description" yaml:"description"`
}

// SkillGroup groups skills under a category.
type SkillGroup struct {
	Category string   `json:"category" yaml:"category"`
	Items    []string `json:"items" yaml:"items"`
}

// ProjectStatus is the closed lifecycle enum of a project.
type ProjectStatus string

const (
	StatusActive     ProjectStatus = "active"
	StatusDeprecated ProjectStatus = "deprecated"
	StatusAbandoned  ProjectStatus = "abandoned"
)

// Valid reports whether s is one of the three known statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusActive, StatusDeprecated, StatusAbandoned:
		return true
	default:
		return false
	}
}

// Project represents a portfolio project.
type Project struct {
	Name         string        `json:"name" yaml:"name"`
	Period       string        `json:"period" yaml:"period"`
	Status       ProjectStatus `json:"status" yaml:"status" validate:"oneof=active deprecated abandoned"`
	Description  string        `json:"description" yaml:"description"`
	Technologies []string      `json:"technologies" yaml:"technologies"`
	Highlights   []string      `json:"highlights" yaml:"highlights"`
	Pictures     []string      `json:"pictures" yaml:"pictures"`
	Link         *string       `json:"link" yaml:"link"`
	Demo         *string       `json:"demo" yaml:"demo"`
}

// Certification represents a professional certificate. A nil ExpiryDate means it never expires.
type Certification struct {
	Name         string   `json:"name" yaml:"name"`
	Issuer       string   `json:"issuer" yaml:"issuer"`
	Date         string   `json:"date" yaml:"date"`
	ExpiryDate   *string  `json:"expiryDate" yaml:"expiryDate"`
	CredentialID string   `json:"credentialId" yaml:"credentialId"`
	Description  string   `json:"description" yaml:"description"`
	Link         *string  `json:"link" yaml:"link"`
	Pictures     []string `json:"pictures,omitempty" yaml:"pictures,omitempty"`
}
