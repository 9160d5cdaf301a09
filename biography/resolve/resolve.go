package resolve

import (
	"fmt"

	"biography-site/biography/locale"
	"biography-site/biography/model"
)

// ViewModel is the locale-specific projection of a BiographyRecord.
type ViewModel struct {
	Locale         locale.Locale         `json:"locale"`
	Personal       model.PersonalInfo    `json:"personal"`
	AltName        string                `json:"altName"`
	Experience     []model.Experience    `json:"experience"`
	Education      []model.Education     `json:"education"`
	Skills         []model.SkillGroup    `json:"skills"`
	Certifications []model.Certification `json:"certifications"`
	Projects       []model.Project       `json:"projects"`
}

// Resolve selects the l variant of every locale-partitioned field. The record
// is not modified and the returned slices do not alias it. An unsupported
// locale is a programming error and panics.
func Resolve(rec *model.BiographyRecord, l locale.Locale) ViewModel {
	if !l.Valid() {
		panic(fmt.Sprintf("resolve: unsupported locale %q", string(l)))
	}
	vm := ViewModel{
		Locale:         l,
		Experience:     cloneExperience(pickList(rec.Experience, l)),
		Education:      append([]model.Education{}, pickList(rec.Education, l)...),
		Skills:         cloneSkills(pickList(rec.Skills, l)),
		Certifications: cloneCertifications(pickList(rec.Certifications, l)),
		Projects:       cloneProjects(pickList(rec.Projects, l)),
	}
	if p := pick(rec.Personal, l); p != nil {
		vm.Personal = *p
	}
	if alt := pick(rec.Personal, l.Other()); alt != nil {
		vm.AltName = alt.Name
	}
	return vm
}

func pick[T any](field model.Localized[T], l locale.Locale) T {
	if l == locale.EN {
		return field.EN
	}
	return field.ZH
}

func pickList[T any](field model.LocalizedList[T], l locale.Locale) []T {
	if l == locale.EN {
		return field.EN
	}
	return field.ZH
}

func cloneExperience(in []model.Experience) []model.Experience {
	out := make([]model.Experience, len(in))
	for i, e := range in {
		e.Responsibilities = append([]model.Responsibility{}, e.Responsibilities...)
		out[i] = e
	}
	return out
}

func cloneSkills(in []model.SkillGroup) []model.SkillGroup {
	out := make([]model.SkillGroup, len(in))
	for i, g := range in {
		g.Items = append([]string{}, g.Items...)
		out[i] = g
	}
	return out
}

func cloneCertifications(in []model.Certification) []model.Certification {
	out := make([]model.Certification, len(in))
	for i, c := range in {
		c.ExpiryDate = cloneString(c.ExpiryDate)
		c.Link = cloneString(c.Link)
		c.Pictures = append([]string{}, c.Pictures...)
		out[i] = c
	}
	return out
}

func cloneProjects(in []model.Project) []model.Project {
	out := make([]model.Project, len(in))
	for i, p := range in {
		p.Technologies = append([]string{}, p.Technologies...)
		p.Highlights = append([]string{}, p.Highlights...)
		p.Pictures = append([]string{}, p.Pictures...)
		p.Link = cloneString(p.Link)
		p.Demo = cloneString(p.Demo)
		out[i] = p
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
