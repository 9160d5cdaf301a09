// Package compose shapes a resolved view model into display sections for the
// interactive page, the printable portfolio and the printable resume.
package compose

import (
	"fmt"
	"strings"

	"golang.org/x/text/message"

	"biography-site/biography/gallery"
	"biography-site/biography/locale"
	"biography-site/biography/model"
	"biography-site/biography/resolve"
)

const (
	// CoreSkillLimit caps the flattened skill list on the resume.
	CoreSkillLimit = 12
	// ResumeDutyLimit caps responsibilities per experience on the resume.
	ResumeDutyLimit = 3
	// DefaultMediaPrefix is where relative image keys are served from.
	DefaultMediaPrefix = "/media/"
)

// PresentMarkers are the period tokens that mean "ongoing".
var PresentMarkers = map[locale.Locale][]string{
	locale.ZH: {"現在", "至今"},
	locale.EN: {"Present"},
}

// View names the three presentation surfaces.
type View string

const (
	ViewInteractive View = "interactive"
	ViewPortfolio   View = "portfolio"
	ViewResume      View = "resume"
)

// StatusBadge is the display triple for a project status.
type StatusBadge struct {
	Status model.ProjectStatus
	Icon   string
	Label  string
	Style  string
}

var statusStyles = map[model.ProjectStatus]struct{ icon, style string }{
	model.StatusActive:     {icon: "check-circle", style: "badge-active"},
	model.StatusDeprecated: {icon: "alert-triangle", style: "badge-deprecated"},
	model.StatusAbandoned:  {icon: "x-circle", style: "badge-abandoned"},
}

// Expiry is the certification expiry state: either a dated expiry or none.
type Expiry struct {
	HasExpiry bool
	Date      string
	Text      string
}

// PersonalView is the header block.
type PersonalView struct {
	model.PersonalInfo
	AltName        string
	ImageSrc       string
	GitHubHandle   string
	LinkedInHandle string
}

// ExperienceEntry is one timeline item.
type ExperienceEntry struct {
	model.Experience
	Current bool
	Dimmed  bool
}

// CertificationCard is one certifications grid item.
type CertificationCard struct {
	model.Certification
	Expiry Expiry
	Images []gallery.Image
}

// ProjectCard is one projects grid item.
type ProjectCard struct {
	model.Project
	Badge      StatusBadge
	PeriodText string
	Images     []gallery.Image
}

// LanguageOption is an entry of the language toggle.
type LanguageOption struct {
	Code   locale.Locale
	Label  string
	Active bool
}

// Page is the composed, template-ready view.
type Page struct {
	View           View
	Locale         locale.Locale
	Lang           string
	T              map[string]string
	Languages      []LanguageOption
	Personal       PersonalView
	Experience     []ExperienceEntry
	Education      []model.Education
	Skills         []model.SkillGroup
	CoreSkills     []string
	Certifications []CertificationCard
	Projects       []ProjectCard
	Gallery        gallery.State
}

// SelectedImage returns the enlarged image or nil when the view is closed.
func (p Page) SelectedImage() *gallery.Image {
	img, ok := p.Gallery.Selected()
	if !ok {
		return nil
	}
	return &img
}

// Images lists every gallery image on the page in display order.
func (p Page) Images() []gallery.Image {
	var out []gallery.Image
	for _, c := range p.Certifications {
		out = append(out, c.Images...)
	}
	for _, pr := range p.Projects {
		out = append(out, pr.Images...)
	}
	return out
}

// Select applies a gallery selection by reference. Unknown references close the view.
func (p Page) Select(ref gallery.Ref) Page {
	img, _ := gallery.Find(p.Images(), ref)
	p.Gallery = gallery.Reduce(p.Gallery, gallery.Select(img))
	return p
}

// Composer builds pages from view models.
type Composer struct {
	MediaPrefix string
}

// New returns a Composer serving relative media keys under prefix.
func New(mediaPrefix string) *Composer {
	if strings.TrimSpace(mediaPrefix) == "" {
		mediaPrefix = DefaultMediaPrefix
	}
	if !strings.HasSuffix(mediaPrefix, "/") {
		mediaPrefix += "/"
	}
	return &Composer{MediaPrefix: mediaPrefix}
}

// Interactive composes the full browsing page.
func (c *Composer) Interactive(vm resolve.ViewModel) Page {
	page := c.base(ViewInteractive, vm)
	page.Experience = c.experience(vm, 0)
	page.Education = vm.Education
	page.Skills = vm.Skills
	page.Certifications = c.certifications(vm)
	page.Projects = c.projects(vm)
	return page
}

// Portfolio composes the print-oriented project portfolio.
func (c *Composer) Portfolio(vm resolve.ViewModel) Page {
	page := c.base(ViewPortfolio, vm)
	page.Projects = c.projects(vm)
	page.Skills = vm.Skills
	return page
}

// Resume composes the print-oriented resume.
func (c *Composer) Resume(vm resolve.ViewModel) Page {
	page := c.base(ViewResume, vm)
	page.Experience = c.experience(vm, ResumeDutyLimit)
	page.Education = vm.Education
	page.Certifications = c.certifications(vm)
	page.CoreSkills = CoreSkills(vm.Skills, CoreSkillLimit)
	return page
}

// Compose dispatches on view.
func (c *Composer) Compose(view View, vm resolve.ViewModel) (Page, error) {
	switch view {
	case ViewInteractive:
		return c.Interactive(vm), nil
	case ViewPortfolio:
		return c.Portfolio(vm), nil
	case ViewResume:
		return c.Resume(vm), nil
	default:
		return Page{}, fmt.Errorf("unknown view %q", view)
	}
}

// Chrome returns a page carrying only the locale, labels and language toggle,
// for surfaces rendered without the record such as the unlock prompt.
func (c *Composer) Chrome(l locale.Locale) Page {
	return Page{Locale: l, Lang: l.HTMLLang(), T: Labels(l), Languages: languageOptions(l)}
}

func (c *Composer) base(view View, vm resolve.ViewModel) Page {
	l := vm.Locale
	return Page{
		View:      view,
		Locale:    l,
		Lang:      l.HTMLLang(),
		T:         Labels(l),
		Languages: languageOptions(l),
		Personal: PersonalView{
			PersonalInfo:   vm.Personal,
			AltName:        vm.AltName,
			ImageSrc:       c.MediaURL(vm.Personal.Image),
			GitHubHandle:   handle(vm.Personal.GitHub, "https://github.com/"),
			LinkedInHandle: handle(vm.Personal.LinkedIn, "https://www.linkedin.com/in/"),
		},
	}
}

func (c *Composer) experience(vm resolve.ViewModel, dutyLimit int) []ExperienceEntry {
	out := make([]ExperienceEntry, 0, len(vm.Experience))
	for _, e := range vm.Experience {
		if dutyLimit > 0 && len(e.Responsibilities) > dutyLimit {
			e.Responsibilities = e.Responsibilities[:dutyLimit]
		}
		current := IsCurrent(e.Period)
		out = append(out, ExperienceEntry{Experience: e, Current: current, Dimmed: !current})
	}
	return out
}

func (c *Composer) certifications(vm resolve.ViewModel) []CertificationCard {
	p := Printer(vm.Locale)
	out := make([]CertificationCard, 0, len(vm.Certifications))
	for i, cert := range vm.Certifications {
		out = append(out, CertificationCard{
			Certification: cert,
			Expiry:        ExpiryFor(p, cert.ExpiryDate),
			Images:        c.images(p, gallery.SectionCertifications, i, cert.Name, cert.Pictures),
		})
	}
	return out
}

func (c *Composer) projects(vm resolve.ViewModel) []ProjectCard {
	p := Printer(vm.Locale)
	out := make([]ProjectCard, 0, len(vm.Projects))
	for i, pr := range vm.Projects {
		out = append(out, ProjectCard{
			Project:    pr,
			Badge:      BadgeFor(p, pr.Status),
			PeriodText: p.Sprintf("project.period", pr.Period),
			Images:     c.images(p, gallery.SectionProjects, i, pr.Name, pr.Pictures),
		})
	}
	return out
}

func (c *Composer) images(p *message.Printer, section gallery.Section, entry int, owner string, pictures []string) []gallery.Image {
	out := make([]gallery.Image, 0, len(pictures))
	for j, pic := range pictures {
		out = append(out, gallery.Image{
			Ref: gallery.Ref{Section: section, Entry: entry, Picture: j},
			Src: c.MediaURL(pic),
			Alt: p.Sprintf("gallery.picture", owner, j+1),
		})
	}
	return out
}

// MediaURL maps an image reference to a browser URL. Absolute URLs and
// rooted paths pass through; bare keys are served from the media prefix.
func (c *Composer) MediaURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "/") {
		return ref
	}
	return c.MediaPrefix + ref
}

// IsCurrent reports whether a period string contains any present marker.
func IsCurrent(period string) bool {
	for _, markers := range PresentMarkers {
		for _, m := range markers {
			if strings.Contains(period, m) {
				return true
			}
		}
	}
	return false
}

// ExpiryFor renders exactly one of the dated expiry or the no-expiry label.
func ExpiryFor(p *message.Printer, expiryDate *string) Expiry {
	if expiryDate == nil || strings.TrimSpace(*expiryDate) == "" {
		return Expiry{Text: p.Sprintf("cert.no_expiry")}
	}
	return Expiry{HasExpiry: true, Date: *expiryDate, Text: p.Sprintf("cert.expires_on", *expiryDate)}
}

// BadgeFor maps a status to its display triple. Statuses are validated at
// load, so an unknown value here is a programming error.
func BadgeFor(p *message.Printer, status model.ProjectStatus) StatusBadge {
	s, ok := statusStyles[status]
	if !ok {
		panic(fmt.Sprintf("compose: unknown project status %q", string(status)))
	}
	return StatusBadge{
		Status: status,
		Icon:   s.icon,
		Label:  p.Sprintf("status." + string(status)),
		Style:  s.style,
	}
}

// CoreSkills flattens skill groups in order and keeps the first limit items.
func CoreSkills(groups []model.SkillGroup, limit int) []string {
	var out []string
	for _, g := range groups {
		for _, item := range g.Items {
			if limit > 0 && len(out) == limit {
				return out
			}
			out = append(out, item)
		}
	}
	return out
}

func languageOptions(active locale.Locale) []LanguageOption {
	all := locale.All()
	out := make([]LanguageOption, 0, len(all))
	for _, l := range all {
		out = append(out, LanguageOption{Code: l, Label: languageNames[l], Active: l == active})
	}
	return out
}

func handle(link, prefix string) string {
	return strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(link), prefix), "/")
}
