// Package gallery models the enlarged single-image view shared by project and
// certification galleries. State values are immutable; transitions go through Reduce.
package gallery

import (
	"fmt"
	"strconv"
	"strings"
)

// Section names the gallery owner kind.
type Section string

const (
	SectionProjects       Section = "projects"
	SectionCertifications Section = "certifications"
)

// Ref addresses one image: the owner entry index and the picture index.
type Ref struct {
	Section Section
	Entry   int
	Picture int
}

func (r Ref) String() string {
	return fmt.Sprintf("%s.%d.%d", r.Section, r.Entry, r.Picture)
}

// ParseRef parses "projects.1.0" style references.
func ParseRef(raw string) (Ref, bool) {
	parts := strings.Split(strings.TrimSpace(raw), ".")
	if len(parts) != 3 {
		return Ref{}, false
	}
	section := Section(parts[0])
	if section != SectionProjects && section != SectionCertifications {
		return Ref{}, false
	}
	entry, err := strconv.Atoi(parts[1])
	if err != nil || entry < 0 {
		return Ref{}, false
	}
	picture, err := strconv.Atoi(parts[2])
	if err != nil || picture < 0 {
		return Ref{}, false
	}
	return Ref{Section: section, Entry: entry, Picture: picture}, true
}

// Image is one gallery entry.
type Image struct {
	Ref Ref
	Src string
	Alt string
}

// State holds at most one selected image. The zero value is closed.
type State struct {
	selected *Image
}

// Selected returns the enlarged image, if any.
func (s State) Selected() (Image, bool) {
	if s.selected == nil {
		return Image{}, false
	}
	return *s.selected, true
}

// Open reports whether the enlarged view is shown.
func (s State) Open() bool {
	return s.selected != nil
}

// Action is a gallery transition.
type Action interface {
	apply(State) State
}

type selectAction struct {
	img *Image
}

func (a selectAction) apply(State) State {
	if a.img == nil {
		return State{}
	}
	img := *a.img
	return State{selected: &img}
}

// Select designates img as the enlarged image, replacing any previous one.
// Select(nil) closes the view.
func Select(img *Image) Action {
	return selectAction{img: img}
}

type closeAction struct{}

func (closeAction) apply(State) State { return State{} }

// Close hides the enlarged view.
func Close() Action {
	return closeAction{}
}

// Reduce returns the state after applying action.
func Reduce(s State, action Action) State {
	if action == nil {
		return s
	}
	return action.apply(s)
}

// Find looks up ref among images.
func Find(images []Image, ref Ref) (*Image, bool) {
	for i := range images {
		if images[i].Ref == ref {
			img := images[i]
			return &img, true
		}
	}
	return nil, false
}
