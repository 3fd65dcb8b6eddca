package model

import (
	"github.com/m-mizutani/appacc/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Technology describes one selectable project-generation option (e.g. "rest", "java")
// as returned by the starter backend
type Technology struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Selected    bool   `json:"selected,omitempty"`
}

// Validate checks that required fields are present
func (t *Technology) Validate() error {
	if t == nil {
		return goerr.New("technology is null", goerr.T(types.ErrTagInvalidResponse))
	}
	if t.ID == "" {
		return goerr.New("technology id is empty",
			goerr.V("name", t.Name),
			goerr.T(types.ErrTagInvalidResponse))
	}
	if t.Name == "" {
		return goerr.New("technology name is empty",
			goerr.V("id", t.ID),
			goerr.T(types.ErrTagInvalidResponse))
	}
	return nil
}

// Technologies is an ordered list of technologies. Order is the one received from the backend.
type Technologies []*Technology

// Validate validates every technology in the list
func (ts Technologies) Validate() error {
	for i, t := range ts {
		if err := t.Validate(); err != nil {
			return goerr.Wrap(err, "invalid technology",
				goerr.V("index", i),
				goerr.T(types.ErrTagInvalidResponse))
		}
	}
	return nil
}

// Selected returns the selected technologies, keeping input order
func (ts Technologies) Selected() Technologies {
	var selected Technologies
	for _, t := range ts {
		if t != nil && t.Selected {
			selected = append(selected, t)
		}
	}
	return selected
}

// IDs returns IDs of all technologies
func (ts Technologies) IDs() []string {
	ids := make([]string, 0, len(ts))
	for _, t := range ts {
		if t != nil {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// Find returns the technology with the given ID, or nil
func (ts Technologies) Find(id string) *Technology {
	for _, t := range ts {
		if t != nil && t.ID == id {
			return t
		}
	}
	return nil
}

// Select marks technologies with the given IDs as selected. All IDs must exist.
func (ts Technologies) Select(ids ...string) error {
	for _, id := range ids {
		t := ts.Find(id)
		if t == nil {
			return goerr.New("unknown technology",
				goerr.V("id", id),
				goerr.V("available", ts.IDs()),
				goerr.T(types.ErrTagUnknownTechnology))
		}
		t.Selected = true
	}
	return nil
}
