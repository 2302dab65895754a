package video

// MaxNameLength bounds Name in characters.
const MaxNameLength = 100

// Video is one catalog row. IDs are chosen by the client.
type Video struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Views int64  `json:"views"`
	Likes int64  `json:"likes"`
}

// Patch carries the fields of a partial update. Nil fields are left untouched.
type Patch struct {
	Name  *string `json:"name,omitempty"`
	Views *int64  `json:"views,omitempty"`
	Likes *int64  `json:"likes,omitempty"`
}

// Empty reports whether no field was supplied.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Views == nil && p.Likes == nil
}

// Apply overwrites the supplied fields on v.
func (p Patch) Apply(v *Video) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Views != nil {
		v.Views = *p.Views
	}
	if p.Likes != nil {
		v.Likes = *p.Likes
	}
}
