package exam

import "time"

// Duplicate deep-copies src under freshly minted ids. Every node of the copy
// gets a new random id; src and its slices are left untouched.
func Duplicate(src Test, title string, now time.Time) Test {
	if title == "" {
		title = src.Title + " (copy)"
	}
	dst := Test{
		ID:                   newID(),
		Title:                title,
		TemplateID:           src.TemplateID,
		Status:               src.Status,
		CompletionPercentage: src.CompletionPercentage,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if src.Sections != nil {
		dst.Sections = make([]Section, len(src.Sections))
	}
	for si, s := range src.Sections {
		ns := s
		ns.ID = newID()
		ns.TestID = dst.ID
		ns.Parts = make([]Part, len(s.Parts))
		for pi, p := range s.Parts {
			np := p
			np.ID = newID()
			np.SectionID = ns.ID
			np.Questions = make([]Question, len(p.Questions))
			for qi, q := range p.Questions {
				nq := q
				nq.ID = newID()
				nq.PartID = np.ID
				nq.Images = append([]string(nil), q.Images...)
				if q.Options != nil {
					nq.Options = make([]Option, len(q.Options))
					for oi, o := range q.Options {
						o.ID = newID()
						nq.Options[oi] = o
					}
				}
				nq.CreatedAt, nq.UpdatedAt = now, now
				np.Questions[qi] = nq
			}
			ns.Parts[pi] = np
		}
		dst.Sections[si] = ns
	}
	return dst
}
