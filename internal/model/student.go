package model

// Student is this service's projection of a student owned by the student
// service. Only TuitionID is acted upon; the rest is passed through.
type Student struct {
	ID        string  `json:"studentId"`
	Name      string  `json:"name,omitempty"`
	Username  string  `json:"username,omitempty"`
	TuitionID *string `json:"tuitionId"`
}

// EnrolledIn reports whether the student is enrolled in exactly tuitionID.
func (s *Student) EnrolledIn(tuitionID string) bool {
	return s.TuitionID != nil && *s.TuitionID == tuitionID
}

// Enrolled reports whether the student is enrolled in any tuition.
func (s *Student) Enrolled() bool {
	return s.TuitionID != nil
}
