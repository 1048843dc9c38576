package appointment

// Stats counts a snapshot by status.
type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[Status]int `json:"byStatus"`
}

// Summarize counts records per status. Every known status is present in
// ByStatus, zero or not.
func Summarize(records []Record) Stats {
	st := Stats{ByStatus: make(map[Status]int, len(statusLabels))}
	for _, s := range Statuses() {
		st.ByStatus[s] = 0
	}
	for _, r := range records {
		st.Total++
		st.ByStatus[r.Status]++
	}
	return st
}

// Completed is the number of completed visits.
func (s Stats) Completed() int { return s.ByStatus[StatusCompleted] }

// Cancelled is the number of cancelled visits.
func (s Stats) Cancelled() int { return s.ByStatus[StatusCancelled] }

// NoShows is the number of missed visits.
func (s Stats) NoShows() int { return s.ByStatus[StatusNoShow] }
