package history

// Stats aggregates record outcomes.
type Stats struct {
	Total     int `json:"total"`
	Running   int `json:"running"`
	Success   int `json:"success"`
	Failed    int `json:"failed"`
	Submitted int `json:"submitted"`
	Ports     int `json:"ports"`
}

// Stats counts every record by status.
func (db *DB) Stats() (Stats, error) {
	recs, err := db.List("", 0)
	if err != nil {
		return Stats{}, err
	}

	var s Stats
	ports := make(map[string]struct{})
	for _, rec := range recs {
		s.Total++
		ports[rec.Port] = struct{}{}
		switch rec.Status {
		case StatusRunning:
			s.Running++
		case StatusSuccess:
			s.Success++
		case StatusFailed:
			s.Failed++
		case StatusSubmitted:
			s.Submitted++
		}
	}
	s.Ports = len(ports)
	return s, nil
}
