package service

// Completeness returns the fraction of required checklist fields that were
// completed, in [0, 1]. A job type with no required fields is always fully
// complete: there is nothing to miss.
func Completeness(fields map[string]bool, required []string) float64 {
	if len(required) == 0 {
		return 1.0
	}
	done := 0
	for _, key := range required {
		if fields[key] {
			done++
		}
	}
	return float64(done) / float64(len(required))
}
