package domain

// IsDuplicate reports whether a candidate record duplicates one already
// stored in any bucket. Both the feed identifier and the verbatim summary
// text are checked: the upstream feed has been observed to reuse identifiers
// across distinct events and to duplicate identical summaries across
// distinct identifiers, and either check catches the other's failure mode.
//
// This is a linear scan over everything seen so far in the run, which is
// fine at the tens-of-alerts volume a county set produces.
func IsDuplicate(candidate AlertRecord, buckets AlertBuckets) bool {
	for _, existing := range buckets.All() {
		if candidate.EventID != "" && existing.EventID == candidate.EventID {
			return true
		}
		if candidate.Summary != "" && existing.Summary == candidate.Summary {
			return true
		}
	}
	return false
}
