package domain

// Movie represents one record of the in-memory catalog.
type Movie struct {
	ID          int
	Title       string
	Genre       string
	ReleaseYear int
	// Rating is nil when the movie has no rating. A non-nil value always
	// carries exactly one fractional digit.
	Rating *string
	// Comment is never set by any operation yet.
	Comment *string
}

// Clone returns a deep copy so callers cannot mutate store-owned pointers.
func (m Movie) Clone() Movie {
	out := m
	if m.Rating != nil {
		rating := *m.Rating
		out.Rating = &rating
	}
	if m.Comment != nil {
		comment := *m.Comment
		out.Comment = &comment
	}
	return out
}

// RatingText returns the rating or "N/A" when absent.
func (m Movie) RatingText() string {
	if m.Rating == nil || *m.Rating == "" {
		return "N/A"
	}
	return *m.Rating
}

// CommentText returns the comment or the placeholder shown when absent.
func (m Movie) CommentText() string {
	if m.Comment == nil || *m.Comment == "" {
		return "No comments yet"
	}
	return *m.Comment
}
