package dto

// TrackListQuery is decoded from the list endpoint's query string.
type TrackListQuery struct {
	Limit    int    `form:"limit"`
	Popular  bool   `form:"popular"`
	Featured bool   `form:"featured"`
	Member   string `form:"member"`
}

func (q *TrackListQuery) Validate() []ValidationError {
	var errs []ValidationError
	if q.Limit < 0 {
		errs = append(errs, ValidationError{Field: "limit", Message: "must not be negative"})
	}
	return errs
}
