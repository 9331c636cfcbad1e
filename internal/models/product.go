package models

import "time"

// ProductRecord is the unit of extraction output. It is created empty at
// scrape start, mutated in place by each extraction stage, and handed once to
// the persistence layer. An absent scalar field means "not found", never an
// error value.
type ProductRecord struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Rating      string `json:"rating"`
	ReviewCount string `json:"review_count"`

	// DetailImages holds absolute URLs in discovery order, no duplicates.
	DetailImages []string `json:"detail_images"`

	// RatingDistribution maps star value (1..5) to a percentage text. A key
	// is present only when the entry was successfully read.
	RatingDistribution map[int]string `json:"rating_distribution"`

	// Reviews and ReviewRatings are parallel arrays: ReviewRatings[i] is the
	// parsed numeric rating of Reviews[i], or "" when the rating phrase could
	// not be parsed. len(Reviews) == len(ReviewRatings) at all times.
	Reviews       []string `json:"reviews"`
	ReviewRatings []string `json:"review_ratings"`

	ScrapedAt time.Time `json:"scraped_at"`
}

func NewProductRecord() *ProductRecord {
	return &ProductRecord{
		RatingDistribution: make(map[int]string),
		ScrapedAt:          time.Now(),
	}
}

// ReviewEntry is one extracted review before it is appended to a record.
type ReviewEntry struct {
	Text   string
	Rating string
}

// AppendReviews adds entries to the parallel review arrays, truncating at
// max total reviews. It reports whether the record has reached max.
func (r *ProductRecord) AppendReviews(entries []ReviewEntry, max int) bool {
	for _, e := range entries {
		if len(r.Reviews) >= max {
			break
		}
		r.Reviews = append(r.Reviews, e.Text)
		r.ReviewRatings = append(r.ReviewRatings, e.Rating)
	}
	return len(r.Reviews) >= max
}

// AddDetailImage appends an image URL unless it is already present.
func (r *ProductRecord) AddDetailImage(url string) bool {
	for _, existing := range r.DetailImages {
		if existing == url {
			return false
		}
	}
	r.DetailImages = append(r.DetailImages, url)
	return true
}
