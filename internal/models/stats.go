package models

// CompanyRating is one row of the top-rated ranking.
type CompanyRating struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	AverageRating float64 `json:"average_rating"`
}

// RatingSummary is the raw mean and count of one company's reviews.
type RatingSummary struct {
	CompanyID     string  `json:"company_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

type CompanyReviewCount struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ReviewCount int64  `json:"review_count"`
}

type RatingBucket struct {
	Rating float64 `json:"rating"`
	Count  int64   `json:"count"`
}

type CompanyEngagement struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	ReviewCount         int64  `json:"review_count"`
	AccomplishmentCount int64  `json:"accomplishment_count"`
}
