package model

// MonthlyCount is number of jobs created in one calendar month
type MonthlyCount struct {
	Year  int   `json:"-" bson:"year"`
	Month int   `json:"-" bson:"month"`
	Count int64 `json:"count" bson:"count"`
}

// MonthlyApplication is one bar of the monthly chart
type MonthlyApplication struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// StatsResponse is the answer of GET /jobs/stats
type StatsResponse struct {
	DefaultStats        map[string]int64     `json:"defaultStats"`
	MonthlyApplications []MonthlyApplication `json:"monthlyApplications"`
}
