package models

import "time"

type CategoryAggregate struct {
	Category    string  `bson:"_id" json:"category"`
	Attempts    int     `bson:"attempts" json:"attempts"`
	AvgAccuracy float64 `bson:"avg_accuracy" json:"avg_accuracy"`
	StrongCount int     `bson:"strong_count" json:"strong_count"`
	WeakCount   int     `bson:"weak_count" json:"weak_count"`
}

type AnalyticsReport struct {
	TotalTests  int                 `json:"total_tests"`
	TotalUsers  int                 `json:"total_users"`
	Categories  []CategoryAggregate `json:"categories"`
	GeneratedAt time.Time           `json:"generated_at"`
}
