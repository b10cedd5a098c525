package domain

import "time"

// Customer gamification counters. RankingPoints is deliberately
// unclamped: repeated failure penalties may drive it negative.
type Customer struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	DeviceToken        string    `json:"device_token,omitempty"`
	RankingPoints      int32     `json:"ranking_points"`
	RewardPoints       int32     `json:"reward_points"`
	ReturnSuccessCount int32     `json:"return_success_count"`
	ReturnFailedCount  int32     `json:"return_failed_count"`
	CreatedOn          time.Time `json:"created_on"`
}
