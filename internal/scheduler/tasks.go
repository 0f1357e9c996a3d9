// Package scheduler provides the asynq-based background job layer:
// daily digest delivery and monthly leaderboard publication.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskDailyDigest = "digest.daily"

const TaskLeaderboardPublish = "leaderboard.publish"

type DailyDigestPayload struct {
	TenantID string `json:"tenantId"`
}

type LeaderboardPublishPayload struct {
	TenantID string `json:"tenantId"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
}

func NewDailyDigestTask(payload DailyDigestPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDailyDigest, data), nil
}

func ParseDailyDigestPayload(task *asynq.Task) (DailyDigestPayload, error) {
	var payload DailyDigestPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DailyDigestPayload{}, err
	}
	return payload, nil
}

func NewLeaderboardPublishTask(payload LeaderboardPublishPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeaderboardPublish, data), nil
}

func ParseLeaderboardPublishPayload(task *asynq.Task) (LeaderboardPublishPayload, error) {
	var payload LeaderboardPublishPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeaderboardPublishPayload{}, err
	}
	return payload, nil
}
