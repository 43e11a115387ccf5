package app

import (
	"context"
	"time"
)

type DailyPlanUseCase interface {
	GetDailyPlan(ctx context.Context, date time.Time) (*DailyPlan, error)
	SaveDailyPlan(ctx context.Context, req SaveDailyPlanRequest) (*SaveResult, error)
}
