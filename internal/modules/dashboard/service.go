package dashboard

import (
	"context"
	"time"

	"railbook/internal/repository"
)

type MonthlyProfit struct {
	Month  string  `json:"month"`
	Profit float64 `json:"profit"`
}

type DailyProfit struct {
	Date   string  `json:"date"`
	Profit float64 `json:"profit"`
}

type Overview struct {
	Counts        *repository.EntityCounts `json:"counts"`
	MonthlyProfit []MonthlyProfit          `json:"monthly_profit"`
	DailyProfit   []DailyProfit            `json:"daily_profit"`
}

type Repository interface {
	Counts(ctx context.Context) (*repository.EntityCounts, error)
	ProfitBetween(ctx context.Context, from, to time.Time) (float64, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Overview aggregates entity counts with profit sums over the last four
// calendar months and the last seven days, most recent first.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()

	monthly := make([]MonthlyProfit, 0, 4)
	for i := 0; i < 4; i++ {
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		to := from.AddDate(0, 1, 0)
		profit, err := s.repo.ProfitBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}
		monthly = append(monthly, MonthlyProfit{
			Month:  from.Format("2006-01"),
			Profit: profit,
		})
	}

	daily := make([]DailyProfit, 0, 7)
	for i := 0; i < 7; i++ {
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -i)
		to := from.AddDate(0, 0, 1)
		profit, err := s.repo.ProfitBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}
		daily = append(daily, DailyProfit{
			Date:   from.Format("2006-01-02"),
			Profit: profit,
		})
	}

	return &Overview{Counts: counts, MonthlyProfit: monthly, DailyProfit: daily}, nil
}
