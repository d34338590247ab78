package repository

import (
	"context"
	"time"
)

// ダッシュボード上部のカード
type SalesSummary struct {
	TodayRevenue int64
	MonthRevenue int64
	SaleCount    int64
	BestSeller   string
}

// 日別グラフの1点
type DailyRevenue struct {
	Date  time.Time
	Total int64
}

// 月別グラフの1点
type MonthlyRevenue struct {
	Month int
	Total int64
}

// 売上の集計（読み取り専用）
type ReportRepository interface {
	Summary(ctx context.Context, now time.Time) (SalesSummary, error)
	DailyRevenue(ctx context.Context, since time.Time) ([]DailyRevenue, error)
	MonthlyRevenue(ctx context.Context, year int) ([]MonthlyRevenue, error)
}
