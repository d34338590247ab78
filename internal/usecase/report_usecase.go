package usecase

import (
	"context"
	"net/http"
	"time"

	repo "pos/internal/repository"
)

// ReportUsecase はダッシュボードの集計（読み取り専用）
type ReportUsecase struct {
	reportRepo repo.ReportRepository
	clock      Clock
}

func NewReportUsecase(reportRepo repo.ReportRepository, clock Clock) *ReportUsecase {
	return &ReportUsecase{reportRepo: reportRepo, clock: clock}
}

type SummaryOutput struct {
	TodayRevenue int64  `json:"today_revenue"`
	MonthRevenue int64  `json:"month_revenue"`
	SaleCount    int64  `json:"sale_count"`
	BestSeller   string `json:"best_seller"`
}

type DailyPoint struct {
	Date  string `json:"date"`
	Total int64  `json:"total"`
}

type MonthlyPoint struct {
	Month int   `json:"month"`
	Total int64 `json:"total"`
}

type ChartsOutput struct {
	Daily   []DailyPoint   `json:"daily"`
	Monthly []MonthlyPoint `json:"monthly"`
}

// GetSummary はダッシュボード上部のカード
func (u *ReportUsecase) GetSummary(ctx context.Context) (SummaryOutput, error) {
	s, err := u.reportRepo.Summary(ctx, u.clock.Now())
	if err != nil {
		return SummaryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return SummaryOutput{
		TodayRevenue: s.TodayRevenue,
		MonthRevenue: s.MonthRevenue,
		SaleCount:    s.SaleCount,
		BestSeller:   s.BestSeller,
	}, nil
}

// GetCharts は日別（直近7日）と月別（今年）のグラフデータ
func (u *ReportUsecase) GetCharts(ctx context.Context) (ChartsOutput, error) {
	now := u.clock.Now()

	daily, err := u.reportRepo.DailyRevenue(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		return ChartsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	monthly, err := u.reportRepo.MonthlyRevenue(ctx, now.Year())
	if err != nil {
		return ChartsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := ChartsOutput{
		Daily:   make([]DailyPoint, 0, len(daily)),
		Monthly: make([]MonthlyPoint, 0, len(monthly)),
	}
	for _, d := range daily {
		out.Daily = append(out.Daily, DailyPoint{
			Date:  d.Date.Format(time.DateOnly),
			Total: d.Total,
		})
	}
	for _, m := range monthly {
		out.Monthly = append(out.Monthly, MonthlyPoint{
			Month: m.Month,
			Total: m.Total,
		})
	}
	return out, nil
}
