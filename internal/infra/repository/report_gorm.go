package repository

import (
	"context"
	"time"

	repo "pos/internal/repository"

	"gorm.io/gorm"
)

type ReportGormRepository struct {
	db *gorm.DB
}

func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{db: db}
}

// ダッシュボード上部のカード（今日/今月の売上、会計数、売れ筋）
func (r *ReportGormRepository) Summary(ctx context.Context, now time.Time) (repo.SalesSummary, error) {
	var out repo.SalesSummary

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	err := r.db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(total), 0) FROM sales WHERE created_at >= ? AND created_at < ?",
			today, today.AddDate(0, 0, 1)).
		Scan(&out.TodayRevenue).Error
	if err != nil {
		return repo.SalesSummary{}, err
	}

	err = r.db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(total), 0) FROM sales WHERE created_at >= ? AND created_at <= ?",
			startOfMonth, now).
		Scan(&out.MonthRevenue).Error
	if err != nil {
		return repo.SalesSummary{}, err
	}

	err = r.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM sales").
		Scan(&out.SaleCount).Error
	if err != nil {
		return repo.SalesSummary{}, err
	}

	//一番売れた商品（明細の数量合計で判定）
	var best struct {
		Name string
	}
	err = r.db.WithContext(ctx).
		Raw(`SELECT product_name_snapshot AS name
		     FROM sale_items
		     GROUP BY product_name_snapshot
		     ORDER BY SUM(quantity) DESC
		     LIMIT 1`).
		Scan(&best).Error
	if err != nil {
		return repo.SalesSummary{}, err
	}
	out.BestSeller = best.Name
	if out.BestSeller == "" {
		out.BestSeller = "-"
	}

	return out, nil
}

// 日別売上（グラフ用）
func (r *ReportGormRepository) DailyRevenue(ctx context.Context, since time.Time) ([]repo.DailyRevenue, error) {
	var rows []repo.DailyRevenue
	err := r.db.WithContext(ctx).
		Raw(`SELECT DATE(created_at) AS date, SUM(total) AS total
		     FROM sales
		     WHERE created_at >= ?
		     GROUP BY DATE(created_at)
		     ORDER BY date ASC`, since).
		Scan(&rows).Error
	if err != nil {
		return []repo.DailyRevenue{}, err
	}
	return rows, nil
}

// 月別売上（グラフ用）
func (r *ReportGormRepository) MonthlyRevenue(ctx context.Context, year int) ([]repo.MonthlyRevenue, error) {
	var rows []repo.MonthlyRevenue
	err := r.db.WithContext(ctx).
		Raw(`SELECT EXTRACT(MONTH FROM created_at)::int AS month, SUM(total) AS total
		     FROM sales
		     WHERE EXTRACT(YEAR FROM created_at) = ?
		     GROUP BY month
		     ORDER BY month ASC`, year).
		Scan(&rows).Error
	if err != nil {
		return []repo.MonthlyRevenue{}, err
	}
	return rows, nil
}
