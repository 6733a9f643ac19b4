package service

import (
	"context"
	"time"

	"cafemanagement/internal/apperror"
	"cafemanagement/internal/dto"
	"cafemanagement/internal/model"
	"cafemanagement/internal/repository"
)

type ReportService interface {
	// TotalSales aggregates over the inclusive [start, end] date range. The
	// end date covers the whole day. Zero matches yields zero, not an error.
	TotalSales(ctx context.Context, req dto.SalesReportRequest) (*dto.SalesReportResponse, error)
	// Generate computes the aggregate and persists a SalesReport row.
	Generate(ctx context.Context, req dto.SalesReportRequest, generatedBy *uint) (*dto.SalesReportResponse, error)
	TopProducts(ctx context.Context, limit int) ([]repository.TopProduct, error)
	ListReports(ctx context.Context) ([]dto.SalesReportResponse, error)
}

type reportService struct {
	repo repository.ReportRepository
}

func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportService{repo: repo}
}

// defaultStatuses counts only delivered orders when the caller does not
// narrow the set.
var defaultStatuses = []model.OrderStatus{model.StatusEntregado}

func (s *reportService) TotalSales(ctx context.Context, req dto.SalesReportRequest) (*dto.SalesReportResponse, error) {
	start, end, statuses, err := parseReportRange(req)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.TotalSales(ctx, start, end, statuses)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountOrders(ctx, start, end, statuses)
	if err != nil {
		return nil, err
	}

	return &dto.SalesReportResponse{
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TotalSales: total,
		OrderCount: count,
	}, nil
}

func (s *reportService) Generate(ctx context.Context, req dto.SalesReportRequest, generatedBy *uint) (*dto.SalesReportResponse, error) {
	resp, err := s.TotalSales(ctx, req)
	if err != nil {
		return nil, err
	}
	start, end, _, _ := parseReportRange(req)

	report := &model.SalesReport{
		StartDate:   start,
		EndDate:     end,
		TotalSales:  resp.TotalSales,
		OrderCount:  int(resp.OrderCount),
		GeneratedBy: generatedBy,
	}
	if err := s.repo.Save(ctx, report); err != nil {
		return nil, err
	}
	resp.ID = report.ID
	return resp, nil
}

func (s *reportService) TopProducts(ctx context.Context, limit int) ([]repository.TopProduct, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.TopSellingProducts(ctx, limit)
}

func (s *reportService) ListReports(ctx context.Context) ([]dto.SalesReportResponse, error) {
	reports, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SalesReportResponse, 0, len(reports))
	for _, r := range reports {
		resp = append(resp, dto.SalesReportResponse{
			ID:         r.ID,
			StartDate:  r.StartDate.Format("2006-01-02"),
			EndDate:    r.EndDate.Format("2006-01-02"),
			TotalSales: r.TotalSales,
			OrderCount: int64(r.OrderCount),
		})
	}
	return resp, nil
}

func parseReportRange(req dto.SalesReportRequest) (start, end time.Time, statuses []model.OrderStatus, err error) {
	start, err = time.ParseInLocation("2006-01-02", req.StartDate, time.Local)
	if err != nil {
		return start, end, nil, apperror.New(apperror.InvalidInput, "fecha de inicio inválida")
	}
	end, err = time.ParseInLocation("2006-01-02", req.EndDate, time.Local)
	if err != nil {
		return start, end, nil, apperror.New(apperror.InvalidInput, "fecha de fin inválida")
	}
	if end.Before(start) {
		return start, end, nil, apperror.New(apperror.InvalidInput, "el rango de fechas está invertido")
	}
	// Inclusive end: cover the full final day.
	end = end.Add(24*time.Hour - time.Nanosecond)

	if len(req.Statuses) == 0 {
		return start, end, defaultStatuses, nil
	}
	statuses = make([]model.OrderStatus, 0, len(req.Statuses))
	for _, raw := range req.Statuses {
		st := model.OrderStatus(raw)
		if !st.Valid() {
			return start, end, nil, apperror.New(apperror.InvalidInput, "estado inválido en el filtro")
		}
		statuses = append(statuses, st)
	}
	return start, end, statuses, nil
}
