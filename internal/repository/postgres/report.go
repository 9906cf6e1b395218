package postgres

import (
	"context"
	"database/sql"
	"time"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository"
)

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

// Dataset unions rental and sale rows into the uniform report shape. Ordering
// is total (date desc, code asc) so a rerun over unchanged data is identical.
func (r *reportRepository) Dataset(ctx context.Context, typ domain.ReportType, start, end string) ([]domain.DatasetRow, error) {
	rentalRows := `SELECT r.code, c.names, r.total_cents + r.late_fee_cents, 'RENTAL', r.start_date
	               FROM rentals r JOIN clients c ON c.dni = r.client_dni
	               WHERE r.start_date BETWEEN $1 AND $2`
	saleRows := `SELECT s.code, c.names, s.total_cents, 'SALE', to_char(s.sold_at, 'YYYY-MM-DD')
	             FROM sales s JOIN clients c ON c.dni = s.client_dni
	             WHERE s.sold_at::date BETWEEN $1 AND $2`

	var query string
	switch typ {
	case domain.ReportTypeRentals:
		query = rentalRows
	case domain.ReportTypeSales:
		query = saleRows
	default:
		query = rentalRows + ` UNION ALL ` + saleRows
	}
	query = `SELECT * FROM (` + query + `) AS ds (code, client_name, cents, origin, date) ORDER BY date DESC, code`

	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, storeErr("report.Dataset", err)
	}
	defer rows.Close()

	var out []domain.DatasetRow
	for rows.Next() {
		var row domain.DatasetRow
		if err := rows.Scan(&row.Code, &row.ClientName, &row.Cents, &row.Origin, &row.Date); err != nil {
			return nil, storeErr("report.Dataset", err)
		}
		out = append(out, row)
	}
	return out, storeErr("report.Dataset", rows.Err())
}

func (r *reportRepository) CreateRequest(ctx context.Context, req *domain.ReportRequest) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO report_requests (type, start_date, end_date, operator_id, url, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`,
		req.Type, req.StartDate, req.EndDate, req.OperatorID, req.URL, req.Status, time.Now()).
		Scan(&req.ID, &req.CreatedAt)
	return storeErr("report.CreateRequest", err)
}

func (r *reportRepository) History(ctx context.Context, limit int32) ([]domain.ReportRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, start_date, end_date, operator_id, url, status, created_at
		 FROM report_requests ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, storeErr("report.History", err)
	}
	defer rows.Close()

	var reqs []domain.ReportRequest
	for rows.Next() {
		var req domain.ReportRequest
		if err := rows.Scan(&req.ID, &req.Type, &req.StartDate, &req.EndDate, &req.OperatorID, &req.URL, &req.Status, &req.CreatedAt); err != nil {
			return nil, storeErr("report.History", err)
		}
		reqs = append(reqs, req)
	}
	return reqs, storeErr("report.History", rows.Err())
}

func (r *reportRepository) CountActiveRentals(ctx context.Context) (int32, error) {
	var n int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM rentals WHERE status = $1`, domain.RentalStatusActive).Scan(&n)
	return n, storeErr("report.CountActiveRentals", err)
}

func (r *reportRepository) CountUpcomingRentals(ctx context.Context, today string) (int32, error) {
	var n int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM rentals WHERE start_date >= $1`, today).Scan(&n)
	return n, storeErr("report.CountUpcomingRentals", err)
}

func (r *reportRepository) RentalRevenueBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var cents int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_cents + late_fee_cents), 0) FROM rentals WHERE created_at BETWEEN $1 AND $2`,
		from, to).Scan(&cents)
	return cents, storeErr("report.RentalRevenueBetween", err)
}

func (r *reportRepository) SalesRevenueBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var cents int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_cents), 0) FROM sales WHERE sold_at BETWEEN $1 AND $2`,
		from, to).Scan(&cents)
	return cents, storeErr("report.SalesRevenueBetween", err)
}

func (r *reportRepository) RecentRentals(ctx context.Context, limit int32) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+rentalColumns+` FROM rentals ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, storeErr("report.RecentRentals", err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, storeErr("report.RecentRentals", err)
		}
		rentals = append(rentals, *rt)
	}
	return rentals, storeErr("report.RecentRentals", rows.Err())
}

func (r *reportRepository) RecentSales(ctx context.Context, limit int32) ([]domain.Sale, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+saleColumns+` FROM sales ORDER BY sold_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, storeErr("report.RecentSales", err)
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, storeErr("report.RecentSales", err)
		}
		sales = append(sales, *s)
	}
	return sales, storeErr("report.RecentSales", rows.Err())
}
