package sitereport

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListReports(ctx context.Context) ([]SiteReport, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, project_id, date, COALESCE(weather, ''), crew_count,
           COALESCE(work_completed, ''), COALESCE(delays, ''), COALESCE(visitors, ''),
           COALESCE(submitted_by, ''), created_at
    FROM site_reports
    ORDER BY date DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []SiteReport
	for rows.Next() {
		var report SiteReport
		if err := rows.Scan(&report.ID, &report.ProjectID, &report.Date, &report.Weather, &report.CrewCount,
			&report.WorkCompleted, &report.Delays, &report.Visitors, &report.SubmittedBy, &report.CreatedAt); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func (s *Store) GetReport(ctx context.Context, id string) (*SiteReport, error) {
	var report SiteReport
	err := s.DB.QueryRow(ctx, `
    SELECT id, project_id, date, COALESCE(weather, ''), crew_count,
           COALESCE(work_completed, ''), COALESCE(delays, ''), COALESCE(visitors, ''),
           COALESCE(submitted_by, ''), created_at
    FROM site_reports
    WHERE id = $1
  `, id).Scan(&report.ID, &report.ProjectID, &report.Date, &report.Weather, &report.CrewCount,
		&report.WorkCompleted, &report.Delays, &report.Visitors, &report.SubmittedBy, &report.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Store) CreateReport(ctx context.Context, report SiteReport) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
    INSERT INTO site_reports (id, project_id, date, weather, crew_count, work_completed, delays, visitors, submitted_by)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
  `, id, report.ProjectID, report.Date, report.Weather, report.CrewCount,
		report.WorkCompleted, report.Delays, report.Visitors, report.SubmittedBy)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateReport(ctx context.Context, report SiteReport) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE site_reports
    SET project_id = $2, date = $3, weather = $4, crew_count = $5,
        work_completed = $6, delays = $7, visitors = $8
    WHERE id = $1
  `, report.ID, report.ProjectID, report.Date, report.Weather, report.CrewCount,
		report.WorkCompleted, report.Delays, report.Visitors)
	return err
}

func (s *Store) DeleteReport(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM site_reports WHERE id = $1", id)
	return err
}

func (s *Store) ListFLHA(ctx context.Context) ([]FLHA, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, project_id, COALESCE(employee_id::text, ''), date, COALESCE(task, ''), hazards, reviewed, created_at
    FROM flha_forms
    ORDER BY date DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var forms []FLHA
	for rows.Next() {
		var form FLHA
		var hazards []byte
		if err := rows.Scan(&form.ID, &form.ProjectID, &form.EmployeeID, &form.Date,
			&form.Task, &hazards, &form.Reviewed, &form.CreatedAt); err != nil {
			return nil, err
		}
		if len(hazards) > 0 {
			if err := json.Unmarshal(hazards, &form.Hazards); err != nil {
				return nil, err
			}
		}
		forms = append(forms, form)
	}
	return forms, rows.Err()
}

func (s *Store) GetFLHA(ctx context.Context, id string) (*FLHA, error) {
	var form FLHA
	var hazards []byte
	err := s.DB.QueryRow(ctx, `
    SELECT id, project_id, COALESCE(employee_id::text, ''), date, COALESCE(task, ''), hazards, reviewed, created_at
    FROM flha_forms
    WHERE id = $1
  `, id).Scan(&form.ID, &form.ProjectID, &form.EmployeeID, &form.Date,
		&form.Task, &hazards, &form.Reviewed, &form.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(hazards) > 0 {
		if err := json.Unmarshal(hazards, &form.Hazards); err != nil {
			return nil, err
		}
	}
	return &form, nil
}

func (s *Store) CreateFLHA(ctx context.Context, form FLHA) (string, error) {
	id := uuid.NewString()
	hazards, err := json.Marshal(form.Hazards)
	if err != nil {
		return "", err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO flha_forms (id, project_id, employee_id, date, task, hazards, reviewed)
    VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, false)
  `, id, form.ProjectID, form.EmployeeID, form.Date, form.Task, hazards)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) SetFLHAReviewed(ctx context.Context, id string, reviewed bool) error {
	_, err := s.DB.Exec(ctx, "UPDATE flha_forms SET reviewed = $2 WHERE id = $1", id, reviewed)
	return err
}

func (s *Store) DeleteFLHA(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM flha_forms WHERE id = $1", id)
	return err
}
