package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/timemedia/adlibrary/internal/model"
)

// CompanyStore handles database operations for companies.
type CompanyStore struct {
	db *sql.DB
}

// NewCompanyStore creates a new CompanyStore.
func NewCompanyStore(db *sql.DB) *CompanyStore {
	return &CompanyStore{db: db}
}

// GetBySlug retrieves a company profile by its slug. Returns nil when no
// record exists; the caller decides whether to fall back to a placeholder.
func (s *CompanyStore) GetBySlug(ctx context.Context, slug string) (*model.CompanyProfile, error) {
	query := `
		SELECT id, name, slug, description, tags, related_ids,
		       appeared_in, audience_profile, market_overview, image
		FROM companies
		WHERE slug = $1
	`

	var p model.CompanyProfile
	var description, audience, market, image sql.NullString
	var appearedIn []byte
	err := s.db.QueryRowContext(ctx, query, slug).Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&description,
		pq.Array(&p.Tags),
		pq.Array(&p.RelatedCompanyIDs),
		&appearedIn,
		&audience,
		&market,
		&image,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company %s: %w", slug, err)
	}

	p.Description = description.String
	p.AudienceProfile = audience.String
	p.MarketOverview = market.String
	p.Image = image.String
	if len(appearedIn) > 0 {
		if err := json.Unmarshal(appearedIn, &p.AppearedIn); err != nil {
			return nil, fmt.Errorf("failed to parse appeared_in for company %s: %w", slug, err)
		}
	}

	return &p, nil
}

// GetRelated retrieves compact records for the given company ids.
func (s *CompanyStore) GetRelated(ctx context.Context, ids []string) ([]model.RelatedCompany, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, description
		FROM companies
		WHERE id = ANY($1)
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get related companies: %w", err)
	}
	defer rows.Close()

	var companies []model.RelatedCompany
	for rows.Next() {
		var c model.RelatedCompany
		var description sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &description); err != nil {
			return nil, fmt.Errorf("failed to scan related company: %w", err)
		}
		c.Description = description.String
		companies = append(companies, c)
	}

	return companies, rows.Err()
}

// GetMentions retrieves all ads for a company, oldest first, for the
// company detail timeline.
func (s *CompanyStore) GetMentions(ctx context.Context, companyID string) ([]model.Ad, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM ads a
		INNER JOIN companies c ON c.id = a.company_id
		WHERE a.company_id = $1
		ORDER BY a.date ASC
	`, adColumns)

	ads, err := collectAds(ctx, s.db, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mentions for company %s: %w", companyID, err)
	}

	return ads, nil
}

// CountCompanies returns the total number of companies.
func (s *CompanyStore) CountCompanies(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count companies: %w", err)
	}
	return count, nil
}

// UpsertCompany inserts or updates a company.
func (s *CompanyStore) UpsertCompany(ctx context.Context, c *model.Company) error {
	query := `
		INSERT INTO companies (id, name, slug, tags, description, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			tags = EXCLUDED.tags,
			description = EXCLUDED.description,
			image = EXCLUDED.image
	`

	_, err := s.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Slug,
		pq.Array(c.Tags),
		c.Description,
		c.Image,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert company %s: %w", c.ID, err)
	}

	return nil
}
