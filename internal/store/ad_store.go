package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/timemedia/adlibrary/internal/model"
)

// AdStore handles database operations for ad records.
type AdStore struct {
	db *sql.DB
}

// NewAdStore creates a new AdStore.
func NewAdStore(db *sql.DB) *AdStore {
	return &AdStore{db: db}
}

const adColumns = `
	a.id, a.company_id, a.company_name, a.ad_copy, a.date,
	a.link, a.read_more_link, a.image,
	c.id, c.name, c.slug, c.tags, c.description, c.image
`

// ListAds retrieves the full candidate set for local querying, newest
// first, with companies embedded and newsletter placements attached.
func (s *AdStore) ListAds(ctx context.Context) ([]model.Ad, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM ads a
		INNER JOIN companies c ON c.id = a.company_id
		ORDER BY a.date DESC
	`, adColumns)

	ads, err := collectAds(ctx, s.db, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ads: %w", err)
	}

	if err := s.attachNewsletters(ctx, ads); err != nil {
		return nil, err
	}

	return ads, nil
}

// CountAds returns the total number of ad records.
func (s *AdStore) CountAds(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ads`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count ads: %w", err)
	}
	return count, nil
}

// UpsertAd inserts or updates an ad record.
func (s *AdStore) UpsertAd(ctx context.Context, ad *model.Ad) error {
	query := `
		INSERT INTO ads (id, company_id, company_name, ad_copy, date,
		                 link, read_more_link, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			company_id = EXCLUDED.company_id,
			company_name = EXCLUDED.company_name,
			ad_copy = EXCLUDED.ad_copy,
			date = EXCLUDED.date,
			link = EXCLUDED.link,
			read_more_link = EXCLUDED.read_more_link,
			image = EXCLUDED.image
	`

	_, err := s.db.ExecContext(ctx, query,
		ad.ID,
		ad.CompanyID,
		ad.CompanyName,
		ad.AdCopy,
		ad.Date,
		ad.Link,
		ad.ReadMoreLink,
		ad.Image,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert ad %s: %w", ad.ID, err)
	}

	return nil
}

// ReplaceNewsletterLinks rewrites an ad's newsletter placements.
func (s *AdStore) ReplaceNewsletterLinks(ctx context.Context, adID string, newsletterIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ad_newsletters WHERE ad_id = $1`, adID); err != nil {
		return fmt.Errorf("failed to clear newsletter links for ad %s: %w", adID, err)
	}

	for _, nid := range newsletterIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO ad_newsletters (ad_id, newsletter_id) VALUES ($1, $2)`,
			adID, nid,
		)
		if err != nil {
			return fmt.Errorf("failed to link ad %s to newsletter %s: %w", adID, nid, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// attachNewsletters loads newsletter placements for the given ads in one
// query and attaches them in ad order.
func (s *AdStore) attachNewsletters(ctx context.Context, ads []model.Ad) error {
	if len(ads) == 0 {
		return nil
	}

	ids := make([]string, len(ads))
	index := make(map[string]int, len(ads))
	for i, ad := range ads {
		ids[i] = ad.ID
		index[ad.ID] = i
	}

	query := `
		SELECT an.ad_id, n.id, n.name, n.slug, n.traffic_rank
		FROM ad_newsletters an
		INNER JOIN newsletters n ON n.id = an.newsletter_id
		WHERE an.ad_id = ANY($1)
		ORDER BY n.traffic_rank
	`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load newsletter links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var adID string
		var n model.Newsletter
		if err := rows.Scan(&adID, &n.ID, &n.Name, &n.Slug, &n.TrafficRank); err != nil {
			return fmt.Errorf("failed to scan newsletter link: %w", err)
		}
		if i, ok := index[adID]; ok {
			ads[i].Newsletters = append(ads[i].Newsletters, n)
		}
	}

	return rows.Err()
}

// collectAds runs a query selecting adColumns and scans the rows into ad
// records. Shared by the ad, company and newsletter stores.
func collectAds(ctx context.Context, db *sql.DB, query string, args ...any) ([]model.Ad, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ads []model.Ad
	for rows.Next() {
		var ad model.Ad
		var link, readMore, image sql.NullString
		var companyDesc, companyImage sql.NullString
		err := rows.Scan(
			&ad.ID,
			&ad.CompanyID,
			&ad.CompanyName,
			&ad.AdCopy,
			&ad.Date,
			&link,
			&readMore,
			&image,
			&ad.Company.ID,
			&ad.Company.Name,
			&ad.Company.Slug,
			pq.Array(&ad.Company.Tags),
			&companyDesc,
			&companyImage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ad: %w", err)
		}
		ad.Link = link.String
		ad.ReadMoreLink = readMore.String
		ad.Image = image.String
		ad.Company.Description = companyDesc.String
		ad.Company.Image = companyImage.String
		ads = append(ads, ad)
	}

	return ads, rows.Err()
}
