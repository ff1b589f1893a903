package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/timemedia/adlibrary/internal/model"
)

// NewsletterStore handles database operations for newsletters.
type NewsletterStore struct {
	db *sql.DB
}

// NewNewsletterStore creates a new NewsletterStore.
func NewNewsletterStore(db *sql.DB) *NewsletterStore {
	return &NewsletterStore{db: db}
}

// GetNewsletterBySlug retrieves a newsletter profile by its slug. Returns
// nil when no record exists.
func (s *NewsletterStore) GetNewsletterBySlug(ctx context.Context, slug string) (*model.NewsletterProfile, error) {
	query := `
		SELECT id, name, slug, description, tags, traffic_rank
		FROM newsletters
		WHERE slug = $1
	`

	var p model.NewsletterProfile
	var description sql.NullString
	err := s.db.QueryRowContext(ctx, query, slug).Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&description,
		pq.Array(&p.Tags),
		&p.TrafficRank,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get newsletter %s: %w", slug, err)
	}

	p.Description = description.String
	return &p, nil
}

// GetNewsletterMentions retrieves all ads placed in a newsletter, newest
// first.
func (s *NewsletterStore) GetNewsletterMentions(ctx context.Context, newsletterID string) ([]model.Ad, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM ads a
		INNER JOIN companies c ON c.id = a.company_id
		INNER JOIN ad_newsletters an ON an.ad_id = a.id
		WHERE an.newsletter_id = $1
		ORDER BY a.date DESC
	`, adColumns)

	ads, err := collectAds(ctx, s.db, query, newsletterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mentions for newsletter %s: %w", newsletterID, err)
	}

	return ads, nil
}

// CountNewsletters returns the total number of newsletters.
func (s *NewsletterStore) CountNewsletters(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM newsletters`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count newsletters: %w", err)
	}
	return count, nil
}

// UpsertNewsletter inserts or updates a newsletter.
func (s *NewsletterStore) UpsertNewsletter(ctx context.Context, n *model.Newsletter) error {
	query := `
		INSERT INTO newsletters (id, name, slug, traffic_rank)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			traffic_rank = EXCLUDED.traffic_rank
	`

	_, err := s.db.ExecContext(ctx, query,
		n.ID,
		n.Name,
		n.Slug,
		n.TrafficRank,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert newsletter %s: %w", n.ID, err)
	}

	return nil
}
