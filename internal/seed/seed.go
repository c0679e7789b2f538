// Package seed fills a development database with a demo user, the article
// library and a few recommendations. Running it twice changes nothing.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/fertitrack/fertitrack/internal/models"
	"github.com/fertitrack/fertitrack/internal/store"
)

const (
	DemoEmail = "demo@fertitrack.local"
	demoName  = "Demo User"
)

var articles = []models.Article{
	{Title: "Zinc, selenium and sperm health", Category: "Nutrition",
		Content: "Zinc and selenium support sperm production and motility. Shellfish, nuts and seeds are good sources."},
	{Title: "Antioxidant-rich foods", Category: "Nutrition",
		Content: "Berries, leafy greens and tomatoes reduce oxidative stress that damages sperm DNA."},
	{Title: "Sleep and hormone balance", Category: "Lifestyle",
		Content: "Seven to nine hours of sleep keeps testosterone levels steady."},
	{Title: "Heat exposure", Category: "Lifestyle",
		Content: "Hot tubs, saunas and laptops on the lap raise scrotal temperature and lower sperm count."},
	{Title: "Reading a semen analysis", Category: "Medical",
		Content: "Volume, motility and morphology are the three headline numbers. Reference ranges vary by lab."},
	{Title: "Moderate exercise", Category: "Fitness",
		Content: "Regular moderate exercise improves semen quality; extreme endurance training can lower it."},
}

var insights = []string{
	"Your motility improved since the last analysis. Keep the current diet.",
	"Consider adding a zinc-rich food to each day.",
	"Sleep logs show under seven hours on most nights; aim for more.",
}

type Result struct {
	User            models.User
	Articles        int
	Recommendations int64
}

// Demo seeds everything in one transaction. Recommendations are only
// added for a user that has none.
func Demo(ctx context.Context, st *store.Store) (Result, error) {
	var res Result
	err := st.Transaction(ctx, func(tx *store.Store) error {
		u, err := tx.EnsureUser(ctx, DemoEmail, demoName)
		if err != nil {
			return err
		}
		res.User = u

		for _, a := range articles {
			if err := tx.EnsureArticle(ctx, &a); err != nil {
				return err
			}
			res.Articles++
		}

		n, err := tx.CountRecommendations(ctx, u.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			day := time.Now().UTC().Truncate(24 * time.Hour)
			for i, text := range insights {
				r := models.Recommendation{
					UserID:             u.ID,
					Insight:            text,
					RecommendationDate: day.AddDate(0, 0, -7*i),
				}
				if err := tx.CreateRecommendation(ctx, &r); err != nil {
					return err
				}
			}
			n = int64(len(insights))
		}
		res.Recommendations = n
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("seeding demo data: %w", err)
	}
	return res, nil
}
