package app

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"artisanmarket/internal/util"
	"artisanmarket/pkg/domain"
)

// UpsertProfile writes the artisan's single profile row. Every call overwrites
// all attribute columns, so omitted fields are cleared.
func (a *App) UpsertProfile(artisanID string, p domain.ArtisanProfile) (domain.ArtisanProfile, error) {
	p.ArtisanID = artisanID
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.ArtisanProfile{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	p.UpdatedAt = time.Now().UTC()
	if err := a.store.UpsertProfile(p); err != nil {
		return domain.ArtisanProfile{}, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}

// UpsertWork creates or fully overwrites one portfolio work. A work id is
// assigned server-side when absent; a supplied id belonging to another artisan
// is a silent no-op.
func (a *App) UpsertWork(artisanID string, w domain.Work) (domain.Work, error) {
	w.ArtisanID = artisanID
	w.Title = strings.TrimSpace(w.Title)
	if w.Title == "" {
		return domain.Work{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	w.ID = strings.TrimSpace(w.ID)
	if w.ID == "" {
		w.ID = util.NewID()
	}
	if w.ImageURLs == nil {
		w.ImageURLs = []string{}
	}
	w.CreatedAt = time.Now().UTC()
	if err := a.store.UpsertWork(w); err != nil {
		return domain.Work{}, fmt.Errorf("save work: %w", err)
	}
	return w, nil
}

// DeleteWork removes a work owned by the artisan. Deleting a missing or
// foreign work is a no-op.
func (a *App) DeleteWork(workID, artisanID string) error {
	if strings.TrimSpace(workID) == "" {
		return fmt.Errorf("%w: work id is required", ErrValidation)
	}
	if err := a.store.DeleteWork(workID, artisanID); err != nil {
		return fmt.Errorf("delete work: %w", err)
	}
	return nil
}

// UpsertAchievement creates or fully overwrites one achievement. Ids follow
// the same ownership rules as works.
func (a *App) UpsertAchievement(artisanID string, ach domain.Achievement) (domain.Achievement, error) {
	ach.ArtisanID = artisanID
	ach.Title = strings.TrimSpace(ach.Title)
	if ach.Title == "" {
		return domain.Achievement{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	ach.ID = strings.TrimSpace(ach.ID)
	if ach.ID == "" {
		ach.ID = util.NewID()
	}
	ach.CreatedAt = time.Now().UTC()
	if err := a.store.UpsertAchievement(ach); err != nil {
		return domain.Achievement{}, fmt.Errorf("save achievement: %w", err)
	}
	return ach, nil
}

// DeleteAchievement removes an achievement owned by the artisan.
func (a *App) DeleteAchievement(achievementID, artisanID string) error {
	if strings.TrimSpace(achievementID) == "" {
		return fmt.Errorf("%w: achievement id is required", ErrValidation)
	}
	if err := a.store.DeleteAchievement(achievementID, artisanID); err != nil {
		return fmt.Errorf("delete achievement: %w", err)
	}
	return nil
}

// UpsertSocialLinks overwrites all four platform links for the artisan.
func (a *App) UpsertSocialLinks(artisanID string, links domain.SocialLinks) (domain.SocialLinks, error) {
	links.ArtisanID = artisanID
	links.Instagram = strings.TrimSpace(links.Instagram)
	links.Facebook = strings.TrimSpace(links.Facebook)
	links.Youtube = strings.TrimSpace(links.Youtube)
	links.Website = strings.TrimSpace(links.Website)
	if err := a.store.UpsertSocialLinks(links); err != nil {
		return domain.SocialLinks{}, fmt.Errorf("save social links: %w", err)
	}
	return links, nil
}

// GetPortfolio assembles the public portfolio view for one artisan. The
// profile row is required; works, achievements and social links are fetched
// independently so one artisan's data never multiplies another section.
func (a *App) GetPortfolio(artisanID string) (domain.PortfolioDocument, error) {
	profile, found, err := a.store.GetProfile(artisanID)
	if err != nil {
		return domain.PortfolioDocument{}, fmt.Errorf("fetch profile: %w", err)
	}
	if !found {
		return domain.PortfolioDocument{}, ErrNotFound
	}

	var (
		works        []domain.Work
		achievements []domain.Achievement
		links        domain.SocialLinks
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		works, err = a.store.ListWorksByArtisan(artisanID)
		if err != nil {
			return fmt.Errorf("fetch works: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		achievements, err = a.store.ListAchievementsByArtisan(artisanID)
		if err != nil {
			return fmt.Errorf("fetch achievements: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		stored, ok, err := a.store.GetSocialLinks(artisanID)
		if err != nil {
			return fmt.Errorf("fetch social links: %w", err)
		}
		if ok {
			links = stored
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.PortfolioDocument{}, err
	}

	if works == nil {
		works = []domain.Work{}
	}
	if achievements == nil {
		achievements = []domain.Achievement{}
	}
	return domain.PortfolioDocument{
		ArtisanProfile: profile,
		SocialLinks:    links,
		Works:          works,
		Achievements:   achievements,
	}, nil
}
