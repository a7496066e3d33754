package service

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"profile-backend/internal/domains/profile/model"
	"profile-backend/internal/domains/profile/render"
	"profile-backend/internal/shared/utils"
)

const (
	publishPrefix      = "profiles/"
	publishContentType = "text/plain; charset=utf-8"
)

// PublishKey returns the object key a profile's text rendering is stored under.
// The id prefix keeps keys distinct when two emails slug to the same string.
func PublishKey(p *model.Profile) string {
	name := strconv.FormatInt(p.ID, 10)
	if slug := utils.GenerateSlug(p.Email); slug != "" {
		name += "-" + slug
	}
	return publishPrefix + name + ".txt"
}

func (s *profileService) Publish(ctx context.Context, id int64) (*model.PublishResponse, error) {
	if s.publisher == nil {
		return nil, model.ErrPublishUnavailable
	}

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.publish(ctx, p)
}

// publishConcurrency bounds parallel uploads in PublishAll.
const publishConcurrency = 4

func (s *profileService) PublishAll(ctx context.Context) (int, error) {
	if s.publisher == nil {
		return 0, model.ErrPublishUnavailable
	}

	profiles, err := s.snapshot(ctx)
	if err != nil {
		return 0, err
	}

	var published atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(publishConcurrency)

	for i := range profiles {
		p := &profiles[i]
		g.Go(func() error {
			if _, err := s.publish(gCtx, p); err != nil {
				return err
			}
			published.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(published.Load()), err
	}

	log.Info().Int64("count", published.Load()).Msg("Published all profiles")
	return int(published.Load()), nil
}

func (s *profileService) publish(ctx context.Context, p *model.Profile) (*model.PublishResponse, error) {
	key := PublishKey(p)
	body := render.Profile(p)

	url, err := s.publisher.Upload(ctx, key, []byte(body), publishContentType)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}

	log.Info().
		Int64("profile_id", p.ID).
		Str("key", key).
		Msg("Profile published")

	return &model.PublishResponse{
		ProfileID: p.ID,
		Key:       key,
		URL:       url,
	}, nil
}
