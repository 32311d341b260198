package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
	"github.com/Dosada05/tennis-league/storage"
)

type SponsorService interface {
	Create(ctx context.Context, input SponsorInput) (*models.Sponsor, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Sponsor, error)
	Update(ctx context.Context, id int, input SponsorInput) (*models.Sponsor, error)
	UploadLogo(ctx context.Context, id int, contentType string, file io.Reader) (*models.Sponsor, error)
	Delete(ctx context.Context, id int) error
}

type SponsorInput struct {
	Name         string  `json:"name"`
	LinkURL      *string `json:"link_url,omitempty"`
	DisplayOrder int     `json:"display_order"`
	Active       bool    `json:"active"`
}

type sponsorService struct {
	sponsorRepo repositories.SponsorRepository
	uploader    storage.FileUploader
}

func NewSponsorService(sponsorRepo repositories.SponsorRepository, uploader storage.FileUploader) SponsorService {
	return &sponsorService{
		sponsorRepo: sponsorRepo,
		uploader:    uploader,
	}
}

func (s *sponsorService) Create(ctx context.Context, input SponsorInput) (*models.Sponsor, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: sponsor name is required", ErrValidationFailed)
	}

	sponsor := &models.Sponsor{
		Name:         name,
		LinkURL:      input.LinkURL,
		DisplayOrder: input.DisplayOrder,
		Active:       input.Active,
	}
	if err := s.sponsorRepo.Create(ctx, sponsor); err != nil {
		return nil, fmt.Errorf("failed to create sponsor: %w", err)
	}
	return sponsor, nil
}

func (s *sponsorService) List(ctx context.Context, activeOnly bool) ([]*models.Sponsor, error) {
	sponsors, err := s.sponsorRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list sponsors: %w", err)
	}
	for _, sponsor := range sponsors {
		populateSponsorLogoURLFunc(sponsor, s.uploader)
	}
	return sponsors, nil
}

func (s *sponsorService) Update(ctx context.Context, id int, input SponsorInput) (*models.Sponsor, error) {
	sponsor, err := s.sponsorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSponsorNotFound) {
			return nil, ErrSponsorNotFound
		}
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		sponsor.Name = name
	}
	sponsor.LinkURL = input.LinkURL
	sponsor.DisplayOrder = input.DisplayOrder
	sponsor.Active = input.Active

	if err := s.sponsorRepo.Update(ctx, sponsor); err != nil {
		if errors.Is(err, repositories.ErrSponsorNotFound) {
			return nil, ErrSponsorNotFound
		}
		return nil, err
	}
	populateSponsorLogoURLFunc(sponsor, s.uploader)
	return sponsor, nil
}

func (s *sponsorService) UploadLogo(ctx context.Context, id int, contentType string, file io.Reader) (*models.Sponsor, error) {
	sponsor, err := s.sponsorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSponsorNotFound) {
			return nil, ErrSponsorNotFound
		}
		return nil, err
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	oldKey := sponsor.LogoKey
	key := fmt.Sprintf("sponsors/%d/logo%s", id, ext)

	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload sponsor logo: %w", err)
	}
	if err := s.sponsorRepo.UpdateLogoKey(ctx, id, key); err != nil {
		return nil, err
	}
	if oldKey != "" && oldKey != key {
		_ = s.uploader.Delete(ctx, oldKey)
	}

	sponsor.LogoKey = key
	populateSponsorLogoURLFunc(sponsor, s.uploader)
	return sponsor, nil
}

func (s *sponsorService) Delete(ctx context.Context, id int) error {
	sponsor, err := s.sponsorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSponsorNotFound) {
			return ErrSponsorNotFound
		}
		return err
	}
	if err := s.sponsorRepo.Delete(ctx, id); err != nil {
		return err
	}
	if sponsor.LogoKey != "" {
		_ = s.uploader.Delete(ctx, sponsor.LogoKey)
	}
	return nil
}
